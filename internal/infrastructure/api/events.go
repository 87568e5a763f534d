package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"afisha/internal/domain"
	"afisha/internal/domain/entities"
	"afisha/internal/ports/output"
)

var (
	_ output.EventAPI = (*Client)(nil)
	_ output.AdminAPI = (*Client)(nil)
)

// GetEventByID fetches one event. Any failure is reported as ErrEventUnavailable.
func (c *Client) GetEventByID(ctx context.Context, id int64) (*entities.Event, error) {
	resp, err := c.do(ctx, request{
		method: http.MethodGet,
		path:   "/events/get/" + strconv.FormatInt(id, 10),
		route:  "/events/get/{id}",
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrEventUnavailable, err)
	}
	if !resp.ok() {
		return nil, &Error{Status: resp.status, Err: domain.ErrEventUnavailable}
	}

	var dto eventDTO
	if err := json.Unmarshal(resp.body, &dto); err != nil {
		return nil, fmt.Errorf("%w: decode event %d: %v", domain.ErrEventUnavailable, id, err)
	}
	event := eventToDomain(dto, c.loc)
	if event.ID == 0 {
		event.ID = id
	}
	return &event, nil
}

// EventsBetween lists at most limit events starting in [start, end].
func (c *Client) EventsBetween(ctx context.Context, start, end time.Time, limit int) ([]entities.Event, error) {
	query := url.Values{}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}
	resp, err := c.do(ctx, request{
		method: http.MethodPost,
		path:   "/events/between",
		query:  query,
		body:   betweenDTO{Start: formatTimestamp(start), End: formatTimestamp(end)},
	})
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	if !resp.ok() {
		return nil, failure(resp, domain.ErrRequestFailed)
	}

	var rows []eventDTO
	if err := json.Unmarshal(resp.body, &rows); err != nil {
		return nil, fmt.Errorf("decode events: %w", err)
	}
	return eventsToDomain(rows, c.loc), nil
}

// CreateOrder registers a participation. The idempotency key, when set, lets the
// backend deduplicate retried submissions.
func (c *Client) CreateOrder(ctx context.Context, order entities.OrderRequest) (*entities.OrderConfirmation, error) {
	payment := order.PaymentMethod
	if payment == "" {
		payment = domain.PaymentMethodOnline
	}
	people := order.PeopleCount
	if people <= 0 {
		people = domain.DefaultPeopleCount
	}

	req := request{
		method: http.MethodPost,
		path:   "/order",
		body: orderDTO{
			EventID:       order.EventID,
			PaymentMethod: payment,
			PeopleCount:   people,
			Email:         order.Email,
		},
		auth: authBearer,
	}
	if order.IdempotencyKey != "" {
		req.headers = map[string]string{headerIdempotencyKey: order.IdempotencyKey}
	}

	resp, err := c.do(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrOrderFailed, err)
	}
	if !resp.ok() {
		return nil, failure(resp, domain.ErrOrderFailed)
	}

	confirmation := &entities.OrderConfirmation{
		EventID: order.EventID,
		Email:   order.Email,
		Raw:     resp.body,
	}
	var dto orderResponseDTO
	if err := json.Unmarshal(resp.body, &dto); err == nil {
		confirmation.OrderID = dto.OrderID
		if confirmation.OrderID == 0 {
			confirmation.OrderID = dto.ID
		}
		if dto.EventID != 0 {
			confirmation.EventID = dto.EventID
		}
		if dto.Email != "" {
			confirmation.Email = dto.Email
		}
		confirmation.QRCode = dto.QRCode
	}
	return confirmation, nil
}

// ListAllEvents returns the whole catalog, past events included.
func (c *Client) ListAllEvents(ctx context.Context) ([]entities.Event, error) {
	resp, err := c.do(ctx, request{method: http.MethodGet, path: "/events/all", auth: authAdmin})
	if err != nil {
		return nil, fmt.Errorf("list all events: %w", err)
	}
	if !resp.ok() {
		return nil, authFailure(resp, domain.ErrRequestFailed)
	}

	var rows []eventDTO
	if err := json.Unmarshal(resp.body, &rows); err != nil {
		return nil, fmt.Errorf("decode events: %w", err)
	}
	return eventsToDomain(rows, c.loc), nil
}

// CreateEvent publishes a new event and returns the identifier echoed by the backend.
func (c *Client) CreateEvent(ctx context.Context, draft entities.EventDraft) (string, error) {
	resp, err := c.do(ctx, request{
		method: http.MethodPost,
		path:   "/add_event",
		body:   draftToDTO(draft),
		auth:   authAdmin,
	})
	if err != nil {
		return "", fmt.Errorf("create event: %w", err)
	}
	if !resp.ok() {
		return "", authFailure(resp, domain.ErrRequestFailed)
	}
	return createdSlug(resp.body), nil
}

// createdSlug reads either a bare JSON string or an object naming the new event.
func createdSlug(body []byte) string {
	var slug string
	if err := json.Unmarshal(body, &slug); err == nil {
		return slug
	}
	var obj struct {
		Slug     string `json:"slug"`
		ShortURL string `json:"short_url"`
		EventID  int64  `json:"event_id"`
		ID       int64  `json:"id"`
	}
	if err := json.Unmarshal(body, &obj); err != nil {
		return strings.TrimSpace(string(body))
	}
	switch {
	case obj.Slug != "":
		return obj.Slug
	case obj.ShortURL != "":
		return obj.ShortURL
	case obj.EventID != 0:
		return strconv.FormatInt(obj.EventID, 10)
	case obj.ID != 0:
		return strconv.FormatInt(obj.ID, 10)
	}
	return ""
}

func (c *Client) UpdateEvent(ctx context.Context, id int64, patch entities.EventPatch) (*entities.Event, error) {
	resp, err := c.do(ctx, request{
		method: http.MethodPatch,
		path:   "/events/" + strconv.FormatInt(id, 10),
		route:  "/events/{id}",
		body:   eventPatchToDTO(patch),
		auth:   authAdmin,
	})
	if err != nil {
		return nil, fmt.Errorf("update event %d: %w", id, err)
	}
	if !resp.ok() {
		return nil, authFailure(resp, domain.ErrRequestFailed)
	}

	var dto eventDTO
	if err := json.Unmarshal(resp.body, &dto); err != nil {
		return nil, fmt.Errorf("decode event %d: %w", id, err)
	}
	event := eventToDomain(dto, c.loc)
	if event.ID == 0 {
		event.ID = id
	}
	return &event, nil
}

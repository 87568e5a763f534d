package api

import (
	"fmt"
	"net/http"
	"strings"

	jsoniter "github.com/json-iterator/go"

	"afisha/internal/domain"
)

var _ domain.DetailedError = (*Error)(nil)

// Error is a non-2xx backend answer. Err is the domain error used when the
// body carries no readable detail.
type Error struct {
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%v: %s (status %d)", e.Err, e.Message, e.Status)
	}
	return fmt.Sprintf("%v (status %d)", e.Err, e.Status)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Detail returns the message extracted from the response body.
func (e *Error) Detail() string {
	return e.Message
}

func failure(resp response, fallback error) error {
	return &Error{Status: resp.status, Message: extractDetail(resp.body), Err: fallback}
}

// authFailure maps authentication statuses before falling back.
func authFailure(resp response, fallback error) error {
	switch resp.status {
	case http.StatusUnauthorized:
		fallback = domain.ErrNotAuthenticated
	case http.StatusForbidden:
		fallback = domain.ErrNotAdmin
	}
	return failure(resp, fallback)
}

// extractDetail reads the "detail" field of an error body: a string, a list of
// {"msg": ...} validation items or an object with a "message".
func extractDetail(body []byte) string {
	var payload struct {
		Detail jsoniter.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err != nil || len(payload.Detail) == 0 {
		return ""
	}

	var text string
	if err := json.Unmarshal(payload.Detail, &text); err == nil {
		return strings.TrimSpace(text)
	}

	var items []struct {
		Msg string `json:"msg"`
	}
	if err := json.Unmarshal(payload.Detail, &items); err == nil {
		msgs := make([]string, 0, len(items))
		for _, item := range items {
			if msg := strings.TrimSpace(item.Msg); msg != "" {
				msgs = append(msgs, msg)
			}
		}
		return strings.Join(msgs, "; ")
	}

	var obj struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(payload.Detail, &obj); err == nil {
		return strings.TrimSpace(obj.Message)
	}
	return ""
}

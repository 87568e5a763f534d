package api

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"afisha/internal/domain"
	"afisha/internal/domain/entities"
	"afisha/internal/ports/output"
)

var _ output.UserAPI = (*Client)(nil)

// GetMe returns the profile of the bearer token owner.
func (c *Client) GetMe(ctx context.Context) (*entities.User, error) {
	resp, err := c.do(ctx, request{method: http.MethodGet, path: "/users/me", auth: authBearer})
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	if !resp.ok() {
		return nil, authFailure(resp, domain.ErrRequestFailed)
	}
	return c.decodeUser(resp.body)
}

func (c *Client) UpdateMe(ctx context.Context, patch entities.UserPatch) (*entities.User, error) {
	resp, err := c.do(ctx, request{
		method: http.MethodPatch,
		path:   "/users/me",
		body:   userPatchToDTO(patch),
		auth:   authBearer,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrProfileUpdateFailed, err)
	}
	if !resp.ok() {
		return nil, authFailure(resp, domain.ErrProfileUpdateFailed)
	}
	return c.decodeUser(resp.body)
}

func (c *Client) ListUsers(ctx context.Context) ([]entities.User, error) {
	resp, err := c.do(ctx, request{method: http.MethodGet, path: "/users", auth: authAdmin})
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	if !resp.ok() {
		return nil, authFailure(resp, domain.ErrRequestFailed)
	}

	var rows []userDTO
	if err := json.Unmarshal(resp.body, &rows); err != nil {
		return nil, fmt.Errorf("decode users: %w", err)
	}
	users := make([]entities.User, len(rows))
	for i := range rows {
		users[i] = userToDomain(rows[i], c.loc)
	}
	return users, nil
}

func (c *Client) GetUser(ctx context.Context, id int64) (*entities.User, error) {
	resp, err := c.do(ctx, request{
		method: http.MethodGet,
		path:   "/users/" + strconv.FormatInt(id, 10),
		route:  "/users/{id}",
		auth:   authAdmin,
	})
	if err != nil {
		return nil, fmt.Errorf("get user %d: %w", id, err)
	}
	if !resp.ok() {
		return nil, authFailure(resp, domain.ErrRequestFailed)
	}
	return c.decodeUser(resp.body)
}

func (c *Client) UpdateUser(ctx context.Context, id int64, patch entities.UserPatch) (*entities.User, error) {
	resp, err := c.do(ctx, request{
		method: http.MethodPatch,
		path:   "/users/" + strconv.FormatInt(id, 10),
		route:  "/users/{id}",
		body:   userPatchToDTO(patch),
		auth:   authAdmin,
	})
	if err != nil {
		return nil, fmt.Errorf("update user %d: %w", id, err)
	}
	if !resp.ok() {
		return nil, authFailure(resp, domain.ErrRequestFailed)
	}
	return c.decodeUser(resp.body)
}

func (c *Client) DeleteUser(ctx context.Context, id int64) error {
	resp, err := c.do(ctx, request{
		method: http.MethodDelete,
		path:   "/users/" + strconv.FormatInt(id, 10),
		route:  "/users/{id}",
		auth:   authAdmin,
	})
	if err != nil {
		return fmt.Errorf("delete user %d: %w", id, err)
	}
	if !resp.ok() {
		return authFailure(resp, domain.ErrRequestFailed)
	}
	return nil
}

func (c *Client) decodeUser(body []byte) (*entities.User, error) {
	var dto userDTO
	if err := json.Unmarshal(body, &dto); err != nil {
		return nil, fmt.Errorf("decode user: %w", err)
	}
	user := userToDomain(dto, c.loc)
	return &user, nil
}

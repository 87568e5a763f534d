package api

import (
	"context"
	"fmt"
	"net/http"

	"afisha/internal/domain"
	"afisha/internal/domain/entities"
	"afisha/internal/ports/output"
)

var _ output.AuthAPI = (*Client)(nil)

func (c *Client) Login(ctx context.Context, email, password string) (*entities.Credentials, error) {
	return c.authenticate(ctx, "/auth/login", email, password, domain.ErrLoginFailed)
}

func (c *Client) Register(ctx context.Context, email, password string) (*entities.Credentials, error) {
	return c.authenticate(ctx, "/auth/register", email, password, domain.ErrRegisterFailed)
}

func (c *Client) authenticate(ctx context.Context, path, email, password string, fallback error) (*entities.Credentials, error) {
	resp, err := c.do(ctx, request{
		method: http.MethodPost,
		path:   path,
		body:   credentialsDTO{Email: email, Password: password},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", fallback, err)
	}
	if !resp.ok() {
		return nil, failure(resp, fallback)
	}

	var dto authResponseDTO
	if err := json.Unmarshal(resp.body, &dto); err != nil {
		return nil, fmt.Errorf("%w: decode credentials: %v", fallback, err)
	}
	creds := credentialsToDomain(dto)
	if creds.Email == "" {
		creds.Email = email
	}
	return creds, nil
}

func (c *Client) SendVerificationEmail(ctx context.Context, idToken string) error {
	return c.post(ctx, "/auth/verify-email", verifyEmailDTO{IDToken: idToken})
}

func (c *Client) SendPasswordReset(ctx context.Context, email string) error {
	return c.post(ctx, "/auth/password-reset", passwordResetDTO{Email: email})
}

func (c *Client) ConfirmPasswordReset(ctx context.Context, oobCode, newPassword string) error {
	return c.post(ctx, "/auth/password-reset/confirm", passwordResetConfirmDTO{OOBCode: oobCode, NewPassword: newPassword})
}

func (c *Client) post(ctx context.Context, path string, body any) error {
	resp, err := c.do(ctx, request{method: http.MethodPost, path: path, body: body})
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrRequestFailed, err)
	}
	if !resp.ok() {
		return failure(resp, domain.ErrRequestFailed)
	}
	return nil
}

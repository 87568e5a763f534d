package output

import (
	"context"

	"afisha/internal/domain/entities"
)

type AuthAPI interface {
	Login(ctx context.Context, email, password string) (*entities.Credentials, error)
	Register(ctx context.Context, email, password string) (*entities.Credentials, error)
	SendVerificationEmail(ctx context.Context, idToken string) error
	SendPasswordReset(ctx context.Context, email string) error
	ConfirmPasswordReset(ctx context.Context, oobCode, newPassword string) error
}

// TokenSource yields the bearer token of the current session ("" when signed out).
type TokenSource interface {
	Token() string
}

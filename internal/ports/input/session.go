package input

import (
	"context"

	"afisha/internal/domain/entities"
)

type SessionUseCase interface {
	Current() *entities.AuthUser
	Login(ctx context.Context, email, password string) (*entities.AuthUser, error)
	Register(ctx context.Context, email, password, name string) (*entities.AuthUser, error)
	Logout(ctx context.Context) error
	RefreshProfile(ctx context.Context) (*entities.AuthUser, error)
	UpdateProfile(ctx context.Context, patch entities.UserPatch) (*entities.AuthUser, error)
	SelectedCity(ctx context.Context) string
	SelectCity(ctx context.Context, city string) error
}

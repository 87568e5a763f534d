package input

import (
	"context"

	"afisha/internal/domain/entities"
)

type AdminUseCase interface {
	ListUsers(ctx context.Context, filter entities.UserFilter) ([]entities.User, error)
	UpdateUser(ctx context.Context, id int64, patch entities.UserPatch) (*entities.User, error)
	DeleteUser(ctx context.Context, id int64) error
	ListEvents(ctx context.Context, status entities.EventStatusFilter) ([]entities.Event, error)
	CreateEvent(ctx context.Context, draft entities.EventDraft) (string, error)
	UpdateEvent(ctx context.Context, id int64, patch entities.EventPatch) (*entities.Event, error)
}

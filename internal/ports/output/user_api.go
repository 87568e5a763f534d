package output

import (
	"context"

	"afisha/internal/domain/entities"
)

type UserAPI interface {
	GetMe(ctx context.Context) (*entities.User, error)
	UpdateMe(ctx context.Context, patch entities.UserPatch) (*entities.User, error)
}

// AdminAPI groups the endpoints restricted to administrators.
type AdminAPI interface {
	ListUsers(ctx context.Context) ([]entities.User, error)
	GetUser(ctx context.Context, id int64) (*entities.User, error)
	UpdateUser(ctx context.Context, id int64, patch entities.UserPatch) (*entities.User, error)
	DeleteUser(ctx context.Context, id int64) error
	ListAllEvents(ctx context.Context) ([]entities.Event, error)
	CreateEvent(ctx context.Context, draft entities.EventDraft) (string, error)
	UpdateEvent(ctx context.Context, id int64, patch entities.EventPatch) (*entities.Event, error)
}

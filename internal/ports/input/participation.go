package input

import (
	"context"
	"time"

	"afisha/internal/domain"
	"afisha/internal/domain/entities"
)

type ParticipationUseCase interface {
	CheckConfirm(event *entities.Event, email string, now time.Time) error
	Confirm(ctx context.Context, event *entities.Event, email string) (*entities.OrderConfirmation, error)
	Cancel(ctx context.Context, eventID int64) error
	State(ctx context.Context, eventID int64) domain.ActionState
}

package input

import (
	"context"

	"afisha/internal/domain/entities"
)

type EventUseCase interface {
	GetEvent(ctx context.Context, id int64) (*entities.Event, error)
	Upcoming(ctx context.Context, days int) ([]entities.Event, error)
	Afisha(ctx context.Context, limit int) ([]entities.Event, error)
	Search(ctx context.Context, query string) ([]entities.Event, error)
	ParticipatedEvents(ctx context.Context, participation entities.ParticipationMap) []entities.Event
}

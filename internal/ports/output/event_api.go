package output

import (
	"context"
	"time"

	"afisha/internal/domain/entities"
)

// EventAPI is the backend boundary for event reads and participation orders.
type EventAPI interface {
	GetEventByID(ctx context.Context, id int64) (*entities.Event, error)
	EventsBetween(ctx context.Context, start, end time.Time, limit int) ([]entities.Event, error)
	CreateOrder(ctx context.Context, order entities.OrderRequest) (*entities.OrderConfirmation, error)
}

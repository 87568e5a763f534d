package output

import (
	"context"

	"afisha/internal/domain/entities"
)

// SoonNotifier pushes reminders for participated events starting soon.
type SoonNotifier interface {
	NotifySoon(ctx context.Context, events []entities.SoonEvent) error
}

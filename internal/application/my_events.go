package application

import (
	"context"

	"afisha/internal/domain/entities"
	"afisha/internal/ports/input"
	"afisha/internal/ports/output"
)

// MyEventsView lists the events the user confirmed, in event id order.
type MyEventsView struct {
	list *participatedList
}

func NewMyEventsView(events input.EventUseCase, store *ParticipationStore, bus output.Bus[entities.ParticipationChange]) *MyEventsView {
	return &MyEventsView{list: newParticipatedList(events, store, bus)}
}

// Load fetches the participated events. Events that fail to load are left out.
func (v *MyEventsView) Load(ctx context.Context) []entities.Event {
	return v.list.refresh(ctx)
}

func (v *MyEventsView) Events() []entities.Event {
	return v.list.snapshot()
}

// Run loads the list, then reloads it on every participation change until ctx is done.
func (v *MyEventsView) Run(ctx context.Context, onUpdate func([]entities.Event)) error {
	onUpdate(v.Load(ctx))
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-v.list.changed:
			if !v.list.alive.Load() {
				return nil
			}
			onUpdate(v.Load(ctx))
		}
	}
}

func (v *MyEventsView) Close() {
	v.list.close()
}

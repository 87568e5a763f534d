package application

import (
	"context"
	"time"

	"afisha/internal/domain/entities"
	"afisha/internal/ports/input"
	"afisha/internal/ports/output"
)

// MessagesTick is the refresh period of the soon list.
const MessagesTick = time.Minute

// MessagesView lists participated events starting within SoonWindow.
type MessagesView struct {
	list *participatedList
	now  func() time.Time
	tick time.Duration
}

func NewMessagesView(events input.EventUseCase, store *ParticipationStore, bus output.Bus[entities.ParticipationChange]) *MessagesView {
	return &MessagesView{
		list: newParticipatedList(events, store, bus),
		now:  time.Now,
		tick: MessagesTick,
	}
}

func (v *MessagesView) Load(ctx context.Context) []entities.SoonEvent {
	v.list.refresh(ctx)
	return v.Soon()
}

// Soon recomputes the window over the last loaded events.
func (v *MessagesView) Soon() []entities.SoonEvent {
	return SoonEvents(v.list.snapshot(), v.now())
}

// Run loads the list and calls onUpdate after every tick and every
// participation change until ctx is done.
func (v *MessagesView) Run(ctx context.Context, onUpdate func([]entities.SoonEvent)) error {
	onUpdate(v.Load(ctx))

	ticker := time.NewTicker(v.tick)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			onUpdate(v.Soon())
		case <-v.list.changed:
			if !v.list.alive.Load() {
				return nil
			}
			onUpdate(v.Load(ctx))
		}
	}
}

func (v *MessagesView) Close() {
	v.list.close()
}

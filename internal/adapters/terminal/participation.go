package terminal

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	"afisha/internal/application"
	"afisha/internal/domain/entities"
	"afisha/internal/infrastructure/calendar"
)

func (a *App) myEventsCommand() *cli.Command {
	return &cli.Command{
		Name:  "my-events",
		Usage: "List the events you confirmed.",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "ics", Usage: "Also export the list to this .ics file."},
			&cli.BoolFlag{Name: "watch", Usage: "Keep running and refresh on every participation change."},
		},
		Action: func(c *cli.Context) error {
			view := application.NewMyEventsView(a.events, a.store, a.changes)
			defer view.Close()

			if !c.Bool("watch") {
				events := view.Load(c.Context)
				a.renderEvents(events, "my_events.empty")
				return a.exportICS(c.String("ics"), events)
			}

			a.mirrorChanges(c.Context)
			return view.Run(c.Context, func(events []entities.Event) {
				a.println(fmt.Sprintf("— %s —", time.Now().In(a.loc).Format("15:04:05")))
				a.renderEvents(events, "my_events.empty")
				if err := a.exportICS(c.String("ics"), events); err != nil {
					log.Printf("⚠️ Export iCalendar impossible: %v", err)
				}
			})
		},
	}
}

func (a *App) exportICS(path string, events []entities.Event) error {
	if path == "" || len(events) == 0 {
		return nil
	}
	f, err := os.Create(path)
	if err != nil {
		return a.fail(fmt.Errorf("create %s: %w", path, err))
	}
	defer f.Close()
	if err := calendar.Export(f, events, time.Now()); err != nil {
		return a.fail(err)
	}
	a.success("export.done", map[string]any{"Path": path})
	return nil
}

func (a *App) messagesCommand() *cli.Command {
	return &cli.Command{
		Name:  "messages",
		Usage: "Show your events starting within 24 hours.",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "watch", Usage: "Keep running, refresh every minute and on participation changes."},
			&cli.BoolFlag{Name: "discord", Usage: "Post reminders to the configured Discord channel."},
		},
		Action: func(c *cli.Context) error {
			if c.Bool("discord") && a.notifier == nil {
				return cli.Exit("❌ DISCORD_TOKEN et DISCORD_CHANNEL_ID sont requis pour --discord", 2)
			}
			view := application.NewMessagesView(a.events, a.store, a.changes)
			defer view.Close()

			update := func(soon []entities.SoonEvent) {
				a.renderSoon(soon)
				if c.Bool("discord") {
					a.notify(c.Context, soon)
				}
			}

			if !c.Bool("watch") {
				update(view.Load(c.Context))
				return nil
			}

			a.mirrorChanges(c.Context)
			return view.Run(c.Context, update)
		},
	}
}

func (a *App) notify(ctx context.Context, soon []entities.SoonEvent) {
	if len(soon) == 0 {
		return
	}
	if err := a.notifier.NotifySoon(ctx, soon); err != nil {
		log.Printf("❌ Rappel Discord non envoyé: %v", err)
	}
}

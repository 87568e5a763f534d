package terminal

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	"afisha/internal/application"
)

func (a *App) eventsCommand() *cli.Command {
	return &cli.Command{
		Name:  "events",
		Usage: "List upcoming events of the selected city.",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "days", Value: application.UpcomingDays, Usage: "Number of days to look ahead."},
			&cli.StringFlag{Name: "city", Usage: "City filter (defaults to the selected city)."},
			&cli.BoolFlag{Name: "all-cities", Usage: "Do not filter by city."},
			&cli.StringSliceFlag{Name: "category", Usage: "Category filter, repeatable: " + strings.Join(application.Categories, ", ")},
			&cli.BoolFlag{Name: "past", Usage: "Include events that already started."},
		},
		Action: func(c *cli.Context) error {
			events, err := a.events.Upcoming(c.Context, c.Int("days"))
			if err != nil {
				return a.fail(err)
			}
			if !c.Bool("all-cities") {
				city := c.String("city")
				if city == "" {
					city = a.session.SelectedCity(c.Context)
				}
				events = application.FilterByCity(events, city)
			}
			events = application.FilterByCategories(events, c.StringSlice("category"))
			if !c.Bool("past") {
				events, _ = application.SplitActivePast(events, time.Now())
			}
			a.renderEvents(events, "events.empty")
			return nil
		},
	}
}

func (a *App) afishaCommand() *cli.Command {
	return &cli.Command{
		Name:  "afisha",
		Usage: "Show the headline events of the coming month.",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "limit", Value: application.AfishaLimit, Usage: "Maximum number of events."},
		},
		Action: func(c *cli.Context) error {
			events, err := a.events.Afisha(c.Context, c.Int("limit"))
			if err != nil {
				return a.fail(err)
			}
			a.renderEvents(events, "events.empty")
			return nil
		},
	}
}

func (a *App) searchCommand() *cli.Command {
	return &cli.Command{
		Name:      "search",
		Usage:     "Search events by name, place, city or description.",
		ArgsUsage: "<query>",
		Action: func(c *cli.Context) error {
			query := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
			if query == "" {
				return cli.Exit("❌ query is required", 2)
			}
			events, err := a.events.Search(c.Context, query)
			if err != nil {
				return a.fail(err)
			}
			a.renderEvents(events, "events.empty")
			return nil
		},
	}
}

func (a *App) showCommand() *cli.Command {
	return &cli.Command{
		Name:      "show",
		Usage:     "Show an event and your participation.",
		ArgsUsage: "<event-id>",
		Action: func(c *cli.Context) error {
			id, err := eventIDArg(c)
			if err != nil {
				return err
			}
			view := a.detailView(id)
			defer view.Close()
			if err := view.Load(c.Context); err != nil {
				return a.fail(err)
			}
			a.renderDetail(view.Snapshot(c.Context))
			return nil
		},
	}
}

func (a *App) confirmCommand() *cli.Command {
	return &cli.Command{
		Name:      "confirm",
		Usage:     "Confirm your participation in an event.",
		ArgsUsage: "<event-id>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "email", Usage: "Contact email (defaults to the signed-in user)."},
		},
		Action: func(c *cli.Context) error {
			id, err := eventIDArg(c)
			if err != nil {
				return err
			}
			view := a.detailView(id)
			defer view.Close()
			if err := view.Load(c.Context); err != nil {
				return a.fail(err)
			}
			if err := view.Confirm(c.Context, c.String("email")); err != nil {
				return a.fail(err)
			}
			a.success("participation.confirmed", nil)
			a.renderDetail(view.Snapshot(c.Context))
			return nil
		},
	}
}

func (a *App) cancelCommand() *cli.Command {
	return &cli.Command{
		Name:      "cancel",
		Usage:     "Forget your participation in an event (the order itself is kept by the organizer).",
		ArgsUsage: "<event-id>",
		Action: func(c *cli.Context) error {
			id, err := eventIDArg(c)
			if err != nil {
				return err
			}
			view := a.detailView(id)
			defer view.Close()
			if err := view.Load(c.Context); err != nil {
				a.logger.Debug("event not loaded before cancel", "event_id", id, "error", err)
			}
			if err := view.Cancel(c.Context); err != nil {
				return a.fail(err)
			}
			a.success("participation.cancelled", nil)
			return nil
		},
	}
}

func (a *App) detailView(id int64) *application.EventDetailView {
	return application.NewEventDetailView(id, a.events, a.participation, a.store, a.session, a.changes)
}

func eventIDArg(c *cli.Context) (int64, error) {
	raw := strings.TrimSpace(c.Args().First())
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, cli.Exit(fmt.Sprintf("❌ invalid event id %q", raw), 2)
	}
	return id, nil
}

package terminal

import (
	"strconv"
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	"afisha/internal/domain/entities"
	"afisha/pkg/tz"
)

func (a *App) adminCommand() *cli.Command {
	return &cli.Command{
		Name:  "admin",
		Usage: "Administration of users and events (administrators only).",
		Subcommands: []*cli.Command{
			{
				Name:  "users",
				Usage: "Manage users.",
				Subcommands: []*cli.Command{
					a.adminUsersList(),
					a.adminUsersUpdate(),
					a.adminUsersDelete(),
				},
			},
			{
				Name:  "events",
				Usage: "Manage events.",
				Subcommands: []*cli.Command{
					a.adminEventsList(),
					a.adminEventsCreate(),
					a.adminEventsUpdate(),
				},
			},
		},
	}
}

func (a *App) adminUsersList() *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "List users.",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "name", Usage: "Display name contains."},
			&cli.StringFlag{Name: "role", Usage: "admin or user."},
			&cli.StringFlag{Name: "status"},
			&cli.StringFlag{Name: "from", Usage: "Registered on or after this date (dd.mm.yyyy)."},
			&cli.StringFlag{Name: "to", Usage: "Registered on or before this date (dd.mm.yyyy)."},
		},
		Action: func(c *cli.Context) error {
			filter := entities.UserFilter{
				Name:   c.String("name"),
				Role:   c.String("role"),
				Status: c.String("status"),
			}
			if v := c.String("from"); v != "" {
				from, err := tz.ParseDate(v, a.loc)
				if err != nil {
					return cli.Exit("❌ --from: "+err.Error(), 2)
				}
				filter.From = from
			}
			if v := c.String("to"); v != "" {
				to, err := tz.ParseDate(v, a.loc)
				if err != nil {
					return cli.Exit("❌ --to: "+err.Error(), 2)
				}
				filter.To = to.Add(24*time.Hour - time.Nanosecond)
			}
			users, err := a.admin.ListUsers(c.Context, filter)
			if err != nil {
				return a.fail(err)
			}
			a.renderUsers(users)
			return nil
		},
	}
}

func (a *App) adminUsersUpdate() *cli.Command {
	return &cli.Command{
		Name:      "update",
		Usage:     "Update a user.",
		ArgsUsage: "<user-id>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "name"},
			&cli.StringFlag{Name: "phone"},
			&cli.StringFlag{Name: "role", Usage: "admin or user."},
		},
		Action: func(c *cli.Context) error {
			id, err := idArg(c, "user")
			if err != nil {
				return err
			}
			var patch entities.UserPatch
			patch.DisplayName = optionalFlag(c, "name")
			patch.Phone = optionalFlag(c, "phone")
			patch.Role = optionalFlag(c, "role")
			if _, err := a.admin.UpdateUser(c.Context, id, patch); err != nil {
				return a.fail(err)
			}
			a.success("admin.user_updated", nil)
			return nil
		},
	}
}

func (a *App) adminUsersDelete() *cli.Command {
	return &cli.Command{
		Name:      "delete",
		Usage:     "Delete a user.",
		ArgsUsage: "<user-id>",
		Action: func(c *cli.Context) error {
			id, err := idArg(c, "user")
			if err != nil {
				return err
			}
			if err := a.admin.DeleteUser(c.Context, id); err != nil {
				return a.fail(err)
			}
			a.success("admin.user_deleted", nil)
			return nil
		},
	}
}

func (a *App) adminEventsList() *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "List every event.",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "status", Usage: "active or past."},
		},
		Action: func(c *cli.Context) error {
			status := entities.EventStatusFilter(strings.ToLower(c.String("status")))
			switch status {
			case entities.EventsAll, entities.EventsActive, entities.EventsPast:
			default:
				return cli.Exit("❌ --status must be active or past", 2)
			}
			events, err := a.admin.ListEvents(c.Context, status)
			if err != nil {
				return a.fail(err)
			}
			a.renderEvents(events, "events.empty")
			return nil
		},
	}
}

func eventFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "name"},
		&cli.StringFlag{Name: "place"},
		&cli.StringFlag{Name: "city"},
		&cli.StringFlag{Name: "description"},
		&cli.StringFlag{Name: "type", Usage: "Event type / category."},
		&cli.StringFlag{Name: "date", Usage: "Start date (dd.mm.yyyy)."},
		&cli.StringFlag{Name: "time", Usage: "Start time (hh:mm)."},
		&cli.Float64Flag{Name: "price"},
		&cli.IntFlag{Name: "seats", Usage: "Total number of seats."},
		&cli.IntFlag{Name: "purchased", Usage: "Seats already sold."},
	}
}

func (a *App) adminEventsCreate() *cli.Command {
	flags := append(eventFlags(),
		&cli.StringFlag{Name: "url", Usage: "Event page URL."},
		&cli.StringFlag{Name: "link", Usage: "Image or announcement link."},
		&cli.Int64Flag{Name: "account", Usage: "Owner account id."},
	)
	return &cli.Command{
		Name:  "create",
		Usage: "Publish a new event.",
		Flags: flags,
		Action: func(c *cli.Context) error {
			startsAt, err := tz.ParseDateTime(c.String("date"), c.String("time"), a.loc)
			if err != nil {
				return cli.Exit("❌ --date/--time: "+err.Error(), 2)
			}
			draft := entities.EventDraft{
				Name:           c.String("name"),
				Place:          c.String("place"),
				City:           c.String("city"),
				Description:    c.String("description"),
				EventType:      c.String("type"),
				LongURL:        c.String("url"),
				MessageLink:    c.String("link"),
				StartsAt:       startsAt,
				Price:          c.Float64("price"),
				SeatsTotal:     c.Int("seats"),
				PurchasedCount: c.Int("purchased"),
				AccountID:      c.Int64("account"),
			}
			slug, err := a.admin.CreateEvent(c.Context, draft)
			if err != nil {
				return a.fail(err)
			}
			a.success("admin.event_created", map[string]any{"Slug": slug})
			return nil
		},
	}
}

func (a *App) adminEventsUpdate() *cli.Command {
	flags := append(eventFlags(), &cli.StringFlag{Name: "status", Usage: "Backend status, e.g. finished."})
	return &cli.Command{
		Name:      "update",
		Usage:     "Update an event.",
		ArgsUsage: "<event-id>",
		Flags:     flags,
		Action: func(c *cli.Context) error {
			id, err := idArg(c, "event")
			if err != nil {
				return err
			}
			patch := entities.EventPatch{
				Name:        optionalFlag(c, "name"),
				Place:       optionalFlag(c, "place"),
				City:        optionalFlag(c, "city"),
				Description: optionalFlag(c, "description"),
				EventType:   optionalFlag(c, "type"),
				Status:      optionalFlag(c, "status"),
			}
			if c.IsSet("date") {
				startsAt, err := tz.ParseDateTime(c.String("date"), c.String("time"), a.loc)
				if err != nil {
					return cli.Exit("❌ --date/--time: "+err.Error(), 2)
				}
				patch.StartsAt = &startsAt
			}
			if c.IsSet("price") {
				p := c.Float64("price")
				patch.Price = &p
			}
			if c.IsSet("seats") {
				n := c.Int("seats")
				patch.SeatsTotal = &n
			}
			if c.IsSet("purchased") {
				n := c.Int("purchased")
				patch.PurchasedCount = &n
			}
			if _, err := a.admin.UpdateEvent(c.Context, id, patch); err != nil {
				return a.fail(err)
			}
			a.success("admin.event_updated", nil)
			return nil
		},
	}
}

func optionalFlag(c *cli.Context, name string) *string {
	if !c.IsSet(name) {
		return nil
	}
	v := c.String(name)
	return &v
}

func idArg(c *cli.Context, what string) (int64, error) {
	raw := strings.TrimSpace(c.Args().First())
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, cli.Exit("❌ invalid "+what+" id "+strconv.Quote(raw), 2)
	}
	return id, nil
}

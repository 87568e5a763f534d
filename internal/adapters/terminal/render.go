package terminal

import (
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"afisha/internal/application"
	"afisha/internal/domain/entities"
	"afisha/pkg/tz"
)

func (a *App) table() *tabwriter.Writer {
	return tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
}

func (a *App) renderEvents(events []entities.Event, emptyKey string) {
	if len(events) == 0 {
		a.println(a.t(emptyKey, nil))
		return
	}
	now := time.Now()
	w := a.table()
	fmt.Fprintf(w, "ID\t%s\t%s\t%s\t%s\t%s\n",
		a.t("event.starts", nil), a.t("event.name", nil), a.t("event.place", nil),
		a.t("event.participants", nil), a.t("event.state", nil))
	for _, e := range events {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
			e.ID, tz.FormatDateTime(e.StartsAt, a.loc), e.Name, placeOf(e),
			seats(e.PurchasedCount, e.SeatsTotal), a.stateLabel(e, now))
	}
	w.Flush()
}

func (a *App) stateLabel(e entities.Event, now time.Time) string {
	switch {
	case e.IsPast(now):
		return a.t("event.status.past", nil)
	case e.IsFull():
		return a.t("event.full", nil)
	}
	return a.t("event.status.active", nil)
}

func (a *App) renderDetail(snap application.EventDetailSnapshot) {
	e := snap.Event
	if e == nil {
		return
	}
	status := a.t("event.status.active", nil)
	if snap.Past {
		status = a.t("event.status.past", nil)
	}

	w := a.table()
	fmt.Fprintf(w, "%s\t%s\n", a.t("event.name", nil), e.Name)
	fmt.Fprintf(w, "%s\t%s\n", a.t("event.state", nil), status)
	fmt.Fprintf(w, "%s\t%s\n", a.t("event.place", nil), placeOf(*e))
	fmt.Fprintf(w, "%s\t%s\n", a.t("event.starts", nil), tz.FormatDateTime(e.StartsAt, a.loc))
	if !e.EndsAt.IsZero() {
		fmt.Fprintf(w, "%s\t%s\n", a.t("event.ends", nil), tz.FormatDateTime(e.EndsAt, a.loc))
	}
	fmt.Fprintf(w, "%s\t%s (%s)\n", a.t("event.price", nil), price(e.Price), a.t("event.payment_online", nil))
	participants := seats(snap.Participants, e.SeatsTotal)
	if snap.Full {
		participants += " · " + a.t("event.full", nil)
	}
	fmt.Fprintf(w, "%s\t%s\n", a.t("event.participants", nil), participants)
	if link := e.HeroImage(); link != "" {
		fmt.Fprintf(w, "%s\t%s\n", a.t("event.link", nil), link)
	}
	w.Flush()

	a.println()
	if desc := strings.TrimSpace(e.Description); desc != "" {
		a.println(desc)
	} else {
		a.println(a.t("event.no_description", nil))
	}
	a.println()
	if snap.Participating {
		line := "✅ " + a.t("participation.yes", nil)
		if snap.Email != "" {
			line += " (" + snap.Email + ")"
		}
		a.println(line)
	} else {
		a.println(a.t("participation.no", nil))
	}
}

func (a *App) renderSoon(soon []entities.SoonEvent) {
	if len(soon) == 0 {
		a.println(a.t("messages.empty", nil))
		return
	}
	for _, s := range soon {
		hours, minutes := tz.SplitDuration(s.Until)
		a.println(fmt.Sprintf("⏰ %s · %s", s.Event.Name, tz.FormatDateTime(s.Event.StartsAt, a.loc)))
		a.println("   " + a.t("messages.starts_in", map[string]any{"Hours": hours, "Minutes": minutes}))
		if place := placeOf(s.Event); place != "" {
			a.println("   📍 " + place)
		}
	}
	a.println()
	a.println(a.t("messages.soon", nil))
}

func (a *App) renderUser(u *entities.AuthUser) {
	if u == nil {
		a.println(a.t("auth.anonymous", nil))
		return
	}
	w := a.table()
	fmt.Fprintf(w, "%s\t%s\n", a.t("profile.email", nil), u.Email)
	fmt.Fprintf(w, "%s\t%s\n", a.t("profile.name", nil), u.Name)
	fmt.Fprintf(w, "%s\t%s\n", a.t("profile.phone", nil), u.Phone)
	fmt.Fprintf(w, "%s\t%s\n", a.t("profile.role", nil), u.Role)
	if u.ProfileImage != "" {
		fmt.Fprintf(w, "%s\t%s\n", a.t("profile.avatar", nil), abbreviate(u.ProfileImage, 48))
	}
	w.Flush()
}

func (a *App) renderUsers(users []entities.User) {
	w := a.table()
	fmt.Fprintf(w, "ID\t%s\t%s\t%s\t%s\t%s\n",
		a.t("profile.email", nil), a.t("profile.name", nil), a.t("profile.role", nil),
		a.t("profile.status", nil), a.t("profile.created", nil))
	for _, u := range users {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
			u.ID, u.Email, u.DisplayName, u.Role, u.Status, tz.FormatDateTime(u.CreatedAt, a.loc))
	}
	w.Flush()
}

func placeOf(e entities.Event) string {
	return strings.Trim(strings.TrimSpace(e.Place)+", "+strings.TrimSpace(e.City), ", ")
}

func seats(count, total int) string {
	if total <= 0 {
		return strconv.Itoa(count)
	}
	return fmt.Sprintf("%d/%d", count, total)
}

func price(p float64) string {
	return strconv.FormatFloat(p, 'f', -1, 64) + " ₽"
}

func abbreviate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "…"
}

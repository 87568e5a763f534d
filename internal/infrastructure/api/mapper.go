package api

import (
	"strings"
	"time"

	"afisha/internal/domain/entities"
)

// Layouts accepted for backend timestamps; the naive ones are read in the client location.
var (
	zonedLayouts = []string{time.RFC3339Nano, time.RFC3339}
	naiveLayouts = []string{"2006-01-02T15:04:05.999999999", "2006-01-02T15:04:05", "2006-01-02 15:04:05", "2006-01-02T15:04"}
)

// parseTimestamp returns the zero time for empty or unreadable values.
func parseTimestamp(value string, loc *time.Location) time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}
	}
	for _, layout := range zonedLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	for _, layout := range naiveLayouts {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t
		}
	}
	return time.Time{}
}

// formatTimestamp renders t like JavaScript's Date.toISOString.
func formatTimestamp(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000Z")
}

func optionalTimestamp(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := formatTimestamp(*t)
	return &s
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func eventToDomain(e eventDTO, loc *time.Location) entities.Event {
	id := e.EventID
	if id == 0 {
		id = e.ID
	}
	return entities.Event{
		ID:             id,
		Name:           e.Name,
		Place:          e.Place,
		City:           e.City,
		Description:    e.Description,
		EventType:      e.EventType,
		Status:         e.Status,
		LongURL:        e.LongURL,
		MessageLink:    e.MessageLink,
		ImageURL:       e.ImageURL,
		StartsAt:       parseTimestamp(e.EventTime, loc),
		EndsAt:         parseTimestamp(e.EventEndTime, loc),
		Price:          e.Price,
		SeatsTotal:     e.SeatsTotal,
		PurchasedCount: e.PurchasedCount,
		AccountID:      e.AccountID,
	}
}

func eventsToDomain(rows []eventDTO, loc *time.Location) []entities.Event {
	out := make([]entities.Event, len(rows))
	for i := range rows {
		out[i] = eventToDomain(rows[i], loc)
	}
	return out
}

func draftToDTO(d entities.EventDraft) eventCreateDTO {
	return eventCreateDTO{
		LongURL:        d.LongURL,
		Name:           d.Name,
		Place:          d.Place,
		City:           d.City,
		EventTime:      formatTimestamp(d.StartsAt),
		Price:          d.Price,
		Description:    d.Description,
		EventType:      optionalString(d.EventType),
		MessageLink:    optionalString(d.MessageLink),
		PurchasedCount: d.PurchasedCount,
		SeatsTotal:     d.SeatsTotal,
		AccountID:      d.AccountID,
	}
}

func eventPatchToDTO(p entities.EventPatch) eventPatchDTO {
	return eventPatchDTO{
		Name:           p.Name,
		Place:          p.Place,
		City:           p.City,
		Description:    p.Description,
		EventType:      p.EventType,
		Status:         p.Status,
		EventTime:      optionalTimestamp(p.StartsAt),
		EventEndTime:   optionalTimestamp(p.EndsAt),
		Price:          p.Price,
		SeatsTotal:     p.SeatsTotal,
		PurchasedCount: p.PurchasedCount,
	}
}

func userToDomain(u userDTO, loc *time.Location) entities.User {
	return entities.User{
		ID:           u.ID,
		Email:        u.Email,
		DisplayName:  u.DisplayName,
		Phone:        u.Phone,
		ProfileImage: u.ProfileImage,
		Role:         u.Role,
		Status:       u.Status,
		CreatedAt:    parseTimestamp(u.CreatedAt, loc),
	}
}

func userPatchToDTO(p entities.UserPatch) userPatchDTO {
	return userPatchDTO{
		DisplayName:  p.DisplayName,
		Phone:        p.Phone,
		Role:         p.Role,
		ProfileImage: p.ProfileImage,
	}
}

func credentialsToDomain(r authResponseDTO) *entities.Credentials {
	uid := r.LocalID
	if uid == "" {
		uid = r.UID
	}
	return &entities.Credentials{
		UID:          uid,
		Email:        r.Email,
		IDToken:      r.IDToken,
		RefreshToken: r.RefreshToken,
	}
}

package discord

import (
	"fmt"
	"strings"
	"time"

	"afisha/internal/domain/entities"
	"afisha/pkg/tz"

	"github.com/bwmarrin/discordgo"
)

const embedColor = 0xFF6B35

func formatPlaces(seatsTotal, purchased int) string {
	if seatsTotal == 0 {
		return fmt.Sprintf("%d", purchased)
	}
	return fmt.Sprintf("%d/%d", purchased, seatsTotal)
}

func buildReminderDescription(event entities.Event, note, startsIn string, loc *time.Location) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("**%s**\n", event.Name))
	if event.Place != "" || event.City != "" {
		b.WriteString(fmt.Sprintf("📍 %s\n", strings.Trim(event.Place+", "+event.City, ", ")))
	}
	b.WriteString(fmt.Sprintf("\n📅 %s", tz.FormatDateTime(event.StartsAt, loc)))
	b.WriteString(fmt.Sprintf("\n⏳ %s", startsIn))
	b.WriteString(fmt.Sprintf("\n👥 %s", formatPlaces(event.SeatsTotal, event.PurchasedCount)))
	if note != "" {
		b.WriteString("\n\n" + note)
	}
	return b.String()
}

// ReminderTexts are the localized strings of a reminder embed.
type ReminderTexts struct {
	Title    string
	Soon     string
	StartsIn string
	Footer   string
}

// BuildReminderEmbed builds the embed announcing that a participated event starts soon.
func BuildReminderEmbed(soon entities.SoonEvent, texts ReminderTexts, loc *time.Location) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:       texts.Title,
		Description: buildReminderDescription(soon.Event, texts.Soon, texts.StartsIn, loc),
		Color:       embedColor,
		Footer:      &discordgo.MessageEmbedFooter{Text: texts.Footer},
	}
	if img := soon.Event.HeroImage(); img != "" {
		embed.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: img}
	}
	if !soon.Event.StartsAt.IsZero() {
		embed.Timestamp = soon.Event.StartsAt.UTC().Format(time.RFC3339)
	}
	return embed
}

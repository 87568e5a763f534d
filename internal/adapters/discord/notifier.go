package discord

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"

	"afisha/internal/domain/entities"
	"afisha/internal/ports/output"
	discordembed "afisha/pkg/discord"
	"afisha/pkg/tz"
)

var _ output.SoonNotifier = (*ReminderNotifier)(nil)

// messageSender is the part of *discordgo.Session used by the notifier.
type messageSender interface {
	ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// ReminderNotifier posts one embed per participated event entering the soon
// window. Each event is announced once per process.
type ReminderNotifier struct {
	sender     messageSender
	channelID  string
	translator output.T
	locale     string
	loc        *time.Location

	mu        sync.Mutex
	announced map[int64]struct{}
}

// NewReminderNotifier opens a bot session from token. The session is only used
// for REST calls and needs no gateway connection.
func NewReminderNotifier(token, channelID string, translator output.T, locale string, loc *time.Location) (*ReminderNotifier, error) {
	s, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("erreur lors de la création de la session Discord: %w", err)
	}
	return newReminderNotifier(s, channelID, translator, locale, loc), nil
}

func newReminderNotifier(sender messageSender, channelID string, translator output.T, locale string, loc *time.Location) *ReminderNotifier {
	if loc == nil {
		loc = tz.Moscow
	}
	return &ReminderNotifier{
		sender:     sender,
		channelID:  channelID,
		translator: translator,
		locale:     locale,
		loc:        loc,
		announced:  make(map[int64]struct{}),
	}
}

// NotifySoon announces the events not announced yet. It stops at the first
// failed post; that event is retried on the next call.
func (n *ReminderNotifier) NotifySoon(ctx context.Context, events []entities.SoonEvent) error {
	for _, soon := range events {
		if err := ctx.Err(); err != nil {
			return err
		}
		if n.wasAnnounced(soon.Event.ID) {
			continue
		}

		embed := discordembed.BuildReminderEmbed(soon, n.texts(soon), n.loc)
		if _, err := n.sender.ChannelMessageSendEmbed(n.channelID, embed, discordgo.WithContext(ctx)); err != nil {
			return fmt.Errorf("send reminder for event %d: %w", soon.Event.ID, err)
		}
		n.markAnnounced(soon.Event.ID)
		log.Printf("✅ Rappel envoyé pour l'événement %d (%s)", soon.Event.ID, soon.Event.Name)
	}
	return nil
}

func (n *ReminderNotifier) texts(soon entities.SoonEvent) discordembed.ReminderTexts {
	hours, minutes := tz.SplitDuration(soon.Until)
	return discordembed.ReminderTexts{
		Title:    n.translator.T(n.locale, "reminder.title", nil),
		Soon:     n.translator.T(n.locale, "messages.soon", nil),
		StartsIn: n.translator.T(n.locale, "messages.starts_in", map[string]any{"Hours": hours, "Minutes": minutes}),
		Footer:   n.translator.T(n.locale, "reminder.footer", nil),
	}
}

func (n *ReminderNotifier) wasAnnounced(id int64) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	_, ok := n.announced[id]
	return ok
}

func (n *ReminderNotifier) markAnnounced(id int64) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.announced[id] = struct{}{}
}

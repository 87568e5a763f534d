package discord

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"afisha/internal/domain/entities"
	"afisha/internal/infrastructure/i18n"
)

type fakeSender struct {
	sent []*discordgo.MessageEmbed
	err  error
}

func (f *fakeSender) ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.sent = append(f.sent, embed)
	return &discordgo.Message{ChannelID: channelID}, nil
}

func soonEvents() []entities.SoonEvent {
	start := time.Date(2025, 6, 1, 15, 0, 0, 0, time.UTC)
	return []entities.SoonEvent{
		{Event: entities.Event{ID: 1, Name: "Jazz", City: "Москва", StartsAt: start}, Until: 2*time.Hour + 5*time.Minute},
		{Event: entities.Event{ID: 2, Name: "Lecture", StartsAt: start.Add(time.Hour)}, Until: 3 * time.Hour},
	}
}

func TestReminderNotifier_AnnouncesOnce(t *testing.T) {
	sender := &fakeSender{}
	n := newReminderNotifier(sender, "42", i18n.NewTranslator("en"), "en", time.UTC)

	require.NoError(t, n.NotifySoon(context.Background(), soonEvents()))
	require.Len(t, sender.sent, 2)
	assert.Equal(t, "⏰ Starting soon", sender.sent[0].Title)
	assert.Contains(t, sender.sent[0].Description, "Starts in 2 h 5 min")
	assert.Contains(t, sender.sent[0].Description, "01.06.2025 15:00")

	require.NoError(t, n.NotifySoon(context.Background(), soonEvents()))
	assert.Len(t, sender.sent, 2)
}

func TestReminderNotifier_RetriesFailedPost(t *testing.T) {
	sender := &fakeSender{err: errors.New("rate limited")}
	n := newReminderNotifier(sender, "42", i18n.NewTranslator("en"), "en", nil)

	assert.Error(t, n.NotifySoon(context.Background(), soonEvents()))
	assert.Empty(t, sender.sent)

	sender.err = nil
	require.NoError(t, n.NotifySoon(context.Background(), soonEvents()))
	assert.Len(t, sender.sent, 2)
}

func TestReminderNotifier_StopsOnCancelledContext(t *testing.T) {
	sender := &fakeSender{}
	n := newReminderNotifier(sender, "42", i18n.NewTranslator("en"), "en", time.UTC)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, n.NotifySoon(ctx, soonEvents()), context.Canceled)
	assert.Empty(t, sender.sent)
}

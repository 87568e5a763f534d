package terminal

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/urfave/cli/v2"
	"golang.org/x/text/language"

	"afisha/internal/adapters/discord"
	"afisha/internal/application"
	"afisha/internal/config"
	"afisha/internal/domain/entities"
	"afisha/internal/infrastructure/api"
	"afisha/internal/infrastructure/bus"
	"afisha/internal/infrastructure/i18n"
	"afisha/internal/ports/output"
	"afisha/pkg/tz"
)

// App is the terminal adapter: it wires output adapters -> application -> commands.
type App struct {
	cfg        *config.Config
	translator *i18n.Translator
	locale     string
	loc        *time.Location
	logger     *slog.Logger
	in         *bufio.Reader
	out        io.Writer

	storage output.ClientStateStorage
	watcher output.ChangeWatcher
	changes *bus.Bus[entities.ParticipationChange]

	client        *api.Client
	store         *application.ParticipationStore
	session       *application.SessionService
	events        *application.EventService
	participation *application.ParticipationService
	admin         *application.AdminService
	notifier      output.SoonNotifier
}

type Option func(*App)

// WithIO replaces stdin and stdout.
func WithIO(in io.Reader, out io.Writer) Option {
	return func(a *App) {
		a.in = bufio.NewReader(in)
		a.out = out
	}
}

// WithNotifier replaces the Discord notifier built from the configuration.
func WithNotifier(n output.SoonNotifier) Option {
	return func(a *App) { a.notifier = n }
}

// NewApp builds the application services on storage. watcher may be nil when
// the storage is not shared with other clients.
func NewApp(cfg *config.Config, storage output.ClientStateStorage, watcher output.ChangeWatcher, logger *slog.Logger, opts ...Option) *App {
	if logger == nil {
		logger = slog.Default()
	}
	loc := cfg.Location
	if loc == nil {
		loc = tz.Moscow
	}
	a := &App{
		cfg:        cfg,
		translator: i18n.NewTranslator(cfg.Locale),
		locale:     cfg.Locale,
		loc:        loc,
		logger:     logger,
		in:         bufio.NewReader(os.Stdin),
		out:        os.Stdout,
		storage:    storage,
		watcher:    watcher,
		changes:    bus.New[entities.ParticipationChange](),
	}

	if !a.hasCatalog(cfg.Locale) {
		log.Printf("⚠️ Aucune traduction pour %q, messages en langue par défaut", cfg.Locale)
	}

	a.client = api.NewClient(cfg.APIURL, cfg.APITimeout,
		api.WithAdminAPIKey(cfg.AdminAPIKey),
		api.WithLocation(loc),
		api.WithLogger(logger),
	)
	a.store = application.NewParticipationStore(storage, logger)
	a.session = application.NewSessionService(a.client, a.client, storage, bus.New[*entities.AuthUser](), logger)
	a.client.SetTokenSource(a.session)
	a.events = application.NewEventService(a.client, loc, cfg.FetchConcurrency, logger)
	a.participation = application.NewParticipationService(a.client, a.store, a.changes, logger)
	a.admin = application.NewAdminService(a.client, a.session)

	for _, opt := range opts {
		opt(a)
	}

	if a.notifier == nil && cfg.DiscordEnabled() {
		n, err := discord.NewReminderNotifier(cfg.DiscordToken, cfg.DiscordChannelID, a.translator, a.locale, a.loc)
		if err != nil {
			log.Printf("⚠️ Rappels Discord désactivés: %v", err)
		} else {
			a.notifier = n
		}
	}
	return a
}

// Restore loads the persisted session; it runs before every command.
func (a *App) Restore(ctx context.Context) {
	if u := a.session.Restore(ctx); u != nil {
		a.logger.Debug("session restored", "email", u.Email)
	}
}

// CLI builds the afisha command line. Command errors are returned by
// RunContext instead of exiting the process.
func (a *App) CLI() *cli.App {
	return &cli.App{
		Name:     "afisha",
		Usage:    "Browse the afisha, confirm participations and follow your events.",
		Commands: a.Commands(),
		Writer:   a.out,
		Before: func(c *cli.Context) error {
			a.Restore(c.Context)
			return nil
		},
		ExitErrHandler: func(*cli.Context, error) {},
	}
}

// Commands returns the CLI command tree.
func (a *App) Commands() []*cli.Command {
	return []*cli.Command{
		a.eventsCommand(),
		a.afishaCommand(),
		a.searchCommand(),
		a.showCommand(),
		a.confirmCommand(),
		a.cancelCommand(),
		a.myEventsCommand(),
		a.messagesCommand(),
		a.loginCommand(),
		a.registerCommand(),
		a.verifyEmailCommand(),
		a.resetPasswordCommand(),
		a.logoutCommand(),
		a.profileCommand(),
		a.cityCommand(),
		a.adminCommand(),
	}
}

// mirrorChanges republishes participation writes of other clients until ctx is done.
func (a *App) mirrorChanges(ctx context.Context) {
	if a.watcher == nil {
		return
	}
	go func() {
		msg := entities.ParticipationChange{Kind: entities.ChangeExternal}
		if err := bus.MirrorKey(ctx, a.watcher, application.ParticipationKey, a.changes, msg); err != nil && !errors.Is(err, context.Canceled) {
			log.Printf("⚠️ Synchronisation inter-clients interrompue: %v", err)
		}
	}()
}

func (a *App) hasCatalog(locale string) bool {
	tag, err := language.Parse(locale)
	if err != nil {
		return false
	}
	base, _ := tag.Base()
	for _, lang := range a.translator.Languages() {
		if b, _ := lang.Base(); b == base {
			return true
		}
	}
	return false
}

func (a *App) t(key string, data map[string]any) string {
	return a.translator.T(a.locale, key, data)
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}

func (a *App) success(key string, data map[string]any) {
	a.println("✅ " + a.t(key, data))
}

// fail turns err into the localized message printed by the CLI with a non-zero exit.
func (a *App) fail(err error) error {
	if err == nil {
		return nil
	}
	a.logger.Debug("command failed", "error", err)
	return cli.Exit("❌ "+a.translator.Error(a.locale, err), 1)
}

// prompt reads one line when value is empty.
func (a *App) prompt(label, value string) string {
	if value != "" {
		return value
	}
	fmt.Fprint(a.out, label+": ")
	line, _ := a.in.ReadString('\n')
	return strings.TrimSpace(line)
}

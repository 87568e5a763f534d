package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"afisha/pkg/tz"
)

// Storage backends for the client state.
const (
	StorageSQLite   = "sqlite"
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

type Config struct {
	APIURL           string        `env:"AFISHA_API_URL" envDefault:"http://localhost:8000"`
	APITimeout       time.Duration `env:"AFISHA_API_TIMEOUT" envDefault:"15s"`
	AdminAPIKey      string        `env:"AFISHA_ADMIN_API_KEY"`
	Storage          string        `env:"AFISHA_STORAGE" envDefault:"sqlite"`
	SQLitePath       string        `env:"AFISHA_SQLITE_PATH" envDefault:"afisha.db"`
	DatabaseURL      string        `env:"DATABASE_URL"`
	WatchInterval    time.Duration `env:"AFISHA_WATCH_INTERVAL" envDefault:"2s"`
	Locale           string        `env:"AFISHA_LOCALE" envDefault:"ru"`
	Timezone         string        `env:"AFISHA_TIMEZONE" envDefault:"Europe/Moscow"`
	FetchConcurrency int           `env:"AFISHA_FETCH_CONCURRENCY" envDefault:"4"`
	LogLevel         string        `env:"LOG_LEVEL" envDefault:"warn"`
	DiscordToken     string        `env:"DISCORD_TOKEN"`
	DiscordChannelID string        `env:"DISCORD_CHANNEL_ID"`
	OTelEndpoint     string        `env:"AFISHA_OTEL_ENDPOINT"`

	// Location is resolved from Timezone by validate.
	Location *time.Location `env:"-"`
}

// Load charge la configuration depuis les variables d'environnement et la valide.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		// .env est optionnel lorsque les variables sont fournies par l'environnement (Docker, CI, etc.).
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// DiscordEnabled reports whether soon reminders should be pushed to Discord.
func (c *Config) DiscordEnabled() bool {
	return c.DiscordToken != "" && c.DiscordChannelID != ""
}

// validate applique toutes les règles métier sur la configuration chargée.
func (c *Config) validate() error {
	c.APIURL = strings.TrimRight(strings.TrimSpace(c.APIURL), "/")
	parsed, err := url.Parse(c.APIURL)
	if err != nil {
		return fmt.Errorf("config: AFISHA_API_URL invalide (%q): %w", c.APIURL, err)
	}
	if (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return fmt.Errorf("config: AFISHA_API_URL invalide (%q): scheme http(s) ou host manquant", c.APIURL)
	}

	if c.APITimeout <= 0 {
		return fmt.Errorf("config: AFISHA_API_TIMEOUT doit être positif")
	}

	c.Storage = strings.ToLower(strings.TrimSpace(c.Storage))
	switch c.Storage {
	case StorageSQLite:
		if strings.TrimSpace(c.SQLitePath) == "" {
			return fmt.Errorf("config: AFISHA_SQLITE_PATH est requis avec AFISHA_STORAGE=sqlite")
		}
	case StoragePostgres:
		if strings.TrimSpace(c.DatabaseURL) == "" {
			// Valeur par défaut utile en local lorsque DATABASE_URL n'est pas fournie.
			c.DatabaseURL = "postgres://localhost:5432/afisha?sslmode=disable"
		}
		dbURL, err := url.Parse(c.DatabaseURL)
		if err != nil {
			return fmt.Errorf("config: DATABASE_URL invalide (%q): %w", c.DatabaseURL, err)
		}
		if dbURL.Scheme == "" || dbURL.Host == "" {
			return fmt.Errorf("config: DATABASE_URL invalide (%q): scheme ou host manquant", c.DatabaseURL)
		}
	case StorageMemory:
	default:
		return fmt.Errorf("config: AFISHA_STORAGE inconnu (%q), attendu sqlite, postgres ou memory", c.Storage)
	}

	if c.FetchConcurrency < 1 {
		return fmt.Errorf("config: AFISHA_FETCH_CONCURRENCY doit être >= 1")
	}

	loc, err := tz.Load(c.Timezone)
	if err != nil {
		return fmt.Errorf("config: AFISHA_TIMEZONE invalide (%q): %w", c.Timezone, err)
	}
	c.Location = loc

	if (c.DiscordToken == "") != (c.DiscordChannelID == "") {
		return fmt.Errorf("config: DISCORD_TOKEN et DISCORD_CHANNEL_ID doivent être fournis ensemble")
	}
	for _, r := range c.DiscordChannelID {
		if r < '0' || r > '9' {
			return fmt.Errorf("config: DISCORD_CHANNEL_ID doit être un ID de salon Discord (chiffres uniquement)")
		}
	}

	return nil
}

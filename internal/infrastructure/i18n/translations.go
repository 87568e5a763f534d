package i18n

import (
	"embed"
	"io/fs"
	"log"
	"sync"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/pelletier/go-toml/v2"
	"golang.org/x/text/language"

	"afisha/internal/domain"
	"afisha/internal/ports/output"
)

//go:embed active.*.toml
var localeFS embed.FS

var _ output.T = (*Translator)(nil)

// Translator renders the embedded active.*.toml catalogs. Unknown locales fall
// back to the default one, unknown keys to the key itself.
type Translator struct {
	bundle          *i18n.Bundle
	defaultLanguage language.Tag

	mu         sync.Mutex
	localizers map[string]*i18n.Localizer
}

// NewTranslator loads every embedded catalog with defaultLocale ("ru" when
// unparsable) as the fallback language.
func NewTranslator(defaultLocale string) *Translator {
	tag, err := language.Parse(defaultLocale)
	if err != nil {
		tag = language.Russian
	}
	bundle := i18n.NewBundle(tag)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	files, _ := fs.Glob(localeFS, "active.*.toml")
	for _, file := range files {
		if _, err := bundle.LoadMessageFileFS(localeFS, file); err != nil {
			log.Printf("⚠️ i18n: %s non chargé: %v", file, err)
		}
	}

	return &Translator{
		bundle:          bundle,
		defaultLanguage: tag,
		localizers:      make(map[string]*i18n.Localizer),
	}
}

// Languages lists the locales with a loaded catalog.
func (t *Translator) Languages() []language.Tag {
	return t.bundle.LanguageTags()
}

func (t *Translator) localizer(locale string) *i18n.Localizer {
	t.mu.Lock()
	defer t.mu.Unlock()
	if l, ok := t.localizers[locale]; ok {
		return l
	}
	l := i18n.NewLocalizer(t.bundle, locale, t.defaultLanguage.String())
	t.localizers[locale] = l
	return l
}

// T renders key for locale with data as template values.
func (t *Translator) T(locale, key string, data map[string]any) string {
	if key == "" {
		return ""
	}
	msg, err := t.localizer(locale).Localize(&i18n.LocalizeConfig{
		MessageID:    key,
		TemplateData: data,
	})
	if err != nil {
		log.Printf("⚠️ i18n: clé %q introuvable (%s): %v", key, locale, err)
		return key
	}
	return msg
}

// Error turns err into a user-facing message: the backend detail when one was
// extracted, else the localized message of its domain code, else the generic message.
func (t *Translator) Error(locale string, err error) string {
	if err == nil {
		return ""
	}
	if detail := domain.Detail(err); detail != "" {
		return detail
	}
	if code := domain.Code(err); code != "" {
		return t.T(locale, "error."+code, nil)
	}
	return t.T(locale, "error.generic", nil)
}

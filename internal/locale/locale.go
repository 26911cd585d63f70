// Package locale loads the embedded translation files and formats numbers,
// dates and grid labels for one language.
package locale

import (
	"embed"
	"encoding/json"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/tartampluch/go-lifeweeks/internal/config"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

//go:embed locales/*.json
var localeFS embed.FS

var (
	loadOnce  sync.Once
	bundle    *i18n.Bundle
	languages []string
)

// load parses every locales/active.<lang>.json file once per process.
func load() {
	loadOnce.Do(func() {
		bundle = i18n.NewBundle(language.English)
		bundle.RegisterUnmarshalFunc("json", json.Unmarshal)

		entries, err := localeFS.ReadDir("locales")
		if err != nil {
			slog.Error(config.ErrLocalesAccess,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyError, err,
			)
			return
		}

		for _, entry := range entries {
			name := entry.Name()
			if !strings.HasPrefix(name, "active.") || !strings.HasSuffix(name, ".json") {
				slog.Debug(config.MsgLocaleSkip,
					config.LogKeyComponent, config.CompI18n,
					config.LogKeyFile, name,
				)
				continue
			}

			trimmed := strings.TrimPrefix(name, "active.")
			langCode := strings.TrimSuffix(trimmed, ".json")

			if langCode == "" {
				slog.Warn(config.MsgLocaleBadName,
					config.LogKeyComponent, config.CompI18n,
					config.LogKeyFile, name,
				)
				continue
			}

			path := "locales/" + name
			if _, err := bundle.LoadMessageFileFS(localeFS, path); err != nil {
				slog.Error(config.ErrLocaleLoad,
					config.LogKeyComponent, config.CompI18n,
					config.LogKeyFile, name,
					config.LogKeyError, err,
				)
				continue
			}

			languages = append(languages, langCode)
			slog.Debug(config.MsgLocaleLoaded,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyLang, langCode,
				config.LogKeyFile, name,
			)
		}
		slices.Sort(languages)
	})
}

// Languages lists the language codes that have a translation file.
func Languages() []string {
	load()
	return slices.Clone(languages)
}

// Supported reports whether lang has a translation file.
func Supported(lang string) bool {
	load()
	return slices.Contains(languages, lang)
}

// Translator resolves messages for a single language. Missing keys fall back
// to English, then to the key itself.
type Translator struct {
	Lang string

	localizer *i18n.Localizer
	printer   *message.Printer
}

// New returns a Translator for lang. Unknown languages use config.DefaultLanguage.
func New(lang string) *Translator {
	load()
	if !Supported(lang) {
		lang = config.DefaultLanguage
	}
	return &Translator{
		Lang:      lang,
		localizer: i18n.NewLocalizer(bundle, lang, config.DefaultLanguage),
		printer:   message.NewPrinter(language.Make(lang)),
	}
}

// Msg translates a plain key.
func (t *Translator) Msg(key string) string {
	return t.localize(&i18n.LocalizeConfig{MessageID: key})
}

// Tmpl translates a key whose message is a template.
func (t *Translator) Tmpl(key string, data map[string]any) string {
	return t.localize(&i18n.LocalizeConfig{MessageID: key, TemplateData: data})
}

// Plural selects the plural form for count. Count is also exposed to the
// template as {{.Count}}.
func (t *Translator) Plural(key string, count int, data map[string]any) string {
	if data == nil {
		data = map[string]any{}
	}
	data["Count"] = count
	return t.localize(&i18n.LocalizeConfig{MessageID: key, PluralCount: count, TemplateData: data})
}

// List splits a comma separated message such as month names.
func (t *Translator) List(key string) []string {
	return strings.Split(t.Msg(key), ",")
}

func (t *Translator) localize(lc *i18n.LocalizeConfig) string {
	if t == nil || t.localizer == nil {
		return lc.MessageID
	}
	msg, err := t.localizer.Localize(lc)
	if err != nil {
		slog.Debug(config.MsgTransMissing,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyKey, lc.MessageID,
			config.LogKeyLang, t.Lang,
			config.LogKeyError, err,
		)
		return lc.MessageID
	}
	return msg
}

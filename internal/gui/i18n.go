package gui

import (
	"embed"
	"log"
	"os"
	"strings"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/pelletier/go-toml/v2"
	"golang.org/x/text/language"
)

//go:embed locales/active.*.toml
var localeFS embed.FS

var localeFiles = []string{"locales/active.en.toml", "locales/active.zh.toml"}

// Localizer renders GUI strings in the selected UI language
type Localizer struct {
	localizer *i18n.Localizer
	tag       language.Tag
}

// NewLocalizer loads the embedded message files and picks the UI language.
// An empty uiLang falls back to the system locale, then to English.
func NewLocalizer(uiLang string) *Localizer {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	for _, file := range localeFiles {
		if _, err := bundle.LoadMessageFileFS(localeFS, file); err != nil {
			log.Printf("[i18n] failed to load %s: %v", file, err)
		}
	}

	tag := matchLanguage(bundle.LanguageTags(), uiLang, systemLocale())
	return &Localizer{
		localizer: i18n.NewLocalizer(bundle, tag.String()),
		tag:       tag,
	}
}

// Language returns the selected UI language
func (l *Localizer) Language() language.Tag {
	return l.tag
}

// T renders the message id, falling back to the id itself
func (l *Localizer) T(id string, data ...map[string]any) string {
	config := &i18n.LocalizeConfig{MessageID: id}
	if len(data) > 0 {
		config.TemplateData = data[0]
	}
	msg, err := l.localizer.Localize(config)
	if err != nil {
		log.Printf("[i18n] localize failed (id=%s, lang=%s): %v", id, l.tag, err)
		return id
	}
	return msg
}

// matchLanguage returns the supported tag closest to the first usable
// preference, or English
func matchLanguage(supported []language.Tag, preferred ...string) language.Tag {
	var tags []language.Tag
	for _, p := range preferred {
		if p = normalizeLocale(p); p == "" {
			continue
		}
		if tag, err := language.Parse(p); err == nil {
			tags = append(tags, tag)
		}
	}
	if len(tags) == 0 || len(supported) == 0 {
		return language.English
	}

	_, index, confidence := language.NewMatcher(supported).Match(tags...)
	if confidence == language.No {
		return language.English
	}
	return supported[index]
}

// normalizeLocale turns POSIX locale names like zh_CN.UTF-8 into BCP 47
func normalizeLocale(locale string) string {
	locale = strings.TrimSpace(locale)
	if i := strings.IndexAny(locale, ".@"); i >= 0 {
		locale = locale[:i]
	}
	if locale == "C" || locale == "POSIX" {
		return ""
	}
	return strings.ReplaceAll(locale, "_", "-")
}

func systemLocale() string {
	for _, env := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		if v := os.Getenv(env); v != "" {
			return v
		}
	}
	return ""
}

// Package i18n resolves the request language and its message printer.
package i18n

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	platformi18n "github.com/louisbranch/voicebridge/internal/platform/i18n"
	"github.com/louisbranch/voicebridge/internal/platform/i18n/catalog"
)

const (
	// LangParam is the query parameter used to select a language.
	LangParam = "lang"
	// LangCookieName stores the visitor's language preference.
	LangCookieName = "vb_lang"

	langCookieMaxAge = 365 * 24 * time.Hour
)

// Localizer formats catalog messages.
type Localizer interface {
	Sprintf(key message.Reference, args ...any) string
}

// LanguageOption is one entry of the language switcher.
type LanguageOption struct {
	Tag    string
	Label  string
	URL    string
	Active bool
}

// ResolveTag picks the request language from the lang query parameter, then
// the language cookie, then Accept-Language. The bool reports whether the
// choice came from the query and should be persisted.
func ResolveTag(r *http.Request) (language.Tag, bool) {
	if r == nil {
		return platformi18n.DefaultTag(), false
	}
	if r.URL != nil {
		if value := strings.TrimSpace(r.URL.Query().Get(LangParam)); value != "" {
			if tag, ok := platformi18n.ParseTag(value); ok {
				return tag, true
			}
		}
	}
	if cookie, err := r.Cookie(LangCookieName); err == nil {
		if tag, ok := platformi18n.ParseTag(cookie.Value); ok {
			return tag, false
		}
	}
	if accept := strings.TrimSpace(r.Header.Get("Accept-Language")); accept != "" {
		if tags, _, err := language.ParseAcceptLanguage(accept); err == nil {
			return platformi18n.MatchTags(tags), false
		}
	}
	return platformi18n.DefaultTag(), false
}

// SetLanguageCookie persists tag as the visitor's language.
func SetLanguageCookie(w http.ResponseWriter, tag language.Tag) {
	if w == nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     LangCookieName,
		Value:    tag.String(),
		Path:     "/",
		MaxAge:   int(langCookieMaxAge.Seconds()),
		SameSite: http.SameSiteLaxMode,
	})
}

// ResolveLocalizer resolves the request language, persists an explicit
// choice, and returns a printer with the language tag string.
func ResolveLocalizer(w http.ResponseWriter, r *http.Request) (*message.Printer, string) {
	tag, persist := ResolveTag(r)
	if persist {
		SetLanguageCookie(w, tag)
	}
	return Printer(tag), tag.String()
}

// Printer returns a printer for tag over the embedded catalogs.
func Printer(tag language.Tag) *message.Printer {
	catalog.Default()
	return message.NewPrinter(tag)
}

// LanguageOptions lists the supported languages for a switcher on path.
func LanguageOptions(loc Localizer, activeLang string, path string, rawQuery string) []LanguageOption {
	active, ok := platformi18n.ParseTag(activeLang)
	if !ok {
		active = platformi18n.DefaultTag()
	}
	supported := platformi18n.SupportedTags()
	options := make([]LanguageOption, 0, len(supported))
	for _, tag := range supported {
		options = append(options, LanguageOption{
			Tag:    tag.String(),
			Label:  languageLabel(loc, tag),
			URL:    LanguageURL(path, rawQuery, tag.String()),
			Active: tag == active,
		})
	}
	return options
}

// LanguageURL returns path with the lang query parameter set to tag.
func LanguageURL(path string, rawQuery string, tag string) string {
	path = strings.TrimSpace(path)
	if path == "" {
		path = "/"
	}
	query, err := url.ParseQuery(rawQuery)
	if err != nil {
		query = url.Values{}
	}
	query.Set(LangParam, tag)
	return (&url.URL{Path: path, RawQuery: query.Encode()}).String()
}

func languageLabel(loc Localizer, tag language.Tag) string {
	key := "core.lang." + strings.ToLower(strings.ReplaceAll(tag.String(), "-", "_"))
	if loc == nil {
		return tag.String()
	}
	return loc.Sprintf(key)
}

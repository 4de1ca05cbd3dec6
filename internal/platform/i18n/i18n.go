// Package i18n defines the languages the site is published in.
package i18n

import (
	"strings"

	"golang.org/x/text/language"
)

var (
	korean  = language.MustParse("ko-KR")
	english = language.MustParse("en-US")

	supportedTags = []language.Tag{korean, english}
	matcher       = language.NewMatcher(supportedTags)
)

// SupportedTags returns the published languages, default first.
func SupportedTags() []language.Tag {
	out := make([]language.Tag, len(supportedTags))
	copy(out, supportedTags)
	return out
}

// DefaultTag returns the language used when nothing else matches.
func DefaultTag() language.Tag {
	return korean
}

// EnglishTag returns the English publication tag.
func EnglishTag() language.Tag {
	return english
}

// ParseTag parses value and reports whether it maps onto a supported tag.
// Bare base languages such as "en" or "ko" resolve to their regional form.
func ParseTag(value string) (language.Tag, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return language.Tag{}, false
	}
	tag, err := language.Parse(value)
	if err != nil {
		return language.Tag{}, false
	}
	base, _ := tag.Base()
	for _, supported := range supportedTags {
		supportedBase, _ := supported.Base()
		if supportedBase == base {
			return supported, true
		}
	}
	return language.Tag{}, false
}

// MatchTags picks the best supported tag for a ranked preference list.
func MatchTags(tags []language.Tag) language.Tag {
	if len(tags) == 0 {
		return DefaultTag()
	}
	_, index, confidence := matcher.Match(tags...)
	if confidence == language.No {
		return DefaultTag()
	}
	return supportedTags[index]
}

package i18n

import (
	"testing"

	"golang.org/x/text/language"
)

func mustTag(t *testing.T, value string) language.Tag {
	t.Helper()
	tag, err := language.Parse(value)
	if err != nil {
		t.Fatalf("parse tag %q: %v", value, err)
	}
	return tag
}

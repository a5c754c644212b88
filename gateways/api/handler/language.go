package handler

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// LanguageName parses a BCP 47 tag and returns its English display name,
// e.g. "en" -> "English". The base language is returned for caption lookup.
func LanguageName(tag string) (name string, base string, err error) {
	t, err := language.Parse(tag)
	if err != nil {
		return "", "", fmt.Errorf("invalid language tag %q: %w", tag, err)
	}
	b, _ := t.Base()
	return display.English.Tags().Name(t), b.String(), nil
}

package language

import (
	"strings"

	xlang "golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

var englishNames = display.English.Languages()

// Normalize canonicalizes a track language code for lookups: trimmed and
// lowercased, so "EN" and "en " address the same track and style.
func Normalize(code string) string {
	return strings.ToLower(strings.TrimSpace(code))
}

// DisplayName returns the English display name for a BCP 47 language code.
// Returns "Unknown" for empty input, or the uppercased code when the code
// cannot be resolved, so tables always have something readable to show.
func DisplayName(code string) string {
	trimmed := strings.TrimSpace(code)
	if trimmed == "" {
		return "Unknown"
	}
	tag, err := xlang.Parse(trimmed)
	if err != nil {
		return strings.ToUpper(trimmed)
	}
	if name := englishNames.Name(tag); name != "" {
		return name
	}
	return strings.ToUpper(trimmed)
}

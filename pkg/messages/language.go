package messages

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

// Language selects one of the two message catalogs.
type Language int

const (
	Spanish Language = iota
	English
)

func (l Language) String() string {
	if l == English {
		return "en"
	}
	return "es"
}

// supported is ordered by Language value.
var supported = []language.Tag{language.Spanish, language.English}

var matcher = language.NewMatcher(supported)

// ParseLanguage accepts a BCP 47 tag ("es", "en-GB", "es-AR"), an English
// or Spanish name, or the legacy numeric selectors "0" and "1". An empty
// value selects Spanish.
func ParseLanguage(s string) (Language, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "0", "spanish", "español", "espanol":
		return Spanish, nil
	case "1", "english", "inglés", "ingles":
		return English, nil
	}
	tag, err := language.Parse(s)
	if err != nil {
		return Spanish, fmt.Errorf("invalid language %q: %w", s, err)
	}
	_, index, confidence := matcher.Match(tag)
	if confidence == language.No {
		return Spanish, fmt.Errorf("unsupported language %q", s)
	}
	return Language(index), nil
}

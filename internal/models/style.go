package models

import (
	"fmt"

	json "github.com/goccy/go-json"
)

// Style is the genre directive applied to both generation and presentation.
type Style int

const (
	StyleHorror Style = iota
	StyleSciFi
	StyleRomance
	StyleAdventure
	StyleComedy
)

var styleNames = [...]string{
	StyleHorror:    "Horror",
	StyleSciFi:     "Sci-Fi",
	StyleRomance:   "Romance",
	StyleAdventure: "Adventure",
	StyleComedy:    "Comedy",
}

// Styles lists every style in selection order.
func Styles() []Style {
	return []Style{StyleHorror, StyleSciFi, StyleRomance, StyleAdventure, StyleComedy}
}

func (s Style) String() string {
	if s < 0 || int(s) >= len(styleNames) {
		return fmt.Sprintf("Style(%d)", int(s))
	}
	return styleNames[s]
}

func (s Style) Valid() bool {
	return s >= 0 && int(s) < len(styleNames)
}

// ParseStyle accepts the display name ("Sci-Fi") and the bare enum name ("SciFi").
func ParseStyle(name string) (Style, error) {
	for i, n := range styleNames {
		if n == name {
			return Style(i), nil
		}
	}
	if name == "SciFi" {
		return StyleSciFi, nil
	}
	return 0, fmt.Errorf("unknown style %q", name)
}

func (s Style) MarshalJSON() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("unknown style %d", int(s))
	}
	return json.Marshal(s.String())
}

func (s *Style) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	parsed, err := ParseStyle(name)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

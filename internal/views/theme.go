package views

import (
	"blueghost/internal/models"
	"html/template"
)

const fallbackTheme template.CSS = "background-color:#111111;color:white;"

var themes = map[models.Style]template.CSS{
	models.StyleHorror:    "background-color:#0d1b2a;color:#a0e7e5;font-family:serif;text-shadow:0 0 8px #a0e7e5;",
	models.StyleSciFi:     "background-color:#001133;color:#00FFFF;font-family:monospace;text-shadow:0 0 5px #00FFFF;",
	models.StyleRomance:   "background-color:#FFE4E1;color:#990000;text-shadow:0 0 3px pink;font-family:serif;",
	models.StyleAdventure: "background-color:#556B2F;color:#FFFFFF;font-weight:bold;font-family:sans-serif;",
	models.StyleComedy:    "background-color:#FFFACD;color:#00008B;font-family:comic-sans-ms;",
}

// ThemeFor returns the inline CSS used to decorate a story of the given style.
func ThemeFor(style models.Style) template.CSS {
	if css, ok := themes[style]; ok {
		return css
	}
	return fallbackTheme
}

package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStyle(t *testing.T) {
	tests := []struct {
		in       string
		expected Style
	}{
		{"Horror", StyleHorror},
		{"Sci-Fi", StyleSciFi},
		{"SciFi", StyleSciFi},
		{"Romance", StyleRomance},
		{"Adventure", StyleAdventure},
		{"Comedy", StyleComedy},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			s, err := ParseStyle(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, s)
		})
	}
}

func TestParseStyle_Unknown(t *testing.T) {
	_, err := ParseStyle("horror")
	assert.Error(t, err)
	_, err = ParseStyle("")
	assert.Error(t, err)
}

func TestStyle_StringAndValid(t *testing.T) {
	assert.Equal(t, "Sci-Fi", StyleSciFi.String())
	assert.True(t, StyleComedy.Valid())
	assert.False(t, Style(42).Valid())
	assert.Equal(t, "Style(42)", Style(42).String())
}

func TestStyles_SelectionOrder(t *testing.T) {
	names := make([]string, 0, 5)
	for _, s := range Styles() {
		names = append(names, s.String())
	}
	assert.Equal(t, []string{"Horror", "Sci-Fi", "Romance", "Adventure", "Comedy"}, names)
}

func TestStyle_MarshalInvalid(t *testing.T) {
	_, err := Style(-1).MarshalJSON()
	assert.Error(t, err)
}

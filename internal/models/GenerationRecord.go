package models

import "strings"

// GenerationRecord is one stored (prompt, style, story) triple.
type GenerationRecord struct {
	Prompt string `json:"prompt"`
	Style  Style  `json:"style"`
	Story  string `json:"story"`
}

// WordCount counts whitespace separated words of the story.
func (r GenerationRecord) WordCount() int {
	return len(strings.Fields(r.Story))
}

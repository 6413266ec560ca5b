package models

type GhostCharacter struct {
	Name        string `json:"name"`
	Personality string `json:"personality"`
	Quirk       string `json:"quirk"`
}

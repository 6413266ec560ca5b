package models

// Identity is what the login gate exposes to the rest of a session.
type Identity struct {
	DisplayName string `json:"name"`
	Username    string `json:"username"`
}

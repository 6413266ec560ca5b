package services

import (
	"blueghost/internal/storage"
	"errors"
)

var (
	ErrBlankInput         = errors.New("blank prompt")
	ErrInvalidStyle       = errors.New("unknown story style")
	ErrServiceFailure     = errors.New("completion service failed")
	ErrStorageCorrupt     = storage.ErrStorageCorrupt
	ErrAuthFailure        = errors.New("username or password is incorrect")
	ErrMissingCredentials = errors.New("missing username or password")
	ErrInvalidSession     = errors.New("invalid session")
)

var userMessages = map[error]string{
	ErrBlankInput:         "Type something first!",
	ErrInvalidStyle:       "Pick one of the available styles.",
	ErrServiceFailure:     "The ghost writer is not answering right now. Please try again.",
	ErrAuthFailure:        "Username/password is incorrect",
	ErrMissingCredentials: "Please enter your username and password",
}

// UserMessage returns the text shown to the user for err.
func UserMessage(err error) string {
	for sentinel, msg := range userMessages {
		if errors.Is(err, sentinel) {
			return msg
		}
	}
	return "Something went wrong."
}

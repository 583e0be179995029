package service

import "errors"

// Failure taxonomy for challenge negotiation and game lifecycle. All of
// these are request-scoped; nothing here is fatal to the process.
var (
	ErrNotOnline         = errors.New("user is not online")
	ErrNotFound          = errors.New("not found")
	ErrAlreadyPlaying    = errors.New("user is already playing")
	ErrInvalidTransition = errors.New("invalid state transition")
	ErrForbidden         = errors.New("forbidden")
)

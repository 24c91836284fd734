package domain

import "errors"

// ErrSessionNotFound is returned when a session ID cannot be found in the store.
var ErrSessionNotFound = errors.New("session not found")

// ErrItemNotFound is returned by hard menu lookups for an unknown item ID.
var ErrItemNotFound = errors.New("menu item not found")

// ErrInvalidInput is returned when raw user text is rejected before classification.
var ErrInvalidInput = errors.New("invalid input")

// ErrContextIntegrity marks a context that references data which no longer exists.
var ErrContextIntegrity = errors.New("conversation context integrity fault")

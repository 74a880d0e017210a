package common

import "errors"

// Sentinel errors shared across layers; match with errors.Is.
var (
	// ErrorNotFound: a cache or repository lookup came up empty.
	ErrorNotFound = errors.New("not found")

	// ErrorUnauthorized: the backend rejected the caller's credentials.
	ErrorUnauthorized = errors.New("unauthorized")

	// ErrNoSession: an operation that requires login ran while logged out.
	ErrNoSession = errors.New("no active session")
)

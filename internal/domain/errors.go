package domain

import "errors"

var (
	// ErrInvalidToken means the supplied API token fails the shape check.
	ErrInvalidToken = errors.New("api token has an invalid shape")

	// ErrAlreadyRegistered means the user already has a stored credential.
	ErrAlreadyRegistered = errors.New("user is already registered")

	// ErrNotRegistered means no credential exists for the requested user.
	ErrNotRegistered = errors.New("user is not registered")

	// ErrUnavailable means the WaniKani API returned a non-200 status or an
	// unusable payload. Callers see one outcome for all upstream failures.
	ErrUnavailable = errors.New("wanikani data unavailable")

	// ErrInvalidPrefix means the requested prefix is empty or multi-word.
	ErrInvalidPrefix = errors.New("prefix must be a single word")
)

// Package common defines shared constants and sentinel errors used across
// the finanzas layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")
	ErrConflict   = errors.New("conflict")
	ErrTransport  = errors.New("storage unavailable")

	// Data errors: unparseable dates, malformed rows or payloads.
	ErrDataFormat = errors.New("data format error")

	// Caller errors (e.g. updating a movement without an id).
	ErrInvalidArgument = errors.New("invalid argument")

	// Auth errors (invalid, expired or malformed access token).
	ErrorUnauthorized = errors.New("unauthorized")

	// Session errors.
	ErrNotReady   = errors.New("session not ready")
	ErrStaleLoad  = errors.New("stale load discarded")
	ErrDemoSignIn = errors.New("sign-in ignored in demo mode")
)

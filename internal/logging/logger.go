// Package logging is the structured logger every layer of finanzas takes:
// services, the session controller, the auth event consumer and the CLI.
// The only implementation wraps log/slog.
package logging

import "context"

// Logger takes the request context first and key/value pairs after the
// message, e.g.:
//
//	log.Info(ctx, "profile resolved", "profile_id", id, "created", created)
type Logger interface {
	Debug(ctx context.Context, msg string, args ...any)
	Info(ctx context.Context, msg string, args ...any)
	Warn(ctx context.Context, msg string, args ...any)
	Error(ctx context.Context, msg string, args ...any)

	// With returns a logger that adds args to every record, such as
	// "module", "session".
	With(args ...any) Logger
}

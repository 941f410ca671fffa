// Package logging provides the structured logger used across the file system.
package logging

// Logger is a leveled, structured logger taking key-value pairs:
//
//	logger.Info("file created", "name", name, "blocks", len(blocks))
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)

	// With returns a Logger that adds args to every record.
	With(args ...any) Logger
}

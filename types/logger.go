package types

// Logger is the structured logging contract the coordinator writes to.
//
// Methods take a message plus alternating key-value pairs, so any
// structured backend fits: wrap a *slog.Logger with tdma.NewSlogLogger,
// or adapt a sugared zap/zerolog instance directly.
type Logger interface {
	// Debug logs fine-grained negotiation detail (per-station decisions,
	// validator repairs).
	Debug(msg string, keysAndValues ...any)

	// Info logs round-level events (round completed, success recorded).
	Info(msg string, keysAndValues ...any)

	// Warn logs degraded-but-recoverable situations (decision source
	// failure, fallback allocation).
	Warn(msg string, keysAndValues ...any)

	// Error logs failures that lose data or state (record store write
	// failure).
	Error(msg string, keysAndValues ...any)

	// Fatal logs an unrecoverable condition and is expected to terminate
	// the process. The coordinator itself never calls Fatal.
	Fatal(msg string, keysAndValues ...any)
}

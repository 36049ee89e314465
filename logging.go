package tdma

import (
	"log/slog"

	"github.com/Moaila/tdma/internal/logging"
)

// NewSlogLogger adapts a *slog.Logger to the Logger interface.
//
// Parameters:
//   - logger: slog logger to wrap (nil uses slog.Default())
//
// Returns:
//   - Logger: Adapter suitable for WithLogger
//
// Example:
//
//	coord, err := tdma.NewCoordinator(&cfg, src,
//	    tdma.WithLogger(tdma.NewSlogLogger(slog.Default())),
//	)
func NewSlogLogger(logger *slog.Logger) Logger {
	if logger == nil {
		return logging.NewSlogDefault()
	}

	return logging.NewSlog(logger)
}

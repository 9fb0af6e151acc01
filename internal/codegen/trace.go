package codegen

import (
	"context"
	"log/slog"
)

// LevelTrace sits below Debug and carries one record per state transition.
const LevelTrace slog.Level = slog.LevelDebug - 4

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func trace(logger *slog.Logger, msg string, args ...any) {
	logger.Log(context.Background(), LevelTrace, msg, args...)
}

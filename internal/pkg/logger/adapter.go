package logger

import (
	"token_verifier/internal/port"
)

// slogAdapter routes the application Logger interface to the slog globals.
type slogAdapter struct{}

// NewSlogAdapter returns a port.Logger backed by the package-level slog logger.
func NewSlogAdapter() port.Logger {
	return slogAdapter{}
}

func (slogAdapter) Debug(msg string, args ...any) { Debug(msg, args...) }
func (slogAdapter) Info(msg string, args ...any)  { Info(msg, args...) }
func (slogAdapter) Warn(msg string, args ...any)  { Warn(msg, args...) }
func (slogAdapter) Error(msg string, args ...any) { Error(msg, args...) }

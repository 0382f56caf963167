package core

import (
	"fmt"
	"log/slog"
	"strings"
)

// Logger interface for raytracer logging
type Logger interface {
	Printf(format string, args ...interface{})
}

// SlogLogger adapts a structured slog.Logger to the Printf-style Logger
type SlogLogger struct {
	logger *slog.Logger
	attrs  []any
}

// NewSlogLogger wraps logger; attrs are attached to every message
func NewSlogLogger(logger *slog.Logger, attrs ...any) *SlogLogger {
	if logger == nil {
		logger = slog.Default()
	}
	return &SlogLogger{logger: logger, attrs: attrs}
}

// Printf formats the message and emits it at info level
func (l *SlogLogger) Printf(format string, args ...interface{}) {
	message := strings.TrimRight(fmt.Sprintf(format, args...), "\n")
	l.logger.Info(message, l.attrs...)
}

package log

import (
	"io"
	"log/slog"
	"strings"
)

// ParseLevel переводит debug|info|warn|error в slog.Level. Неизвестное значение дает info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NewHandler создает JSON или текстовый (format == "text") обработчик.
func NewHandler(w io.Writer, format, level string) slog.Handler {
	opts := &slog.HandlerOptions{Level: ParseLevel(level)}
	if format == "text" {
		return slog.NewTextHandler(w, opts)
	}
	return slog.NewJSONHandler(w, opts)
}

// NewLogger собирает логгер с маскировкой токенов.
func NewLogger(w io.Writer, format, level string, secrets ...string) *slog.Logger {
	return NewMaskedLogger(NewHandler(w, format, level), secrets...)
}

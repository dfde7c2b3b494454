package cli

import (
	"io"
	"log/slog"
)

// NewLogger writes logfmt lines without the time, and without the level for
// plain INFO lines.
func NewLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				return slog.Attr{}
			}
			if a.Key == slog.LevelKey && a.Value.String() == slog.LevelInfo.String() {
				return slog.Attr{}
			}
			return a
		},
	}))
}

package logger

import (
	"log/slog"
	"time"
)

// Error returns an "error" attribute, or an empty one for a nil error.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

func RequestID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("request_id", id)
}

func UserID(id int) slog.Attr {
	if id == 0 {
		return slog.Attr{}
	}
	return slog.Int("user_id", id)
}

func Component(name string) slog.Attr { return slog.String("component", name) }

func Event(name string) slog.Attr { return slog.String("event", name) }

func Operation(name string) slog.Attr { return slog.String("op", name) }

func Status(code int) slog.Attr { return slog.Int("status", code) }

func Duration(d time.Duration) slog.Attr { return slog.Duration("duration", d) }

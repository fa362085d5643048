// Package log provides logging utilities for the command line tool.
package log

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/phsym/console-slog"
	slogformatter "github.com/samber/slog-formatter"

	"github.com/reoring/oscaltypes"
)

var newHandler = slogformatter.NewFormatterHandler(
	slogformatter.FormatByType(func(e *oscaltypes.Error) slog.Value {
		return slog.GroupValue(
			slog.String("kind", e.Kind.String()),
			slog.String("detail", e.Detail),
			slog.String("message", e.Error()),
		)
	}),
	slogformatter.FormatByType(func(is oscaltypes.Issue) slog.Value {
		attrs := []slog.Attr{
			slog.String("path", is.Path),
			slog.String("code", is.Code),
		}
		if line, ok := is.Params["line"]; ok {
			attrs = append(attrs, slog.Any("line", line))
		}
		return slog.GroupValue(attrs...)
	}),
	slogformatter.ErrorFormatter("error"),
)

// New returns a console logger writing to w. Source locations are added at
// debug level.
func New(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(newHandler(
		console.NewHandler(w, &console.HandlerOptions{
			AddSource:  level <= slog.LevelDebug,
			Level:      level,
			TimeFormat: time.RFC3339Nano,
		}),
	))
}

type noopHandler struct{}

func (noopHandler) Enabled(context.Context, slog.Level) bool { return false }

func (noopHandler) Handle(context.Context, slog.Record) error { return nil }

func (h noopHandler) WithAttrs([]slog.Attr) slog.Handler { return h }

func (h noopHandler) WithGroup(string) slog.Handler { return h }

// Noop is a noop logger.
var Noop = slog.New(noopHandler{})

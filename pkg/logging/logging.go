package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/acronis/go-stacktrace"
	slogex "github.com/acronis/go-stacktrace/slogex"
	"github.com/dusted-go/logging/prettylog"
	"github.com/mattn/go-isatty"
	slogformatter "github.com/samber/slog-formatter"
)

// New creates a logger that writes human-readable records to w.
// Debug records are written only if verbose is true.
// Colors are enabled when w is a terminal.
func New(w io.Writer, verbose bool) *slog.Logger {
	logLvl := func() slog.Level {
		if verbose {
			return slog.LevelDebug
		}
		return slog.LevelInfo
	}()

	return slog.New(
		slogformatter.NewFormatterHandler(
			slogformatter.FormatByType(func(s []string) slog.Value {
				return slog.StringValue(strings.Join(s, ","))
			}),
		)(
			prettylog.New(&slog.HandlerOptions{Level: logLvl},
				prettylog.WithDestinationWriter(w),
				func() prettylog.Option {
					if isTerminal(w) {
						return prettylog.WithColor()
					}
					return func(_ *prettylog.Handler) {}
				}(),
			),
		),
	)
}

// ErrAttr returns the error as a log attribute.
// Aggregated errors (e.g. returned by foamdict.Verify) are expanded into one group per trace.
func ErrAttr(err error) slog.Attr {
	return slogex.ErrToSlogAttr(err, stacktrace.WithEnsureDuplicates())
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}

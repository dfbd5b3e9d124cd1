// Package cli wires the opcpack commands on top of the packaging engine.
//
// Every command opens or builds an [opc.Package], then prints a view of it:
// inspect and browse walk the part graph, types, rels and cat dump one
// serialized item, graph draws the relationship graph, and new and repack
// save a package as a zip archive or an expanded directory.
//
// Diagnostics go to stderr through a charmbracelet/log logger carried on the
// command context. Packages are opened with that logger via [opc.WithLogger],
// so --verbose also shows the engine's load traces.
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger returns the stderr logger used by all commands, stamped with
// wall-clock time to the hundredth of a second.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// timed starts a clock for step. Calling the returned func logs step at
// debug level with the elapsed time under "took", followed by kv.
func timed(l *log.Logger, step string) func(kv ...any) {
	start := time.Now()
	return func(kv ...any) {
		fields := append([]any{"took", time.Since(start).Round(time.Millisecond)}, kv...)
		l.Debug(step, fields...)
	}
}

type loggerKey struct{}

func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

// loggerFromContext falls back to log.Default for a nil ctx or one without a
// logger.
func loggerFromContext(ctx context.Context) *log.Logger {
	if ctx != nil {
		if l, ok := ctx.Value(loggerKey{}).(*log.Logger); ok {
			return l
		}
	}
	return log.Default()
}

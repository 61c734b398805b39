package logger

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/errors/errbase"
	"github.com/samber/lo"
)

// errorAttrReplacer renders error attributes as their message.
func errorAttrReplacer(groups []string, attr slog.Attr) slog.Attr {
	if len(groups) == 0 && attr.Key == ErrorKey {
		if err, ok := attr.Value.Any().(error); ok && err != nil {
			return slog.String(attr.Key, err.Error())
		}
	}
	return attr
}

// middlewareErrorStackTrace adds the verbose error and its stack trace to records carrying an error attribute.
func middlewareErrorStackTrace() middleware {
	return func(next handleFunc) handleFunc {
		return func(ctx context.Context, rec slog.Record) error {
			var err error
			rec.Attrs(func(attr slog.Attr) bool {
				if attr.Key == ErrorKey || attr.Key == "err" {
					if e, ok := attr.Value.Any().(error); ok && e != nil {
						err = e
						return false
					}
				}
				return true
			})
			if err == nil {
				return next(ctx, rec)
			}

			rec = rec.Clone()
			rec.AddAttrs(slog.String(ErrorVerboseKey, fmt.Sprintf("%+v", err)))
			var provider errbase.StackTraceProvider
			if errors.As(err, &provider) {
				rec.AddAttrs(slog.Any(ErrorStackTraceKey, traceFrames(provider.StackTrace())))
			}
			return next(ctx, rec)
		}
	}
}

// traceFrames renders a stack trace as "function file:line" lines, innermost call first.
// Runtime frames at the bottom of the stack are dropped.
func traceFrames(trace errbase.StackTrace) []string {
	frames := make([]string, 0, len(trace))
	skipping := true
	for i := len(trace) - 1; i >= 0; i-- {
		pc := uintptr(trace[i]) - 1
		fn := runtime.FuncForPC(pc)
		if fn == nil {
			frames = append(frames, "unknown")
			skipping = false
			continue
		}
		if skipping && strings.HasPrefix(fn.Name(), "runtime.") {
			continue
		}
		skipping = false

		file, line := fn.FileLine(pc)
		frames = append(frames, fmt.Sprintf("%s %s:%d", fn.Name(), file, line))
	}

	return lo.Reverse(frames)
}

package log

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"time"
)

// Package log wraps log/slog with a single context-propagated tag list. Every
// diagnostic cbufc emits while walking a schema or message file goes through
// Logf (or one of its level-named aliases below), so a tag attached once at
// the top of a command — the file path being processed, say — rides along on
// every nested warning without being threaded through each call explicitly.

type contextKey struct{}

// tagSet is an immutable cons-list of key/value pairs. AddTags never mutates
// an existing tagSet; it links new nodes in front of it, so a context
// captured before a later AddTags call still sees only its own, shorter tag
// list.
type tagSet struct {
	key, value any
	prev       *tagSet
}

func (ts *tagSet) apply(r *slog.Record) {
	if ts == nil {
		return
	}
	ts.prev.apply(r)
	key, ok := ts.key.(string)
	if !ok {
		panic("log: invalid log tag key")
	}
	r.Add(key, ts.value)
}

// Init configures the default slog handler's verbosity. cbufc calls this
// once at startup from its --verbose flag; Debugf calls are otherwise
// suppressed.
func Init(verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

// AddTags chains kvs onto ctx's tag list. kvs must have even length,
// alternating string keys and values.
func AddTags(ctx context.Context, kvs ...any) context.Context {
	if len(kvs)%2 != 0 {
		panic("log: AddTags requires an even number of arguments")
	}
	tags, _ := ctx.Value(contextKey{}).(*tagSet)
	for i := 0; i < len(kvs); i += 2 {
		tags = &tagSet{key: kvs[i], value: kvs[i+1], prev: tags}
	}
	return context.WithValue(ctx, contextKey{}, tags)
}

// WithFile tags ctx with the file path a cbufc subcommand is operating on,
// plus any further kvs, so a warning raised several calls deep in decode or
// hash still names its source.
func WithFile(ctx context.Context, path string, kvs ...any) context.Context {
	return AddTags(ctx, append([]any{"file", path}, kvs...)...)
}

// Logf records a log line at level, attaching ctx's accumulated tags.
func Logf(ctx context.Context, level slog.Level, format string, args ...any) {
	handler := slog.Default().Handler()
	if !handler.Enabled(ctx, level) {
		return
	}
	var pcs [1]uintptr
	runtime.Callers(3, pcs[:])
	r := slog.NewRecord(time.Now(), level, fmt.Sprintf(format, args...), pcs[0])
	tags, _ := ctx.Value(contextKey{}).(*tagSet)
	tags.apply(&r)
	if err := handler.Handle(ctx, r); err != nil {
		slog.ErrorContext(ctx, "error handling log record", "error", err)
	}
}

// Infof logs a message at info level with ctx's tags attached.
func Infof(ctx context.Context, format string, args ...any) {
	Logf(ctx, slog.LevelInfo, format, args...)
}

// Errorf logs a message at error level with ctx's tags attached.
func Errorf(ctx context.Context, format string, args ...any) {
	Logf(ctx, slog.LevelError, format, args...)
}

// Debugf logs a message at debug level with ctx's tags attached.
func Debugf(ctx context.Context, format string, args ...any) {
	Logf(ctx, slog.LevelDebug, format, args...)
}

// Warnf logs a message at warn level with ctx's tags attached.
func Warnf(ctx context.Context, format string, args ...any) {
	Logf(ctx, slog.LevelWarn, format, args...)
}

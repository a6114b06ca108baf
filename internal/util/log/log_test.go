package log_test

import (
	"context"
	"io"
	glog "log"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/verdant-robotics/cbuf/internal/util/log"
)

func captureStdout(t *testing.T, f func()) string {
	t.Helper()
	r, w, err := os.Pipe()
	require.NoError(t, err)
	stdout := os.Stdout
	stderr := os.Stderr
	os.Stdout = w
	os.Stderr = w
	glog.SetOutput(w)
	defer func() {
		os.Stdout = stdout
		os.Stderr = stderr
		glog.SetOutput(stdout)
	}()
	f()
	require.NoError(t, w.Close())
	out, err := io.ReadAll(r)
	require.NoError(t, err)
	return string(out)
}

func TestAddTags(t *testing.T) {
	ctx := context.Background()
	ctx = log.AddTags(ctx, "file", "telemetry.cbuf")
	old := slog.SetLogLoggerLevel(slog.LevelDebug)
	defer slog.SetLogLoggerLevel(old)
	output := captureStdout(t, func() {
		log.Infof(ctx, "decoded message")
	})
	require.Contains(t, output, "INFO decoded message file=telemetry.cbuf")
}

func TestAddTagsNestedScopeDoesNotLeak(t *testing.T) {
	old := slog.SetLogLoggerLevel(slog.LevelDebug)
	defer slog.SetLogLoggerLevel(old)
	outer := log.AddTags(context.Background(), "file", "a.cbuf")
	inner := log.AddTags(outer, "type", "Imu")

	innerOutput := captureStdout(t, func() { log.Infof(inner, "decoded") })
	require.Contains(t, innerOutput, "file=a.cbuf")
	require.Contains(t, innerOutput, "type=Imu")

	outerOutput := captureStdout(t, func() { log.Infof(outer, "decoded") })
	require.Contains(t, outerOutput, "file=a.cbuf")
	require.NotContains(t, outerOutput, "type=Imu")
}

func TestWithFile(t *testing.T) {
	old := slog.SetLogLoggerLevel(slog.LevelDebug)
	defer slog.SetLogLoggerLevel(old)
	ctx := log.WithFile(context.Background(), "telemetry.cbuf", "invocation", "abc123")
	output := captureStdout(t, func() {
		log.Warnf(ctx, "unresolved import")
	})
	require.Contains(t, output, "file=telemetry.cbuf")
	require.Contains(t, output, "invocation=abc123")
}

func TestLogf(t *testing.T) {
	old := slog.SetLogLoggerLevel(slog.LevelDebug)
	defer slog.SetLogLoggerLevel(old)
	cases := []struct {
		assertion string
		f         func(context.Context, string, ...interface{})
		contains  string
	}{
		{"infof", log.Infof, "INFO hello world"},
		{"warnf", log.Warnf, "WARN hello world"},
		{"errorf", log.Errorf, "ERROR hello world"},
		{"debugf", log.Debugf, "DEBUG hello world"},
	}
	for _, c := range cases {
		t.Run(c.assertion, func(t *testing.T) {
			ctx := context.Background()
			output := captureStdout(t, func() {
				c.f(ctx, "hello %s", "world")
			})
			require.Contains(t, output, c.contains)
		})
	}
}

func TestLogLeveling(t *testing.T) {
	old := slog.SetLogLoggerLevel(slog.LevelDebug)
	defer slog.SetLogLoggerLevel(old)
	s := captureStdout(t, func() {
		log.Debugf(context.Background(), "foo")
	})
	require.Contains(t, s, "DEBUG foo")

	slog.SetLogLoggerLevel(slog.LevelInfo)
	s = captureStdout(t, func() {
		log.Debugf(context.Background(), "foo")
	})
	require.Equal(t, "", s)
}

func TestInitVerbose(t *testing.T) {
	defer log.Init(false)
	log.Init(true)
	require.True(t, slog.Default().Handler().Enabled(context.Background(), slog.LevelDebug))
	log.Init(false)
	require.False(t, slog.Default().Handler().Enabled(context.Background(), slog.LevelDebug))
}

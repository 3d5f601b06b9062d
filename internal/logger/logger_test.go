package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// TestParseLogLevel verifies mapping from strings to zapcore.Level and handling of unknown values.
func TestParseLogLevel(t *testing.T) {
	t.Parallel()

	cases := map[string]zapcore.Level{
		"debug": zapcore.DebugLevel,
		"info":  zapcore.InfoLevel,
		"warn":  zapcore.WarnLevel,
		"error": zapcore.ErrorLevel,
		"fatal": zapcore.FatalLevel,
		" INFO": zapcore.InfoLevel,
	}
	for s, lvl := range cases {
		got, ok := ParseLogLevel(s)
		require.True(t, ok, s)
		require.Equal(t, lvl, got, s)
	}

	_, ok := ParseLogLevel("unknown")
	require.False(t, ok)
}

// TestFromContextFallsBackToGlobal verifies that a bare context yields
// the global logger instead of nil.
func TestFromContextFallsBackToGlobal(t *testing.T) {
	t.Parallel()

	require.Equal(t, Logger(), FromContext(context.Background()))
}

// TestContextHelpers verifies that names and fields attached through
// the context show up on emitted entries.
func TestContextHelpers(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.DebugLevel)
	ctx := ToContext(context.Background(), zap.New(core).Sugar())

	ctx = WithName(ctx, "bump")
	ctx = WithKV(ctx, "repo", "/tmp/demo")
	ctx = WithFields(ctx, zap.Int("attempt", 2))

	InfoKV(ctx, "resolved version", "version", "v1.2.3")

	entries := logs.All()
	require.Len(t, entries, 1)

	entry := entries[0]
	require.Equal(t, "bump", entry.LoggerName)
	require.Equal(t, "resolved version", entry.Message)

	fields := entry.ContextMap()
	require.Equal(t, "/tmp/demo", fields["repo"])
	require.EqualValues(t, 2, fields["attempt"])
	require.Equal(t, "v1.2.3", fields["version"])
}

// TestNewProfiles verifies that both encoder profiles produce a usable logger.
func TestNewProfiles(t *testing.T) {
	t.Parallel()

	brief := New(zap.NewAtomicLevelAt(zap.DebugLevel), false)
	require.NotNil(t, brief)
	brief.Debug("brief profile message")

	detailed := New(zap.NewAtomicLevelAt(zap.DebugLevel), true)
	require.NotNil(t, detailed)
	detailed.Debug("detailed profile message")
}

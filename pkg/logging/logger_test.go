package logging

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTestLoggerCapture(t *testing.T) {
	tl := NewTestLogger(t)

	tl.Info().Str("provider", "lastpass").Int("rows", 3).Msg("imported")
	tl.Debug().Msg("details")

	require.Len(t, tl.Lines(), 2)
	assert.True(t, tl.Contains(`"provider":"lastpass"`))
	assert.True(t, tl.Contains("imported"))

	tl.Clear()
	assert.Empty(t, tl.Output())
}

func TestContextCarrier(t *testing.T) {
	tl := NewTestLogger(t)

	ctx := WithLogger(context.Background(), tl.Logger)
	ctx = WithProvider(ctx, "bitwarden")
	ctx = WithFile(ctx, "export.csv")

	Ctx(ctx).Info().Msg("processing")

	assert.True(t, tl.Contains(`"provider_id":"bitwarden"`))
	assert.True(t, tl.Contains(`"file":"export.csv"`))
}

func TestFromContextFallsBack(t *testing.T) {
	assert.Equal(t, Default(), FromContext(context.Background()))
	assert.Equal(t, Default(), FromContext(nil)) //nolint:staticcheck // nil context is the case under test
}

func TestGetLogLevel(t *testing.T) {
	t.Setenv("LOG_LEVEL", "warn")
	assert.Equal(t, "warn", getLogLevel().String())

	t.Setenv("LOG_LEVEL", "nonsense")
	assert.Equal(t, "info", getLogLevel().String())

	t.Setenv("LOG_LEVEL", "")
	t.Setenv("DEBUG", "1")
	assert.Equal(t, "debug", getLogLevel().String())
}

// SPDX-License-Identifier: MIT
package logging

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	lvl, err := parseLevel("")
	require.NoError(t, err)
	require.Equal(t, zapcore.InfoLevel, lvl)

	lvl, err = parseLevel("DEBUG")
	require.NoError(t, err)
	require.Equal(t, zapcore.DebugLevel, lvl)

	_, err = parseLevel("loud")
	require.ErrorContains(t, err, `invalid level "loud"`)
}

func TestNew(t *testing.T) {
	l, err := New(DefaultConfig())
	require.NoError(t, err)
	require.False(t, l.Core().Enabled(zapcore.InfoLevel))
	require.True(t, l.Core().Enabled(zapcore.WarnLevel))

	l, err = New(DevelopmentConfig())
	require.NoError(t, err)
	require.True(t, l.Core().Enabled(zapcore.DebugLevel))

	_, err = New(Config{Level: "nope"})
	require.Error(t, err)
}

func TestEncoding(t *testing.T) {
	require.Equal(t, "console", encodingFormat(true))
	require.Equal(t, "json", encodingFormat(false))
	require.Equal(t, "message", encoderConfig(false).MessageKey)
	require.Equal(t, "M", encoderConfig(true).MessageKey)
}

func TestNewWriter(t *testing.T) {
	var buf bytes.Buffer
	l, err := NewWriter(Config{Level: "info"}, &buf)
	require.NoError(t, err)
	l.Debug("hidden")
	l.Info("shown")
	require.NotContains(t, buf.String(), "hidden")
	require.Contains(t, buf.String(), `"message":"shown"`)
	require.Contains(t, buf.String(), `"level":"info"`)

	_, err = NewWriter(Config{Level: "nope"}, &buf)
	require.Error(t, err)
}

package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestNew_StampsServiceField(t *testing.T) {
	var buf bytes.Buffer
	l := New("meddesk-server", "info", "json", &buf)

	l.Info().Msg("listening")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	require.Equal(t, "meddesk-server", line["service"])
	require.Equal(t, "listening", line["message"])
}

func TestNew_FiltersBelowConfiguredLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New("meddesk-worker", "warn", "json", &buf)

	l.Info().Msg("suppressed")
	require.Zero(t, buf.Len())

	l.Warn().Msg("kept")
	require.Contains(t, buf.String(), "kept")
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		level string
		want  zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"FATAL", zerolog.FatalLevel},
		{"", zerolog.InfoLevel},
		{"garbage", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		require.Equal(t, tt.want, parseLogLevel(tt.level), "level %q", tt.level)
	}
}

package logging

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
)

func TestLevelForVerbosity(t *testing.T) {
	cases := []struct {
		verbosity int
		want      zerolog.Level
	}{
		{0, zerolog.WarnLevel},
		{1, zerolog.InfoLevel},
		{2, zerolog.DebugLevel},
		{5, zerolog.DebugLevel},
	}
	for _, tt := range cases {
		if got := LevelForVerbosity(tt.verbosity); got != tt.want {
			t.Errorf("LevelForVerbosity(%d) = %v, want %v", tt.verbosity, got, tt.want)
		}
	}
}

func TestNew_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, 0)
	logger.Info().Msg("should be suppressed at warn level")
	if buf.Len() != 0 {
		t.Fatalf("expected no output below the configured level, got %q", buf.String())
	}

	logger.Warn().Msg("should appear")
	if buf.Len() == 0 {
		t.Fatalf("expected output at the configured level")
	}
}

func TestComponent_AttachesField(t *testing.T) {
	var buf bytes.Buffer
	logger := Component(New(&buf, 1), "engine")
	logger.Info().Msg("hello")
	if !bytes.Contains(buf.Bytes(), []byte("engine")) {
		t.Fatalf("expected component field in output, got %q", buf.String())
	}
}

package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func TestParseLevelAcceptsAliases(t *testing.T) {
	cases := map[string]zerolog.Level{
		"trace":   zerolog.TraceLevel,
		" DEBUG ": zerolog.DebugLevel,
		"warning": zerolog.WarnLevel,
		"error":   zerolog.ErrorLevel,
		"off":     zerolog.Disabled,
	}
	for raw, want := range cases {
		got, ok := ParseLevel(raw)
		if !ok || got != want {
			t.Fatalf("ParseLevel(%q) = %v, %v; want %v", raw, got, ok, want)
		}
	}
	if _, ok := ParseLevel("loud"); ok {
		t.Fatalf("expected unknown level to be rejected")
	}
	if _, ok := ParseLevel(""); ok {
		t.Fatalf("expected empty level to be rejected")
	}
}

func TestEnvOverridesApplyOnTopOfProfile(t *testing.T) {
	t.Setenv(EnvLogLevel, "error")
	t.Setenv(EnvLogTimestamp, "false")
	t.Setenv(EnvLogJSON, "true")
	t.Setenv(EnvLogNoColor, "not-a-bool")

	cfg := defaultConfig(ProfileRuntime)
	applyEnvOverrides(&cfg)
	if cfg.Level != zerolog.ErrorLevel {
		t.Fatalf("expected error level, got %v", cfg.Level)
	}
	if cfg.Timestamp {
		t.Fatalf("expected timestamp disabled")
	}
	if !cfg.JSON {
		t.Fatalf("expected json output")
	}
	if cfg.NoColor {
		t.Fatalf("invalid bool must leave NoColor untouched")
	}
}

func TestNewJSONLoggerHonoursLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: zerolog.WarnLevel, JSON: true, Out: &buf})
	logger.Info().Msg("dropped")
	logger.Warn().Str("schema", "7-7").Msg("kept")

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	if len(lines) != 1 {
		t.Fatalf("expected 1 log line, got %d: %q", len(lines), buf.String())
	}
	var entry map[string]any
	if err := json.Unmarshal(lines[0], &entry); err != nil {
		t.Fatalf("decode log line: %v", err)
	}
	if entry["message"] != "kept" || entry["schema"] != "7-7" {
		t.Fatalf("unexpected entry: %v", entry)
	}
	if _, ok := entry["time"]; ok {
		t.Fatalf("timestamp must be absent when disabled")
	}
}

func TestOverrideLevelDefersToEnv(t *testing.T) {
	prevGlobal, prevLogger := zerolog.GlobalLevel(), log.Logger
	t.Cleanup(func() {
		zerolog.SetGlobalLevel(prevGlobal)
		log.Logger = prevLogger
	})

	t.Setenv(EnvLogLevel, "")
	if !OverrideLevel("warn") || zerolog.GlobalLevel() != zerolog.WarnLevel || log.Logger.GetLevel() != zerolog.WarnLevel {
		t.Fatalf("expected warn level applied")
	}
	if OverrideLevel("loud") {
		t.Fatalf("unknown level must be ignored")
	}

	t.Setenv(EnvLogLevel, "debug")
	if OverrideLevel("error") || zerolog.GlobalLevel() != zerolog.WarnLevel {
		t.Fatalf("env level must win over configured level")
	}
}

package logging

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	sonic "github.com/bytedance/sonic"
	"go.uber.org/zap"
)

func TestNewJSONWritesServiceFields(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSON(Options{
		Level:       LevelInfo,
		Service:     "oddsboard",
		Environment: "test",
		Output:      &buf,
	})

	logger.Debug("hidden")
	logger.InfoContext(context.Background(), "boards refreshed", "sport_key", "soccer_epl", "error", errors.New("partial"))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected one log line, got %d: %q", len(lines), buf.String())
	}

	var entry map[string]any
	if err := sonic.UnmarshalString(lines[0], &entry); err != nil {
		t.Fatalf("decode log line: %v", err)
	}
	if entry["msg"] != "boards refreshed" || entry["service"] != "oddsboard" || entry["env"] != "test" {
		t.Fatalf("unexpected log entry: %v", entry)
	}
	if entry["sport_key"] != "soccer_epl" || entry["error"] != "partial" {
		t.Fatalf("unexpected log fields: %v", entry)
	}
	if caller, _ := entry["caller"].(string); !strings.HasPrefix(caller, "logging/logger_test.go") {
		t.Fatalf("expected caller to point at the call site, got %q", caller)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    Level
		wantErr bool
	}{
		{in: "", want: LevelInfo},
		{in: "DEBUG", want: LevelDebug},
		{in: " warning ", want: LevelWarn},
		{in: "error", want: LevelError},
		{in: "verbose", want: LevelInfo, wantErr: true},
	}

	for _, tc := range tests {
		got, err := ParseLevel(tc.in)
		if (err != nil) != tc.wantErr {
			t.Fatalf("ParseLevel(%q) error = %v, wantErr %v", tc.in, err, tc.wantErr)
		}
		if got != tc.want {
			t.Fatalf("ParseLevel(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestDefaultLoggerIsNeverNil(t *testing.T) {
	SetDefault(nil)
	if Default() == nil {
		t.Fatalf("expected nop default logger")
	}
	var nilLogger *Logger
	nilLogger.Info("no panic")
}

func TestZapFields(t *testing.T) {
	fields := zapFields([]any{"sport_key", "soccer_epl", zap.Int("boards", 3), "dangling"})
	if len(fields) != 3 {
		t.Fatalf("expected 3 fields, got %d: %+v", len(fields), fields)
	}
	if fields[0].Key != "sport_key" || fields[1].Key != "boards" || fields[2].Key != "dangling" {
		t.Fatalf("unexpected field keys: %+v", fields)
	}
}

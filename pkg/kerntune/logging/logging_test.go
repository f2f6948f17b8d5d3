package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    Level
		wantErr bool
	}{
		{in: "debug", want: LevelDebug},
		{in: "info", want: LevelInfo},
		{in: "", want: LevelInfo},
		{in: "WARN", want: LevelWarn},
		{in: "warning", want: LevelWarn},
		{in: "error", want: LevelError},
		{in: "trace", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseLevel(%q) = nil error, want error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseLevel(%q) error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestInitAndWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kerntune.log")

	if err := Init(Config{Level: "debug", Path: path}); err != nil {
		t.Fatalf("Init() error: %v", err)
	}
	defer func() { _ = Close() }()

	logger := Get("test")
	logger.Info("hello", "key", "value")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}
	if !strings.Contains(string(data), "hello") {
		t.Errorf("log file missing message, got: %s", data)
	}
	if !strings.Contains(string(data), "test") {
		t.Errorf("log file missing component prefix, got: %s", data)
	}
}

func TestGetBeforeInitIsSilent(t *testing.T) {
	_ = Close()
	logger := Get("preinit")
	// Must not panic and must not write anywhere.
	logger.Error("discarded")
}

func TestComponentLevelOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kerntune.log")
	cfg := Config{
		Level:      "error",
		Path:       path,
		Components: map[string]string{"chatty": "debug"},
	}
	if err := Init(cfg); err != nil {
		t.Fatalf("Init() error: %v", err)
	}
	defer func() { _ = Close() }()

	Get("chatty").Debug("verbose detail")
	Get("quiet").Debug("should be dropped")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}
	if !strings.Contains(string(data), "verbose detail") {
		t.Error("component override did not lower the level")
	}
	if strings.Contains(string(data), "should be dropped") {
		t.Error("default level did not filter debug output")
	}
}

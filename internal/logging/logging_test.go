package logging

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected zapcore.Level
		wantErr  bool
	}{
		{"", zapcore.InfoLevel, false},
		{"info", zapcore.InfoLevel, false},
		{"DEBUG", zapcore.DebugLevel, false},
		{"warn", zapcore.WarnLevel, false},
		{"error", zapcore.ErrorLevel, false},
		{"verbose", zapcore.InfoLevel, true},
	}
	for _, test := range tests {
		got, err := ParseLevel(test.input)
		if (err != nil) != test.wantErr {
			t.Errorf("ParseLevel(%q) error = %v, wantErr %v", test.input, err, test.wantErr)
		}
		if test.wantErr && !errors.Is(err, ErrUnknownLevel) {
			t.Errorf("ParseLevel(%q) error = %v, expected ErrUnknownLevel", test.input, err)
		}
		if got != test.expected {
			t.Errorf("ParseLevel(%q) = %v, expected %v", test.input, got, test.expected)
		}
	}
}

func TestNew_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "metaminer.log")
	logger, cleanup, err := New(Options{Level: "info", File: path})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	logger.WithName("session").Info("filters composed", "genomes", 40)
	logger.V(1).Info("hidden at info level")
	cleanup()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	content := string(data)
	if !strings.Contains(content, "filters composed") || !strings.Contains(content, `"genomes":40`) {
		t.Errorf("log file = %q, expected the info entry", content)
	}
	if strings.Contains(content, "hidden at info level") {
		t.Error("debug entry was written at info level")
	}
}

func TestNew_UnknownLevel(t *testing.T) {
	_, cleanup, err := New(Options{Level: "loud"})
	defer cleanup()
	if !errors.Is(err, ErrUnknownLevel) {
		t.Errorf("New() error = %v, expected ErrUnknownLevel", err)
	}
}

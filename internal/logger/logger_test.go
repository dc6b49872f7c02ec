package logger

import (
	"testing"

	"github.com/rs/zerolog"
)

func TestGetReturnsInitializedLogger(t *testing.T) {
	l := Get()
	if l == nil {
		t.Fatal("Get returned nil")
	}
	if l != Get() {
		t.Error("Get should return the same logger instance")
	}
}

func TestSetDebugLowersLevel(t *testing.T) {
	SetDebug()
	if got := Get().GetLevel(); got != zerolog.DebugLevel {
		t.Errorf("level after SetDebug = %v, want debug", got)
	}
}

func TestLevelWrappers(t *testing.T) {
	// Each wrapper must log through the shared logger without
	// panicking on key/value fields.
	Info("info message", "key", "value")
	Warn("warn message", "key", "value")
	Error("error message", nil, "key", "value")
	Debug("debug message")
}

package logging

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		opt     Options
		enabled zapcore.Level
		wantErr bool
	}{
		{"json info", Options{Level: "info", Format: "json"}, zapcore.InfoLevel, false},
		{"console debug", Options{Level: "debug", Format: "console"}, zapcore.DebugLevel, false},
		{"default format", Options{Level: "warn"}, zapcore.WarnLevel, false},
		{"bad level", Options{Level: "loud"}, 0, true},
		{"bad format", Options{Level: "info", Format: "xml"}, 0, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			lg, err := New(tc.opt)
			if tc.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("New: %v", err)
			}
			if !lg.Core().Enabled(tc.enabled) {
				t.Errorf("level %v should be enabled", tc.enabled)
			}
			if tc.enabled > zapcore.DebugLevel && lg.Core().Enabled(tc.enabled-1) {
				t.Errorf("level %v should be disabled", tc.enabled-1)
			}
		})
	}
}

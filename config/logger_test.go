package config

import (
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func TestLoggingPrepare(t *testing.T) {
	t.Cleanup(func() { debug.SetCrashOutput(nil, debug.CrashOptions{}) })

	tests := []struct {
		name      string
		level     string
		debugRpt  bool
		wantDebug bool
		wantInfo  bool
	}{
		{"file disabled", "none", false, false, false},
		{"normal", "normal", false, false, true},
		{"debug", "debug", false, true, true},
		{"report forces debug", "none", true, true, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			conf := LoggingConfig{
				ConsoleLogger: LoggerConfig{Level: "none"},
				FileLogger:    LoggerConfig{Level: tt.level, Destination: filepath.Join(dir, "rpw.log"), Mode: "overwrite"},
			}

			var rpt *Report
			if tt.debugRpt {
				rpt = &Report{entries: make(map[string]entry)}
			}

			log, err := conf.Prepare(rpt)
			if err != nil {
				t.Fatalf("Prepare() error = %v", err)
			}
			log.Debug("debug message")
			log.Info("info message", zap.String("form", "monthly.rfxml"))
			_ = log.Sync()

			data, _ := os.ReadFile(conf.FileLogger.Destination)
			if got := strings.Contains(string(data), "debug message"); got != tt.wantDebug {
				t.Errorf("debug message logged = %v, want %v", got, tt.wantDebug)
			}
			if got := strings.Contains(string(data), "info message"); got != tt.wantInfo {
				t.Errorf("info message logged = %v, want %v", got, tt.wantInfo)
			}

			if rpt != nil {
				if _, ok := rpt.entries["final.log"]; !ok {
					t.Error("log file was not stored in debug report")
				}
			}
		})
	}
}

func TestLoggingPrepare_Redirected(t *testing.T) {
	t.Cleanup(func() { debug.SetCrashOutput(nil, debug.CrashOptions{}) })

	conf := LoggingConfig{
		ConsoleLogger: LoggerConfig{Level: "none"},
		FileLogger:    LoggerConfig{Level: "normal", Destination: filepath.Join(t.TempDir(), "missing", "rpw.log")},
	}
	rpt := &Report{entries: make(map[string]entry)}

	log, err := conf.Prepare(rpt)
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}
	_ = log.Sync()

	stored := rpt.entries["final.log"].path
	t.Cleanup(func() { os.Remove(stored) })
	if stored == conf.FileLogger.Destination {
		t.Fatalf("log should be redirected, stored %q", stored)
	}
	data, err := os.ReadFile(stored)
	if err != nil {
		t.Fatalf("redirected log: %v", err)
	}
	if !strings.Contains(string(data), "redirected") {
		t.Errorf("redirect warning was not logged:\n%s", data)
	}
}

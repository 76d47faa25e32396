package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNewFileMissingFileUsesDefaults(t *testing.T) {
	conf, err := NewFile(filepath.Join(t.TempDir(), "flowcomp.json"))
	if err != nil {
		t.Fatalf("NewFile returned error: %v", err)
	}

	if got := conf.CalibrationPath(); got != "flow_model.csv" {
		t.Errorf("CalibrationPath() = %q, want default", got)
	}
	if got := conf.LogLevel(); got != "info" {
		t.Errorf("LogLevel() = %q, want info", got)
	}
	if got := conf.LogFile(); got != "" {
		t.Errorf("LogFile() = %q, want empty", got)
	}
	if got := conf.SplineSamples(); got != 25 {
		t.Errorf("SplineSamples() = %d, want 25", got)
	}
	if !conf.DiagnosticComments() {
		t.Error("DiagnosticComments() = false, want default true")
	}
}

func TestNewFileEmptyFileUsesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flowcomp.json")
	if err := os.WriteFile(path, []byte("  \n"), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	conf, err := NewFile(path)
	if err != nil {
		t.Fatalf("NewFile returned error: %v", err)
	}
	if got := conf.SplineSamples(); got != 25 {
		t.Errorf("SplineSamples() = %d, want 25", got)
	}
}

func TestNewFilePartialConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flowcomp.json")
	if err := os.WriteFile(path, []byte(`{"calibrationPath": "custom.csv"}`), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	conf, err := NewFile(path)
	if err != nil {
		t.Fatalf("NewFile returned error: %v", err)
	}
	if got := conf.CalibrationPath(); got != "custom.csv" {
		t.Errorf("CalibrationPath() = %q, want custom.csv", got)
	}
	// Unset fields still fall back to defaults.
	if got := conf.LogLevel(); got != "info" {
		t.Errorf("LogLevel() = %q, want info", got)
	}
}

func TestNewFileMalformedConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flowcomp.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	if _, err := NewFile(path); err == nil {
		t.Fatal("NewFile accepted malformed JSON")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flowcomp.json")

	conf, err := NewFile(path)
	if err != nil {
		t.Fatalf("NewFile returned error: %v", err)
	}
	conf.SetCalibrationPath("printer-a.csv")
	conf.SetLogLevel("debug")
	conf.SetSplineSamples(50)
	conf.SetDiagnosticComments(false)
	if err := conf.Save(); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	reloaded, err := NewFile(path)
	if err != nil {
		t.Fatalf("NewFile after save returned error: %v", err)
	}
	if got := reloaded.CalibrationPath(); got != "printer-a.csv" {
		t.Errorf("CalibrationPath() = %q after reload", got)
	}
	if got := reloaded.LogLevel(); got != "debug" {
		t.Errorf("LogLevel() = %q after reload", got)
	}
	if got := reloaded.SplineSamples(); got != 50 {
		t.Errorf("SplineSamples() = %d after reload", got)
	}
	// An explicit false must survive the round trip, not decay to the
	// default true.
	if reloaded.DiagnosticComments() {
		t.Error("DiagnosticComments() = true after saving false")
	}
}

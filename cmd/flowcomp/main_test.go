package main

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
)

// resetLogging restores the package flag variables and global logrus state
// mutated by executing the command.
func resetLogging(t *testing.T) {
	t.Helper()
	t.Cleanup(func() {
		logLevel = "info"
		logFile = ""
		configPath = "flowcomp.json"
		logrus.SetLevel(logrus.InfoLevel)
		logrus.SetOutput(os.Stderr)
		logrus.SetFormatter(&logrus.TextFormatter{})
	})
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "flowcomp.json")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func execute(t *testing.T, args ...string) {
	t.Helper()
	cmd := NewCommand()
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
}

func TestLogLevelFromConfigFile(t *testing.T) {
	resetLogging(t)
	path := writeConfig(t, `{"logLevel": "debug"}`)

	execute(t, "--config", path, "version")

	if got := logrus.GetLevel(); got != logrus.DebugLevel {
		t.Errorf("log level = %v, want debug from config file", got)
	}
}

func TestLogLevelFlagOverridesConfigFile(t *testing.T) {
	resetLogging(t)
	path := writeConfig(t, `{"logLevel": "debug"}`)

	execute(t, "--config", path, "--log-level", "warn", "version")

	if got := logrus.GetLevel(); got != logrus.WarnLevel {
		t.Errorf("log level = %v, want warn from flag", got)
	}
}

func TestLogFileFromConfigFile(t *testing.T) {
	resetLogging(t)
	logPath := filepath.Join(t.TempDir(), "flowcomp.log")
	path := writeConfig(t, `{"logFile": "`+logPath+`"}`)

	execute(t, "--config", path, "version")

	if _, err := os.Stat(logPath); err != nil {
		t.Errorf("log file from config was not opened: %v", err)
	}
}

func TestMissingConfigFileUsesFlagDefaults(t *testing.T) {
	resetLogging(t)

	execute(t, "--config", filepath.Join(t.TempDir(), "absent.json"), "version")

	if got := logrus.GetLevel(); got != logrus.InfoLevel {
		t.Errorf("log level = %v, want the info default", got)
	}
}

package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupLogger(t *testing.T) {
	tests := []struct {
		name      string
		verbosity int
		wantLevel zerolog.Level
	}{
		{"default warn level", 0, zerolog.WarnLevel},
		{"info level", 1, zerolog.InfoLevel},
		{"debug level", 2, zerolog.DebugLevel},
		{"trace level", 3, zerolog.TraceLevel},
		{"high verbosity defaults to trace", 5, zerolog.TraceLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tempDir := t.TempDir()
			t.Setenv("XDG_STATE_HOME", tempDir)

			SetupLoggerWithOptions(Options{Verbosity: tt.verbosity, Console: &bytes.Buffer{}})

			assert.Equal(t, tt.wantLevel, zerolog.GlobalLevel())

			logPath := filepath.Join(tempDir, "dotsetup", "setup.log")
			_, err := os.Stat(logPath)
			assert.NoError(t, err, "log file should be created")
		})
	}
}

func TestSetupLogger_NoFile(t *testing.T) {
	tempDir := t.TempDir()
	t.Setenv("XDG_STATE_HOME", tempDir)

	SetupLoggerWithOptions(Options{Verbosity: 1, Console: &bytes.Buffer{}, NoFile: true})

	_, err := os.Stat(filepath.Join(tempDir, "dotsetup"))
	assert.True(t, os.IsNotExist(err))
}

func TestGetLogFilePath(t *testing.T) {
	t.Setenv("XDG_STATE_HOME", "/custom/state")
	assert.Equal(t, "/custom/state/dotsetup/setup.log", getLogFilePath())
	assert.Equal(t, getLogFilePath(), LogFilePath())
}

func TestGetLogger(t *testing.T) {
	var buf bytes.Buffer
	t.Setenv("XDG_STATE_HOME", t.TempDir())
	SetupLoggerWithOptions(Options{Verbosity: 1, Console: &buf, NoFile: true})

	logger := GetLogger("stow")
	logger.Info().Msg("linked")

	require.Contains(t, buf.String(), "linked")
	assert.Contains(t, buf.String(), "stow")
}

func TestLogOperationStart(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)
	zerolog.SetGlobalLevel(zerolog.DebugLevel)

	done := LogOperationStart(logger, "backup")
	done()

	assert.Contains(t, buf.String(), "Operation started")
	assert.Contains(t, buf.String(), "Operation completed")
	assert.Contains(t, buf.String(), "backup")
}

func TestLogCommand(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)
	zerolog.SetGlobalLevel(zerolog.DebugLevel)

	LogCommand(logger, "apt-get", []string{"install", "-y", "git"})

	assert.Contains(t, buf.String(), "apt-get")
	assert.Contains(t, buf.String(), "Executing command")
}

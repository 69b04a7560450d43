package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFileWriter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "engine.log")

	w, err := FileWriter(path)
	require.NoError(t, err)
	_, err = w.Write([]byte("first\n"))
	require.NoError(t, err)

	// Reopening appends rather than truncates.
	w, err = FileWriter(path)
	require.NoError(t, err)
	_, err = w.Write([]byte("second\n"))
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "first\nsecond\n", string(data))
}

func TestInitialize_WithLogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "engine.log")
	Initialize("debug", path)

	Logger.Info().Msg("file sink smoke test")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "file sink smoke test")
}

func TestInitialize_BadLogFilePath(t *testing.T) {
	// An unopenable path must fall back to console-only, not panic.
	Initialize("info", filepath.Join(t.TempDir(), "missing", "engine.log"))
	Logger.Info().Msg("console fallback")
}

package logger

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNew_WritesJSONToFile(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "app.log")

	log, err := New(Config{Level: "debug", Encoding: "json", OutputPaths: []string{logPath}})
	require.NoError(t, err)

	log.Debug("debug message", zap.String("component", "test"))
	require.NoError(t, log.Sync())

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(string(data))), &entry))
	assert.Equal(t, "DEBUG", entry["level"])
	assert.Equal(t, "debug message", entry["msg"])
	assert.Equal(t, "test", entry["component"])
	assert.Contains(t, entry, "timestamp")
}

func TestNew_InvalidLevelFallsBackToInfo(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "app.log")

	log, err := New(Config{Level: "verbose", OutputPaths: []string{logPath}})
	require.NoError(t, err)

	assert.False(t, log.Core().Enabled(zap.DebugLevel), "debug should be disabled")
	assert.True(t, log.Core().Enabled(zap.InfoLevel), "info should be enabled")
}

func TestNew_UnknownEncodingUsesJSON(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "app.log")

	log, err := New(Config{Level: "info", Encoding: "xml", OutputPaths: []string{logPath}})
	require.NoError(t, err)

	log.Info("hello")
	require.NoError(t, log.Sync())

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.True(t, json.Valid([]byte(strings.TrimSpace(string(data)))))
}

func TestNew_MultipleOutputsAndServiceField(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "first.log")
	second := filepath.Join(dir, "second.log")

	log, err := New(Config{Level: "info", OutputPaths: []string{first, " ", second}, Service: "content-server"})
	require.NoError(t, err)

	log.Info("hello")
	require.NoError(t, log.Sync())

	for _, path := range []string{first, second} {
		data, err := os.ReadFile(path)
		require.NoError(t, err)

		var entry map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(string(data))), &entry))
		assert.Equal(t, "content-server", entry["service"])
		assert.NotContains(t, entry, "caller")
	}
}

func TestNew_DevelopmentAddsCallerAndStacktrace(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "app.log")

	log, err := New(Config{Level: "info", OutputPaths: []string{logPath}, Development: true})
	require.NoError(t, err)

	log.Error("boom")
	require.NoError(t, log.Sync())

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(string(data))), &entry))
	assert.Contains(t, entry, "caller")
	assert.Contains(t, entry, "stacktrace")
}

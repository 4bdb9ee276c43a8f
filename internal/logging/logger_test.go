package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestInitialize_SilentByDefault(t *testing.T) {
	t.Setenv(LogLevelEnvVar, "")
	path := filepath.Join(t.TempDir(), "printcat.log")

	require.NoError(t, Initialize("", path))
	Info("should not be written", zap.String("k", "v"))
	Sync()

	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err), "silent logger must not create a log file")
}

func TestInitialize_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "printcat.log")

	require.NoError(t, Initialize("debug", path))
	Debug("catalog request", zap.String("path", "/products/"))
	Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "catalog request")
	assert.Contains(t, string(data), "/products/")
}

func TestInitialize_EnvLevel(t *testing.T) {
	t.Setenv(LogLevelEnvVar, "warn")
	path := filepath.Join(t.TempDir(), "printcat.log")

	require.NoError(t, Initialize("", path))
	assert.False(t, GetLogger().Core().Enabled(zapcore.InfoLevel))
	assert.True(t, GetLogger().Core().Enabled(zapcore.WarnLevel))
}

func TestGetLogger_NeverNil(t *testing.T) {
	logger = nil
	assert.NotNil(t, GetLogger())
}

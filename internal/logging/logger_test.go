package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/amosWeiskopf/onpage/internal/config"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, parseLevel("DEBUG"))
	assert.Equal(t, zapcore.WarnLevel, parseLevel("warning"))
	assert.Equal(t, zapcore.ErrorLevel, parseLevel("error"))
	assert.Equal(t, zapcore.InfoLevel, parseLevel("bogus"))
}

func TestVerboseEnablesDebug(t *testing.T) {
	logger := New(config.LoggingConfig{Level: "error", OutputPath: "stderr"}, true)
	assert.True(t, logger.Core().Enabled(zapcore.DebugLevel))

	logger = New(config.LoggingConfig{Level: "error", OutputPath: "stderr"}, false)
	assert.False(t, logger.Core().Enabled(zapcore.WarnLevel))
}

func TestFileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "onpage.log")
	logger := New(config.LoggingConfig{Level: "info", Format: "json", OutputPath: path}, false)

	logger.Info("report saved")
	require.NoError(t, logger.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"report saved"`)
}

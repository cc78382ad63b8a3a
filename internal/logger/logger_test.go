package logger_test

import (
	"os"
	"path/filepath"
	"testing"

	"house-modeler/internal/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "modeler.log")

	log, err := logger.New(logger.Config{Level: "debug", Encoding: "json", OutputPath: path})
	require.NoError(t, err)
	log.Info("scene generated")
	_ = log.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"scene generated"`)
	assert.Contains(t, string(data), `"level":"INFO"`)
}

func TestNew_InvalidLevelFallsBack(t *testing.T) {
	log, err := logger.New(logger.Config{Level: "loud", OutputPath: "stderr"})
	require.NoError(t, err)
	assert.False(t, log.Core().Enabled(-1), "debug must be disabled at info level")
}

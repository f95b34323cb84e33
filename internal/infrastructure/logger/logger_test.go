package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/xiebiao/libros/internal/infrastructure/config"
)

func TestNew_WritesJSONToFile(t *testing.T) {
	out := filepath.Join(t.TempDir(), "app.log")
	cfg := &config.Config{
		Server: config.ServerConfig{Name: "libros-test"},
		Log:    config.LogConfig{Level: "info", Format: "json", Output: out},
	}

	log, cleanup, err := New(cfg)
	require.NoError(t, err)

	log.Info("libro creado", zap.Uint("id", 1))
	log.Debug("no se escribe")
	assert.Same(t, log, zap.L(), "应替换全局Logger")
	cleanup()

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"message":"libro creado"`)
	assert.Contains(t, string(data), `"service":"libros-test"`)
	assert.NotContains(t, string(data), "no se escribe")
}

func TestParseLevel(t *testing.T) {
	tests := map[string]zapcore.Level{
		"debug": zapcore.DebugLevel,
		"INFO":  zapcore.InfoLevel,
		"":      zapcore.InfoLevel,
		"warn":  zapcore.WarnLevel,
		"error": zapcore.ErrorLevel,
	}
	for in, want := range tests {
		got, err := parseLevel(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := parseLevel("verbose")
	assert.Error(t, err)
}

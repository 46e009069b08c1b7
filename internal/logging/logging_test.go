package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_WritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "binder.log")

	logger, err := New(path, false)
	require.NoError(t, err)
	logger.Info("collection loaded")
	logger.Debug("hidden at info level")
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"collection loaded"`)
	assert.Contains(t, string(data), `"logger":"binder"`)
	assert.NotContains(t, string(data), "hidden at info level")
}

func TestNew_VerboseEnablesDebug(t *testing.T) {
	path := filepath.Join(t.TempDir(), "binder.log")

	logger, err := New(path, true)
	require.NoError(t, err)
	logger.Debug("page rendered")
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "page rendered")
}

func TestNew_EmptyPath(t *testing.T) {
	_, err := New("  ", false)
	require.Error(t, err)
}

func TestNop(t *testing.T) {
	require.NotNil(t, Nop())
}

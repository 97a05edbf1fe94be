package logger

import (
	"os"
	"path/filepath"
	"testing"

	logrustest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitWritesProbe(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gdtpack.log")
	require.NoError(t, Init(Config{Level: "debug", Format: "json", File: path}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Logger initialization test")
}

func TestInitRejectsBadLevel(t *testing.T) {
	err := Init(Config{Level: "loud", Format: "text"})
	assert.Error(t, err)
}

func TestNewLoggerAddsModuleField(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gdtpack.log")
	require.NoError(t, Init(Config{Level: "debug", Format: "text", File: path}))

	log := NewLogger("update")
	hook := logrustest.NewLocal(log.Logger)
	log.Info("checking")

	entries := hook.AllEntries()
	require.Len(t, entries, 1)
	assert.Equal(t, "update", entries[0].Data["module"])
	assert.Equal(t, "checking", entries[0].Message)
}

func TestInitPlainWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "updater.log")
	InitPlain(path)

	NewLogger("replace").WithFields(Fields{"state": "STARTED"}).Info("Updater started")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), " - Updater started state=STARTED")
	assert.NotContains(t, string(data), "module=", "the module field stays out of the plain log")
}

package initializer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gdt-tools/gdtpack/pkg/logger"
	"github.com/gdt-tools/gdtpack/pkg/models"
)

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "gdtpack-initializer-test-")
	if err != nil {
		panic(err)
	}

	if err := logger.Init(logger.Config{
		Level:  "debug",
		Format: "text",
		File:   filepath.Join(dir, "test.log"),
	}); err != nil {
		panic(err)
	}

	code := m.Run()
	os.RemoveAll(dir)
	os.Exit(code)
}

func TestEnsureAppDirs(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))

	require.NoError(t, NewInitializer().EnsureAppDirs())

	for _, dir := range []string{
		filepath.Join(home, ".config", models.AppName),
		filepath.Join(home, ".config", models.AppName, "logs"),
		filepath.Join(home, ".config", models.AppName, models.UpdaterDirName),
	} {
		info, err := os.Stat(dir)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	}
}

func TestEnsureAppDirsIdempotent(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))

	init := NewInitializer()
	require.NoError(t, init.EnsureAppDirs())
	require.NoError(t, init.EnsureAppDirs())
}

func TestCleanStaleArtifactsRemovesBackup(t *testing.T) {
	exe, err := os.Executable()
	require.NoError(t, err)

	backup := models.BackupPath(exe)
	require.NoError(t, os.WriteFile(backup, []byte("previous build"), 0755))
	t.Cleanup(func() { os.Remove(backup) })

	NewInitializer().CleanStaleArtifacts()
	assert.NoFileExists(t, backup)
}

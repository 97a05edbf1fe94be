package models

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserDirLayout(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))

	app, err := AppDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".config", AppName), app)

	logs, err := LogDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(app, "logs"), logs)

	updater, err := UpdaterDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(app, UpdaterDirName), updater)

	path, err := UpdaterPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(updater, UpdaterBinaryName), path)
}

func TestPayloadPath(t *testing.T) {
	assert.Equal(t, filepath.Join(os.TempDir(), PayloadFileName), PayloadPath())
}

func TestSiblingPaths(t *testing.T) {
	assert.Equal(t, "/opt/bin/gdtpack.old", BackupPath("/opt/bin/gdtpack"))
	assert.Equal(t, "/opt/bin/gdtpack.failed", FailedPath("/opt/bin/gdtpack"))
}

func TestReplaceJobArgs(t *testing.T) {
	job := ReplaceJob{
		CurrentExePath: "/opt/bin/gdtpack",
		NewExePath:     "/tmp/gdtpack.new",
		UpdaterPath:    "/home/u/.config/gdtpack/updater/gdtpack-updater",
	}
	assert.Equal(t, []string{"/opt/bin/gdtpack", "/tmp/gdtpack.new"}, job.Args())
}

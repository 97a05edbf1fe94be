package update

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gdt-tools/gdtpack/pkg/logger"
	"github.com/gdt-tools/gdtpack/pkg/models"
)

type recordingRunner struct {
	pid   int
	err   error
	calls int
	path  string
	args  []string
	env   []string
}

func (r *recordingRunner) StartDetached(path string, args []string, env []string) (int, error) {
	r.calls++
	r.path = path
	r.args = args
	r.env = env
	if r.err != nil {
		return 0, r.err
	}
	return r.pid, nil
}

func writeUpdaterStub(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), models.UpdaterBinaryName)
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"), 0755))
	return path
}

func TestLaunchMissingUpdater(t *testing.T) {
	runner := &recordingRunner{}
	l := &Launcher{runner: runner, logger: logger.NewLogger("update-launcher")}

	err := l.Launch(models.ReplaceJob{
		CurrentExePath: "/opt/bin/gdtpack",
		NewExePath:     "/tmp/gdtpack.new",
		UpdaterPath:    filepath.Join(t.TempDir(), models.UpdaterBinaryName),
	})
	assert.ErrorIs(t, err, ErrUpdaterMissing)
	assert.Zero(t, runner.calls)
}

func TestLaunchPassesJobAndParentPID(t *testing.T) {
	updater := writeUpdaterStub(t)
	runner := &recordingRunner{pid: 777}
	l := &Launcher{runner: runner, logger: logger.NewLogger("update-launcher")}

	require.NoError(t, l.Launch(models.ReplaceJob{
		CurrentExePath: "/opt/bin/gdtpack",
		NewExePath:     "/tmp/gdtpack.new",
		UpdaterPath:    updater,
	}))

	assert.Equal(t, updater, runner.path)
	assert.Equal(t, []string{"/opt/bin/gdtpack", "/tmp/gdtpack.new"}, runner.args)
	assert.Contains(t, runner.env, fmt.Sprintf("%s=%d", models.ParentPIDEnv, os.Getpid()),
		"parent pid must be in the child environment")
}

func TestLaunchSpawnFailure(t *testing.T) {
	updater := writeUpdaterStub(t)
	runner := &recordingRunner{err: errors.New("fork failed")}
	l := &Launcher{runner: runner, logger: logger.NewLogger("update-launcher")}

	err := l.Launch(models.ReplaceJob{UpdaterPath: updater})
	assert.ErrorIs(t, err, ErrHandoffFailed)
}

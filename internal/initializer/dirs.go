package initializer

import (
	"fmt"
	"os"

	"github.com/gdt-tools/gdtpack/pkg/models"
	"github.com/gdt-tools/gdtpack/pkg/tools"
)

// EnsureAppDirs creates the per-user directories the session relies on:
// the application root, the log directory and the updater cache.
func (i *Initializer) EnsureAppDirs() error {
	for _, resolve := range []func() (string, error){
		models.AppDir,
		models.LogDir,
		models.UpdaterDir,
	} {
		dir, err := resolve()
		if err != nil {
			return fmt.Errorf("failed to resolve application directory: %w", err)
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}
	return nil
}

// CleanStaleArtifacts handles leftovers beside the running executable from
// earlier update attempts. A lingering backup means a previous swap
// finished but its cleanup step did not, so it is safe to remove; a parked
// failed payload is kept for inspection and only reported.
func (i *Initializer) CleanStaleArtifacts() {
	exe, err := os.Executable()
	if err != nil {
		i.Logger.Warnf("cannot resolve executable path: %v", err)
		return
	}

	backup := models.BackupPath(exe)
	if err := os.Remove(backup); err == nil {
		i.Logger.Infof("Removed leftover backup from a completed update: %s", backup)
	} else if !os.IsNotExist(err) {
		i.Logger.Warnf("Could not remove leftover backup %s: %v", backup, err)
	}

	failed := models.FailedPath(exe)
	if tools.FileExists(failed) {
		i.Logger.Warnf("A previous update left a failed payload at %s", failed)
	}
}

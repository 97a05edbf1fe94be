package update

import (
	"fmt"
	"os"

	"github.com/gdt-tools/gdtpack/internal/proc"
	"github.com/gdt-tools/gdtpack/pkg/logger"
	"github.com/gdt-tools/gdtpack/pkg/models"
	"github.com/gdt-tools/gdtpack/pkg/tools"
)

// Launcher hands the replace job off to the updater process.
type Launcher struct {
	runner proc.Runner
	logger *logger.Logger
}

// NewLauncher creates a launcher spawning real processes.
func NewLauncher() *Launcher {
	return &Launcher{
		runner: proc.NewRunner(),
		logger: logger.NewLogger("update-launcher"),
	}
}

// Launch spawns the updater detached with the current executable and the
// downloaded payload as arguments, plus this process's pid in the
// environment so the helper can wait for it to exit. Fire and forget: the
// child is never waited on and no health check is performed; after a
// successful spawn the caller is expected to terminate promptly so the
// swap can proceed.
func (l *Launcher) Launch(job models.ReplaceJob) error {
	if !tools.FileExists(job.UpdaterPath) {
		return fmt.Errorf("%w: %s", ErrUpdaterMissing, job.UpdaterPath)
	}

	env := append(os.Environ(), fmt.Sprintf("%s=%d", models.ParentPIDEnv, os.Getpid()))

	pid, err := l.runner.StartDetached(job.UpdaterPath, job.Args(), env)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrHandoffFailed, err)
	}

	l.logger.WithFields(logger.Fields{
		"pid":     pid,
		"updater": job.UpdaterPath,
		"current": job.CurrentExePath,
		"payload": job.NewExePath,
	}).Info("Updater process launched")
	return nil
}

package proc

import (
	"fmt"
	"os/exec"
	"path/filepath"
	"syscall"

	"github.com/gdt-tools/gdtpack/pkg/logger"
)

// StartDetached launches path in its own session so it keeps running after
// this process exits. The child is started with its stdio detached and its
// handle released immediately; it is never waited on. A nil env inherits
// the parent environment.
func (r *ProcessRunner) StartDetached(path string, args []string, env []string) (int, error) {
	cmd := exec.Command(path, args...)
	cmd.Dir = filepath.Dir(path)
	cmd.Env = env
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}

	if err := cmd.Start(); err != nil {
		r.logger.Errorf("failed to start %s: %v", path, err)
		return 0, fmt.Errorf("failed to start %s: %w", path, err)
	}

	pid := cmd.Process.Pid
	if err := cmd.Process.Release(); err != nil {
		r.logger.Warnf("failed to release process handle for pid %d: %v", pid, err)
	}

	r.logger.WithFields(logger.Fields{"path": path, "pid": pid}).Debug("Detached process started")
	return pid, nil
}

package replace

import (
	"context"
	"os"
	"strconv"
	"time"

	"golang.org/x/sys/unix"

	"github.com/gdt-tools/gdtpack/pkg/logger"
	"github.com/gdt-tools/gdtpack/pkg/models"
)

const defaultPollInterval = 200 * time.Millisecond

// ParentWaiter blocks until the process whose binary is being replaced has
// exited.
type ParentWaiter interface {
	WaitForExit(ctx context.Context, pid int) error
}

// PollWaiter probes the pid with a zero signal until the kernel reports it
// gone.
type PollWaiter struct {
	logger   *logger.Logger
	interval time.Duration
}

// NewPollWaiter creates a waiter with the default poll interval.
func NewPollWaiter() *PollWaiter {
	return &PollWaiter{
		logger:   logger.NewLogger("replace-wait"),
		interval: defaultPollInterval,
	}
}

// WaitForExit blocks until pid no longer exists or ctx expires.
func (w *PollWaiter) WaitForExit(ctx context.Context, pid int) error {
	interval := w.interval
	if interval <= 0 {
		interval = defaultPollInterval
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if !processAlive(pid) {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// processAlive probes pid with signal 0. ESRCH means the process is gone;
// EPERM means it exists but belongs to another user, which counts as alive.
func processAlive(pid int) bool {
	err := unix.Kill(pid, 0)
	if err == nil {
		return true
	}
	return err != unix.ESRCH
}

// ParentPID reads the pid handed over by the launcher. Zero when the
// variable is absent or malformed, which selects the fixed-sleep fallback.
func ParentPID() int {
	raw := os.Getenv(models.ParentPIDEnv)
	if raw == "" {
		return 0
	}
	pid, err := strconv.Atoi(raw)
	if err != nil || pid <= 0 {
		return 0
	}
	return pid
}

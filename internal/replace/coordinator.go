package replace

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/gdt-tools/gdtpack/internal/proc"
	"github.com/gdt-tools/gdtpack/pkg/logger"
	"github.com/gdt-tools/gdtpack/pkg/models"
	"github.com/gdt-tools/gdtpack/pkg/tools"
)

const (
	// defaultWaitDeadline bounds the parent-exit poll before the fixed
	// sleep takes over.
	defaultWaitDeadline = 30 * time.Second

	// defaultFallbackSleep is the blind wait used when the parent pid is
	// unknown or still alive at the deadline.
	defaultFallbackSleep = 5 * time.Second
)

// state names the phases of one replace run. Every transition is logged.
type state string

const (
	stateStarted  state = "STARTED"
	stateWaiting  state = "WAITING"
	stateSwapped  state = "SWAPPED"
	stateLaunched state = "LAUNCHED"
	stateExited   state = "EXITED"
	stateAborted  state = "ABORTED"
)

var (
	// ErrReplaceFailed marks a swap or relaunch failure. The coordinator
	// exits non-zero with the original executable back in place whenever
	// the rollback succeeded.
	ErrReplaceFailed = errors.New("binary replace failed")

	// ErrUsage is returned when the positional arguments are missing.
	ErrUsage = errors.New("missing arguments")
)

// Coordinator drives the updater process: wait for the parent to exit,
// swap the binary, relaunch it, clean up. It never touches its own
// executable, which is what makes the in-process replace legal.
type Coordinator struct {
	waiter ParentWaiter
	runner proc.Runner
	logger *logger.Logger

	waitDeadline  time.Duration
	fallbackSleep time.Duration
}

// NewCoordinator wires the real parent waiter and process runner.
func NewCoordinator() *Coordinator {
	return &Coordinator{
		waiter:        NewPollWaiter(),
		runner:        proc.NewRunner(),
		logger:        logger.NewLogger("replace"),
		waitDeadline:  defaultWaitDeadline,
		fallbackSleep: defaultFallbackSleep,
	}
}

// Run executes the replace sequence for the given positional arguments
// (current executable path, new payload path). A non-nil return means the
// run aborted and the process must exit non-zero.
func (c *Coordinator) Run(ctx context.Context, args []string) error {
	if len(args) < 2 {
		c.logger.Errorf("Usage: %s <current-exe> <new-exe>", models.UpdaterBinaryName)
		c.abort(fmt.Errorf("%w: expected 2 arguments, got %d", ErrUsage, len(args)))
		return ErrUsage
	}
	current, payload := args[0], args[1]

	c.logState(stateStarted, "Updater started", logger.Fields{
		"current": current,
		"new":     payload,
	})

	if !tools.FileExists(payload) {
		err := fmt.Errorf("payload not found: %s", payload)
		c.abort(err)
		return err
	}
	c.removeStaleBackup(current)

	c.waitForParent(ctx)

	if err := c.swap(current, payload); err != nil {
		c.abort(err)
		return err
	}
	c.logState(stateSwapped, "Binary replaced", logger.Fields{"target": current})

	pid, err := c.runner.StartDetached(current, nil, nil)
	if err != nil {
		c.restoreAfterFailedLaunch(current)
		err = fmt.Errorf("%w: relaunching %s: %v", ErrReplaceFailed, current, err)
		c.abort(err)
		return err
	}
	c.logState(stateLaunched, "Updated binary launched", logger.Fields{"pid": pid})

	// The backup is dropped only now that the new binary is running.
	backup := models.BackupPath(current)
	if err := os.Remove(backup); err != nil && !os.IsNotExist(err) {
		c.logger.Warnf("Could not remove backup %s: %v", backup, err)
	}

	c.logState(stateExited, "Update complete, updater exiting", nil)
	return nil
}

// waitForParent blocks until the process being replaced is gone. An absent
// or malformed pid and an expired deadline degrade to the fixed sleep;
// after that the swap proceeds best-effort, as the original did.
func (c *Coordinator) waitForParent(ctx context.Context) {
	pid := ParentPID()
	c.logState(stateWaiting, "Waiting for main process to exit", logger.Fields{"pid": pid})

	if pid > 0 && c.waiter != nil {
		waitCtx, cancel := context.WithTimeout(ctx, c.waitDeadline)
		err := c.waiter.WaitForExit(waitCtx, pid)
		cancel()
		if err == nil {
			c.logger.Infof("Main process %d exited", pid)
			return
		}
		c.logger.Warnf("Main process %d still running after %s, using fixed sleep: %v", pid, c.waitDeadline, err)
	} else {
		c.logger.Warnf("No usable pid in %s, using fixed sleep", models.ParentPIDEnv)
	}

	select {
	case <-ctx.Done():
	case <-time.After(c.fallbackSleep):
	}
}

// removeStaleBackup clears a leftover backup from a previous run so it
// cannot shadow this run's rollback copy.
func (c *Coordinator) removeStaleBackup(target string) {
	backup := models.BackupPath(target)
	if err := os.Remove(backup); err == nil {
		c.logger.Warnf("Removed stale backup from a previous update: %s", backup)
	} else if !os.IsNotExist(err) {
		c.logger.Warnf("Could not remove stale backup %s: %v", backup, err)
	}
}

func (c *Coordinator) logState(s state, msg string, fields logger.Fields) {
	if fields == nil {
		fields = logger.Fields{}
	}
	fields["state"] = string(s)
	c.logger.WithFields(fields).Info(msg)
}

func (c *Coordinator) abort(err error) {
	c.logState(stateAborted, "Update aborted", logger.Fields{"error": err})
}

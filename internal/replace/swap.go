package replace

import (
	"fmt"
	"os"

	"github.com/gdt-tools/gdtpack/pkg/logger"
	"github.com/gdt-tools/gdtpack/pkg/models"
	"github.com/gdt-tools/gdtpack/pkg/tools"
)

// swap replaces target with payload: the running binary is set aside as a
// backup before the payload moves into place, so a failed move can always
// be rolled back and the user is never left without a working executable.
// The move is a rename when both paths share a filesystem, a copy+fsync
// otherwise.
func (c *Coordinator) swap(target, payload string) error {
	backup := models.BackupPath(target)

	if err := os.Rename(target, backup); err != nil {
		return fmt.Errorf("%w: setting current binary aside: %v", ErrReplaceFailed, err)
	}
	c.logger.WithFields(logger.Fields{"backup": backup}).Info("Current binary set aside")

	if err := tools.MoveFile(c.logger, payload, target); err != nil {
		if restoreErr := os.Rename(backup, target); restoreErr != nil {
			c.logger.Errorf("Rollback failed, original binary left at %s: %v", backup, restoreErr)
		} else {
			c.logger.Info("Original binary restored after failed move")
		}
		return fmt.Errorf("%w: moving payload into place: %v", ErrReplaceFailed, err)
	}

	if err := os.Chmod(target, 0755); err != nil {
		c.logger.Warnf("Could not set executable mode on %s: %v", target, err)
	}
	return nil
}

// restoreAfterFailedLaunch puts the backup back as target and parks the
// payload that would not start as <target>.failed for inspection.
func (c *Coordinator) restoreAfterFailedLaunch(target string) {
	backup := models.BackupPath(target)
	failed := models.FailedPath(target)

	if err := os.Rename(target, failed); err != nil {
		c.logger.Errorf("Could not set failed binary aside: %v", err)
	} else {
		c.logger.WithFields(logger.Fields{"failed": failed}).Warn("New binary parked for inspection")
	}

	if err := os.Rename(backup, target); err != nil {
		c.logger.Errorf("Could not restore original binary from %s: %v", backup, err)
	} else {
		c.logger.Info("Original binary restored")
	}
}

package models

import (
	"os"
	"path/filepath"
)

const (
	// AppName is the fixed per-user application folder name.
	AppName = "gdtpack"

	// UpdaterDirName is the folder under the app dir holding the updater binary.
	UpdaterDirName = "updater"

	// UpdaterBinaryName is the helper executable performing the binary swap.
	UpdaterBinaryName = "gdtpack-updater"

	// PayloadFileName is the fixed staging name for a downloaded release in
	// the OS temp directory. A new download truncates whatever is there.
	PayloadFileName = "gdtpack.new"

	// UpdaterLogName is the log file kept beside the updater executable.
	UpdaterLogName = "updater.log"

	// BackupSuffix marks the previous binary set aside during a swap.
	BackupSuffix = ".old"

	// FailedSuffix marks a payload set aside after a failed relaunch.
	FailedSuffix = ".failed"

	// ParentPIDEnv carries the main process pid to the updater so it can
	// wait for the binary under replacement to exit.
	ParentPIDEnv = "GDTPACK_PARENT_PID"
)

// AppDir returns the per-user application directory.
func AppDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, AppName), nil
}

// LogDir returns the directory for the main process log files.
func LogDir() (string, error) {
	dir, err := AppDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "logs"), nil
}

// UpdaterDir returns the directory caching the updater binary.
func UpdaterDir() (string, error) {
	dir, err := AppDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, UpdaterDirName), nil
}

// UpdaterPath returns the cached updater binary location.
func UpdaterPath() (string, error) {
	dir, err := UpdaterDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, UpdaterBinaryName), nil
}

// PayloadPath returns the fixed staging path for a downloaded release.
func PayloadPath() string {
	return filepath.Join(os.TempDir(), PayloadFileName)
}

// BackupPath returns the set-aside location of the binary being replaced.
func BackupPath(target string) string {
	return target + BackupSuffix
}

// FailedPath returns where a payload is parked when its relaunch failed.
func FailedPath(target string) string {
	return target + FailedSuffix
}

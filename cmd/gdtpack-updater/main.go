// gdtpack-updater is the helper process that replaces the gdtpack binary.
// It is invoked by gdtpack as
//
//	gdtpack-updater <current-exe> <new-exe>
//
// with the parent pid in the environment, waits for the parent to exit,
// swaps the binary with a rollback backup and relaunches it. Everything it
// does is logged to updater.log beside this executable.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gdt-tools/gdtpack/internal/replace"
	"github.com/gdt-tools/gdtpack/pkg/logger"
	"github.com/gdt-tools/gdtpack/pkg/models"
)

func main() {
	exe, err := os.Executable()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cannot resolve updater executable path: %v\n", err)
		os.Exit(1)
	}

	logger.InitPlain(filepath.Join(filepath.Dir(exe), models.UpdaterLogName))

	coordinator := replace.NewCoordinator()
	if err := coordinator.Run(context.Background(), os.Args[1:]); err != nil {
		os.Exit(1)
	}
}

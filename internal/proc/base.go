package proc

import (
	"github.com/gdt-tools/gdtpack/pkg/logger"
)

// Runner abstracts detached process startup so the update and replace
// paths can be tested without spawning real children.
type Runner interface {
	StartDetached(path string, args []string, env []string) (int, error)
}

type ProcessRunner struct {
	logger *logger.Logger
}

func NewRunner() *ProcessRunner {
	return &ProcessRunner{logger: logger.NewLogger("proc")}
}

package initializer

import (
	"github.com/gdt-tools/gdtpack/pkg/logger"
)

type Initializer struct {
	Logger *logger.Logger
}

func NewInitializer() *Initializer {
	return &Initializer{
		Logger: logger.NewLogger("initializer"),
	}
}

package replace

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gdt-tools/gdtpack/pkg/logger"
)

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "gdtpack-replace-test-")
	if err != nil {
		panic(err)
	}

	if err := logger.Init(logger.Config{
		Level:  "debug",
		Format: "text",
		File:   filepath.Join(dir, "test.log"),
	}); err != nil {
		panic(err)
	}

	code := m.Run()
	os.RemoveAll(dir)
	os.Exit(code)
}

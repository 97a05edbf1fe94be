package main

import (
	"github.com/gdt-tools/gdtpack/cmd"
	"github.com/gdt-tools/gdtpack/pkg/logger"
)

var version = "1.2.2"

func main() {
	if err := cmd.Execute(version); err != nil {
		logger.Fatalf("Error: %v", err)
	}
}

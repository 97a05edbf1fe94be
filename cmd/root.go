package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gdt-tools/gdtpack/internal/config"
)

var (
	cfgFile string
	Cfg     *config.Config
	Version string
)

var RootCmd = &cobra.Command{
	Use:   "gdtpack",
	Short: "GDT Packer - a per-user asset packing tool with self update",
	Long:  `GDT Packer packs game asset files and keeps itself current through a two-process self-update mechanism.`,
}

func Execute(version string) error {
	Version = version
	return RootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)
	RootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./config.yaml or $HOME/.config/gdtpack/config.yaml)")
}

func initConfig() {
	var err error

	// Load configuration; an empty path searches the default locations and
	// falls back to built-in defaults when no file exists.
	Cfg, err = config.LoadConfig(cfgFile)
	if err != nil {
		fmt.Printf("Fatal: Configuration could not be loaded: %v\n", err)
		os.Exit(1)
	}
}

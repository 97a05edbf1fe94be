package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gdt-tools/gdtpack/internal/ui"
	"github.com/gdt-tools/gdtpack/internal/update"
	"github.com/gdt-tools/gdtpack/pkg/logger"
)

var updateYes bool

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Check for a new release and apply it",
	Long: `Run one update cycle immediately: fetch the release document, compare
versions, download the new binary after confirmation and hand off to the
updater process. After a successful handoff gdtpack exits so the binary
can be replaced.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		log := logger.NewLogger("update")

		service := update.NewService(Cfg, Version, choosePrompter(updateYes))
		outcome := service.RunOnce(cmd.Context())

		switch outcome {
		case update.OutcomeUpToDate:
			fmt.Printf("%s is up to date (version %s)\n", RootCmd.Use, Version)
			return nil
		case update.OutcomeDeclined:
			log.Info("Update declined, nothing changed")
			return nil
		case update.OutcomeHandedOff:
			// The updater is now waiting for this process to exit.
			return nil
		default:
			return fmt.Errorf("update failed: %s", outcome)
		}
	},
}

// choosePrompter picks the consent collaborator: --yes forces approval, an
// attached terminal asks the user, and headless sessions fall back to the
// configured auto-apply answer.
func choosePrompter(assumeYes bool) ui.Prompter {
	if assumeYes {
		return ui.StaticPrompter{Answer: true}
	}
	if ui.IsTerminal() {
		return ui.NewTerminalPrompter()
	}
	return ui.StaticPrompter{Answer: Cfg.Update.AutoApply}
}

func init() {
	updateCmd.Flags().BoolVarP(&updateYes, "yes", "y", false, "apply the update without asking for confirmation")
	RootCmd.AddCommand(updateCmd)
}

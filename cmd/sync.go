package cmd

import (
	"fmt"
	"os"

	"steam-ledger/feature/report"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var syncNoArchive bool

// syncCmd runs one full pass.
var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Run one full sync pass",
	Long: `Runs catalog, ownership, details, playtime, wishlist and notes synchronization in that order.
Release date changes and newly released games are printed when the pass ends.
When storage is enabled the pass report is archived and old reports are pruned.`,
	RunE: runSync,
}

func init() {
	syncCmd.Flags().BoolVar(&syncNoArchive, "no-archive", false, "Do not archive the pass report even when storage is enabled")
	RootCmd.AddCommand(syncCmd)
}

func runSync(cmd *cobra.Command, args []string) error {
	a, err := bootstrap()
	if err != nil {
		return err
	}
	defer a.close()

	orch, err := a.orchestrator()
	if err != nil {
		return err
	}

	notifier := report.NewPrintNotifier(os.Stdout)
	res, runErr := orch.Run(cmd.Context())
	if res != nil {
		if err := notifier.Notify(res.Events); err != nil {
			a.logger.Warn("Failed to print events", zap.Error(err))
		}
		if err := notifier.Summary(res); err != nil {
			a.logger.Warn("Failed to print summary", zap.Error(err))
		}
		if !syncNoArchive {
			archiver, err := a.archiver()
			if err != nil {
				a.logger.Warn("Report archive unavailable", zap.Error(err))
			}
			archiveReport(cmd.Context(), archiver, a.logger, res)
		}
	}
	if runErr != nil {
		return fmt.Errorf("sync failed: %w", runErr)
	}
	return nil
}

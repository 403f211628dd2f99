package cmd

import (
	"fmt"

	"steam-ledger/core/reconcile"
	"steam-ledger/feature/steam"
	steamsync "steam-ledger/feature/sync"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var wishlistDryRun bool

// wishlistCmd reconciles the stored wishlist only.
var wishlistCmd = &cobra.Command{
	Use:   "wishlist",
	Short: "Reconcile the stored wishlist with Steam",
	Long: `Fetches the wishlist and reconciles the stored one: games no longer wishlisted are
marked deleted, new ones are recorded and returning ones are restored.

Examples:
  # Show what would change
  wishlist --dry-run

  # Apply
  wishlist`,
	RunE: runWishlist,
}

func init() {
	wishlistCmd.Flags().BoolVar(&wishlistDryRun, "dry-run", false, "Print the plan without changing anything")
	RootCmd.AddCommand(wishlistCmd)
}

func runWishlist(cmd *cobra.Command, args []string) error {
	a, err := bootstrap()
	if err != nil {
		return err
	}
	defer a.close()

	if err := a.cfg.ValidateLibrary(); err != nil {
		return err
	}

	client := steam.NewClient(a.cfg.Steam, a.logger.Named("steam"))
	w := steamsync.NewWishlist(client, a.store, a.cfg.Steam.UserID, a.cfg.Sync, a.logger.Named("wishlist"))

	res, err := w.Sync(cmd.Context(), reconcile.Options{DryRun: wishlistDryRun})
	if err != nil {
		return fmt.Errorf("wishlist failed: %w", err)
	}

	printWishlistPlan(a.logger, res.Plan)
	if wishlistDryRun {
		a.logger.Info("Dry-run mode: No changes were made.")
		return nil
	}
	if res.Applied.Failed > 0 {
		return fmt.Errorf("wishlist reconciliation incomplete: %d actions failed", res.Applied.Failed)
	}
	return nil
}

// printWishlistPlan logs the plan summary and a sample of its actions.
func printWishlistPlan(l *zap.Logger, plan *steamsync.WishlistPlan) {
	s := plan.Summary
	l.Info("Wishlist plan",
		zap.Int("stored", s.Stored),
		zap.Int("snapshot", s.Snapshot),
		zap.Int("unchanged", s.Unchanged),
		zap.Int("inserts", s.Inserts),
		zap.Int("removes", s.Removes),
	)

	const maxShow = 10
	for i, action := range plan.Actions {
		if i == maxShow {
			l.Info("Additional actions not shown", zap.Int("count", len(plan.Actions)-maxShow))
			break
		}
		l.Info("Planned action",
			zap.String("type", string(action.Type)),
			zap.Stringer("game", action.Key),
			zap.String("reason", action.Reason),
		)
	}
}

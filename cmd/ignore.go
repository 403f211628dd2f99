package cmd

import (
	"fmt"
	"time"

	"steam-ledger/core/utils"
	"steam-ledger/feature/games/models"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var ignoreGames string

// ignoreCmd marks games that should never be looked up.
var ignoreCmd = &cobra.Command{
	Use:   "ignore-game",
	Short: "Exclude games from detail lookups",
	Long: `Stores the given app ids as ignored. Ignored games are never picked for detail backfill.
Ids already ignored are left untouched.

Examples:
  ignore-game --games 10,20,30`,
	RunE: runIgnore,
}

func init() {
	ignoreCmd.Flags().StringVar(&ignoreGames, "games", "", "Comma separated app ids")
	_ = ignoreCmd.MarkFlagRequired("games")
	RootCmd.AddCommand(ignoreCmd)
}

func runIgnore(cmd *cobra.Command, args []string) error {
	ids, err := utils.ParseList(ignoreGames, models.ParseGameId)
	if err != nil {
		return fmt.Errorf("invalid --games: %w", err)
	}
	if len(ids) == 0 {
		return fmt.Errorf("invalid --games: no app ids given")
	}

	a, err := bootstrap()
	if err != nil {
		return err
	}
	defer a.close()

	inserted, err := a.store.InsertIgnored(cmd.Context(), utils.Unique(ids), time.Now().UTC())
	if err != nil {
		return err
	}
	a.logger.Info("Games ignored", zap.Int("given", len(ids)), zap.Int("inserted", inserted))
	return nil
}

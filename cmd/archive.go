package cmd

import (
	"context"

	"steam-ledger/feature/report"
	steamsync "steam-ledger/feature/sync"

	"go.uber.org/zap"
)

// archiveReport stores res and prunes old reports. Failures are logged only.
func archiveReport(ctx context.Context, archiver *report.Archiver, l *zap.Logger, res *steamsync.Result) {
	if archiver == nil {
		return
	}
	name, err := archiver.Archive(ctx, res)
	if err != nil {
		l.Warn("Failed to archive report", zap.Error(err))
		return
	}
	l.Info("Report archived", zap.String("object", name))

	if _, err := archiver.Prune(ctx); err != nil {
		l.Warn("Failed to prune reports", zap.Error(err))
	}
}

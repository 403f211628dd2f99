package sync

import (
	"context"
	"fmt"
	"time"

	"steam-ledger/core/utils"
	"steam-ledger/feature/games/models"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Library pulls library provider data into the store.
type Library struct {
	client  LibraryClient
	store   Store
	cfg     Config
	account string
	logger  *zap.Logger
	now     func() time.Time
}

// NewLibrary creates a library synchronizer for account.
func NewLibrary(client LibraryClient, store Store, account string, cfg Config, logger *zap.Logger) *Library {
	return &Library{
		client:  client,
		store:   store,
		cfg:     cfg,
		account: account,
		logger:  logger,
		now:     time.Now,
	}
}

// SyncCatalog stores catalog entries the store does not know yet.
// Known entries are never rewritten, so a renamed game keeps its first name.
func (l *Library) SyncCatalog(ctx context.Context) (int, error) {
	cctx, cancel := context.WithTimeout(ctx, l.cfg.requestTimeout())
	entries, err := l.client.ListCatalog(cctx)
	cancel()
	if err != nil {
		return 0, fmt.Errorf("list catalog: %w", err)
	}

	byID := make(map[models.GameId]models.CatalogEntry, len(entries))
	ids := make([]models.GameId, 0, len(entries))
	for _, e := range entries {
		if _, dup := byID[e.AppID]; dup {
			continue
		}
		byID[e.AppID] = e
		ids = append(ids, e.AppID)
	}

	unknown, err := l.store.UnknownCatalogIDs(ctx, ids)
	if err != nil {
		return 0, err
	}

	fresh := make([]models.CatalogEntry, 0, len(unknown))
	for _, id := range unknown {
		fresh = append(fresh, byID[id])
	}

	inserted, err := l.store.InsertCatalogEntries(ctx, fresh)
	if err != nil {
		return inserted, err
	}
	l.logger.Info("Catalog synced", zap.Int("listed", len(ids)), zap.Int("inserted", inserted))
	return inserted, nil
}

// SyncOwnership records newly owned games.
func (l *Library) SyncOwnership(ctx context.Context) (int, error) {
	cctx, cancel := context.WithTimeout(ctx, l.cfg.requestTimeout())
	ids, err := l.client.ListOwned(cctx, l.account)
	cancel()
	if err != nil {
		return 0, fmt.Errorf("list owned games: %w", err)
	}

	ids = utils.Unique(ids)
	inserted, err := l.store.InsertOwnership(ctx, ids, l.now().UTC())
	if err != nil {
		return inserted, err
	}
	l.logger.Info("Ownership synced", zap.Int("owned", len(ids)), zap.Int("inserted", inserted))
	return inserted, nil
}

// SyncPlaytime appends playtime rows for games played since the last pass.
func (l *Library) SyncPlaytime(ctx context.Context) (int, error) {
	cctx, cancel := context.WithTimeout(ctx, l.cfg.requestTimeout())
	playtime, err := l.client.ListPlaytime(cctx, l.account)
	cancel()
	if err != nil {
		return 0, fmt.Errorf("list playtime: %w", err)
	}

	now := l.now().UTC()
	records := make([]models.PlaytimeRecord, 0, len(playtime))
	for _, p := range playtime {
		records = append(records, p.Record(now))
	}

	inserted, err := l.store.InsertPlaytime(ctx, records)
	if err != nil {
		return inserted, err
	}
	l.logger.Info("Playtime synced", zap.Int("listed", len(records)), zap.Int("inserted", inserted))
	return inserted, nil
}

// Backfill is the outcome of one detail lookup batch.
type Backfill struct {
	// Candidates lists the ids looked up, in lookup order.
	Candidates []models.GameId
	// Details holds the successful lookups in candidate order.
	Details []models.GameDetails
	// Failed lists the ids whose lookup failed.
	Failed []models.GameId
	// Stored counts the detail records written.
	Stored int
}

// candidates picks the ids to look up this pass. Tracked games without details come
// first; spare capacity goes to unreleased games whose stored details may be stale.
func (l *Library) candidates(ctx context.Context) ([]models.GameId, error) {
	limit := l.cfg.detailLimit()
	ids, err := l.store.BackfillCandidates(ctx, l.cfg.BlacklistThreshold, limit)
	if err != nil {
		return nil, err
	}
	if !l.cfg.RefreshUnreleased || len(ids) >= limit {
		return ids, nil
	}

	refresh, err := l.store.RefreshCandidates(ctx, l.cfg.BlacklistThreshold, limit-len(ids))
	if err != nil {
		return nil, err
	}
	return append(ids, refresh...), nil
}

// FetchDetails looks up store details of the candidate ids without storing them.
// Failed lookups are counted towards the blacklist.
func (l *Library) FetchDetails(ctx context.Context) (*Backfill, error) {
	ids, err := l.candidates(ctx)
	if err != nil {
		return nil, err
	}
	if limit := l.cfg.detailLimit(); len(ids) > limit {
		ids = ids[:limit]
	}

	b := &Backfill{Candidates: ids}
	if len(ids) == 0 {
		return b, nil
	}

	found := make([]*models.GameDetails, len(ids))
	failed := make([]bool, len(ids))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(l.cfg.workers())
	for i, id := range ids {
		g.Go(func() error {
			if gctx.Err() != nil {
				failed[i] = true
				return nil
			}
			cctx, cancel := context.WithTimeout(gctx, l.cfg.requestTimeout())
			defer cancel()

			details, bad, err := l.client.FetchDetails(cctx, []models.GameId{id})
			d, ok := details[id]
			if err != nil || len(bad) > 0 || !ok {
				failed[i] = true
				return nil
			}
			d.AppID = id
			found[i] = &d
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("fetch details: %w", err)
	}

	recorded := l.now().UTC()
	for i, id := range ids {
		if failed[i] {
			b.Failed = append(b.Failed, id)
			continue
		}
		d := *found[i]
		if d.Recorded.IsZero() {
			d.Recorded = recorded
		}
		b.Details = append(b.Details, d)
	}

	if len(b.Failed) > 0 {
		if _, err := l.store.IncrementFailures(ctx, b.Failed); err != nil {
			return nil, err
		}
		l.logger.Warn("Some detail lookups failed", zap.Int("failed", len(b.Failed)))
	}
	return b, nil
}

// StoreDetails upserts the details of a backfill.
func (l *Library) StoreDetails(ctx context.Context, b *Backfill) error {
	stored, err := l.store.UpsertDetails(ctx, b.Details)
	b.Stored = stored
	if err != nil {
		return err
	}
	l.logger.Info("Details backfilled",
		zap.Int("candidates", len(b.Candidates)),
		zap.Int("stored", stored),
		zap.Int("failed", len(b.Failed)),
	)
	return nil
}

// BackfillDetails fetches and stores details in one go.
func (l *Library) BackfillDetails(ctx context.Context) (*Backfill, error) {
	b, err := l.FetchDetails(ctx)
	if err != nil {
		return nil, err
	}
	if err := l.StoreDetails(ctx, b); err != nil {
		return b, err
	}
	return b, nil
}

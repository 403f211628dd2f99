package sync

import (
	"context"
	"fmt"
	"time"

	"steam-ledger/core/reconcile"
	"steam-ledger/feature/games/models"

	"go.uber.org/zap"
)

// WishlistPlan is a planned wishlist reconciliation.
type WishlistPlan = reconcile.Plan[models.GameId, models.WishlistedGame]

// WishlistResult reports one wishlist reconciliation.
type WishlistResult struct {
	Plan    *WishlistPlan         `json:"plan"`
	Applied reconcile.ApplyResult `json:"applied"`
}

// Wishlist keeps the stored wishlist in step with the provider's.
type Wishlist struct {
	client  LibraryClient
	store   Store
	cfg     Config
	account string
	logger  *zap.Logger
	now     func() time.Time
}

// NewWishlist creates a wishlist reconciler for account.
func NewWishlist(client LibraryClient, store Store, account string, cfg Config, logger *zap.Logger) *Wishlist {
	return &Wishlist{
		client:  client,
		store:   store,
		cfg:     cfg,
		account: account,
		logger:  logger,
		now:     time.Now,
	}
}

// wishlistMutator applies wishlist plans to the store.
type wishlistMutator struct {
	store Store
	now   time.Time
}

func (m wishlistMutator) RemoveBatch(ctx context.Context, ids []models.GameId) error {
	return m.store.SoftDeleteWishlist(ctx, ids, m.now)
}

func (m wishlistMutator) Insert(ctx context.Context, item models.WishlistedGame) error {
	return m.store.UpsertWishlist(ctx, item)
}

func wishlistKey(item models.WishlistedGame) models.GameId { return item.AppID }

// Fetch reads the current wishlist from the provider.
func (w *Wishlist) Fetch(ctx context.Context) ([]models.WishlistedGame, error) {
	cctx, cancel := context.WithTimeout(ctx, w.cfg.requestTimeout())
	defer cancel()

	items, err := w.client.ListWishlist(cctx, w.account)
	if err != nil {
		return nil, fmt.Errorf("list wishlist: %w", err)
	}
	return items, nil
}

// Reconcile makes the stored wishlist match snapshot. Games gone from the snapshot are
// tombstoned in one statement; games new to the store are upserted one by one, and
// inserts are attempted even when the tombstoning failed. Apply failures are logged and
// counted in the result rather than returned.
func (w *Wishlist) Reconcile(ctx context.Context, snapshot []models.WishlistedGame, opts reconcile.Options) (*WishlistResult, error) {
	stored, err := w.store.ActiveWishlistIDs(ctx)
	if err != nil {
		return nil, err
	}

	plan := reconcile.Diff(stored, snapshot, wishlistKey, opts)
	result := &WishlistResult{Plan: plan}
	if opts.DryRun || plan.Empty() {
		return result, nil
	}

	applied, err := reconcile.ApplyPlan(ctx, wishlistMutator{store: w.store, now: w.now().UTC()}, plan, opts)
	result.Applied = applied
	if err != nil {
		w.logger.Warn("Wishlist reconciliation incomplete", zap.Int("failed", applied.Failed), zap.Error(err))
	}

	w.logger.Info("Wishlist reconciled",
		zap.Int("removed", applied.Removed),
		zap.Int("inserted", applied.Inserted),
		zap.Int("unchanged", plan.Summary.Unchanged),
	)
	return result, nil
}

// Sync fetches the wishlist and reconciles it.
func (w *Wishlist) Sync(ctx context.Context, opts reconcile.Options) (*WishlistResult, error) {
	snapshot, err := w.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	return w.Reconcile(ctx, snapshot, opts)
}

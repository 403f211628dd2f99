package sync

import (
	"context"
	"testing"
	"time"

	"steam-ledger/core/reconcile"
	"steam-ledger/feature/games/models"
	"steam-ledger/feature/sync/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestWishlistReconcile(t *testing.T) {
	st := setupStore(t)
	ctx := context.Background()
	old := time.Date(2010, 1, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, st.UpsertWishlist(ctx, models.WishlistedGame{AppID: 666, Wishlisted: old}))
	require.NoError(t, st.UpsertWishlist(ctx, models.WishlistedGame{AppID: 1, Wishlisted: old}))

	w := NewWishlist(&mocks.LibraryClient{}, st, "STEAMID", DefaultConfig(), zap.NewNop())

	t.Run("Dry run only plans", func(t *testing.T) {
		res, err := w.Reconcile(ctx, wishlistFixture(), reconcile.Options{DryRun: true})
		require.NoError(t, err)
		assert.Equal(t, []models.GameId{1}, res.Plan.Keys(reconcile.ActionRemove))
		assert.Equal(t, []models.GameId{666666}, res.Plan.Keys(reconcile.ActionInsert))
		assert.Equal(t, 1, res.Plan.Summary.Unchanged)

		active, err := st.ActiveWishlistIDs(ctx)
		require.NoError(t, err)
		assert.Equal(t, []models.GameId{1, 666}, active)
	})

	t.Run("Apply", func(t *testing.T) {
		res, err := w.Reconcile(ctx, wishlistFixture(), reconcile.Options{})
		require.NoError(t, err)
		assert.Equal(t, 1, res.Applied.Removed)
		assert.Equal(t, 1, res.Applied.Inserted)

		active, err := st.ActiveWishlistIDs(ctx)
		require.NoError(t, err)
		assert.Equal(t, []models.GameId{666, 666666}, active)

		rows, err := st.Wishlist(ctx)
		require.NoError(t, err)
		require.Len(t, rows, 3)
		assert.True(t, old.Equal(rows[1].Wishlisted), "kept games keep their date")
		assert.NotNil(t, rows[0].Deleted)
	})

	t.Run("Same snapshot again changes nothing", func(t *testing.T) {
		before, err := st.Wishlist(ctx)
		require.NoError(t, err)
		require.NotNil(t, before[0].Deleted)

		res, err := w.Reconcile(ctx, wishlistFixture(), reconcile.Options{})
		require.NoError(t, err)
		assert.True(t, res.Plan.Empty())
		assert.Equal(t, reconcile.ApplyResult{}, res.Applied)

		after, err := st.Wishlist(ctx)
		require.NoError(t, err)
		require.Len(t, after, 3)
		require.NotNil(t, after[0].Deleted)
		assert.True(t, before[0].Deleted.Equal(*after[0].Deleted), "tombstone keeps its time")
	})

	t.Run("Empty snapshot tombstones everything", func(t *testing.T) {
		res, err := w.Reconcile(ctx, nil, reconcile.Options{})
		require.NoError(t, err)
		assert.Equal(t, 2, res.Applied.Removed)

		active, err := st.ActiveWishlistIDs(ctx)
		require.NoError(t, err)
		assert.Empty(t, active)
	})

	t.Run("Returning game clears its tombstone", func(t *testing.T) {
		res, err := w.Reconcile(ctx, []models.WishlistedGame{{AppID: 1, Wishlisted: time.Now()}}, reconcile.Options{})
		require.NoError(t, err)
		assert.Equal(t, 1, res.Applied.Inserted)

		rows, err := st.Wishlist(ctx)
		require.NoError(t, err)
		assert.Nil(t, rows[0].Deleted)
		assert.True(t, old.Equal(rows[0].Wishlisted))
	})
}

// failingWishlistStore fails the batch tombstone and passes everything else through.
type failingWishlistStore struct {
	Store
	inserted []models.GameId
}

func (f *failingWishlistStore) SoftDeleteWishlist(context.Context, []models.GameId, time.Time) error {
	return models.ErrStore
}

func (f *failingWishlistStore) UpsertWishlist(ctx context.Context, item models.WishlistedGame) error {
	f.inserted = append(f.inserted, item.AppID)
	return nil
}

func TestWishlistReconcile_InsertsAfterFailedRemove(t *testing.T) {
	st := setupStore(t)
	ctx := context.Background()
	require.NoError(t, st.UpsertWishlist(ctx, models.WishlistedGame{AppID: 1, Wishlisted: time.Now()}))

	failing := &failingWishlistStore{Store: st}
	w := NewWishlist(&mocks.LibraryClient{}, failing, "STEAMID", DefaultConfig(), zap.NewNop())

	res, err := w.Reconcile(ctx, wishlistFixture(), reconcile.Options{})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Applied.Failed)
	assert.Equal(t, 2, res.Applied.Inserted)
	assert.Equal(t, []models.GameId{666, 666666}, failing.inserted)
}

func TestWishlistSync_Fetch(t *testing.T) {
	client := &mocks.LibraryClient{}
	client.On("ListWishlist", mock.Anything, "STEAMID").Return(wishlistFixture(), nil)

	w := NewWishlist(client, setupStore(t), "STEAMID", DefaultConfig(), zap.NewNop())
	res, err := w.Sync(context.Background(), reconcile.Options{})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Applied.Inserted)
	client.AssertExpectations(t)
}

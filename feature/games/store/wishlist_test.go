package store

import (
	"context"
	"testing"

	"steam-ledger/feature/games/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWishlist_SoftDeleteAndReturn(t *testing.T) {
	s, _ := setupStore(t)
	ctx := context.Background()

	require.NoError(t, s.UpsertWishlist(ctx, models.WishlistedGame{AppID: 666, Wishlisted: t0}))
	require.NoError(t, s.UpsertWishlist(ctx, models.WishlistedGame{AppID: 666666, Wishlisted: t0}))

	require.NoError(t, s.SoftDeleteWishlist(ctx, []models.GameId{666}, t1))

	active, err := s.ActiveWishlistIDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.GameId{666666}, active)

	t.Run("Tombstoned rows are kept", func(t *testing.T) {
		rows, err := s.Wishlist(ctx)
		require.NoError(t, err)
		require.Len(t, rows, 2)
		require.NotNil(t, rows[0].Deleted)
		assert.True(t, t1.Equal(*rows[0].Deleted))
		assert.Nil(t, rows[1].Deleted)
	})

	t.Run("Returning game keeps its first date", func(t *testing.T) {
		require.NoError(t, s.UpsertWishlist(ctx, models.WishlistedGame{AppID: 666, Wishlisted: t2}))

		rows, err := s.Wishlist(ctx)
		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Nil(t, rows[0].Deleted)
		assert.True(t, t0.Equal(rows[0].Wishlisted))
	})

	t.Run("Deleting twice keeps the first tombstone", func(t *testing.T) {
		require.NoError(t, s.SoftDeleteWishlist(ctx, []models.GameId{666666}, t1))
		require.NoError(t, s.SoftDeleteWishlist(ctx, []models.GameId{666666}, t2))

		rows, err := s.Wishlist(ctx)
		require.NoError(t, err)
		require.NotNil(t, rows[1].Deleted)
		assert.True(t, t1.Equal(*rows[1].Deleted))
	})
}

func TestNotes_UpsertAndPendingReleases(t *testing.T) {
	s, db := setupStore(t)
	ctx := context.Background()

	appID := models.GameId(654321)
	noRelease := models.StateNoRelease
	rating := uint8(4)

	_, err := s.InsertCatalogEntries(ctx, []models.CatalogEntry{{AppID: appID, Name: "Paint Drying Tycoon 2"}})
	require.NoError(t, err)

	n, err := s.UpsertNotes(ctx, []models.NotedGame{{NoteID: "000001", AppID: &appID, State: &noRelease, FirstNoted: t0}})
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	t.Run("Update keeps first noted", func(t *testing.T) {
		_, err := s.UpsertNotes(ctx, []models.NotedGame{{
			NoteID:     "000001",
			AppID:      &appID,
			State:      &noRelease,
			Tags:       []string{"coop"},
			MyRating:   &rating,
			FirstNoted: t2,
		}})
		require.NoError(t, err)

		var note models.NotedGame
		require.NoError(t, db.Where("note_id = ?", "000001").Take(&note).Error)
		assert.True(t, t0.Equal(note.FirstNoted))
		assert.Equal(t, []string{"coop"}, []string(note.Tags))
		require.NotNil(t, note.MyRating)
		assert.Equal(t, rating, *note.MyRating)
	})

	t.Run("Unreleased details are not pending", func(t *testing.T) {
		_, err := s.UpsertDetails(ctx, []models.GameDetails{{AppID: appID, IsReleased: false, Recorded: t0}})
		require.NoError(t, err)

		pending, err := s.PendingReleases(ctx)
		require.NoError(t, err)
		assert.Empty(t, pending)
	})

	t.Run("Released details are pending", func(t *testing.T) {
		_, err := s.UpsertDetails(ctx, []models.GameDetails{{AppID: appID, IsReleased: true, Recorded: t1}})
		require.NoError(t, err)

		pending, err := s.PendingReleases(ctx)
		require.NoError(t, err)
		assert.Equal(t, []PendingRelease{{NoteID: "000001", AppID: appID, Name: "Paint Drying Tycoon 2"}}, pending)
	})

	t.Run("Released state clears pending", func(t *testing.T) {
		require.NoError(t, s.SetNoteState(ctx, "000001", models.StateReleased))

		pending, err := s.PendingReleases(ctx)
		require.NoError(t, err)
		assert.Empty(t, pending)
	})
}

func TestReleaseUpdates(t *testing.T) {
	s, _ := setupStore(t)
	ctx := context.Background()

	require.NoError(t, s.InsertReleaseUpdate(ctx, models.ReleaseUpdateLogEntry{AppID: 1337, PrevText: "2077", NewText: "Q1 2078", Recorded: t0}))
	require.NoError(t, s.InsertReleaseUpdate(ctx, models.ReleaseUpdateLogEntry{AppID: 1337, PrevText: "Q1 2078", NewText: "17 Jan 2078", Recorded: t1}))

	entries, err := s.ReleaseUpdates(ctx, 1337)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "2077", entries[0].PrevText)
	assert.Equal(t, "17 Jan 2078", entries[1].NewText)

	ignored, err := s.InsertIgnored(ctx, []models.GameId{5, 5, 6}, t0)
	require.NoError(t, err)
	assert.Equal(t, 2, ignored)

	ids, err := s.IgnoredIDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.GameId{5, 6}, ids)
}

package sync

import (
	"testing"
	"time"

	"steam-ledger/core/database"
	"steam-ledger/feature/games/models"
	"steam-ledger/feature/games/store"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupStore(t *testing.T) *store.GormStore {
	t.Helper()
	db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, store.Migrate(db))
	return store.New(db, zap.NewNop())
}

func strPtr(s string) *string { return &s }

func statePtr(s models.GameState) *models.GameState { return &s }

func catalogFixture() []models.CatalogEntry {
	return []models.CatalogEntry{
		{AppID: 666, Name: "Game Buying Simulator 2024"},
		{AppID: 1337, Name: "Final Fantasy MMLXVII"},
		{AppID: 654321, Name: "Paint Drying Tycoon 2"},
		{AppID: 666666, Name: "Unearthed Myths 7: The Unearthening"},
	}
}

func wishlistFixture() []models.WishlistedGame {
	return []models.WishlistedGame{
		{AppID: 666, Wishlisted: time.Date(2012, 1, 1, 0, 0, 0, 0, time.UTC)},
		{AppID: 666666, Wishlisted: time.Date(2013, 1, 1, 0, 0, 0, 0, time.UTC)},
	}
}

func playtimeFixture() []models.Playtime {
	return []models.Playtime{{
		AppID:      666,
		Playtime:   time.Hour,
		LastPlayed: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
	}}
}

func noteFixture(steamID *string) models.Note {
	return models.Note{
		NoteID:  "000001",
		Name:    "Paint Drying Tycoon 2",
		SteamID: steamID,
		State:   statePtr(models.StateNoRelease),
		Notes:   strPtr("At least I'll get high off the fumes?"),
		Created: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
	}
}

func detailsFixture(id models.GameId, released bool, text string) map[models.GameId]models.GameDetails {
	return map[models.GameId]models.GameDetails{
		id: {AppID: id, Description: "details of " + id.String(), IsReleased: released, ReleaseDate: strPtr(text)},
	}
}

package sync

import (
	"context"
	"time"

	"steam-ledger/feature/games/models"
	"steam-ledger/feature/games/store"
)

// LibraryClient reads the library provider.
type LibraryClient interface {
	ListCatalog(ctx context.Context) ([]models.CatalogEntry, error)
	ListOwned(ctx context.Context, account string) ([]models.GameId, error)
	ListPlaytime(ctx context.Context, account string) ([]models.Playtime, error)
	// FetchDetails returns the details found and the ids whose lookup failed.
	FetchDetails(ctx context.Context, ids []models.GameId) (map[models.GameId]models.GameDetails, []models.GameId, error)
	ListWishlist(ctx context.Context, account string) ([]models.WishlistedGame, error)
}

// NotesClient reads and updates the notes provider.
type NotesClient interface {
	ListNotes(ctx context.Context) ([]models.Note, error)
	SetIdentifier(ctx context.Context, noteID string, appID models.GameId, name string) error
	SetState(ctx context.Context, noteID string, state models.GameState) error
}

// Store is the persistence the synchronizers need.
type Store interface {
	UnknownCatalogIDs(ctx context.Context, ids []models.GameId) ([]models.GameId, error)
	InsertCatalogEntries(ctx context.Context, entries []models.CatalogEntry) (int, error)
	CatalogIDsByName(ctx context.Context, names []string) (map[string][]models.GameId, error)
	CatalogNames(ctx context.Context, ids []models.GameId) (map[models.GameId]string, error)

	InsertOwnership(ctx context.Context, ids []models.GameId, now time.Time) (int, error)
	InsertPlaytime(ctx context.Context, records []models.PlaytimeRecord) (int, error)

	UpsertDetails(ctx context.Context, details []models.GameDetails) (int, error)
	ReleaseTexts(ctx context.Context, ids []models.GameId) (map[models.GameId]string, error)
	IncrementFailures(ctx context.Context, ids []models.GameId) (int, error)
	BackfillCandidates(ctx context.Context, threshold, limit int) ([]models.GameId, error)
	RefreshCandidates(ctx context.Context, threshold, limit int) ([]models.GameId, error)

	UpsertNotes(ctx context.Context, notes []models.NotedGame) (int, error)
	PendingReleases(ctx context.Context) ([]store.PendingRelease, error)
	SetNoteState(ctx context.Context, noteID string, state models.GameState) error
	InsertReleaseUpdate(ctx context.Context, entry models.ReleaseUpdateLogEntry) error

	ActiveWishlistIDs(ctx context.Context) ([]models.GameId, error)
	SoftDeleteWishlist(ctx context.Context, ids []models.GameId, now time.Time) error
	UpsertWishlist(ctx context.Context, item models.WishlistedGame) error
}

var _ Store = (*store.GormStore)(nil)

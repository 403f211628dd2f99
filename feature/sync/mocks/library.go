package mocks

import (
	"context"

	"steam-ledger/feature/games/models"

	"github.com/stretchr/testify/mock"
)

// LibraryClient is a mock implementation of sync.LibraryClient
type LibraryClient struct {
	mock.Mock
}

func (m *LibraryClient) ListCatalog(ctx context.Context) ([]models.CatalogEntry, error) {
	args := m.Called(ctx)
	entries, _ := args.Get(0).([]models.CatalogEntry)
	return entries, args.Error(1)
}

func (m *LibraryClient) ListOwned(ctx context.Context, account string) ([]models.GameId, error) {
	args := m.Called(ctx, account)
	ids, _ := args.Get(0).([]models.GameId)
	return ids, args.Error(1)
}

func (m *LibraryClient) ListPlaytime(ctx context.Context, account string) ([]models.Playtime, error) {
	args := m.Called(ctx, account)
	playtime, _ := args.Get(0).([]models.Playtime)
	return playtime, args.Error(1)
}

func (m *LibraryClient) FetchDetails(ctx context.Context, ids []models.GameId) (map[models.GameId]models.GameDetails, []models.GameId, error) {
	args := m.Called(ctx, ids)
	found, _ := args.Get(0).(map[models.GameId]models.GameDetails)
	failed, _ := args.Get(1).([]models.GameId)
	return found, failed, args.Error(2)
}

func (m *LibraryClient) ListWishlist(ctx context.Context, account string) ([]models.WishlistedGame, error) {
	args := m.Called(ctx, account)
	items, _ := args.Get(0).([]models.WishlistedGame)
	return items, args.Error(1)
}

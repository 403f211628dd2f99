package mocks

import (
	"context"

	"steam-ledger/feature/games/models"

	"github.com/stretchr/testify/mock"
)

// NotesClient is a mock implementation of sync.NotesClient
type NotesClient struct {
	mock.Mock
}

func (m *NotesClient) ListNotes(ctx context.Context) ([]models.Note, error) {
	args := m.Called(ctx)
	notes, _ := args.Get(0).([]models.Note)
	return notes, args.Error(1)
}

func (m *NotesClient) SetIdentifier(ctx context.Context, noteID string, appID models.GameId, name string) error {
	args := m.Called(ctx, noteID, appID, name)
	return args.Error(0)
}

func (m *NotesClient) SetState(ctx context.Context, noteID string, state models.GameState) error {
	args := m.Called(ctx, noteID, state)
	return args.Error(0)
}

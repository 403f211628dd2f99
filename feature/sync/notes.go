package sync

import (
	"context"
	"fmt"
	"time"

	"steam-ledger/feature/games/models"

	"go.uber.org/zap"
)

// NotesResult reports one notes pull.
type NotesResult struct {
	Pulled     int `json:"pulled"`
	Resolved   int `json:"resolved"`
	Unresolved int `json:"unresolved"`
	Stored     int `json:"stored"`
	// WriteBackFailures counts resolved ids that could not be written to the provider.
	WriteBackFailures int `json:"write_back_failures"`
}

// Notes mirrors the notes provider into the store.
type Notes struct {
	client NotesClient
	store  Store
	cfg    Config
	logger *zap.Logger
	now    func() time.Time
}

// NewNotes creates a notes synchronizer.
func NewNotes(client NotesClient, store Store, cfg Config, logger *zap.Logger) *Notes {
	return &Notes{
		client: client,
		store:  store,
		cfg:    cfg,
		logger: logger,
		now:    time.Now,
	}
}

type resolvedNote struct {
	noteID string
	appID  models.GameId
	name   string
}

// PullAndMerge stores every note and links notes without a library id to the catalog
// entry of the same name. Matching is exact and case-sensitive, and a name shared by
// several catalog entries is left unresolved. Resolved ids are written back to the
// provider once.
func (n *Notes) PullAndMerge(ctx context.Context) (*NotesResult, error) {
	cctx, cancel := context.WithTimeout(ctx, n.cfg.requestTimeout())
	notes, err := n.client.ListNotes(cctx)
	cancel()
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}

	result := &NotesResult{Pulled: len(notes)}
	now := n.now().UTC()
	rows := make([]models.NotedGame, len(notes))
	var missing []int
	var names []string

	for i, note := range notes {
		rows[i] = noteRow(note, now)
		if note.SteamID != nil {
			id, err := models.ParseGameId(*note.SteamID)
			if err == nil {
				rows[i].AppID = &id
				continue
			}
			n.logger.Warn("Ignoring unparsable library id", zap.String("note_id", note.NoteID), zap.Error(err))
		}
		missing = append(missing, i)
		if note.Name != "" {
			names = append(names, note.Name)
		}
	}

	var resolved []resolvedNote
	if len(names) > 0 {
		byName, err := n.store.CatalogIDsByName(ctx, names)
		if err != nil {
			return nil, err
		}
		for _, i := range missing {
			note := notes[i]
			ids := byName[note.Name]
			switch {
			case len(ids) == 1:
				id := ids[0]
				rows[i].AppID = &id
				resolved = append(resolved, resolvedNote{noteID: note.NoteID, appID: id, name: note.Name})
			case len(ids) > 1:
				n.logger.Warn("Ambiguous note name",
					zap.String("note_id", note.NoteID),
					zap.String("name", note.Name),
					zap.Int("matches", len(ids)),
				)
			}
		}
	}
	result.Resolved = len(resolved)
	result.Unresolved = len(missing) - len(resolved)

	stored, err := n.store.UpsertNotes(ctx, rows)
	result.Stored = stored
	if err != nil {
		return result, err
	}

	for _, r := range resolved {
		cctx, cancel := context.WithTimeout(ctx, n.cfg.requestTimeout())
		err := n.client.SetIdentifier(cctx, r.noteID, r.appID, r.name)
		cancel()
		if err != nil {
			result.WriteBackFailures++
			n.logger.Warn("Failed to write library id to note",
				zap.String("note_id", r.noteID),
				zap.Uint32("app_id", uint32(r.appID)),
				zap.Error(err),
			)
		}
	}

	n.logger.Info("Notes merged",
		zap.Int("pulled", result.Pulled),
		zap.Int("resolved", result.Resolved),
		zap.Int("unresolved", result.Unresolved),
	)
	return result, nil
}

func noteRow(note models.Note, now time.Time) models.NotedGame {
	firstNoted := note.Created
	if firstNoted.IsZero() {
		firstNoted = now
	}
	tags := note.Tags
	if tags == nil {
		tags = []string{}
	}
	return models.NotedGame{
		NoteID:     note.NoteID,
		State:      note.State,
		Tags:       tags,
		MyRating:   note.Rating,
		Notes:      note.Notes,
		FirstNoted: firstNoted,
	}
}

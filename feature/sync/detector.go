package sync

import (
	"context"
	"time"

	"steam-ledger/feature/games/models"
	"steam-ledger/feature/games/releasedate"

	"go.uber.org/zap"
)

// Detector finds release date changes and tracked games that came out.
type Detector struct {
	notes  NotesClient
	store  Store
	cfg    Config
	logger *zap.Logger
	now    func() time.Time
}

// NewDetector creates a change detector.
func NewDetector(notes NotesClient, store Store, cfg Config, logger *zap.Logger) *Detector {
	return &Detector{
		notes:  notes,
		store:  store,
		cfg:    cfg,
		logger: logger,
		now:    time.Now,
	}
}

// Detect compares fetched details with the release text already stored. It must run
// before the details are upserted. A changed text is audited and reported; a game seen
// for the first time, or an incoming record without release text, is not a change.
func (d *Detector) Detect(ctx context.Context, details []models.GameDetails) ([]models.SyncEvent, error) {
	if len(details) == 0 {
		return nil, nil
	}

	ids := make([]models.GameId, 0, len(details))
	for _, det := range details {
		ids = append(ids, det.AppID)
	}
	previous, err := d.store.ReleaseTexts(ctx, ids)
	if err != nil {
		return nil, err
	}

	now := d.now().UTC()
	var events []models.SyncEvent
	var changed []models.GameId
	for _, det := range details {
		prev, ok := previous[det.AppID]
		incoming := det.ReleaseText()
		if !ok || prev == "" || incoming == "" || prev == incoming {
			continue
		}

		entry := models.ReleaseUpdateLogEntry{
			AppID:        det.AppID,
			PrevText:     prev,
			NewText:      incoming,
			PrevEstimate: releasedate.Parse(prev),
			NewEstimate:  releasedate.Parse(incoming),
			Recorded:     now,
		}
		if err := d.store.InsertReleaseUpdate(ctx, entry); err != nil {
			d.logger.Warn("Failed to audit release date change", zap.Uint32("app_id", uint32(det.AppID)), zap.Error(err))
		}

		events = append(events, models.ReleaseDateUpdated(det.AppID, prev, incoming))
		changed = append(changed, det.AppID)
	}

	if len(changed) > 0 {
		names, err := d.store.CatalogNames(ctx, changed)
		if err != nil {
			d.logger.Warn("Failed to name changed games", zap.Error(err))
		}
		for i := range events {
			events[i].Name = names[events[i].Game]
		}
	}
	return events, nil
}

// DetectNewlyReleased reports noted games still marked unreleased whose details say they
// are out, and marks them Released in the provider and the store. A note whose provider
// update fails keeps its stored state so the next pass retries it.
func (d *Detector) DetectNewlyReleased(ctx context.Context) ([]models.SyncEvent, error) {
	pending, err := d.store.PendingReleases(ctx)
	if err != nil {
		return nil, err
	}

	events := make([]models.SyncEvent, 0, len(pending))
	for _, p := range pending {
		events = append(events, models.Released(p.AppID, p.Name))

		cctx, cancel := context.WithTimeout(ctx, d.cfg.requestTimeout())
		err := d.notes.SetState(cctx, p.NoteID, models.StateReleased)
		cancel()
		if err != nil {
			d.logger.Warn("Failed to mark note released", zap.String("note_id", p.NoteID), zap.Error(err))
			continue
		}
		if err := d.store.SetNoteState(ctx, p.NoteID, models.StateReleased); err != nil {
			d.logger.Warn("Failed to store released state", zap.String("note_id", p.NoteID), zap.Error(err))
		}
	}
	return events, nil
}

package store

import (
	"context"
	"time"

	"steam-ledger/feature/games/models"

	"go.uber.org/zap"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/schema"
)

// UpsertNotes stores notes keyed by note id. Everything but first_noted follows the latest pull.
func (s *GormStore) UpsertNotes(ctx context.Context, notes []models.NotedGame) (int, error) {
	written := 0
	for _, n := range notes {
		note := n
		if note.Tags == nil {
			note.Tags = []string{}
		}
		err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "note_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"app_id", "state", "tags", "my_rating", "notes"}),
		}).Create(&note).Error
		if err != nil {
			if ctx.Err() != nil {
				return written, storeErr("upsert notes", ctx.Err())
			}
			s.logger.Warn("Skipping note", zap.String("note_id", n.NoteID), zap.Error(err))
			continue
		}
		written++
	}
	return written, nil
}

// PendingRelease is a noted game still marked unreleased whose details say it is out.
type PendingRelease struct {
	NoteID string
	AppID  models.GameId
	Name   string
}

// PendingReleases lists noted games with no state, NoRelease or Upcoming whose stored
// details report them as released.
func (s *GormStore) PendingReleases(ctx context.Context) ([]PendingRelease, error) {
	var rows []PendingRelease
	err := s.db.WithContext(ctx).
		Table("noted_game AS n").
		Select("n.note_id AS note_id, n.app_id AS app_id, COALESCE(c.name, '') AS name").
		Joins("JOIN game_details d ON d.app_id = n.app_id").
		Joins("LEFT JOIN steam_game c ON c.app_id = n.app_id").
		Where("d.is_released = ?", true).
		Where("(n.state IS NULL OR n.state IN ?)", unreleasedLabels()).
		Order("n.app_id").
		Order("n.note_id").
		Scan(&rows).Error
	if err != nil {
		return nil, storeErr("list pending releases", err)
	}
	return rows, nil
}

// SetNoteState records a state transition pushed to the notes provider.
func (s *GormStore) SetNoteState(ctx context.Context, noteID string, state models.GameState) error {
	err := s.db.WithContext(ctx).Model(&models.NotedGame{}).
		Where("note_id = ?", noteID).
		Update("state", state).Error
	if err != nil {
		return storeErr("set note state", err)
	}
	return nil
}

// InsertReleaseUpdate appends one release date change to the audit log.
func (s *GormStore) InsertReleaseUpdate(ctx context.Context, entry models.ReleaseUpdateLogEntry) error {
	if err := s.db.WithContext(ctx).Create(&entry).Error; err != nil {
		return storeErr("insert release update", err)
	}
	return nil
}

// ReleaseUpdates returns the audit log of id, oldest first.
func (s *GormStore) ReleaseUpdates(ctx context.Context, id models.GameId) ([]models.ReleaseUpdateLogEntry, error) {
	var entries []models.ReleaseUpdateLogEntry
	if err := s.db.WithContext(ctx).Where("app_id = ?", id).Order("recorded").Order("id").Find(&entries).Error; err != nil {
		return nil, storeErr("list release updates", err)
	}
	return entries, nil
}

// InsertIgnored marks ids as ignored. Ids already ignored keep their original date.
func (s *GormStore) InsertIgnored(ctx context.Context, ids []models.GameId, now time.Time) (int, error) {
	inserted := 0
	for _, id := range ids {
		rec := models.IgnoredGame{AppID: id, Ignored: now}
		res := s.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&rec)
		if res.Error != nil {
			if ctx.Err() != nil {
				return inserted, storeErr("insert ignored", ctx.Err())
			}
			s.logger.Warn("Skipping ignored game", zap.Uint32("app_id", uint32(id)), zap.Error(res.Error))
			continue
		}
		inserted += int(res.RowsAffected)
	}
	return inserted, nil
}

// IgnoredIDs returns every ignored id, ascending.
func (s *GormStore) IgnoredIDs(ctx context.Context) ([]models.GameId, error) {
	var ids []models.GameId
	if err := s.db.WithContext(ctx).Model(&models.IgnoredGame{}).Order("app_id").Pluck("app_id", &ids).Error; err != nil {
		return nil, storeErr("list ignored ids", err)
	}
	return ids, nil
}

// Counts returns the row count of every table, keyed by table name.
func (s *GormStore) Counts(ctx context.Context) (map[string]int64, error) {
	counts := make(map[string]int64)
	for _, m := range models.All() {
		var n int64
		if err := s.db.WithContext(ctx).Model(m).Count(&n).Error; err != nil {
			return nil, storeErr("count rows", err)
		}
		if t, ok := m.(schema.Tabler); ok {
			counts[t.TableName()] = n
		}
	}
	return counts, nil
}

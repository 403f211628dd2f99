package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"steam-ledger/core/database"
	"steam-ledger/feature/games/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// chunkSize bounds the number of bind parameters per IN clause.
const chunkSize = 500

// GormStore implements the store gateway on top of gorm.
type GormStore struct {
	db     *gorm.DB
	logger *zap.Logger
}

// New creates a store gateway.
func New(db *gorm.DB, logger *zap.Logger) *GormStore {
	return &GormStore{db: db, logger: logger}
}

// Migrate creates or updates every table the gateway uses.
func Migrate(db *gorm.DB) error {
	return database.Migrate(db, models.All()...)
}

// DB exposes the underlying connection.
func (s *GormStore) DB() *gorm.DB {
	return s.db
}

func storeErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", models.ErrStore, op, err)
}

func chunks[T any](items []T, size int) [][]T {
	var out [][]T
	for size < len(items) {
		items, out = items[size:], append(out, items[:size])
	}
	if len(items) > 0 {
		out = append(out, items)
	}
	return out
}

// pluckIDs collects app_id values of table rows matching ids, chunk by chunk.
func (s *GormStore) pluckIDs(ctx context.Context, model any, ids []models.GameId, where string, args ...any) ([]models.GameId, error) {
	var found []models.GameId
	for _, chunk := range chunks(ids, chunkSize) {
		var part []models.GameId
		q := s.db.WithContext(ctx).Model(model).Where("app_id IN ?", chunk)
		if where != "" {
			q = q.Where(where, args...)
		}
		if err := q.Pluck("app_id", &part).Error; err != nil {
			return nil, err
		}
		found = append(found, part...)
	}
	return found, nil
}

// UnknownCatalogIDs returns the ids that have no catalog entry yet, ascending.
func (s *GormStore) UnknownCatalogIDs(ctx context.Context, ids []models.GameId) ([]models.GameId, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	known, err := s.pluckIDs(ctx, &models.CatalogEntry{}, ids, "")
	if err != nil {
		return nil, storeErr("list known catalog ids", err)
	}
	knownSet := models.NewIDSet(known...)
	unknown := models.NewIDSet()
	for _, id := range ids {
		if !knownSet.Has(id) {
			unknown.Add(id)
		}
	}
	return unknown.Sorted(), nil
}

// InsertCatalogEntries adds catalog entries, leaving existing names untouched.
// A chunk that fails as a whole is retried row by row so one bad row only loses itself.
func (s *GormStore) InsertCatalogEntries(ctx context.Context, entries []models.CatalogEntry) (int, error) {
	inserted := 0
	for _, chunk := range chunks(entries, chunkSize) {
		res := s.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&chunk)
		if res.Error == nil {
			inserted += int(res.RowsAffected)
			continue
		}
		if ctx.Err() != nil {
			return inserted, storeErr("insert catalog entries", ctx.Err())
		}
		for _, e := range chunk {
			entry := e
			res := s.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&entry)
			if res.Error != nil {
				s.logger.Warn("Skipping catalog entry", zap.Uint32("app_id", uint32(e.AppID)), zap.Error(res.Error))
				continue
			}
			inserted += int(res.RowsAffected)
		}
	}
	return inserted, nil
}

// CatalogIDsByName returns every catalog id recorded under each of names. Matching is exact.
func (s *GormStore) CatalogIDsByName(ctx context.Context, names []string) (map[string][]models.GameId, error) {
	wanted := make(map[string]struct{}, len(names))
	unique := make([]string, 0, len(names))
	for _, n := range names {
		if _, dup := wanted[n]; !dup {
			wanted[n] = struct{}{}
			unique = append(unique, n)
		}
	}

	result := make(map[string][]models.GameId)
	for _, chunk := range chunks(unique, chunkSize) {
		var rows []models.CatalogEntry
		if err := s.db.WithContext(ctx).Where("name IN ?", chunk).Order("app_id").Find(&rows).Error; err != nil {
			return nil, storeErr("find catalog ids by name", err)
		}
		for _, r := range rows {
			// Some collations compare case-insensitively.
			if _, ok := wanted[r.Name]; !ok {
				continue
			}
			result[r.Name] = append(result[r.Name], r.AppID)
		}
	}
	return result, nil
}

// CatalogNames returns the recorded names of ids.
func (s *GormStore) CatalogNames(ctx context.Context, ids []models.GameId) (map[models.GameId]string, error) {
	names := make(map[models.GameId]string)
	for _, chunk := range chunks(ids, chunkSize) {
		var rows []models.CatalogEntry
		if err := s.db.WithContext(ctx).Where("app_id IN ?", chunk).Find(&rows).Error; err != nil {
			return nil, storeErr("load catalog names", err)
		}
		for _, r := range rows {
			names[r.AppID] = r.Name
		}
	}
	return names, nil
}

// InsertOwnership records ids as owned. Already owned ids keep their first record.
func (s *GormStore) InsertOwnership(ctx context.Context, ids []models.GameId, now time.Time) (int, error) {
	inserted := 0
	for _, id := range ids {
		rec := models.OwnershipRecord{AppID: id, FirstRecorded: now}
		res := s.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&rec)
		if res.Error != nil {
			if ctx.Err() != nil {
				return inserted, storeErr("insert ownership", ctx.Err())
			}
			s.logger.Warn("Skipping owned game", zap.Uint32("app_id", uint32(id)), zap.Error(res.Error))
			continue
		}
		inserted += int(res.RowsAffected)
	}
	return inserted, nil
}

// OwnedIDs returns every owned id, ascending.
func (s *GormStore) OwnedIDs(ctx context.Context) ([]models.GameId, error) {
	var ids []models.GameId
	if err := s.db.WithContext(ctx).Model(&models.OwnershipRecord{}).Order("app_id").Pluck("app_id", &ids).Error; err != nil {
		return nil, storeErr("list owned ids", err)
	}
	return ids, nil
}

// InsertPlaytime appends playtime rows that advance on what is stored.
// A row is skipped when any stored row of the same game already has at least as much playtime.
func (s *GormStore) InsertPlaytime(ctx context.Context, records []models.PlaytimeRecord) (int, error) {
	inserted := 0
	for _, r := range records {
		rec := r
		wrote := false
		err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			var ahead int64
			if err := tx.Model(&models.PlaytimeRecord{}).
				Where("app_id = ? AND playtime_minutes >= ?", rec.AppID, rec.Minutes).
				Count(&ahead).Error; err != nil {
				return err
			}
			if ahead > 0 {
				return nil
			}
			wrote = true
			return tx.Create(&rec).Error
		})
		if err != nil {
			if ctx.Err() != nil {
				return inserted, storeErr("insert playtime", ctx.Err())
			}
			s.logger.Warn("Skipping playtime update", zap.Uint32("app_id", uint32(r.AppID)), zap.Error(err))
			continue
		}
		if wrote {
			inserted++
		}
	}
	return inserted, nil
}

// LatestPlaytime returns the most recent playtime row of id, or nil when there is none.
func (s *GormStore) LatestPlaytime(ctx context.Context, id models.GameId) (*models.PlaytimeRecord, error) {
	var rec models.PlaytimeRecord
	err := s.db.WithContext(ctx).Where("app_id = ?", id).Order("recorded DESC").Order("id DESC").Take(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, storeErr("load latest playtime", err)
	}
	return &rec, nil
}

// mergeDetails overlays incoming on prev. The release date text and estimate survive an
// incoming value that lacks them.
func mergeDetails(prev, incoming models.GameDetails) models.GameDetails {
	merged := incoming
	if incoming.ReleaseDate == nil || *incoming.ReleaseDate == "" {
		merged.ReleaseDate = prev.ReleaseDate
	}
	if incoming.ReleaseEstimate == nil {
		merged.ReleaseEstimate = prev.ReleaseEstimate
	}
	return merged
}

// UpsertDetails stores detail records keyed by app id, merging with what is stored.
func (s *GormStore) UpsertDetails(ctx context.Context, details []models.GameDetails) (int, error) {
	written := 0
	for _, d := range details {
		incoming := d
		err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			var prev models.GameDetails
			err := tx.Where("app_id = ?", incoming.AppID).Take(&prev).Error
			switch {
			case err == nil:
				incoming = mergeDetails(prev, incoming)
			case errors.Is(err, gorm.ErrRecordNotFound):
				if incoming.ReleaseDate != nil && *incoming.ReleaseDate == "" {
					incoming.ReleaseDate = nil
				}
			default:
				return err
			}
			return tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "app_id"}},
				UpdateAll: true,
			}).Create(&incoming).Error
		})
		if err != nil {
			if ctx.Err() != nil {
				return written, storeErr("upsert details", ctx.Err())
			}
			s.logger.Warn("Skipping game details", zap.Uint32("app_id", uint32(d.AppID)), zap.Error(err))
			continue
		}
		written++
	}
	return written, nil
}

// Details loads the stored detail record of id, or nil.
func (s *GormStore) Details(ctx context.Context, id models.GameId) (*models.GameDetails, error) {
	var d models.GameDetails
	err := s.db.WithContext(ctx).Where("app_id = ?", id).Take(&d).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, storeErr("load details", err)
	}
	return &d, nil
}

// ReleaseTexts returns the stored release date text of the ids that have one.
func (s *GormStore) ReleaseTexts(ctx context.Context, ids []models.GameId) (map[models.GameId]string, error) {
	texts := make(map[models.GameId]string)
	for _, chunk := range chunks(ids, chunkSize) {
		var rows []models.GameDetails
		if err := s.db.WithContext(ctx).
			Select("app_id", "release_date").
			Where("app_id IN ? AND release_date IS NOT NULL", chunk).
			Find(&rows).Error; err != nil {
			return nil, storeErr("load release dates", err)
		}
		for _, r := range rows {
			texts[r.AppID] = r.ReleaseText()
		}
	}
	return texts, nil
}

// IncrementFailures bumps the failed lookup counter of each id by one.
func (s *GormStore) IncrementFailures(ctx context.Context, ids []models.GameId) (int, error) {
	updated := 0
	for _, id := range ids {
		rec := models.DetailLookupFailure{AppID: id, FailureCount: 1}
		err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "app_id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"failure_count": gorm.Expr("game_details_fetch_failure.failure_count + 1"),
			}),
		}).Create(&rec).Error
		if err != nil {
			if ctx.Err() != nil {
				return updated, storeErr("increment failures", ctx.Err())
			}
			s.logger.Warn("Skipping failure count", zap.Uint32("app_id", uint32(id)), zap.Error(err))
			continue
		}
		updated++
	}
	return updated, nil
}

// BlacklistedIDs returns the ids whose failure count reached threshold, ascending.
func (s *GormStore) BlacklistedIDs(ctx context.Context, threshold int) ([]models.GameId, error) {
	var ids []models.GameId
	if err := s.db.WithContext(ctx).Model(&models.DetailLookupFailure{}).
		Where("failure_count >= ?", threshold).
		Order("app_id").
		Pluck("app_id", &ids).Error; err != nil {
		return nil, storeErr("list blacklisted ids", err)
	}
	return ids, nil
}

func unreleasedLabels() []string {
	labels := make([]string, 0, len(models.UnreleasedStates))
	for _, s := range models.UnreleasedStates {
		labels = append(labels, s.String())
	}
	return labels
}

// trackedSQL selects every tracked game: owned, on the wishlist, or noted and
// still waiting for a release.
const trackedSQL = `SELECT app_id FROM owned_game
	UNION SELECT app_id FROM wishlisted_game WHERE deleted IS NULL
	UNION SELECT app_id FROM noted_game WHERE app_id IS NOT NULL AND (state IS NULL OR state IN ?)`

const eligibleSQL = `NOT EXISTS (SELECT 1 FROM game_details_fetch_failure f WHERE f.app_id = t.app_id AND f.failure_count >= ?)
	AND NOT EXISTS (SELECT 1 FROM ignored_game i WHERE i.app_id = t.app_id)`

// BackfillCandidates returns up to limit tracked ids that have no details, excluding
// blacklisted and ignored ids, ascending.
func (s *GormStore) BackfillCandidates(ctx context.Context, threshold, limit int) ([]models.GameId, error) {
	if limit <= 0 {
		return nil, nil
	}
	q := `SELECT t.app_id FROM (` + trackedSQL + `) t
	WHERE NOT EXISTS (SELECT 1 FROM game_details d WHERE d.app_id = t.app_id)
	AND ` + eligibleSQL + `
	ORDER BY t.app_id LIMIT ?`

	var ids []models.GameId
	if err := s.db.WithContext(ctx).Raw(q, unreleasedLabels(), threshold, limit).Scan(&ids).Error; err != nil {
		return nil, storeErr("select backfill candidates", err)
	}
	return ids, nil
}

// RefreshCandidates returns up to limit tracked ids whose stored details say the game is
// not out yet, least recently recorded first.
func (s *GormStore) RefreshCandidates(ctx context.Context, threshold, limit int) ([]models.GameId, error) {
	if limit <= 0 {
		return nil, nil
	}
	q := `SELECT t.app_id FROM (` + trackedSQL + `) t
	JOIN game_details d ON d.app_id = t.app_id
	WHERE d.is_released = ?
	AND ` + eligibleSQL + `
	ORDER BY d.recorded, t.app_id LIMIT ?`

	var ids []models.GameId
	if err := s.db.WithContext(ctx).Raw(q, unreleasedLabels(), false, threshold, limit).Scan(&ids).Error; err != nil {
		return nil, storeErr("select refresh candidates", err)
	}
	return ids, nil
}

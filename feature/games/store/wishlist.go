package store

import (
	"context"
	"time"

	"steam-ledger/feature/games/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ActiveWishlistIDs returns the ids currently on the wishlist, ascending.
func (s *GormStore) ActiveWishlistIDs(ctx context.Context) ([]models.GameId, error) {
	var ids []models.GameId
	if err := s.db.WithContext(ctx).Model(&models.WishlistedGame{}).
		Where("deleted IS NULL").
		Order("app_id").
		Pluck("app_id", &ids).Error; err != nil {
		return nil, storeErr("list wishlist", err)
	}
	return ids, nil
}

// SoftDeleteWishlist tombstones ids at now. All ids are updated or none are.
func (s *GormStore) SoftDeleteWishlist(ctx context.Context, ids []models.GameId, now time.Time) error {
	if len(ids) == 0 {
		return nil
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, chunk := range chunks(ids, chunkSize) {
			if err := tx.Model(&models.WishlistedGame{}).
				Where("app_id IN ? AND deleted IS NULL", chunk).
				Update("deleted", now).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return storeErr("soft delete wishlist", err)
	}
	return nil
}

// UpsertWishlist puts a game back on the wishlist. A returning game keeps its first
// wishlisted date and loses its tombstone.
func (s *GormStore) UpsertWishlist(ctx context.Context, item models.WishlistedGame) error {
	rec := item
	rec.Deleted = nil
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "app_id"}},
		DoUpdates: clause.Assignments(map[string]any{"deleted": nil}),
	}).Create(&rec).Error
	if err != nil {
		return storeErr("upsert wishlist", err)
	}
	return nil
}

// Wishlist loads every wishlist row, tombstoned ones included.
func (s *GormStore) Wishlist(ctx context.Context) ([]models.WishlistedGame, error) {
	var rows []models.WishlistedGame
	if err := s.db.WithContext(ctx).Order("app_id").Find(&rows).Error; err != nil {
		return nil, storeErr("load wishlist", err)
	}
	return rows, nil
}

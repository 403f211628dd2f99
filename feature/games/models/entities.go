package models

import (
	"time"

	"gorm.io/datatypes"
)

// CatalogEntry is one id/name pair of the library provider's full catalog.
// The name is recorded once and never updated.
type CatalogEntry struct {
	AppID GameId `gorm:"column:app_id;primaryKey;autoIncrement:false" json:"app_id"`
	Name  string `gorm:"column:name;not null;index" json:"name"`
}

func (CatalogEntry) TableName() string { return "steam_game" }

// OwnershipRecord marks a game as owned by the account since FirstRecorded.
type OwnershipRecord struct {
	AppID         GameId    `gorm:"column:app_id;primaryKey;autoIncrement:false" json:"app_id"`
	FirstRecorded time.Time `gorm:"column:first_recorded;not null" json:"first_recorded"`
}

func (OwnershipRecord) TableName() string { return "owned_game" }

// PlaytimeRecord is one row of the append-only playtime history.
type PlaytimeRecord struct {
	ID         uint      `gorm:"column:id;primaryKey" json:"-"`
	AppID      GameId    `gorm:"column:app_id;not null;index" json:"app_id"`
	Minutes    int64     `gorm:"column:playtime_minutes;not null" json:"playtime_minutes"`
	LastPlayed time.Time `gorm:"column:last_played" json:"last_played"`
	Recorded   time.Time `gorm:"column:recorded;not null" json:"recorded"`
}

func (PlaytimeRecord) TableName() string { return "played_game" }

// NewPlaytimeRecord builds a history row, truncating playtime to whole minutes.
func NewPlaytimeRecord(id GameId, playtime time.Duration, lastPlayed, recorded time.Time) PlaytimeRecord {
	return PlaytimeRecord{
		AppID:      id,
		Minutes:    int64(playtime / time.Minute),
		LastPlayed: lastPlayed,
		Recorded:   recorded,
	}
}

// Playtime returns the recorded playtime as a duration.
func (p PlaytimeRecord) Playtime() time.Duration {
	return time.Duration(p.Minutes) * time.Minute
}

// GameDetails holds the store page data of a game.
type GameDetails struct {
	AppID             GameId     `gorm:"column:app_id;primaryKey;autoIncrement:false" json:"app_id"`
	Description       string     `gorm:"column:description" json:"description"`
	ControllerSupport *string    `gorm:"column:controller_support" json:"controller_support,omitempty"`
	Coop              bool       `gorm:"column:coop;not null;default:false" json:"coop"`
	LocalCoop         bool       `gorm:"column:local_coop;not null;default:false" json:"local_coop"`
	MetacriticPercent *uint8     `gorm:"column:metacritic_percent" json:"metacritic_percent,omitempty"`
	IsReleased        bool       `gorm:"column:is_released;not null;default:false" json:"is_released"`
	ReleaseDate       *string    `gorm:"column:release_date" json:"release_date,omitempty"`
	ReleaseEstimate   *time.Time `gorm:"column:release_estimate" json:"release_estimate,omitempty"`
	Recorded          time.Time  `gorm:"column:recorded;not null" json:"recorded"`
}

func (GameDetails) TableName() string { return "game_details" }

// ReleaseText returns the raw release date text, or "" when absent.
func (d GameDetails) ReleaseText() string {
	if d.ReleaseDate == nil {
		return ""
	}
	return *d.ReleaseDate
}

// DetailLookupFailure counts failed detail lookups for a game.
type DetailLookupFailure struct {
	AppID        GameId `gorm:"column:app_id;primaryKey;autoIncrement:false" json:"app_id"`
	FailureCount int    `gorm:"column:failure_count;not null;default:0" json:"failure_count"`
}

func (DetailLookupFailure) TableName() string { return "game_details_fetch_failure" }

// NotedGame mirrors one row of the notes provider.
type NotedGame struct {
	NoteID     string                      `gorm:"column:note_id;primaryKey" json:"note_id"`
	AppID      *GameId                     `gorm:"column:app_id;index" json:"app_id,omitempty"`
	State      *GameState                  `gorm:"column:state" json:"state,omitempty"`
	Tags       datatypes.JSONSlice[string] `gorm:"column:tags" json:"tags"`
	MyRating   *uint8                      `gorm:"column:my_rating" json:"my_rating,omitempty"`
	Notes      *string                     `gorm:"column:notes" json:"notes,omitempty"`
	FirstNoted time.Time                   `gorm:"column:first_noted;not null" json:"first_noted"`
}

func (NotedGame) TableName() string { return "noted_game" }

// WishlistedGame is a wishlist membership. Removal sets Deleted instead of dropping the row.
type WishlistedGame struct {
	AppID      GameId     `gorm:"column:app_id;primaryKey;autoIncrement:false" json:"app_id"`
	Wishlisted time.Time  `gorm:"column:wishlisted;not null" json:"wishlisted"`
	Deleted    *time.Time `gorm:"column:deleted" json:"deleted,omitempty"`
}

func (WishlistedGame) TableName() string { return "wishlisted_game" }

// ReleaseUpdateLogEntry records one detected release date change.
type ReleaseUpdateLogEntry struct {
	ID           uint       `gorm:"column:id;primaryKey" json:"-"`
	AppID        GameId     `gorm:"column:app_id;not null;index" json:"app_id"`
	PrevText     string     `gorm:"column:prev_release_date" json:"prev_release_date"`
	NewText      string     `gorm:"column:new_release_date" json:"new_release_date"`
	PrevEstimate *time.Time `gorm:"column:prev_release_estimate" json:"prev_release_estimate,omitempty"`
	NewEstimate  *time.Time `gorm:"column:new_release_estimate" json:"new_release_estimate,omitempty"`
	Recorded     time.Time  `gorm:"column:recorded;not null" json:"recorded"`
}

func (ReleaseUpdateLogEntry) TableName() string { return "release_date_update" }

// IgnoredGame excludes a game from detail lookups.
type IgnoredGame struct {
	AppID   GameId    `gorm:"column:app_id;primaryKey;autoIncrement:false" json:"app_id"`
	Ignored time.Time `gorm:"column:ignored;not null" json:"ignored"`
}

func (IgnoredGame) TableName() string { return "ignored_game" }

// All lists every persisted model, in migration order.
func All() []any {
	return []any{
		&CatalogEntry{},
		&OwnershipRecord{},
		&PlaytimeRecord{},
		&GameDetails{},
		&DetailLookupFailure{},
		&NotedGame{},
		&WishlistedGame{},
		&ReleaseUpdateLogEntry{},
		&IgnoredGame{},
	}
}

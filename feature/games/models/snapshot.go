package models

import "time"

// Playtime is the total playtime of one owned game as reported by the library provider.
type Playtime struct {
	AppID      GameId
	Playtime   time.Duration
	LastPlayed time.Time
}

// Record converts the snapshot into a history row recorded at now.
func (p Playtime) Record(now time.Time) PlaytimeRecord {
	return NewPlaytimeRecord(p.AppID, p.Playtime, p.LastPlayed, now)
}

// Note is one row of the notes provider as it was read, before identity resolution.
type Note struct {
	NoteID  string
	Name    string
	SteamID *string
	State   *GameState
	Tags    []string
	Rating  *uint8
	Notes   *string
	Created time.Time
}

package models

import "fmt"

// EventKind tags a SyncEvent.
type EventKind string

const (
	EventReleaseDateUpdated EventKind = "release_date_updated"
	EventReleased           EventKind = "released"
)

// SyncEvent is a change noticed during a sync pass.
// PrevText and NewText are only set for EventReleaseDateUpdated.
type SyncEvent struct {
	Kind     EventKind `json:"kind"`
	Game     GameId    `json:"game"`
	Name     string    `json:"name,omitempty"`
	PrevText string    `json:"prev_text,omitempty"`
	NewText  string    `json:"new_text,omitempty"`
}

// ReleaseDateUpdated builds the event for a changed release date text.
func ReleaseDateUpdated(game GameId, prev, updated string) SyncEvent {
	return SyncEvent{Kind: EventReleaseDateUpdated, Game: game, PrevText: prev, NewText: updated}
}

// Released builds the event for a tracked game that came out.
func Released(game GameId, name string) SyncEvent {
	return SyncEvent{Kind: EventReleased, Game: game, Name: name}
}

// Label names the game by title when known, by id otherwise.
func (e SyncEvent) Label() string {
	if e.Name != "" {
		return e.Name
	}
	return e.Game.String()
}

func (e SyncEvent) String() string {
	switch e.Kind {
	case EventReleaseDateUpdated:
		return fmt.Sprintf("Release date changed for %s: %q -> %q", e.Label(), e.PrevText, e.NewText)
	case EventReleased:
		return fmt.Sprintf("%s is newly released!", e.Label())
	default:
		return fmt.Sprintf("%s: %s", e.Kind, e.Label())
	}
}

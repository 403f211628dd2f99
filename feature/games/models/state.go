package models

// GameState is the lifecycle label of a game in the notes provider.
// Any label outside the known set is kept as-is.
type GameState string

const (
	StateCompleted  GameState = "Completed"
	StateInProgress GameState = "InProgress"
	StateNoRelease  GameState = "NoRelease"
	StatePlayAgain  GameState = "PlayAgain"
	StatePlaySoon   GameState = "PlaySoon"
	StateReleased   GameState = "Released"
	StateTried      GameState = "Tried"
	StateUpcoming   GameState = "Upcoming"
)

var knownStates = map[GameState]struct{}{
	StateCompleted:  {},
	StateInProgress: {},
	StateNoRelease:  {},
	StatePlayAgain:  {},
	StatePlaySoon:   {},
	StateReleased:   {},
	StateTried:      {},
	StateUpcoming:   {},
}

// UnreleasedStates are the labels that mean the game has not come out yet.
var UnreleasedStates = []GameState{StateNoRelease, StateUpcoming}

// ParseGameState maps a notes provider label to a state. Matching is exact.
func ParseGameState(label string) GameState {
	return GameState(label)
}

// IsKnown reports whether s is one of the named states.
func (s GameState) IsKnown() bool {
	_, ok := knownStates[s]
	return ok
}

// IsOther reports whether s carries an unrecognized label.
func (s GameState) IsOther() bool {
	return !s.IsKnown()
}

// IsReleased is false for NoRelease and Upcoming and true for everything else,
// unrecognized labels included.
func (s GameState) IsReleased() bool {
	return s != StateNoRelease && s != StateUpcoming
}

func (s GameState) String() string {
	return string(s)
}

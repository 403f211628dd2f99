package models

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// GameId is the library provider's catalog number for a game.
type GameId uint32

// ParseGameId parses a decimal game identifier.
func ParseGameId(s string) (GameId, error) {
	n, err := strconv.ParseUint(strings.TrimSpace(s), 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidIdentifier, s)
	}
	return GameId(n), nil
}

func (id GameId) String() string {
	return strconv.FormatUint(uint64(id), 10)
}

// SortIDs sorts ids ascending in place and returns them.
func SortIDs(ids []GameId) []GameId {
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// IDSet is a set of game identifiers.
type IDSet map[GameId]struct{}

// NewIDSet builds a set from ids.
func NewIDSet(ids ...GameId) IDSet {
	s := make(IDSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// Has reports whether id is in the set.
func (s IDSet) Has(id GameId) bool {
	_, ok := s[id]
	return ok
}

// Add inserts id into the set.
func (s IDSet) Add(id GameId) {
	s[id] = struct{}{}
}

// Sorted returns the members in ascending order.
func (s IDSet) Sorted() []GameId {
	ids := make([]GameId, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	return SortIDs(ids)
}

package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type item struct {
	Key   string
	Value int
}

func itemKey(i item) string { return i.Key }

func TestDiff(t *testing.T) {
	tests := []struct {
		name        string
		stored      []string
		snapshot    []item
		opts        Options
		wantRemoves []string
		wantInserts []string
		unchanged   int
	}{
		{
			name:        "Add and remove",
			stored:      []string{"A", "B"},
			snapshot:    []item{{Key: "B"}, {Key: "C"}},
			wantRemoves: []string{"A"},
			wantInserts: []string{"C"},
			unchanged:   1,
		},
		{
			name:      "Identical",
			stored:    []string{"A", "B"},
			snapshot:  []item{{Key: "A"}, {Key: "B"}},
			unchanged: 2,
		},
		{
			name:        "Empty store",
			snapshot:    []item{{Key: "B"}, {Key: "A"}},
			wantInserts: []string{"A", "B"},
		},
		{
			name:        "Empty snapshot",
			stored:      []string{"B", "A"},
			wantRemoves: []string{"A", "B"},
		},
		{
			name:        "Skip remove",
			stored:      []string{"A"},
			snapshot:    []item{{Key: "C"}},
			opts:        Options{SkipRemove: true},
			wantInserts: []string{"C"},
		},
		{
			name:        "Skip insert",
			stored:      []string{"A"},
			snapshot:    []item{{Key: "C"}},
			opts:        Options{SkipInsert: true},
			wantRemoves: []string{"A"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan := Diff(tt.stored, tt.snapshot, itemKey, tt.opts)
			assert.Equal(t, tt.wantRemoves, plan.Keys(ActionRemove))
			assert.Equal(t, tt.wantInserts, plan.Keys(ActionInsert))
			assert.Equal(t, tt.unchanged, plan.Summary.Unchanged)
			assert.Equal(t, len(tt.wantRemoves), plan.Summary.Removes)
			assert.Equal(t, len(tt.wantInserts), plan.Summary.Inserts)
		})
	}
}

func TestDiff_DuplicateSnapshotKeepsFirst(t *testing.T) {
	plan := Diff(nil, []item{{Key: "A", Value: 1}, {Key: "A", Value: 2}}, itemKey, Options{})

	assert.Equal(t, 1, plan.Summary.Snapshot)
	assert.Len(t, plan.Actions, 1)
	assert.Equal(t, 1, plan.Actions[0].Item.Value)
}

func TestDiff_RemovalsComeFirst(t *testing.T) {
	plan := Diff([]string{"Z"}, []item{{Key: "A"}}, itemKey, Options{})

	assert.Equal(t, ActionRemove, plan.Actions[0].Type)
	assert.Equal(t, ActionInsert, plan.Actions[1].Type)
}

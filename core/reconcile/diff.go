package reconcile

import (
	"cmp"
	"slices"
)

// Diff compares the keys held in the store with a fresh snapshot and plans the mutations
// that make the store match it. Duplicate snapshot entries keep the first occurrence.
// Actions are ordered by key within each type so plans are reproducible.
func Diff[K cmp.Ordered, V any](stored []K, snapshot []V, key func(V) K, opts Options) *Plan[K, V] {
	storedSet := make(map[K]struct{}, len(stored))
	for _, k := range stored {
		storedSet[k] = struct{}{}
	}

	snapshotIndex := make(map[K]V, len(snapshot))
	for _, item := range snapshot {
		k := key(item)
		if _, seen := snapshotIndex[k]; !seen {
			snapshotIndex[k] = item
		}
	}

	plan := &Plan[K, V]{}
	plan.Summary.Stored = len(storedSet)
	plan.Summary.Snapshot = len(snapshotIndex)

	var removes, inserts []K
	for k := range storedSet {
		if _, ok := snapshotIndex[k]; ok {
			plan.Summary.Unchanged++
			continue
		}
		removes = append(removes, k)
	}
	for k := range snapshotIndex {
		if _, ok := storedSet[k]; !ok {
			inserts = append(inserts, k)
		}
	}
	slices.Sort(removes)
	slices.Sort(inserts)

	if !opts.SkipRemove {
		for _, k := range removes {
			plan.Actions = append(plan.Actions, Action[K, V]{
				Type:   ActionRemove,
				Key:    k,
				Reason: "absent from snapshot",
			})
		}
		plan.Summary.Removes = len(removes)
	}

	if !opts.SkipInsert {
		for _, k := range inserts {
			plan.Actions = append(plan.Actions, Action[K, V]{
				Type:   ActionInsert,
				Key:    k,
				Reason: "absent from store",
				Item:   snapshotIndex[k],
			})
		}
		plan.Summary.Inserts = len(inserts)
	}

	return plan
}

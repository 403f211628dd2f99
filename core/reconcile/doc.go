// Package reconcile plans and applies the mutations that bring a stored key set in line
// with a point-in-time snapshot from a remote source.
//
// # Plan
//
// Diff takes the keys currently held in the store and the snapshot items, and produces a
// Plan: one ActionRemove per stored key missing from the snapshot and one ActionInsert per
// snapshot item missing from the store. Keys on both sides are left alone, which makes
// reapplying the same snapshot a no-op.
//
// # Apply
//
// ApplyPlan executes a plan against a mutator discovered by type assertion:
//
//	type BatchRemover[K] interface { RemoveBatch(ctx, keys []K) error }
//	type Remover[K]      interface { Remove(ctx, key K) error }
//	type Inserter[V]     interface { Insert(ctx, item V) error }
//
// A batch remover is preferred so removals land in a single statement. Inserts always run,
// even if removal failed, and each insert succeeds or fails on its own.
//
// # Usage Example
//
//	plan := reconcile.Diff(storedIDs, snapshot, func(w models.WishlistedGame) models.GameId {
//	    return w.AppID
//	}, reconcile.Options{})
//
//	result, err := reconcile.ApplyPlan(ctx, mutator, plan, reconcile.Options{})
package reconcile

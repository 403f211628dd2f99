// Package sync runs one reconciliation pass between the library provider, the notes
// provider and the local store.
//
// The pass is split into synchronizers that each own one concern:
//
//   - Library pulls the catalog, ownership, playtime and missing store details.
//   - Wishlist diffs the provider's wishlist against the stored one.
//   - Notes pulls the notes database and links notes to library ids by exact name.
//   - Detector turns what changed into SyncEvents.
//
// Orchestrator runs them in order and gathers their events. It is not safe to run two
// passes at once; callers serialize them.
package sync

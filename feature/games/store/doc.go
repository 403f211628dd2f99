// Package store is the gorm-backed gateway to the relational store.
//
// Every write is idempotent so a pass interrupted half way can simply be run again.
// Batch writes handle each element on its own: a failing element is logged and skipped
// and never blocks the rest. Lookups that take an id list return an empty result for an
// empty list; they never turn into an unfiltered query.
//
// Id lists are split into chunks so large catalogs stay under the bind parameter limits
// of every supported dialect.
package store

// Package games serves the stored ledger over HTTP, read only.
//
// Routes:
//
//	GET /games/:id   details, latest playtime and release date history of one game
//	GET /owned       owned app ids
//	GET /wishlist    wishlist rows, tombstoned ones included
//	GET /ignored     app ids excluded by ignore-game
//	GET /blacklist   app ids whose detail lookups failed too often
//
// Persistence lives in the store subpackage and entities in models.
package games

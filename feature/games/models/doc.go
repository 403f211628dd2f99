// Package models defines the identity types, persisted entities and sync events shared
// by the store gateway, the provider clients and the synchronizers.
//
// # Identity
//
// GameId is the library provider's numeric application id. It is the join key between
// every table and the notes provider's "Steam ID" column.
//
// GameState is the coarse lifecycle label tracked in the notes provider. Labels the
// application does not know about are kept verbatim so they survive a round trip.
//
// # Entities
//
// Each persisted entity is a gorm model with an explicit table name:
//
//	steam_game                  CatalogEntry
//	owned_game                  OwnershipRecord
//	played_game                 PlaytimeRecord
//	game_details                GameDetails
//	game_details_fetch_failure  DetailLookupFailure
//	noted_game                  NotedGame
//	wishlisted_game             WishlistedGame
//	release_date_update         ReleaseUpdateLogEntry
//	ignored_game                IgnoredGame
//
// SyncEvent is produced by a sync pass and is never persisted.
package models

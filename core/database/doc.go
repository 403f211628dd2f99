// Package database opens the relational store and inspects its schema.
//
// It wraps GORM and supports three drivers: postgres (the default), mysql and sqlite.
// SQLite is meant for local use and tests; an in-memory database is pinned to a single
// connection so every query sees the same data.
//
// # Connect
//
// Connect builds the driver DSN from Config, applies pool settings and pings the server
// within the configured timeout.
//
// # Migrations
//
// Migrate runs GORM's AutoMigrate for the models it is given. MissingTables and
// MissingColumns back the `migrate --check` command.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    return err
//	}
//	if err := database.Migrate(db, models.All()...); err != nil {
//	    return err
//	}
package database

// Package config provides configuration management for steam-ledger.
//
// It utilizes Viper for loading configuration from an optional config file
// (config.toml or config.yaml in the working directory or ~/.steam-ledger), a .env file
// and environment variables. Defaults come from `default` struct tags.
//
// # Configuration Structure
//
// The Config struct is divided into subsections:
//   - Server: status API port, API key and sync schedule
//   - Database: store driver and connection details
//   - Storage: S3/MinIO settings for the report archive
//   - Log: logging level and format
//   - Steam: library provider key, account and hosts
//   - Notion: notes provider key, database and API version
//   - Sync: per-pass limits
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    return err
//	}
//	if err := cfg.Validate(); err != nil {
//	    return err
//	}
package config

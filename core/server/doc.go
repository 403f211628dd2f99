// Package server holds the configuration of the long running `serve` mode.
//
// The Config struct defines the status API port and key, and the cron expression
// (standard five fields, UTC) on which the scheduler starts sync passes.
//
// # Usage
//
// This package is embedded by core/config and read by cmd/serve.go.
package server

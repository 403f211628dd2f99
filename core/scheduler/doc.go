// Package scheduler runs jobs on a cron expression with gocron.
//
// Every job runs in singleton mode: a tick that fires while the previous run of the
// same job is still going is skipped. Jobs receive a context that is cancelled by Stop.
package scheduler

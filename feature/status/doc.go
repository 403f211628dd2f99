// Package status exposes the sync runner over HTTP.
//
// Routes:
//
//	GET  /status   last pass summary, whether a pass is running, table row counts
//	GET  /events   events of the last pass
//	POST /sync     start a pass in the background (409 while one is running)
//
// Service is also what the scheduler triggers, so scheduled and manual passes share one
// guard and never overlap.
package status

// Package middleware groups the HTTP middleware of the status API.
//
//   - auth checks the X-API-Key header against the configured key.
//   - rayid tags every request with a ray id, stored in the request locals and echoed
//     in the X-Ray-ID response header, so log lines of one request can be correlated.
package middleware

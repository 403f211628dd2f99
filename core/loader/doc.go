// Package loader mounts HTTP features on the fiber app.
//
// A feature reports its name and whether it is enabled, and registers its routes in
// Load. Manager.LoadAll loads features in registration order, logs the ones that are
// disabled and stops at the first feature that fails to load.
//
// serve registers the status feature after the auth middleware, so every feature route
// requires the API key when one is configured.
package loader

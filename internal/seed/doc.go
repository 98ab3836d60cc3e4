// Package seed loads the standard feature catalog and a few sample cars into
// an empty database.
//
// Sample cars are created through the configuration service, so they pass the
// same validation and rules as cars submitted over HTTP.
package seed

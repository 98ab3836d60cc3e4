// Package api exposes the catalog and saved cars over HTTP.
//
// Handlers decode and validate requests, call the services and translate
// their errors to status codes with MapErrorToStatusCode. Validation and
// rule failures are 400, unknown ids are 404 and anything else is a generic
// 500 whose details are only logged, in redacted form.
package api

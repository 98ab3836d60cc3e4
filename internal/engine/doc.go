// Package engine validates proposed option selections against a catalog
// snapshot and the compatibility rules, and derives the configuration price.
//
// The engine performs no I/O. Persisting an accepted configuration is the
// job of the store layer, invoked by the service only after Build succeeds.
package engine

// Package store defines the persistence contracts for the catalog and for
// saved configurations, the shared store errors, and the transaction helper
// used by services to make multi-statement writes atomic.
package store

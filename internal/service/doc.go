// Package service contains the configurator's use cases. It loads catalog
// snapshots, runs proposals through the configuration engine and owns the
// transaction boundary around every multi-row write.
//
// Services depend on the store interfaces, never on a concrete database.
package service

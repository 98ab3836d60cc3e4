// Package domain contains the core business entities of the car configurator:
// the catalog of Features and Options, the Selection of one option per feature,
// and the persisted Configuration with its derived price. It is independent of
// any storage or delivery mechanism.
package domain

// Package ciutil detects CI environments and resolves the test database URL.
//
// Integration tests skip when no database is available on a developer
// machine, but must fail in CI, where a skipped suite would hide a broken
// environment.
package ciutil

// Package testutil holds helpers shared by the package tests: an in-memory
// Source with call accounting, a concurrency-safe log buffer and file
// fixtures.
package testutil

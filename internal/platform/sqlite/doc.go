// Package sqlite provides SQLite-backed implementations of the store
// interfaces using the pure-Go modernc.org/sqlite driver. It backs local
// development (database.driver=sqlite) and the store tests, which run the
// real schema against an in-memory database.
package sqlite

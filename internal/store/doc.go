// Package store defines interfaces for task and user persistence.
// These interfaces abstract the underlying database so the services can be
// backed by PostgreSQL in production, SQLite locally, or test doubles.
package store

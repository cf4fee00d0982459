// Package postgres provides the PostgreSQL implementations of the task and
// user stores, the embedded goose migrations for the production schema, and
// the mapping from pgx driver errors to store errors.
package postgres

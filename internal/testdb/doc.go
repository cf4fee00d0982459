// Package testdb provides database helpers for tests.
//
// NewSQLite gives every test its own migrated in-memory SQLite database, so
// store and service tests run against real SQL without external services.
// OpenPostgres connects to the database named by TASKBOARD_TEST_DATABASE_URL
// and skips the test when the variable is unset. WithTx runs a test body in a
// transaction that is always rolled back.
//
//	func TestTaskStore(t *testing.T) {
//	    db := testdb.NewSQLite(t)
//	    s := sqlite.NewTaskStore(db, nil)
//	    ...
//	}
package testdb

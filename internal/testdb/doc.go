// Package testdb provides helpers for integration tests that need a real
// PostgreSQL database. Tests using it carry the integration build tag and
// skip themselves when TASKAPI_TEST_DATABASE_URL is unset.
//
// Each test runs inside a transaction that is rolled back afterwards:
//
//	db := testdb.GetTestDB(t)
//	testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
//		tasks := postgres.NewPostgresTaskStore(tx, nil)
//		...
//	})
package testdb

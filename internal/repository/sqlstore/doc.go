// Package sqlstore implements the account and message repositories on
// database/sql. The same statements run against PostgreSQL (lib/pq) and
// SQLite (mattn/go-sqlite3): placeholders are $n and inserts use RETURNING.
//
// Driver errors never leave this package raw. They are wrapped in
// *domain.PersistenceError, except unique-constraint violations, which
// become domain.ErrConflict.
package sqlstore

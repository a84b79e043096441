// Package sqlite provides the SQLite interface for the project index store.
//
// The pure Go driver (modernc.org/sqlite) is used so that index databases
// work without CGO in every build environment the pipeline runs in. The
// driver name is "sqlite"; use Open() instead of sql.Open() so the right
// driver is always selected.
package sqlite

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

const driverName = "sqlite"

// DriverName returns the SQL driver name in use.
func DriverName() string {
	return driverName
}

// Open opens a SQLite database. This is the preferred way to open
// index databases.
func Open(dataSourceName string) (*sql.DB, error) {
	return sql.Open(driverName, dataSourceName)
}

// OpenReadOnly opens a SQLite database in read-only mode.
func OpenReadOnly(path string) (*sql.DB, error) {
	return Open("file:" + path + "?mode=ro")
}

// MustOpen opens a SQLite database and panics on error. Intended for
// tests and initialization code where database access failure is
// unrecoverable.
func MustOpen(dataSourceName string) *sql.DB {
	db, err := Open(dataSourceName)
	if err != nil {
		panic(fmt.Sprintf("sqlite: failed to open %s: %v", dataSourceName, err))
	}
	return db
}

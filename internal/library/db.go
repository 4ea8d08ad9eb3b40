// Package library is the editor's sqlite side-store: recently opened
// sheets and the last session. Sheet content itself never lives here;
// it stays in the JSON sheet files.
package library

import (
	"database/sql"

	_ "modernc.org/sqlite"
)

// Open opens the library database with sensible defaults.
func Open(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1) // sqlite
	db.SetConnMaxLifetime(0)
	return db, nil
}

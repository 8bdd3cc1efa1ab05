// Package database opens the service's SQLite store through the libSQL
// driver.
package database

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/tursodatabase/go-libsql"
)

// Open opens (creating it if needed) the SQLite file at path and applies
// the connection settings the service relies on: WAL journaling, a 5 second
// busy timeout, and foreign key enforcement.
func Open(ctx context.Context, path string) (*sql.DB, error) {
	db, err := sql.Open("libsql", "file:"+path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	// The driver wants PRAGMAs issued as queries. Some return a result row
	// (journal_mode does) and some return nothing, so drain whatever comes
	// back instead of Exec-ing.
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA foreign_keys=ON",
	} {
		rows, err := db.QueryContext(ctx, pragma)
		if err != nil {
			db.Close()
			return nil, fmt.Errorf("%s: %w", pragma, err)
		}
		rows.Close()
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping %s: %w", path, err)
	}

	return db, nil
}

// Moviematch - Collaborative Filtering Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviematch

package database

import (
	"context"
	"fmt"
	"strings"
)

// sqliteCatalog is the alias an attached SQLite file is mounted under.
const sqliteCatalog = "moviesdb"

// loadSQLiteExtension installs and loads the sqlite_scanner extension.
// ATTACH and LOAD are database-wide in DuckDB, so every pooled connection
// sees the result.
func (db *DB) loadSQLiteExtension(ctx context.Context) error {
	// Try to install, then load (extension may already be installed)
	if _, err := db.conn.ExecContext(ctx, "INSTALL sqlite_scanner;"); err != nil {
		if _, loadErr := db.conn.ExecContext(ctx, "LOAD sqlite_scanner;"); loadErr != nil {
			if _, forceErr := db.conn.ExecContext(ctx, "FORCE INSTALL sqlite_scanner;"); forceErr != nil {
				return fmt.Errorf("install error: %w, load error: %w, force install error: %w", err, loadErr, forceErr)
			}
			_, err = db.conn.ExecContext(ctx, "LOAD sqlite_scanner;")
			return err
		}
		return nil
	}

	_, err := db.conn.ExecContext(ctx, "LOAD sqlite_scanner;")
	return err
}

// attachSQLite mounts a read-only SQLite movies/ratings file and points the
// read queries at it.
func (db *DB) attachSQLite(ctx context.Context, path string) error {
	if err := db.loadSQLiteExtension(ctx); err != nil {
		return fmt.Errorf("load sqlite extension: %w", err)
	}

	stmt := fmt.Sprintf("ATTACH '%s' AS %s (TYPE SQLITE, READ_ONLY)", escapeLiteral(path), sqliteCatalog)
	if _, err := db.conn.ExecContext(ctx, stmt); err != nil {
		return fmt.Errorf("attach sqlite database %s: %w", path, err)
	}

	if err := db.verifyAttachedTables(ctx); err != nil {
		db.detachSQLite()
		return fmt.Errorf("verify tables: %w", err)
	}

	db.queries = newQueries(sqliteCatalog + ".")
	db.attached = true
	return nil
}

// detachSQLite is best-effort; errors are not actionable.
func (db *DB) detachSQLite() {
	_, _ = db.conn.ExecContext(context.Background(), "DETACH DATABASE IF EXISTS "+sqliteCatalog)
}

// verifyAttachedTables checks that the attached file has both tables.
func (db *DB) verifyAttachedTables(ctx context.Context) error {
	for _, table := range []string{tableMovies, tableRatings} {
		var count int
		err := db.conn.QueryRowContext(ctx,
			"SELECT COUNT(*) FROM information_schema.tables WHERE table_catalog = ? AND table_name = ?",
			sqliteCatalog, table,
		).Scan(&count)
		if err != nil {
			return fmt.Errorf("check table %s: %w", table, err)
		}
		if count == 0 {
			return fmt.Errorf("table %s not found in attached database", table)
		}
	}
	return nil
}

// escapeLiteral doubles single quotes for embedding in a SQL string literal.
func escapeLiteral(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

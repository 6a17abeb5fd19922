// Package database opens the local SQLite catalog database and applies the
// embedded schema migrations.
//
// The database is a single file under the user's data directory. Open creates
// the directory when needed, enables foreign keys and a busy timeout through
// the DSN, optionally switches to WAL, and limits the pool to one connection
// since SQLite allows a single writer.
//
// Migrations live in migrations/ as YYYYMMDD_HHMMSS_name.up.sql (and an
// optional .down.sql). Each is applied in its own transaction and recorded in
// schema_migrations, so Migrate is safe to call on every start.
package database

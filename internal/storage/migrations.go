package storage

import (
	"database/sql"
	_ "embed"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/danielledeleo/createpage/wiki"
	"github.com/jmoiron/sqlx"
)

//go:embed schema.sql
var schemaSQL string

type migration struct {
	version int
	name    string
	sql     string
}

// migrations are applied in order; a database at version N has run the first N.
var migrations = []migration{
	{version: 1, name: "initial schema", sql: schemaSQL},
}

var latestVersion = migrations[len(migrations)-1].version

// RunMigrations brings the database schema up to date. Each migration runs in
// its own transaction together with the schema_version bump, so it is safe to
// run repeatedly.
func RunMigrations(db *sqlx.DB) error {
	// Setting must exist before the version can be read.
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS Setting (
		key TEXT PRIMARY KEY NOT NULL,
		value TEXT NOT NULL,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`); err != nil {
		return err
	}

	current, err := SchemaVersion(db)
	if err != nil {
		return err
	}

	for _, m := range migrations {
		if m.version <= current {
			continue
		}
		if err := applyMigration(db, m); err != nil {
			return fmt.Errorf("migration %d (%s): %w", m.version, m.name, err)
		}
		slog.Info("applied migration", "version", m.version, "name", m.name)
	}

	return nil
}

func applyMigration(db *sqlx.DB, m migration) (err error) {
	tx, err := db.Beginx()
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				slog.Error("transaction rollback failed", "error", rbErr)
			}
			return
		}
		err = tx.Commit()
	}()

	if _, err = tx.Exec(m.sql); err != nil {
		return err
	}
	_, err = tx.Exec(`INSERT INTO Setting (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		wiki.SettingSchemaVersion, strconv.Itoa(m.version))
	return err
}

// SchemaVersion returns the recorded schema version, or 0 for a fresh database.
func SchemaVersion(db *sqlx.DB) (int, error) {
	var tables int
	if err := db.Get(&tables, `SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = 'Setting'`); err != nil {
		return 0, err
	}
	if tables == 0 {
		return 0, nil
	}

	var value string
	err := db.Get(&value, `SELECT value FROM Setting WHERE key = ?`, wiki.SettingSchemaVersion)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(value)
}

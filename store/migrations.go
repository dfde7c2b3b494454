package store

import (
	"crypto/sha256"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
)

var (
	//go:embed migrations/sqlite/*.sql
	sqliteMigrations embed.FS
	//go:embed migrations/postgres/*.sql
	postgresMigrations embed.FS
)

type migration struct {
	ID       string
	Checksum string
	SQL      string
}

const createMigrationsTable = `
CREATE TABLE IF NOT EXISTS gom_migrations (
    migration_id TEXT PRIMARY KEY,
    checksum TEXT NOT NULL,
    applied_at TEXT NOT NULL
)`

// Migrate applies the pending migrations of the connected driver in file
// name order, each in its own transaction. A migration that was applied with
// different content is an error.
func Migrate(db *sqlx.DB) error {
	migrations, err := loadMigrations(db.DriverName())
	if err != nil {
		return err
	}
	if _, err := db.Exec(createMigrationsTable); err != nil {
		return errors.Wrap(err, "store.Migrate error: create migrations table")
	}

	applied := map[string]string{}
	rows, err := db.Queryx(`SELECT migration_id, checksum FROM gom_migrations`)
	if err != nil {
		return errors.Wrap(err, "store.Migrate error: read applied migrations")
	}
	for rows.Next() {
		id, checksum := "", ""
		if err := rows.Scan(&id, &checksum); err != nil {
			rows.Close()
			return errors.Wrap(err, "store.Migrate error")
		}
		applied[id] = checksum
	}
	rows.Close()

	for _, m := range migrations {
		checksum, ok := applied[m.ID]
		if ok {
			if checksum != m.Checksum {
				return errors.Errorf("store.Migrate error: checksum mismatch for migration `%s`", m.ID)
			}
			continue
		}
		if err := applyMigration(db, m); err != nil {
			return errors.Wrapf(err, "store.Migrate error: migration `%s`", m.ID)
		}
	}
	return nil
}

func loadMigrations(driverName string) ([]migration, error) {
	fsys := embed.FS{}
	dir := ""
	switch driverName {
	case driverSQLite:
		fsys, dir = sqliteMigrations, "migrations/sqlite"
	case driverPostgres:
		fsys, dir = postgresMigrations, "migrations/postgres"
	default:
		return nil, errors.Errorf("store.loadMigrations error: unsupported driver `%s`", driverName)
	}

	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, errors.Wrap(err, "store.loadMigrations error")
	}
	migrations := make([]migration, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".sql") {
			continue
		}
		content, err := fsys.ReadFile(path.Join(dir, entry.Name()))
		if err != nil {
			return nil, errors.Wrap(err, "store.loadMigrations error")
		}
		migrations = append(migrations, migration{
			ID:       entry.Name(),
			Checksum: fmt.Sprintf("%x", sha256.Sum256(content)),
			SQL:      string(content),
		})
	}
	sort.Slice(migrations, func(i, j int) bool {
		return migrations[i].ID < migrations[j].ID
	})
	return migrations, nil
}

func applyMigration(db *sqlx.DB, m migration) error {
	tx, err := db.Beginx()
	if err != nil {
		return err
	}
	// lib/pq does not take several statements in one Exec
	for _, statement := range strings.Split(m.SQL, ";") {
		statement = strings.TrimSpace(statement)
		if statement == "" {
			continue
		}
		if _, err := tx.Exec(statement); err != nil {
			tx.Rollback()
			return err
		}
	}
	_, err = tx.Exec(
		tx.Rebind(`INSERT INTO gom_migrations (migration_id, checksum, applied_at) VALUES (?, ?, ?)`),
		m.ID, m.Checksum, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}

// internal/store/sqlite.go
//
// SQLite-backed Store plus the schema migrator.
//
// Migrate applies the embedded assets/sql/*.sql files in lexical order,
// each inside its own transaction, recording applied names in _migrations.

package store

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"sort"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/spellbank/assets"
)

// Migrate brings db up to the embedded schema. It is idempotent.
func Migrate(db *sql.DB) error {
	return migrateFS(db, assets.Migrations())
}

func migrateFS(db *sql.DB, fsys fs.FS) error {
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS _migrations (name TEXT PRIMARY KEY);`); err != nil {
		return fmt.Errorf("create _migrations: %w", err)
	}
	files, err := fs.Glob(fsys, "*.sql")
	if err != nil {
		return fmt.Errorf("list migrations: %w", err)
	}
	sort.Strings(files)

	for _, f := range files {
		var done int
		err := db.QueryRow(`SELECT 1 FROM _migrations WHERE name=?`, f).Scan(&done)
		if err == nil {
			log.Debug().Str("migration", f).Msg("already applied")
			continue
		}
		if err != sql.ErrNoRows {
			return fmt.Errorf("query _migrations: %w", err)
		}

		sqlBytes, err := fs.ReadFile(fsys, f)
		if err != nil {
			return fmt.Errorf("read %s: %w", f, err)
		}

		tx, err := db.Begin()
		if err != nil {
			return err
		}
		if _, err := tx.Exec(string(sqlBytes)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("apply %s: %w", f, err)
		}
		if _, err := tx.Exec(`INSERT INTO _migrations(name) VALUES (?)`, f); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("record %s: %w", f, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit %s: %w", f, err)
		}
		log.Info().Str("migration", f).Msg("applied")
	}
	return nil
}

// sqliteStore keeps progress in the `progress` table.
type sqliteStore struct {
	db *sql.DB
}

// NewSQLiteStore wraps a migrated database.
func NewSQLiteStore(db *sql.DB) Store {
	return &sqliteStore{db: db}
}

func (s *sqliteStore) Get(ctx context.Context, player, key string) (string, bool, error) {
	if player == "" {
		return "", false, ErrNoPlayer
	}
	var v string
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM progress WHERE player_id=? AND key=?`, player, key,
	).Scan(&v)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

func (s *sqliteStore) Put(ctx context.Context, player, key, value string) error {
	if player == "" {
		return ErrNoPlayer
	}
	_, err := s.db.ExecContext(ctx, `
        INSERT INTO progress (player_id, key, value, updated_at)
        VALUES (?, ?, ?, strftime('%Y-%m-%dT%H:%M:%SZ', 'now'))
        ON CONFLICT (player_id, key) DO UPDATE
            SET value = excluded.value, updated_at = excluded.updated_at`,
		player, key, value,
	)
	return err
}

func (s *sqliteStore) Claim(ctx context.Context, from, to string) (bool, error) {
	if from == "" || to == "" {
		return false, ErrNoPlayer
	}
	if from == to {
		return false, nil
	}
	res, err := s.db.ExecContext(ctx, `
        UPDATE progress SET player_id = ?
        WHERE player_id = ?
          AND NOT EXISTS (SELECT 1 FROM progress WHERE player_id = ?)`,
		to, from, to,
	)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

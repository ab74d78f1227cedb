// internal/words/db.go
//
// SQLite storage for the lexicon.
// Responsibilities:
//   - Opening SQLite databases with safe defaults (WAL, busy timeout).
//   - Applying embedded migrations from assets/sql (idempotent, recorded in _migrations).
//   - Writing a Lexicon into the words table and reading it back.
//
// The table keeps each word's position in its source list (seq), so a lexicon
// loaded from the database iterates in the same order as the file it came from.

package words

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/evilhangman/assets"
)

// OpenDB opens (and creates if missing) a SQLite database file.
// The parent directory is created for relative paths like ./data/words.db.
func OpenDB(dsn string) (*sql.DB, error) {
	dir := filepath.Dir(dsn)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite3", dsn+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(`PRAGMA journal_mode = WAL;`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set pragmas: %w", err)
	}
	return db, nil
}

// Migrate applies the embedded sql/*.sql files in lexical order.
// Applied files are recorded in _migrations and skipped on later runs.
func Migrate(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS _migrations (name TEXT PRIMARY KEY);`); err != nil {
		return fmt.Errorf("create _migrations: %w", err)
	}

	files, err := fs.Glob(assets.FS, "sql/*.sql")
	if err != nil {
		return fmt.Errorf("list migrations: %w", err)
	}
	sort.Strings(files)

	for _, f := range files {
		var done int
		err := db.QueryRowContext(ctx, `SELECT 1 FROM _migrations WHERE name=?`, f).Scan(&done)
		if err == nil {
			log.Debug().Str("migration", f).Msg("already applied")
			continue
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("query _migrations: %w", err)
		}

		body, err := fs.ReadFile(assets.FS, f)
		if err != nil {
			return fmt.Errorf("read %s: %w", f, err)
		}

		tx, err := db.BeginTx(ctx, nil)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, string(body)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("apply %s: %w", f, err)
		}
		if _, err := tx.ExecContext(ctx, `INSERT INTO _migrations(name) VALUES (?)`, f); err != nil {
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

// Store replaces the contents of the words table with lx.
func (lx *Lexicon) Store(ctx context.Context, db *sql.DB) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM words`); err != nil {
		return fmt.Errorf("clear words: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO words (word, length, seq) VALUES (?,?,?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	seq := 0
	for _, n := range lx.Lengths() {
		for _, w := range lx.byLen[n] {
			if _, err := stmt.ExecContext(ctx, w, n, seq); err != nil {
				return fmt.Errorf("insert %q: %w", w, err)
			}
			seq++
		}
	}
	return tx.Commit()
}

// LoadDB reads the lexicon stored in db.
func LoadDB(ctx context.Context, db *sql.DB) (*Lexicon, error) {
	rows, err := db.QueryContext(ctx, `SELECT word FROM words ORDER BY length ASC, seq ASC`)
	if err != nil {
		return nil, fmt.Errorf("query words: %w", err)
	}
	defer rows.Close()

	var list []string
	for rows.Next() {
		var w string
		if err := rows.Scan(&w); err != nil {
			return nil, err
		}
		list = append(list, w)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return New(list)
}

// OpenStored opens the database at dsn, migrates it and loads its lexicon.
func OpenStored(ctx context.Context, dsn string) (*Lexicon, error) {
	db, err := OpenDB(dsn)
	if err != nil {
		return nil, err
	}
	defer db.Close()
	if err := Migrate(ctx, db); err != nil {
		return nil, err
	}
	lx, err := LoadDB(ctx, db)
	if err != nil {
		return nil, fmt.Errorf("words: load %s: %w", dsn, err)
	}
	return lx, nil
}

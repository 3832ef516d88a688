// Package store keeps imported catalogs in a SQLite library.
package store

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/verte-zerg/shadow/internal/catalog"

	_ "modernc.org/sqlite" // SQLite driver.
)

// timeLayout is fixed-width so stored timestamps sort lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// ErrNotFound indicates the library has no catalog with the requested name.
var ErrNotFound = errors.New("catalog not found")

// Store wraps SQLite access for the catalog library.
type Store struct {
	db *sql.DB
}

// Summary describes a stored catalog.
type Summary struct {
	Name       string
	Sport      string
	Exercises  int
	Drills     int
	ImportedAt time.Time
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS catalogs (
			id INTEGER PRIMARY KEY,
			name TEXT NOT NULL UNIQUE,
			sport TEXT NOT NULL,
			imported_at TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS exercises (
			catalog_id INTEGER NOT NULL,
			position INTEGER NOT NULL,
			name TEXT NOT NULL,
			description TEXT NOT NULL,
			PRIMARY KEY (catalog_id, position)
		);`,
		`CREATE TABLE IF NOT EXISTS drills (
			catalog_id INTEGER NOT NULL,
			exercise_position INTEGER NOT NULL,
			position INTEGER NOT NULL,
			short_name TEXT NOT NULL,
			long_name TEXT NOT NULL,
			description TEXT NOT NULL,
			PRIMARY KEY (catalog_id, exercise_position, position)
		);`,
		`CREATE TABLE IF NOT EXISTS periods (
			catalog_id INTEGER NOT NULL,
			position INTEGER NOT NULL,
			minutes REAL NOT NULL,
			PRIMARY KEY (catalog_id, position)
		);`,
		`CREATE TABLE IF NOT EXISTS paces (
			catalog_id INTEGER NOT NULL,
			position INTEGER NOT NULL,
			timeout_sec REAL NOT NULL,
			description TEXT NOT NULL,
			PRIMARY KEY (catalog_id, position)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_catalogs_imported_at ON catalogs(imported_at);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// SaveCatalog stores c under name, replacing any catalog with the same name.
func (s *Store) SaveCatalog(ctx context.Context, name string, c catalog.Catalog) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	if _, err = deleteByName(ctx, tx, name); err != nil {
		return err
	}
	res, err := tx.ExecContext(ctx,
		`INSERT INTO catalogs (name, sport, imported_at) VALUES (?, ?, ?)`,
		name, c.Sport, time.Now().UTC().Format(timeLayout))
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}

	for i, ex := range c.Exercises {
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO exercises (catalog_id, position, name, description) VALUES (?, ?, ?, ?)`,
			id, i, ex.Name, ex.Description); err != nil {
			return err
		}
		for j, d := range ex.Drills {
			if _, err = tx.ExecContext(ctx,
				`INSERT INTO drills (catalog_id, exercise_position, position, short_name, long_name, description)
				 VALUES (?, ?, ?, ?, ?, ?)`,
				id, i, j, d.ShortName, d.LongName, d.Description); err != nil {
				return err
			}
		}
	}
	for i, p := range c.PeriodsInMin {
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO periods (catalog_id, position, minutes) VALUES (?, ?, ?)`,
			id, i, p); err != nil {
			return err
		}
	}
	for i, p := range c.Paces {
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO paces (catalog_id, position, timeout_sec, description) VALUES (?, ?, ?, ?)`,
			id, i, p.TimeoutInSec, p.Description); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// LoadCatalog reads the catalog stored under name. An empty name selects the
// most recently imported catalog.
func (s *Store) LoadCatalog(ctx context.Context, name string) (catalog.Catalog, error) {
	query := `SELECT id, sport FROM catalogs WHERE name = ?`
	args := []any{name}
	if name == "" {
		query = `SELECT id, sport FROM catalogs ORDER BY imported_at DESC, id DESC LIMIT 1`
		args = nil
	}
	var id int64
	var c catalog.Catalog
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&id, &c.Sport); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return catalog.Catalog{}, ErrNotFound
		}
		return catalog.Catalog{}, err
	}

	exercises, err := s.loadExercises(ctx, id)
	if err != nil {
		return catalog.Catalog{}, err
	}
	c.Exercises = exercises
	if c.PeriodsInMin, err = s.loadPeriods(ctx, id); err != nil {
		return catalog.Catalog{}, err
	}
	if c.Paces, err = s.loadPaces(ctx, id); err != nil {
		return catalog.Catalog{}, err
	}
	return c, nil
}

func (s *Store) loadExercises(ctx context.Context, id int64) ([]catalog.Exercise, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT name, description FROM exercises WHERE catalog_id = ? ORDER BY position`, id)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var exercises []catalog.Exercise
	for rows.Next() {
		var ex catalog.Exercise
		if err := rows.Scan(&ex.Name, &ex.Description); err != nil {
			return nil, err
		}
		exercises = append(exercises, ex)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	drillRows, err := s.db.QueryContext(ctx,
		`SELECT exercise_position, short_name, long_name, description
		 FROM drills WHERE catalog_id = ? ORDER BY exercise_position, position`, id)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := drillRows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()
	for drillRows.Next() {
		var pos int
		var d catalog.Drill
		if err := drillRows.Scan(&pos, &d.ShortName, &d.LongName, &d.Description); err != nil {
			return nil, err
		}
		if pos < 0 || pos >= len(exercises) {
			continue
		}
		exercises[pos].Drills = append(exercises[pos].Drills, d)
	}
	if err := drillRows.Err(); err != nil {
		return nil, err
	}
	return exercises, nil
}

func (s *Store) loadPeriods(ctx context.Context, id int64) ([]float64, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT minutes FROM periods WHERE catalog_id = ? ORDER BY position`, id)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var periods []float64
	for rows.Next() {
		var p float64
		if err := rows.Scan(&p); err != nil {
			return nil, err
		}
		periods = append(periods, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return periods, nil
}

func (s *Store) loadPaces(ctx context.Context, id int64) ([]catalog.Pace, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT timeout_sec, description FROM paces WHERE catalog_id = ? ORDER BY position`, id)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var paces []catalog.Pace
	for rows.Next() {
		var p catalog.Pace
		if err := rows.Scan(&p.TimeoutInSec, &p.Description); err != nil {
			return nil, err
		}
		paces = append(paces, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return paces, nil
}

// ListCatalogs returns a summary of every stored catalog, ordered by name.
func (s *Store) ListCatalogs(ctx context.Context) ([]Summary, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT c.name, c.sport, c.imported_at,
			(SELECT COUNT(*) FROM exercises e WHERE e.catalog_id = c.id),
			(SELECT COUNT(*) FROM drills d WHERE d.catalog_id = c.id)
		FROM catalogs c
		ORDER BY c.name ASC`)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var result []Summary
	for rows.Next() {
		var sum Summary
		var importedAt string
		if err := rows.Scan(&sum.Name, &sum.Sport, &importedAt, &sum.Exercises, &sum.Drills); err != nil {
			return nil, err
		}
		parsed, err := time.Parse(timeLayout, importedAt)
		if err != nil {
			return nil, err
		}
		sum.ImportedAt = parsed
		result = append(result, sum)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// DeleteCatalog removes the catalog stored under name.
func (s *Store) DeleteCatalog(ctx context.Context, name string) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	found, err := deleteByName(ctx, tx, name)
	if err != nil {
		return err
	}
	if !found {
		return ErrNotFound
	}
	return tx.Commit()
}

func deleteByName(ctx context.Context, tx *sql.Tx, name string) (bool, error) {
	var id int64
	err := tx.QueryRowContext(ctx, `SELECT id FROM catalogs WHERE name = ?`, name).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	for _, table := range []string{"drills", "exercises", "periods", "paces"} {
		if _, err := tx.ExecContext(ctx, `DELETE FROM `+table+` WHERE catalog_id = ?`, id); err != nil {
			return false, err
		}
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM catalogs WHERE id = ?`, id); err != nil {
		return false, err
	}
	return true, nil
}

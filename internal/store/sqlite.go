package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/nhle/menu-catalog/internal/model"
)

const settingActiveMenu = "active_menu_id"

// SQLiteStore implements the Store interface using a local SQLite database.
type SQLiteStore struct {
	db *sqlx.DB
}

var _ Store = (*SQLiteStore)(nil)

// NewSQLiteStore opens (or creates) a SQLite database at dbPath,
// enables WAL mode, and runs any pending schema migrations.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sqlx.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}

	// A single connection keeps ":memory:" databases shared across calls
	// and serializes writers.
	db.SetMaxOpenConns(1)

	// Enable WAL mode for better concurrent read performance.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.runMigrations(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// runMigrations checks the current schema version and applies any
// outstanding migrations in order.
func (s *SQLiteStore) runMigrations() error {
	currentVersion := 0

	// Check if schema_version table exists.
	var tableCount int
	err := s.db.Get(
		&tableCount,
		"SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	)
	if err != nil {
		return fmt.Errorf("checking schema_version table: %w", err)
	}

	if tableCount > 0 {
		err = s.db.Get(&currentVersion, "SELECT COALESCE(MAX(version), 0) FROM schema_version")
		if err != nil {
			return fmt.Errorf("reading schema version: %w", err)
		}
	}

	for _, m := range migrations {
		if m.version <= currentVersion {
			continue
		}
		if _, err := s.db.Exec(m.sql); err != nil {
			return fmt.Errorf("applying migration v%d: %w", m.version, err)
		}
	}

	return nil
}

// SaveSnapshot replaces the stored catalog with snap in one transaction.
func (s *SQLiteStore) SaveSnapshot(ctx context.Context, snap model.Snapshot) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if err := saveList(ctx, tx, ListMenus, snap.Menus); err != nil {
		return err
	}
	if err := saveList(ctx, tx, ListCategories, snap.Categories); err != nil {
		return err
	}
	if err := saveList(ctx, tx, ListItems, snap.Items); err != nil {
		return err
	}
	if err := saveList(ctx, tx, ListModifiers, snap.Modifiers); err != nil {
		return err
	}
	if err := saveList(ctx, tx, ListArchived, snap.Archived); err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx,
		"INSERT OR REPLACE INTO settings (key, value) VALUES (?, ?)",
		settingActiveMenu, snap.ActiveMenuID)
	if err != nil {
		return fmt.Errorf("saving active menu: %w", err)
	}

	return tx.Commit()
}

// saveList rewrites table list with one JSON row per entity and records
// their order.
func saveList[T model.Entry](ctx context.Context, tx *sqlx.Tx, list string, vs []T) error {
	if _, err := tx.ExecContext(ctx, "DELETE FROM "+list); err != nil {
		return fmt.Errorf("clearing %s: %w", list, err)
	}

	stmt, err := tx.PreparexContext(ctx, "INSERT INTO "+list+" (id, data) VALUES (?, ?)")
	if err != nil {
		return fmt.Errorf("preparing %s insert: %w", list, err)
	}
	defer stmt.Close()

	ids := make([]string, 0, len(vs))
	for _, v := range vs {
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("marshaling %s %s: %w", list, v.GetID(), err)
		}
		if _, err := stmt.ExecContext(ctx, v.GetID(), string(data)); err != nil {
			return fmt.Errorf("inserting %s %s: %w", list, v.GetID(), err)
		}
		ids = append(ids, v.GetID())
	}

	order, err := json.Marshal(ids)
	if err != nil {
		return fmt.Errorf("marshaling %s order: %w", list, err)
	}
	_, err = tx.ExecContext(ctx,
		"INSERT OR REPLACE INTO list_order (list, ids) VALUES (?, ?)", list, string(order))
	if err != nil {
		return fmt.Errorf("saving %s order: %w", list, err)
	}
	return nil
}

// LoadSnapshot reads the stored catalog.
func (s *SQLiteStore) LoadSnapshot(ctx context.Context) (model.Snapshot, error) {
	var (
		snap model.Snapshot
		err  error
	)
	if snap.Menus, err = loadList[model.Menu](ctx, s.db, ListMenus); err != nil {
		return model.Snapshot{}, err
	}
	if snap.Categories, err = loadList[model.Category](ctx, s.db, ListCategories); err != nil {
		return model.Snapshot{}, err
	}
	if snap.Items, err = loadList[model.Item](ctx, s.db, ListItems); err != nil {
		return model.Snapshot{}, err
	}
	if snap.Modifiers, err = loadList[model.Modifier](ctx, s.db, ListModifiers); err != nil {
		return model.Snapshot{}, err
	}
	if snap.Archived, err = loadList[model.ArchivedItem](ctx, s.db, ListArchived); err != nil {
		return model.Snapshot{}, err
	}

	err = s.db.GetContext(ctx, &snap.ActiveMenuID,
		"SELECT value FROM settings WHERE key = ?", settingActiveMenu)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return model.Snapshot{}, fmt.Errorf("reading active menu: %w", err)
	}

	return snap, nil
}

type row struct {
	ID   string `db:"id"`
	Data string `db:"data"`
}

// loadList returns the entities of list in their recorded order. Rows
// missing from the order (written by hand, say) follow in id order.
func loadList[T any](ctx context.Context, db *sqlx.DB, list string) ([]T, error) {
	var rows []row
	if err := db.SelectContext(ctx, &rows, "SELECT id, data FROM "+list+" ORDER BY id"); err != nil {
		return nil, fmt.Errorf("querying %s: %w", list, err)
	}

	var orderJSON string
	err := db.GetContext(ctx, &orderJSON, "SELECT ids FROM list_order WHERE list = ?", list)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("reading %s order: %w", list, err)
	}
	var order []string
	if orderJSON != "" {
		if err := json.Unmarshal([]byte(orderJSON), &order); err != nil {
			return nil, fmt.Errorf("unmarshaling %s order: %w", list, err)
		}
	}

	byID := make(map[string]string, len(rows))
	for _, r := range rows {
		byID[r.ID] = r.Data
	}

	out := make([]T, 0, len(rows))
	decode := func(id, data string) error {
		var v T
		if err := json.Unmarshal([]byte(data), &v); err != nil {
			return fmt.Errorf("unmarshaling %s %s: %w", list, id, err)
		}
		out = append(out, v)
		return nil
	}
	for _, id := range order {
		data, ok := byID[id]
		if !ok {
			continue
		}
		if err := decode(id, data); err != nil {
			return nil, err
		}
		delete(byID, id)
	}
	for _, r := range rows {
		if _, ok := byID[r.ID]; !ok {
			continue
		}
		if err := decode(r.ID, r.Data); err != nil {
			return nil, err
		}
	}
	return out, nil
}

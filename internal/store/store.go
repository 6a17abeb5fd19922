package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/five82/perch/internal/catalog"
	"github.com/five82/perch/internal/database"
)

const peripheralColumns = `id, name, brand, category, price, image_url, description,
	specs, features, is_favorite, last_updated`

// Record is a peripheral as written to the store.
type Record struct {
	catalog.Peripheral
	LastUpdated time.Time
}

// Store is the SQLite-backed catalog store.
type Store struct {
	db     *sql.DB
	logger *slog.Logger
	hub    *hub
}

// New wraps an opened, migrated database.
func New(db *database.DB, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Store{
		db:     db.DB,
		logger: logger.With("component", "store"),
		hub:    newHub(),
	}
}

// UpsertPeripherals replaces every record by id in a single transaction.
func (s *Store) UpsertPeripherals(ctx context.Context, records []Record) error {
	if len(records) == 0 {
		return nil
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin upsert: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `INSERT OR REPLACE INTO peripherals (`+peripheralColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare upsert: %w", err)
	}
	defer stmt.Close()

	for _, r := range records {
		if _, err := stmt.ExecContext(ctx,
			r.ID, r.Name, r.Brand, r.Category, r.Price.String(), r.ImageURL, r.Description,
			encodeSpecs(r.Specs), encodeFeatures(r.Features), r.IsFavorite, r.LastUpdated.UnixMilli(),
		); err != nil {
			return fmt.Errorf("upsert peripheral %s: %w", r.ID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit upsert: %w", err)
	}
	s.hub.publish(topicPeripherals)
	return nil
}

// Peripherals returns every stored peripheral ordered by name.
func (s *Store) Peripherals(ctx context.Context) ([]catalog.Peripheral, error) {
	return s.queryPeripherals(ctx, `SELECT `+peripheralColumns+` FROM peripherals ORDER BY name, id`)
}

// Favorites returns favorited peripherals ordered by name.
func (s *Store) Favorites(ctx context.Context) ([]catalog.Peripheral, error) {
	return s.queryPeripherals(ctx, `SELECT `+peripheralColumns+` FROM peripherals WHERE is_favorite = 1 ORDER BY name, id`)
}

// Peripheral returns one peripheral or catalog.ErrNotFound.
func (s *Store) Peripheral(ctx context.Context, id string) (catalog.Peripheral, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+peripheralColumns+` FROM peripherals WHERE id = ?`, id)
	r, err := s.scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return catalog.Peripheral{}, catalog.ErrNotFound
	}
	if err != nil {
		return catalog.Peripheral{}, fmt.Errorf("get peripheral %s: %w", id, err)
	}
	return r.Peripheral, nil
}

// FavoriteIDs returns the set of favorited ids.
func (s *Store) FavoriteIDs(ctx context.Context) (map[string]bool, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id FROM peripherals WHERE is_favorite = 1`)
	if err != nil {
		return nil, fmt.Errorf("query favorite ids: %w", err)
	}
	defer rows.Close()

	ids := make(map[string]bool)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan favorite id: %w", err)
		}
		ids[id] = true
	}
	return ids, rows.Err()
}

// SetFavorite sets the favorite flag. Unknown ids return catalog.ErrNotFound.
func (s *Store) SetFavorite(ctx context.Context, id string, favorite bool) error {
	res, err := s.db.ExecContext(ctx, `UPDATE peripherals SET is_favorite = ? WHERE id = ?`, favorite, id)
	if err != nil {
		return fmt.Errorf("set favorite %s: %w", id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return catalog.ErrNotFound
	}
	s.hub.publish(topicPeripherals)
	return nil
}

// UpsertHistory records a view, replacing any earlier entry for the id.
func (s *Store) UpsertHistory(ctx context.Context, peripheralID string, viewedAt time.Time) error {
	if _, err := s.db.ExecContext(ctx, `
		INSERT INTO history (peripheral_id, viewed_at) VALUES (?, ?)
		ON CONFLICT(peripheral_id) DO UPDATE SET viewed_at = excluded.viewed_at`,
		peripheralID, viewedAt.UnixMilli(),
	); err != nil {
		return fmt.Errorf("upsert history %s: %w", peripheralID, err)
	}
	s.hub.publish(topicHistory)
	return nil
}

// History returns entries most recent first.
func (s *Store) History(ctx context.Context) ([]catalog.HistoryEntry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, peripheral_id, viewed_at FROM history ORDER BY viewed_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	var entries []catalog.HistoryEntry
	for rows.Next() {
		var h catalog.HistoryEntry
		if err := rows.Scan(&h.ID, &h.PeripheralID, &h.ViewedAt); err != nil {
			return nil, fmt.Errorf("scan history: %w", err)
		}
		entries = append(entries, h)
	}
	return entries, rows.Err()
}

// DeleteHistory removes the entry for one peripheral id.
func (s *Store) DeleteHistory(ctx context.Context, peripheralID string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM history WHERE peripheral_id = ?`, peripheralID); err != nil {
		return fmt.Errorf("delete history %s: %w", peripheralID, err)
	}
	s.hub.publish(topicHistory)
	return nil
}

// ClearHistory removes every history entry.
func (s *Store) ClearHistory(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM history`); err != nil {
		return fmt.Errorf("clear history: %w", err)
	}
	s.hub.publish(topicHistory)
	return nil
}

func (s *Store) queryPeripherals(ctx context.Context, query string, args ...any) ([]catalog.Peripheral, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query peripherals: %w", err)
	}
	defer rows.Close()

	var out []catalog.Peripheral
	for rows.Next() {
		r, err := s.scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan peripheral: %w", err)
		}
		out = append(out, r.Peripheral)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func (s *Store) scanRecord(row scanner) (Record, error) {
	var (
		r           Record
		price       string
		specs       string
		features    string
		lastUpdated int64
	)
	if err := row.Scan(
		&r.ID, &r.Name, &r.Brand, &r.Category, &price, &r.ImageURL, &r.Description,
		&specs, &features, &r.IsFavorite, &lastUpdated,
	); err != nil {
		return Record{}, err
	}

	p, err := decimal.NewFromString(price)
	if err != nil {
		s.logger.Warn("malformed price column", "id", r.ID, "error", err)
		p = decimal.Zero
	}
	r.Price = p
	r.Specs = decodeSpecs(specs, s.logger, r.ID)
	r.Features = decodeFeatures(features, s.logger, r.ID)
	r.LastUpdated = time.UnixMilli(lastUpdated)
	return r, nil
}

// This file implements the fly inventory repository.
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/tightlines/riverlog/pkg/types"
)

// FliesTable is the typed repository for fly inventory rows.
type FliesTable struct {
	store *Store
}

const flyColumns = "fly_id, box_id, fly_type, pattern, size, qty, colors, photo, created_at, updated_at"

// Save upserts a fly by id. Save writes qty verbatim; routine quantity
// changes should go through Store.AdjustQuantity so the audit trail stays
// accurate.
func (f *FliesTable) Save(fly *types.Fly) error {
	if fly.ID == "" {
		return types.ErrInvalidID
	}
	db, err := f.store.conn()
	if err != nil {
		return err
	}

	_, err = db.Exec(`INSERT INTO flies (`+flyColumns+`)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
        ON CONFLICT(fly_id) DO UPDATE SET
            box_id = excluded.box_id,
            fly_type = excluded.fly_type,
            pattern = excluded.pattern,
            size = excluded.size,
            qty = excluded.qty,
            colors = excluded.colors,
            photo = excluded.photo,
            created_at = excluded.created_at,
            updated_at = excluded.updated_at`,
		fly.ID, fly.BoxID, fly.Type, fly.Pattern, fly.Size, fly.Qty,
		fly.Colors, fly.Photo, fly.CreatedAt, fly.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("saving fly %s: %w", fly.ID, err)
	}
	return nil
}

// Get retrieves a fly by id. Returns ErrNotFound when missing.
func (f *FliesTable) Get(id string) (*types.Fly, error) {
	if id == "" {
		return nil, types.ErrInvalidID
	}
	db, err := f.store.conn()
	if err != nil {
		return nil, err
	}

	row := db.QueryRow("SELECT "+flyColumns+" FROM flies WHERE fly_id = ?", id)
	fly, err := hydrateFly(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, types.ErrNotFound
		}
		return nil, fmt.Errorf("getting fly %s: %w", id, err)
	}
	return fly, nil
}

// ListByBox returns the flies of one box, newest first.
func (f *FliesTable) ListByBox(boxID string) ([]*types.Fly, error) {
	return f.list("WHERE box_id = ?", boxID)
}

// ListAll returns every fly, newest first; used by full-backup export.
func (f *FliesTable) ListAll() ([]*types.Fly, error) {
	return f.list("")
}

func (f *FliesTable) list(where string, args ...any) ([]*types.Fly, error) {
	db, err := f.store.conn()
	if err != nil {
		return nil, err
	}

	query := "SELECT " + flyColumns + " FROM flies " + where + " ORDER BY created_at DESC, rowid ASC"
	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing flies: %w", err)
	}
	defer rows.Close()

	var flies []*types.Fly
	for rows.Next() {
		fly, err := hydrateFly(rows)
		if err != nil {
			return nil, fmt.Errorf("hydrating fly: %w", err)
		}
		flies = append(flies, fly)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating flies: %w", err)
	}
	return flies, nil
}

// Delete removes exactly one fly row; cascading to its events is
// Store.DeleteFly's job.
func (f *FliesTable) Delete(id string) error {
	if id == "" {
		return types.ErrInvalidID
	}
	db, err := f.store.conn()
	if err != nil {
		return err
	}

	if _, err := db.Exec("DELETE FROM flies WHERE fly_id = ?", id); err != nil {
		return fmt.Errorf("deleting fly %s: %w", id, err)
	}
	return nil
}

// Clear removes every fly row. Used as the safety net at the end of
// Store.ClearAllFlyBoxes.
func (f *FliesTable) Clear() error {
	db, err := f.store.conn()
	if err != nil {
		return err
	}
	if _, err := db.Exec("DELETE FROM flies"); err != nil {
		return fmt.Errorf("clearing flies: %w", err)
	}
	return nil
}

// hydrateFly converts a flies row into a *types.Fly.
func hydrateFly(row rowScanner) (*types.Fly, error) {
	var f types.Fly
	err := row.Scan(&f.ID, &f.BoxID, &f.Type, &f.Pattern, &f.Size, &f.Qty,
		&f.Colors, &f.Photo, &f.CreatedAt, &f.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

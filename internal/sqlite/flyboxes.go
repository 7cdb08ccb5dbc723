// This file implements the fly box repository.
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/tightlines/riverlog/pkg/types"
)

// DefaultFlyBoxName is the name given to the box EnsureDefault synthesizes.
const DefaultFlyBoxName = "My Fly Box"

// FlyBoxesTable is the typed repository for fly boxes.
type FlyBoxesTable struct {
	store *Store
}

const flyBoxColumns = "flybox_id, name, notes, created_at, updated_at"

// Save upserts a fly box by id.
func (b *FlyBoxesTable) Save(box *types.FlyBox) error {
	if box.ID == "" {
		return types.ErrInvalidID
	}
	db, err := b.store.conn()
	if err != nil {
		return err
	}

	_, err = db.Exec(`INSERT INTO flyboxes (`+flyBoxColumns+`)
        VALUES (?, ?, ?, ?, ?)
        ON CONFLICT(flybox_id) DO UPDATE SET
            name = excluded.name,
            notes = excluded.notes,
            created_at = excluded.created_at,
            updated_at = excluded.updated_at`,
		box.ID, box.Name, box.Notes, box.CreatedAt, box.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("saving fly box %s: %w", box.ID, err)
	}
	return nil
}

// Get retrieves a fly box by id. Returns ErrNotFound when missing.
func (b *FlyBoxesTable) Get(id string) (*types.FlyBox, error) {
	if id == "" {
		return nil, types.ErrInvalidID
	}
	db, err := b.store.conn()
	if err != nil {
		return nil, err
	}

	row := db.QueryRow("SELECT "+flyBoxColumns+" FROM flyboxes WHERE flybox_id = ?", id)
	box, err := hydrateFlyBox(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, types.ErrNotFound
		}
		return nil, fmt.Errorf("getting fly box %s: %w", id, err)
	}
	return box, nil
}

// List returns every fly box, newest first.
func (b *FlyBoxesTable) List() ([]*types.FlyBox, error) {
	db, err := b.store.conn()
	if err != nil {
		return nil, err
	}

	rows, err := db.Query("SELECT " + flyBoxColumns + " FROM flyboxes ORDER BY created_at DESC, rowid ASC")
	if err != nil {
		return nil, fmt.Errorf("listing fly boxes: %w", err)
	}
	defer rows.Close()

	var boxes []*types.FlyBox
	for rows.Next() {
		box, err := hydrateFlyBox(rows)
		if err != nil {
			return nil, fmt.Errorf("hydrating fly box: %w", err)
		}
		boxes = append(boxes, box)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating fly boxes: %w", err)
	}
	return boxes, nil
}

// Delete removes exactly one fly box row; cascading to flies and events is
// Store.DeleteFlyBox's job.
func (b *FlyBoxesTable) Delete(id string) error {
	if id == "" {
		return types.ErrInvalidID
	}
	db, err := b.store.conn()
	if err != nil {
		return err
	}

	if _, err := db.Exec("DELETE FROM flyboxes WHERE flybox_id = ?", id); err != nil {
		return fmt.Errorf("deleting fly box %s: %w", id, err)
	}
	return nil
}

// EnsureDefault returns the most recently created box, synthesizing one when
// none exist. Not safe against concurrent callers; call once per boot.
func (b *FlyBoxesTable) EnsureDefault() (*types.FlyBox, error) {
	boxes, err := b.List()
	if err != nil {
		return nil, err
	}
	if len(boxes) > 0 {
		return boxes[0], nil
	}

	now := nowMillis()
	box := &types.FlyBox{
		ID:        NewID(),
		Name:      DefaultFlyBoxName,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := b.Save(box); err != nil {
		return nil, fmt.Errorf("saving default fly box: %w", err)
	}
	return box, nil
}

// hydrateFlyBox converts a flyboxes row into a *types.FlyBox.
func hydrateFlyBox(row rowScanner) (*types.FlyBox, error) {
	var b types.FlyBox
	if err := row.Scan(&b.ID, &b.Name, &b.Notes, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return nil, err
	}
	return &b, nil
}

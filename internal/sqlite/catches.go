// This file implements the catch repository. GPS fixes are stored as a
// nullable JSON column; photo bytes live in a BLOB next to their mime type
// and original filename.
package sqlite

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/tightlines/riverlog/pkg/types"
)

// CatchesTable is the typed repository for catches.
type CatchesTable struct {
	store *Store
}

const catchColumns = "catch_id, trip_id, species, fly, length, notes, gps, photo, photo_mime, photo_name, created_at, updated_at"

// Save upserts a catch by id. The tripId is not checked against the trips
// collection; referential integrity is application discipline, enforced on
// the delete side by the cascade orchestrator.
func (c *CatchesTable) Save(row *types.Catch) error {
	if row.ID == "" {
		return types.ErrInvalidID
	}
	db, err := c.store.conn()
	if err != nil {
		return err
	}

	var gps any
	if row.GPS != nil {
		data, err := json.Marshal(row.GPS)
		if err != nil {
			return fmt.Errorf("marshaling gps for catch %s: %w", row.ID, err)
		}
		gps = string(data)
	}
	var photo any
	if len(row.Photo) > 0 {
		photo = row.Photo
	}

	_, err = db.Exec(`INSERT INTO catches (`+catchColumns+`)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
        ON CONFLICT(catch_id) DO UPDATE SET
            trip_id = excluded.trip_id,
            species = excluded.species,
            fly = excluded.fly,
            length = excluded.length,
            notes = excluded.notes,
            gps = excluded.gps,
            photo = excluded.photo,
            photo_mime = excluded.photo_mime,
            photo_name = excluded.photo_name,
            created_at = excluded.created_at,
            updated_at = excluded.updated_at`,
		row.ID, row.TripID, row.Species, row.Fly, row.Length, row.Notes,
		gps, photo, row.PhotoMime, row.PhotoName, row.CreatedAt, row.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("saving catch %s: %w", row.ID, err)
	}
	return nil
}

// Get retrieves a catch by id. Returns ErrNotFound when missing.
func (c *CatchesTable) Get(id string) (*types.Catch, error) {
	if id == "" {
		return nil, types.ErrInvalidID
	}
	db, err := c.store.conn()
	if err != nil {
		return nil, err
	}

	row := db.QueryRow("SELECT "+catchColumns+" FROM catches WHERE catch_id = ?", id)
	out, err := hydrateCatch(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, types.ErrNotFound
		}
		return nil, fmt.Errorf("getting catch %s: %w", id, err)
	}
	return out, nil
}

// ListByTrip returns the catches of one trip, newest first.
func (c *CatchesTable) ListByTrip(tripID string) ([]*types.Catch, error) {
	return c.list("WHERE trip_id = ?", tripID)
}

// ListAll returns every catch, newest first; used by full-backup export.
func (c *CatchesTable) ListAll() ([]*types.Catch, error) {
	return c.list("")
}

func (c *CatchesTable) list(where string, args ...any) ([]*types.Catch, error) {
	db, err := c.store.conn()
	if err != nil {
		return nil, err
	}

	query := "SELECT " + catchColumns + " FROM catches " + where + " ORDER BY created_at DESC, rowid ASC"
	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing catches: %w", err)
	}
	defer rows.Close()

	var catches []*types.Catch
	for rows.Next() {
		row, err := hydrateCatch(rows)
		if err != nil {
			return nil, fmt.Errorf("hydrating catch: %w", err)
		}
		catches = append(catches, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating catches: %w", err)
	}
	return catches, nil
}

// Delete removes exactly one catch row; deleting a missing id is a no-op.
func (c *CatchesTable) Delete(id string) error {
	if id == "" {
		return types.ErrInvalidID
	}
	db, err := c.store.conn()
	if err != nil {
		return err
	}

	if _, err := db.Exec("DELETE FROM catches WHERE catch_id = ?", id); err != nil {
		return fmt.Errorf("deleting catch %s: %w", id, err)
	}
	return nil
}

// hydrateCatch converts a catches row into a *types.Catch.
func hydrateCatch(row rowScanner) (*types.Catch, error) {
	var c types.Catch
	var gps sql.NullString
	var photo []byte
	err := row.Scan(&c.ID, &c.TripID, &c.Species, &c.Fly, &c.Length, &c.Notes,
		&gps, &photo, &c.PhotoMime, &c.PhotoName, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if gps.Valid && gps.String != "" {
		var fix types.GPSFix
		if err := json.Unmarshal([]byte(gps.String), &fix); err != nil {
			return nil, fmt.Errorf("parsing gps: %w", err)
		}
		c.GPS = &fix
	}
	if len(photo) > 0 {
		c.Photo = photo
	}
	return &c, nil
}

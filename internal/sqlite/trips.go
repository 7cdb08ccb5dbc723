// This file implements the trip repository.
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/tightlines/riverlog/pkg/types"
)

// TripsTable is the typed repository for trips.
type TripsTable struct {
	store *Store
}

const tripColumns = "trip_id, name, date, location, description, fly_win, lessons, recap, created_at, updated_at"

// Save upserts a trip by id. The caller supplies timestamps; Save never
// rewrites them. Returns ErrInvalidID for an empty id.
func (t *TripsTable) Save(trip *types.Trip) error {
	if trip.ID == "" {
		return types.ErrInvalidID
	}
	db, err := t.store.conn()
	if err != nil {
		return err
	}

	_, err = db.Exec(`INSERT INTO trips (`+tripColumns+`)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
        ON CONFLICT(trip_id) DO UPDATE SET
            name = excluded.name,
            date = excluded.date,
            location = excluded.location,
            description = excluded.description,
            fly_win = excluded.fly_win,
            lessons = excluded.lessons,
            recap = excluded.recap,
            created_at = excluded.created_at,
            updated_at = excluded.updated_at`,
		trip.ID, trip.Name, trip.Date, trip.Location, trip.Desc,
		trip.FlyWin, trip.Lessons, trip.Recap, trip.CreatedAt, trip.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("saving trip %s: %w", trip.ID, err)
	}
	return nil
}

// Get retrieves a trip by id. Returns ErrNotFound when the id is missing.
func (t *TripsTable) Get(id string) (*types.Trip, error) {
	if id == "" {
		return nil, types.ErrInvalidID
	}
	db, err := t.store.conn()
	if err != nil {
		return nil, err
	}

	row := db.QueryRow("SELECT "+tripColumns+" FROM trips WHERE trip_id = ?", id)
	trip, err := hydrateTrip(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, types.ErrNotFound
		}
		return nil, fmt.Errorf("getting trip %s: %w", id, err)
	}
	return trip, nil
}

// List returns every trip, newest first. Ties on created_at keep insertion
// order.
func (t *TripsTable) List() ([]*types.Trip, error) {
	db, err := t.store.conn()
	if err != nil {
		return nil, err
	}

	rows, err := db.Query("SELECT " + tripColumns + " FROM trips ORDER BY created_at DESC, rowid ASC")
	if err != nil {
		return nil, fmt.Errorf("listing trips: %w", err)
	}
	defer rows.Close()

	var trips []*types.Trip
	for rows.Next() {
		trip, err := hydrateTrip(rows)
		if err != nil {
			return nil, fmt.Errorf("hydrating trip: %w", err)
		}
		trips = append(trips, trip)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating trips: %w", err)
	}
	return trips, nil
}

// Delete removes exactly one trip row. It does not cascade; deleting the
// catches of a trip is Store.DeleteTrip's job. Deleting a missing id is a
// no-op.
func (t *TripsTable) Delete(id string) error {
	if id == "" {
		return types.ErrInvalidID
	}
	db, err := t.store.conn()
	if err != nil {
		return err
	}

	if _, err := db.Exec("DELETE FROM trips WHERE trip_id = ?", id); err != nil {
		return fmt.Errorf("deleting trip %s: %w", id, err)
	}
	return nil
}

// EnsureDefault returns the most recently created trip, synthesizing and
// saving one named for today when the listing is empty. Call at most once
// per boot; it is not safe against concurrent callers.
func (t *TripsTable) EnsureDefault() (*types.Trip, error) {
	trips, err := t.List()
	if err != nil {
		return nil, err
	}
	if len(trips) > 0 {
		return trips[0], nil
	}

	now := nowMillis()
	trip := &types.Trip{
		ID:        NewID(),
		Name:      time.UnixMilli(now).Format("2006-01-02"),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := t.Save(trip); err != nil {
		return nil, fmt.Errorf("saving default trip: %w", err)
	}
	return trip, nil
}

// hydrateTrip converts a trips row into a *types.Trip.
func hydrateTrip(row rowScanner) (*types.Trip, error) {
	var t types.Trip
	err := row.Scan(&t.ID, &t.Name, &t.Date, &t.Location, &t.Desc,
		&t.FlyWin, &t.Lessons, &t.Recap, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

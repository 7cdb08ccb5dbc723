// This file implements the fly event repository. Events are append-only
// audit rows: Save only ever inserts new ids in practice, and nothing
// updates an event after the fact.
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/tightlines/riverlog/pkg/types"
)

// FlyEventsTable is the typed repository for fly quantity audit events.
type FlyEventsTable struct {
	store *Store
}

const flyEventColumns = "event_id, box_id, fly_id, kind, delta, qty_before, qty_after, note, created_at"

// Save upserts a fly event by id. Import uses the upsert path; the ledger
// always inserts fresh ids.
func (e *FlyEventsTable) Save(ev *types.FlyEvent) error {
	if ev.ID == "" {
		return types.ErrInvalidID
	}
	db, err := e.store.conn()
	if err != nil {
		return err
	}

	_, err = db.Exec(`INSERT INTO fly_events (`+flyEventColumns+`)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
        ON CONFLICT(event_id) DO UPDATE SET
            box_id = excluded.box_id,
            fly_id = excluded.fly_id,
            kind = excluded.kind,
            delta = excluded.delta,
            qty_before = excluded.qty_before,
            qty_after = excluded.qty_after,
            note = excluded.note,
            created_at = excluded.created_at`,
		ev.ID, ev.BoxID, ev.FlyID, ev.Kind, ev.Delta, ev.QtyBefore,
		ev.QtyAfter, ev.Note, ev.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("saving fly event %s: %w", ev.ID, err)
	}
	return nil
}

// Get retrieves a fly event by id. Returns ErrNotFound when missing.
func (e *FlyEventsTable) Get(id string) (*types.FlyEvent, error) {
	if id == "" {
		return nil, types.ErrInvalidID
	}
	db, err := e.store.conn()
	if err != nil {
		return nil, err
	}

	row := db.QueryRow("SELECT "+flyEventColumns+" FROM fly_events WHERE event_id = ?", id)
	ev, err := hydrateFlyEvent(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, types.ErrNotFound
		}
		return nil, fmt.Errorf("getting fly event %s: %w", id, err)
	}
	return ev, nil
}

// ListByFly returns the events of one fly, newest first.
func (e *FlyEventsTable) ListByFly(flyID string) ([]*types.FlyEvent, error) {
	return e.list("WHERE fly_id = ?", flyID)
}

// ListByBox returns the events referencing one box, newest first.
func (e *FlyEventsTable) ListByBox(boxID string) ([]*types.FlyEvent, error) {
	return e.list("WHERE box_id = ?", boxID)
}

// ListAll returns every event, newest first; used by full-backup export.
func (e *FlyEventsTable) ListAll() ([]*types.FlyEvent, error) {
	return e.list("")
}

func (e *FlyEventsTable) list(where string, args ...any) ([]*types.FlyEvent, error) {
	db, err := e.store.conn()
	if err != nil {
		return nil, err
	}

	query := "SELECT " + flyEventColumns + " FROM fly_events " + where + " ORDER BY created_at DESC, rowid ASC"
	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing fly events: %w", err)
	}
	defer rows.Close()

	var events []*types.FlyEvent
	for rows.Next() {
		ev, err := hydrateFlyEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("hydrating fly event: %w", err)
		}
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating fly events: %w", err)
	}
	return events, nil
}

// Delete removes exactly one event row. Events are only ever deleted as a
// cascade side-effect of deleting their fly or box.
func (e *FlyEventsTable) Delete(id string) error {
	if id == "" {
		return types.ErrInvalidID
	}
	db, err := e.store.conn()
	if err != nil {
		return err
	}

	if _, err := db.Exec("DELETE FROM fly_events WHERE event_id = ?", id); err != nil {
		return fmt.Errorf("deleting fly event %s: %w", id, err)
	}
	return nil
}

// Clear removes every event row. Used as the safety net at the end of
// Store.ClearAllFlyBoxes.
func (e *FlyEventsTable) Clear() error {
	db, err := e.store.conn()
	if err != nil {
		return err
	}
	if _, err := db.Exec("DELETE FROM fly_events"); err != nil {
		return fmt.Errorf("clearing fly events: %w", err)
	}
	return nil
}

// hydrateFlyEvent converts a fly_events row into a *types.FlyEvent.
func hydrateFlyEvent(row rowScanner) (*types.FlyEvent, error) {
	var ev types.FlyEvent
	err := row.Scan(&ev.ID, &ev.BoxID, &ev.FlyID, &ev.Kind, &ev.Delta,
		&ev.QtyBefore, &ev.QtyAfter, &ev.Note, &ev.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &ev, nil
}

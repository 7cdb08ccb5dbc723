// This file implements cascade deletes across the entity tables. SQLite
// would happily do this with foreign keys, but the tables carry no FK
// constraints on purpose: imports may land children before parents, and a
// half-imported archive must never be rejected by the engine. Deletes are
// therefore orchestrated in application code, dependents first, with one
// retry for stragglers.
package sqlite

import (
	"errors"
	"fmt"
)

// ReconcileStats reports the orphan rows removed by Reconcile.
type ReconcileStats struct {
	Catches   int64
	Flies     int64
	FlyEvents int64
}

// DeleteTrip removes a trip and all of its catches. Catches go first; any
// that fail are retried once, and the trip row itself is only removed when
// no catch survives. A nil return guarantees the trip and its catches are
// gone.
func (s *Store) DeleteTrip(tripID string) error {
	catches, err := s.Catches().ListByTrip(tripID)
	if err != nil {
		return fmt.Errorf("collecting catches for trip %s: %w", tripID, err)
	}

	ids := make([]string, 0, len(catches))
	for _, c := range catches {
		ids = append(ids, c.ID)
	}
	if err := s.deleteAll(ids, s.Catches().Delete); err != nil {
		return fmt.Errorf("deleting catches for trip %s: %w", tripID, err)
	}

	if err := s.Trips().Delete(tripID); err != nil {
		return err
	}
	return nil
}

// DeleteFlyBox removes a box, its flies, and every event referencing the
// box or any of its flies. The box row goes last.
func (s *Store) DeleteFlyBox(boxID string) error {
	flies, err := s.Flies().ListByBox(boxID)
	if err != nil {
		return fmt.Errorf("collecting flies for box %s: %w", boxID, err)
	}
	events, err := s.FlyEvents().ListByBox(boxID)
	if err != nil {
		return fmt.Errorf("collecting events for box %s: %w", boxID, err)
	}

	// Events referencing a fly in this box may carry a stale or empty
	// box_id; sweep them by fly as well.
	seen := make(map[string]bool, len(events))
	eventIDs := make([]string, 0, len(events))
	for _, ev := range events {
		seen[ev.ID] = true
		eventIDs = append(eventIDs, ev.ID)
	}
	for _, fly := range flies {
		flyEvents, err := s.FlyEvents().ListByFly(fly.ID)
		if err != nil {
			return fmt.Errorf("collecting events for fly %s: %w", fly.ID, err)
		}
		for _, ev := range flyEvents {
			if !seen[ev.ID] {
				seen[ev.ID] = true
				eventIDs = append(eventIDs, ev.ID)
			}
		}
	}

	if err := s.deleteAll(eventIDs, s.FlyEvents().Delete); err != nil {
		return fmt.Errorf("deleting events for box %s: %w", boxID, err)
	}

	flyIDs := make([]string, 0, len(flies))
	for _, fly := range flies {
		flyIDs = append(flyIDs, fly.ID)
	}
	if err := s.deleteAll(flyIDs, s.Flies().Delete); err != nil {
		return fmt.Errorf("deleting flies for box %s: %w", boxID, err)
	}

	if err := s.FlyBoxes().Delete(boxID); err != nil {
		return err
	}
	return nil
}

// DeleteFly removes a fly and its audit events, events first.
func (s *Store) DeleteFly(flyID string) error {
	events, err := s.FlyEvents().ListByFly(flyID)
	if err != nil {
		return fmt.Errorf("collecting events for fly %s: %w", flyID, err)
	}

	ids := make([]string, 0, len(events))
	for _, ev := range events {
		ids = append(ids, ev.ID)
	}
	if err := s.deleteAll(ids, s.FlyEvents().Delete); err != nil {
		return fmt.Errorf("deleting events for fly %s: %w", flyID, err)
	}

	if err := s.Flies().Delete(flyID); err != nil {
		return err
	}
	return nil
}

// ClearAllFlyBoxes deletes every box through the per-box cascade, then
// unconditionally clears the flies and fly_events tables so no inventory
// row survives even when a per-box pass failed.
func (s *Store) ClearAllFlyBoxes() error {
	boxes, err := s.FlyBoxes().List()
	if err != nil {
		return fmt.Errorf("listing fly boxes: %w", err)
	}

	var errs []error
	for _, box := range boxes {
		if err := s.DeleteFlyBox(box.ID); err != nil {
			errs = append(errs, err)
		}
	}

	if err := s.Flies().Clear(); err != nil {
		errs = append(errs, err)
	}
	if err := s.FlyEvents().Clear(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Reconcile sweeps rows whose parent no longer exists: catches without a
// trip, flies without a box, and events without a fly. It exists because
// the cascade paths are best-effort; a crash mid-delete can strand
// dependents.
func (s *Store) Reconcile() (*ReconcileStats, error) {
	db, err := s.conn()
	if err != nil {
		return nil, err
	}

	stats := &ReconcileStats{}

	res, err := db.Exec("DELETE FROM catches WHERE trip_id != '' AND trip_id NOT IN (SELECT trip_id FROM trips)")
	if err != nil {
		return nil, fmt.Errorf("sweeping orphan catches: %w", err)
	}
	stats.Catches, _ = res.RowsAffected()

	res, err = db.Exec("DELETE FROM flies WHERE box_id != '' AND box_id NOT IN (SELECT flybox_id FROM flyboxes)")
	if err != nil {
		return nil, fmt.Errorf("sweeping orphan flies: %w", err)
	}
	stats.Flies, _ = res.RowsAffected()

	res, err = db.Exec("DELETE FROM fly_events WHERE fly_id != '' AND fly_id NOT IN (SELECT fly_id FROM flies)")
	if err != nil {
		return nil, fmt.Errorf("sweeping orphan fly events: %w", err)
	}
	stats.FlyEvents, _ = res.RowsAffected()

	return stats, nil
}

// deleteAll deletes each id, retrying failures once before giving up. A
// non-nil return means at least one id still exists.
func (s *Store) deleteAll(ids []string, del func(string) error) error {
	var failed []string
	for _, id := range ids {
		if err := del(id); err != nil {
			failed = append(failed, id)
		}
	}

	var errs []error
	for _, id := range failed {
		if err := del(id); err != nil {
			errs = append(errs, fmt.Errorf("deleting %s: %w", id, err))
		}
	}
	return errors.Join(errs...)
}

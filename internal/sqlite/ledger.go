// This file implements the fly quantity ledger. Every quantity change goes
// through AdjustQuantity, which clamps the count at zero and appends an
// audit event, so the event trail can always replay to the current count.
package sqlite

import (
	"fmt"

	"github.com/tightlines/riverlog/pkg/types"
)

// Adjustment reports the quantity transition of a single ledger entry.
type Adjustment struct {
	Before int
	After  int
}

// AdjustQuantity applies delta to the fly's quantity, flooring at zero,
// then records a FlyEvent with the before/after counts. The owning box's
// updatedAt is touched best-effort; a missing box never fails the
// adjustment. Returns ErrNotFound when the fly does not exist and
// ErrInvalidID for an unknown event kind.
func (s *Store) AdjustQuantity(flyID string, delta int, kind, note string) (*Adjustment, error) {
	if !types.ValidEventKind(kind) {
		return nil, fmt.Errorf("event kind %q: %w", kind, types.ErrInvalidID)
	}

	fly, err := s.Flies().Get(flyID)
	if err != nil {
		return nil, err
	}

	before := fly.Qty
	if before < 0 {
		before = 0
	}
	after := before + delta
	if after < 0 {
		after = 0
	}

	now := nowMillis()
	fly.Qty = after
	fly.UpdatedAt = now
	if err := s.Flies().Save(fly); err != nil {
		return nil, fmt.Errorf("updating fly %s quantity: %w", flyID, err)
	}

	// Touch the box so "last modified" sorts reflect inventory activity.
	// The fly may be orphaned; that is not this path's problem.
	if box, err := s.FlyBoxes().Get(fly.BoxID); err == nil {
		box.UpdatedAt = now
		_ = s.FlyBoxes().Save(box)
	}

	ev := &types.FlyEvent{
		ID:        NewID(),
		BoxID:     fly.BoxID,
		FlyID:     fly.ID,
		Kind:      kind,
		Delta:     delta,
		QtyBefore: before,
		QtyAfter:  after,
		Note:      note,
		CreatedAt: now,
	}
	if err := s.FlyEvents().Save(ev); err != nil {
		return nil, fmt.Errorf("recording fly event for %s: %w", flyID, err)
	}

	return &Adjustment{Before: before, After: after}, nil
}

// Expend records using one fly on the water.
func (s *Store) Expend(flyID string) (*Adjustment, error) {
	return s.AdjustQuantity(flyID, -1, types.EventUse, "")
}

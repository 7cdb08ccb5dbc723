package types

// Fly event kinds. Each quantity adjustment records one of these.
const (
	EventAdd    = "add"
	EventUse    = "use"
	EventLost   = "lost"
	EventTie    = "tie"
	EventAdjust = "adjust"
)

var validEventKinds = map[string]bool{
	EventAdd:    true,
	EventUse:    true,
	EventLost:   true,
	EventTie:    true,
	EventAdjust: true,
}

// ValidEventKind reports whether k is a recognized fly event kind.
func ValidEventKind(k string) bool {
	return validEventKinds[k]
}

// FlyEvent is an immutable audit record of a quantity change on a fly.
// Events are append-only: never updated, deleted only as a cascade
// side-effect of deleting the fly or its box.
type FlyEvent struct {
	ID        string `json:"id"`
	BoxID     string `json:"boxId"`
	FlyID     string `json:"flyId"`
	Kind      string `json:"kind"`
	Delta     int    `json:"delta"`
	QtyBefore int    `json:"qtyBefore"`
	QtyAfter  int    `json:"qtyAfter"`
	Note      string `json:"note,omitempty"`
	CreatedAt int64  `json:"createdAt"`
}

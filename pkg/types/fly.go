package types

// Fly type categories.
const (
	FlyTypeNymph    = "nymph"
	FlyTypeDry      = "dry"
	FlyTypeWet      = "wet"
	FlyTypeStreamer = "streamer"
	FlyTypeOther    = "other"
)

// FlyTypes lists the recognized fly type values.
var FlyTypes = []string{
	FlyTypeNymph,
	FlyTypeDry,
	FlyTypeWet,
	FlyTypeStreamer,
	FlyTypeOther,
}

var validFlyTypes = map[string]bool{
	FlyTypeNymph:    true,
	FlyTypeDry:      true,
	FlyTypeWet:      true,
	FlyTypeStreamer: true,
	FlyTypeOther:    true,
}

// ValidFlyType reports whether t is a recognized fly type.
func ValidFlyType(t string) bool {
	return validFlyTypes[t]
}

// Fly is one inventory pattern/size/color entry inside a fly box. Qty is
// never negative; it is normally mutated only through the quantity ledger so
// the audit trail stays accurate. The photo, when present, is an inline data
// URL and travels inside entity JSON as-is.
type Fly struct {
	ID        string `json:"id"`
	BoxID     string `json:"boxId"`
	Type      string `json:"type"`
	Pattern   string `json:"pattern"`
	Size      string `json:"size"` // hook size, numeric-as-string
	Qty       int    `json:"qty"`
	Colors    string `json:"colors"`
	Photo     string `json:"photo,omitempty"`
	CreatedAt int64  `json:"createdAt"`
	UpdatedAt int64  `json:"updatedAt"`
}

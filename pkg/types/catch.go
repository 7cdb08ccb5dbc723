package types

// GPSFix is an optional position captured with a catch.
type GPSFix struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
	Acc int     `json:"acc"` // accuracy in meters
	TS  int64   `json:"ts"`
}

// Catch is a single logged fish within a trip. The photo bytes never travel
// inside entity JSON; the archive codec extracts them to a container entry
// (or a base64 structure for the inline package format).
type Catch struct {
	ID        string  `json:"id"`
	TripID    string  `json:"tripId"`
	Species   string  `json:"species"`
	Fly       string  `json:"fly"`
	Length    string  `json:"length"` // free text, parsed opportunistically
	Notes     string  `json:"notes"`
	GPS       *GPSFix `json:"gps,omitempty"`
	Photo     []byte  `json:"-"`
	PhotoMime string  `json:"-"`
	PhotoName string  `json:"photoName,omitempty"`
	CreatedAt int64   `json:"createdAt"`
	UpdatedAt int64   `json:"updatedAt"`
}

// HasPhoto reports whether the catch carries a photo attachment.
func (c *Catch) HasPhoto() bool {
	return len(c.Photo) > 0
}

// BiggestCatch returns the catch with the largest parsed length, or nil when
// no catch has a usable length. Ties keep the earlier catch.
func BiggestCatch(catches []*Catch) *Catch {
	var best *Catch
	var bestLen float64
	for _, c := range catches {
		if n := ParseLength(c.Length); n > bestLen {
			best = c
			bestLen = n
		}
	}
	return best
}

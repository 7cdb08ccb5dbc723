// This file derives download filenames and photo entry names.
package archive

import (
	"fmt"
	"strings"
	"time"

	"github.com/tightlines/riverlog/pkg/types"
)

// guessExt maps a photo mime type to the extension used for its container
// entry. Anything unrecognized is treated as JPEG.
func guessExt(mime string) string {
	lower := strings.ToLower(mime)
	switch {
	case strings.Contains(lower, "png"):
		return "png"
	case strings.Contains(lower, "webp"):
		return "webp"
	default:
		return "jpg"
	}
}

// mimeForExt is the inverse used on import, where only the resolved entry
// name survives.
func mimeForExt(name string) string {
	lower := strings.ToLower(name)
	switch {
	case strings.HasSuffix(lower, ".png"):
		return "image/png"
	case strings.HasSuffix(lower, ".webp"):
		return "image/webp"
	default:
		return "image/jpeg"
	}
}

// photoEntryName is the container path of a catch's photo.
func photoEntryName(c *types.Catch) string {
	return photosDir + "/" + c.ID + "." + guessExt(c.PhotoMime)
}

const maxSlugLen = 48

// slugify reduces a trip name to a filename-safe token, "trip" when nothing
// survives.
func slugify(name string) string {
	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
		if b.Len() >= maxSlugLen {
			break
		}
	}
	slug := strings.Trim(b.String(), "-")
	if slug == "" {
		return "trip"
	}
	return slug
}

// datePart picks the date component of a filename: the trip's own date field
// when set, otherwise its creation day, otherwise today.
func datePart(trip *types.Trip) string {
	if trip.Date != "" {
		return trip.Date
	}
	at := trip.CreatedAt
	if at == 0 {
		at = time.Now().UnixMilli()
	}
	return time.UnixMilli(at).Format("2006-01-02")
}

// slugPart picks the text component of a trip filename: the location when
// set, the name otherwise.
func slugPart(trip *types.Trip) string {
	if trip.Location != "" {
		return slugify(trip.Location)
	}
	return slugify(trip.Name)
}

// TripFilename is the suggested filename for a single-trip archive.
func TripFilename(trip *types.Trip) string {
	return fmt.Sprintf("%s_%s_riverlog.zip", datePart(trip), slugPart(trip))
}

// AllFilename is the suggested filename for a full-backup archive.
func AllFilename() string {
	return fmt.Sprintf("riverlog_all_%s.zip", time.Now().Format("2006-01-02"))
}

// PackageFilename is the suggested filename for an inline trip package.
func PackageFilename(trip *types.Trip) string {
	return fmt.Sprintf("%s_%s_riverlog.json", datePart(trip), slugPart(trip))
}

// Package archive implements the portable backup formats: ZIP archives for
// single trips and full backups, and an inline JSON package for clipboard
// or message transfer. Entity JSON inside the containers matches the store's
// wire format byte-for-byte so a round trip is lossless.
package archive

import "github.com/tightlines/riverlog/pkg/types"

// Manifest entry names and schema tags. The tags are the authoritative
// format discriminator; entry names are only the conventional location.
const (
	TripManifestName = "riverlog.json"
	AllManifestName  = "riverlog_all.json"

	SchemaTrip    = "riverlog_trip_zip"
	SchemaAll     = "riverlog_all_zip"
	SchemaPackage = "riverlog_trip_package"

	// Version is the manifest format version written into every export.
	Version = 1

	photosDir = "photos"
)

// archiveCatch wraps a catch for manifest serialization. Photo bytes leave
// the entity and land in a container entry; PhotoFile names that entry.
type archiveCatch struct {
	*types.Catch
	PhotoFile string `json:"photoFile,omitempty"`
}

// tripManifest is the riverlog.json document of a single-trip archive.
type tripManifest struct {
	Schema     string          `json:"_schema"`
	Ver        int             `json:"_version"`
	ExportedAt int64           `json:"exportedAt"`
	Trip       *types.Trip     `json:"trip"`
	Catches    []*archiveCatch `json:"catches"`
}

// allManifest is the riverlog_all.json document of a full-backup archive.
type allManifest struct {
	Schema     string            `json:"_schema"`
	Ver        int               `json:"_version"`
	ExportedAt int64             `json:"exportedAt"`
	Trips      []*types.Trip     `json:"trips"`
	Catches    []*archiveCatch   `json:"catches"`
	FlyBoxes   []*types.FlyBox   `json:"flyboxes"`
	Flies      []*types.Fly      `json:"flies"`
	FlyEvents  []*types.FlyEvent `json:"flyevents"`
}

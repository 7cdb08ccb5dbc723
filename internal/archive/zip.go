// This file implements the ZIP archive codec: single-trip export, full
// backup export, and an auto-detecting import that accepts either variant.
package archive

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/tightlines/riverlog/internal/sqlite"
	"github.com/tightlines/riverlog/pkg/types"
)

// Codec reads and writes archives against one attached store.
type Codec struct {
	store *sqlite.Store
}

// NewCodec creates a codec over the given store.
func NewCodec(store *sqlite.Store) *Codec {
	return &Codec{store: store}
}

// ImportResult summarizes what an import wrote.
type ImportResult struct {
	// Mode is the schema tag of the imported archive.
	Mode string
	// TripID is the imported trip's id; set only for single-trip imports.
	TripID string

	Trips     int
	Catches   int
	FlyBoxes  int
	Flies     int
	FlyEvents int

	// MissingPhotos lists entry names referenced by the manifest that could
	// not be located in the container. The owning catches import without
	// their photo.
	MissingPhotos []string
}

// ExportTrip builds a single-trip archive holding the trip, its catches,
// and their photos. Returns the archive bytes and a suggested filename.
func (c *Codec) ExportTrip(tripID string) ([]byte, string, error) {
	trip, err := c.store.Trips().Get(tripID)
	if err != nil {
		return nil, "", err
	}
	catches, err := c.store.Catches().ListByTrip(tripID)
	if err != nil {
		return nil, "", err
	}

	manifest := &tripManifest{
		Schema:     SchemaTrip,
		Ver:        Version,
		ExportedAt: time.Now().UnixMilli(),
		Trip:       trip,
		Catches:    wrapCatches(catches),
	}

	data, err := writeArchive(TripManifestName, manifest, catches)
	if err != nil {
		return nil, "", err
	}
	return data, TripFilename(trip), nil
}

// ExportAll builds a full-backup archive holding every collection and every
// catch photo.
func (c *Codec) ExportAll() ([]byte, string, error) {
	trips, err := c.store.Trips().List()
	if err != nil {
		return nil, "", err
	}
	catches, err := c.store.Catches().ListAll()
	if err != nil {
		return nil, "", err
	}
	boxes, err := c.store.FlyBoxes().List()
	if err != nil {
		return nil, "", err
	}
	flies, err := c.store.Flies().ListAll()
	if err != nil {
		return nil, "", err
	}
	events, err := c.store.FlyEvents().ListAll()
	if err != nil {
		return nil, "", err
	}

	manifest := &allManifest{
		Schema:     SchemaAll,
		Ver:        Version,
		ExportedAt: time.Now().UnixMilli(),
		Trips:      trips,
		Catches:    wrapCatches(catches),
		FlyBoxes:   boxes,
		Flies:      flies,
		FlyEvents:  events,
	}

	data, err := writeArchive(AllManifestName, manifest, catches)
	if err != nil {
		return nil, "", err
	}
	return data, AllFilename(), nil
}

// Import detects the archive variant and writes its contents into the
// store. A full-backup manifest wins when both are somehow present.
// Timestamps in the manifest are preserved verbatim, so exporting again
// reproduces the same entities.
func (c *Codec) Import(data []byte) (*ImportResult, error) {
	r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrCorruptContainer, err)
	}

	if f := resolveManifest(r.File, AllManifestName); f != nil {
		return c.importAll(r, f)
	}
	if f := resolveManifest(r.File, TripManifestName); f != nil {
		return c.importTrip(r, f)
	}
	return nil, &types.MissingManifestError{Entries: entryNames(r.File)}
}

func (c *Codec) importTrip(r *zip.Reader, f *zip.File) (*ImportResult, error) {
	var manifest tripManifest
	if err := readManifest(f, &manifest); err != nil {
		return nil, err
	}
	if manifest.Schema != SchemaTrip {
		return nil, &types.SchemaMismatchError{Entry: f.Name, Got: manifest.Schema, Want: SchemaTrip}
	}
	if manifest.Trip == nil {
		return nil, fmt.Errorf("%w: manifest has no trip", types.ErrCorruptContainer)
	}

	result := &ImportResult{Mode: SchemaTrip, TripID: manifest.Trip.ID}

	if err := c.store.Trips().Save(manifest.Trip); err != nil {
		return nil, err
	}
	result.Trips = 1

	if err := c.importCatches(r, manifest.Catches, result); err != nil {
		return nil, err
	}
	return result, nil
}

func (c *Codec) importAll(r *zip.Reader, f *zip.File) (*ImportResult, error) {
	var manifest allManifest
	if err := readManifest(f, &manifest); err != nil {
		return nil, err
	}
	if manifest.Schema != SchemaAll {
		return nil, &types.SchemaMismatchError{Entry: f.Name, Got: manifest.Schema, Want: SchemaAll}
	}

	result := &ImportResult{Mode: SchemaAll}

	for _, trip := range manifest.Trips {
		if err := c.store.Trips().Save(trip); err != nil {
			return nil, err
		}
		result.Trips++
	}
	if err := c.importCatches(r, manifest.Catches, result); err != nil {
		return nil, err
	}
	for _, box := range manifest.FlyBoxes {
		if err := c.store.FlyBoxes().Save(box); err != nil {
			return nil, err
		}
		result.FlyBoxes++
	}
	for _, fly := range manifest.Flies {
		if err := c.store.Flies().Save(fly); err != nil {
			return nil, err
		}
		result.Flies++
	}
	for _, ev := range manifest.FlyEvents {
		if err := c.store.FlyEvents().Save(ev); err != nil {
			return nil, err
		}
		result.FlyEvents++
	}
	return result, nil
}

// importCatches saves each catch, reattaching photo bytes from the
// container. A photo entry that cannot be resolved is recorded and skipped;
// the catch itself still imports.
func (c *Codec) importCatches(r *zip.Reader, catches []*archiveCatch, result *ImportResult) error {
	for _, ac := range catches {
		if ac.Catch == nil {
			continue
		}
		row := ac.Catch

		if ac.PhotoFile != "" {
			if f := resolveAttachment(r.File, ac.PhotoFile); f != nil {
				photo, err := readEntry(f)
				if err != nil {
					return fmt.Errorf("reading photo %s: %w", f.Name, err)
				}
				row.Photo = photo
				row.PhotoMime = mimeForExt(f.Name)
			} else {
				result.MissingPhotos = append(result.MissingPhotos, ac.PhotoFile)
			}
		}

		if err := c.store.Catches().Save(row); err != nil {
			return err
		}
		result.Catches++
	}
	return nil
}

// wrapCatches converts catches to their manifest form, naming a photo entry
// for each one carrying bytes.
func wrapCatches(catches []*types.Catch) []*archiveCatch {
	wrapped := make([]*archiveCatch, 0, len(catches))
	for _, row := range catches {
		ac := &archiveCatch{Catch: row}
		if row.HasPhoto() {
			ac.PhotoFile = photoEntryName(row)
		}
		wrapped = append(wrapped, ac)
	}
	return wrapped
}

// writeArchive serializes the manifest and photo entries into ZIP bytes.
func writeArchive(manifestName string, manifest any, catches []*types.Catch) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	w, err := zw.Create(manifestName)
	if err != nil {
		return nil, fmt.Errorf("creating manifest entry: %w", err)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(manifest); err != nil {
		return nil, fmt.Errorf("encoding manifest: %w", err)
	}

	for _, row := range catches {
		if !row.HasPhoto() {
			continue
		}
		pw, err := zw.Create(photoEntryName(row))
		if err != nil {
			return nil, fmt.Errorf("creating photo entry for catch %s: %w", row.ID, err)
		}
		if _, err := pw.Write(row.Photo); err != nil {
			return nil, fmt.Errorf("writing photo for catch %s: %w", row.ID, err)
		}
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("finalizing archive: %w", err)
	}
	return buf.Bytes(), nil
}

// readManifest parses one manifest entry, mapping JSON errors to
// ErrCorruptContainer.
func readManifest(f *zip.File, out any) error {
	data, err := readEntry(f)
	if err != nil {
		return fmt.Errorf("reading manifest %s: %w", f.Name, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%w: manifest %s: %v", types.ErrCorruptContainer, f.Name, err)
	}
	return nil
}

func readEntry(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

// This file implements the inline trip package: a single JSON document with
// photos embedded as base64, for transports that cannot carry a binary
// attachment.
package archive

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"time"

	"github.com/tightlines/riverlog/pkg/types"
)

// PackagePhoto is a photo embedded in a trip package. Data holds the base64
// payload; B64 is the legacy key older exports used and is honored on
// import when Data is empty.
type PackagePhoto struct {
	Mime string `json:"mime"`
	Data string `json:"data,omitempty"`
	B64  string `json:"b64,omitempty"`
}

// PackageCatch is a catch inside a trip package.
type PackageCatch struct {
	*types.Catch
	Photo *PackagePhoto `json:"photo,omitempty"`
}

// TripPackage is the inline single-trip document.
type TripPackage struct {
	Schema     string          `json:"_schema"`
	Ver        int             `json:"_version"`
	ExportedAt int64           `json:"exportedAt"`
	Trip       *types.Trip     `json:"trip"`
	Catches    []*PackageCatch `json:"catches"`
}

// ExportPackage builds the inline package document for one trip. Returns
// the document and a suggested filename.
func (c *Codec) ExportPackage(tripID string) (*TripPackage, string, error) {
	trip, err := c.store.Trips().Get(tripID)
	if err != nil {
		return nil, "", err
	}
	catches, err := c.store.Catches().ListByTrip(tripID)
	if err != nil {
		return nil, "", err
	}

	pkg := &TripPackage{
		Schema:     SchemaPackage,
		Ver:        Version,
		ExportedAt: time.Now().UnixMilli(),
		Trip:       trip,
		Catches:    make([]*PackageCatch, 0, len(catches)),
	}
	for _, row := range catches {
		pc := &PackageCatch{Catch: row}
		if row.HasPhoto() {
			pc.Photo = &PackagePhoto{
				Mime: row.PhotoMime,
				Data: base64.StdEncoding.EncodeToString(row.Photo),
			}
		}
		pkg.Catches = append(pkg.Catches, pc)
	}
	return pkg, PackageFilename(trip), nil
}

// ExportPackageBytes is ExportPackage serialized to indented JSON.
func (c *Codec) ExportPackageBytes(tripID string) ([]byte, string, error) {
	pkg, name, err := c.ExportPackage(tripID)
	if err != nil {
		return nil, "", err
	}
	data, err := json.MarshalIndent(pkg, "", "  ")
	if err != nil {
		return nil, "", fmt.Errorf("encoding package: %w", err)
	}
	return data, name, nil
}

// ImportPackage writes a package document into the store, preserving its
// timestamps verbatim. A photo whose base64 payload does not decode is
// dropped; the catch still imports.
func (c *Codec) ImportPackage(pkg *TripPackage) (*ImportResult, error) {
	if pkg.Schema != SchemaPackage {
		return nil, &types.SchemaMismatchError{Got: pkg.Schema, Want: SchemaPackage}
	}
	if pkg.Trip == nil {
		return nil, fmt.Errorf("%w: package has no trip", types.ErrCorruptContainer)
	}

	result := &ImportResult{Mode: SchemaPackage, TripID: pkg.Trip.ID}

	if err := c.store.Trips().Save(pkg.Trip); err != nil {
		return nil, err
	}
	result.Trips = 1

	for _, pc := range pkg.Catches {
		if pc.Catch == nil {
			continue
		}
		row := pc.Catch
		if pc.Photo != nil {
			payload := pc.Photo.Data
			if payload == "" {
				payload = pc.Photo.B64
			}
			if photo, err := base64.StdEncoding.DecodeString(payload); err == nil && len(photo) > 0 {
				row.Photo = photo
				row.PhotoMime = pc.Photo.Mime
			} else {
				result.MissingPhotos = append(result.MissingPhotos, row.ID)
			}
		}
		if err := c.store.Catches().Save(row); err != nil {
			return nil, err
		}
		result.Catches++
	}
	return result, nil
}

// ImportPackageBytes parses a package document and imports it. Malformed
// JSON maps to ErrCorruptContainer.
func (c *Codec) ImportPackageBytes(data []byte) (*ImportResult, error) {
	var pkg TripPackage
	if err := json.Unmarshal(data, &pkg); err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrCorruptContainer, err)
	}
	return c.ImportPackage(&pkg)
}

package archive

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tightlines/riverlog/internal/sqlite"
	"github.com/tightlines/riverlog/pkg/types"
)

// newTestCodec attaches a store on a throwaway directory and wraps it in a
// codec.
func newTestCodec(t *testing.T) (*Codec, *sqlite.Store) {
	t.Helper()
	store, err := sqlite.Open(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Detach() })
	return NewCodec(store), store
}

// seedTrip saves a trip with two catches, one carrying a photo.
func seedTrip(t *testing.T, store *sqlite.Store) (*types.Trip, []*types.Catch) {
	t.Helper()

	trip := &types.Trip{
		ID:        sqlite.NewID(),
		Name:      "Keuka Lake",
		Date:      "2026-08-30",
		Location:  "Keuka Outlet",
		CreatedAt: 1700000000000,
		UpdatedAt: 1700000001000,
	}
	require.NoError(t, store.Trips().Save(trip))

	photo := bytes.Repeat([]byte{0xAB}, 200)
	withPhoto := &types.Catch{
		ID:        sqlite.NewID(),
		TripID:    trip.ID,
		Species:   "brown trout",
		Fly:       "pheasant tail",
		Length:    "15 in",
		GPS:       &types.GPSFix{Lat: 42.6, Lon: -77.1, Acc: 5, TS: 1700000000500},
		Photo:     photo,
		PhotoMime: "image/jpeg",
		PhotoName: "brown.jpg",
		CreatedAt: 1700000000500,
		UpdatedAt: 1700000000500,
	}
	bare := &types.Catch{
		ID:        sqlite.NewID(),
		TripID:    trip.ID,
		Species:   "smallmouth bass",
		CreatedAt: 1700000000600,
		UpdatedAt: 1700000000600,
	}
	require.NoError(t, store.Catches().Save(withPhoto))
	require.NoError(t, store.Catches().Save(bare))
	return trip, []*types.Catch{withPhoto, bare}
}

func TestExportTripImportRoundTrip(t *testing.T) {
	codec, store := newTestCodec(t)
	trip, catches := seedTrip(t, store)

	data, name, err := codec.ExportTrip(trip.ID)
	require.NoError(t, err)
	assert.Equal(t, "2026-08-30_keuka-outlet_riverlog.zip", name)

	// Import into a fresh store.
	codec2, store2 := newTestCodec(t)
	result, err := codec2.Import(data)
	require.NoError(t, err)
	assert.Equal(t, SchemaTrip, result.Mode)
	assert.Equal(t, trip.ID, result.TripID)
	assert.Equal(t, 1, result.Trips)
	assert.Equal(t, 2, result.Catches)
	assert.Empty(t, result.MissingPhotos)

	gotTrip, err := store2.Trips().Get(trip.ID)
	require.NoError(t, err)
	assert.Equal(t, trip, gotTrip, "import preserves timestamps verbatim")

	for _, want := range catches {
		got, err := store2.Catches().Get(want.ID)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestExportTripUnknownTrip(t *testing.T) {
	codec, _ := newTestCodec(t)
	_, _, err := codec.ExportTrip(sqlite.NewID())
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestExportAllImportRoundTrip(t *testing.T) {
	codec, store := newTestCodec(t)
	trip, _ := seedTrip(t, store)

	box := &types.FlyBox{ID: sqlite.NewID(), Name: "nymph box", CreatedAt: 10, UpdatedAt: 10}
	require.NoError(t, store.FlyBoxes().Save(box))
	fly := &types.Fly{ID: sqlite.NewID(), BoxID: box.ID, Type: types.FlyTypeNymph, Pattern: "hare's ear", Qty: 6, CreatedAt: 10, UpdatedAt: 10}
	require.NoError(t, store.Flies().Save(fly))
	require.NoError(t, store.FlyEvents().Save(&types.FlyEvent{
		ID: sqlite.NewID(), BoxID: box.ID, FlyID: fly.ID, Kind: types.EventAdd, Delta: 6, QtyAfter: 6, CreatedAt: 10,
	}))

	data, name, err := codec.ExportAll()
	require.NoError(t, err)
	assert.Contains(t, name, "riverlog_all_")

	codec2, store2 := newTestCodec(t)
	result, err := codec2.Import(data)
	require.NoError(t, err)
	assert.Equal(t, SchemaAll, result.Mode)
	assert.Empty(t, result.TripID)
	assert.Equal(t, 1, result.Trips)
	assert.Equal(t, 2, result.Catches)
	assert.Equal(t, 1, result.FlyBoxes)
	assert.Equal(t, 1, result.Flies)
	assert.Equal(t, 1, result.FlyEvents)

	gotTrip, err := store2.Trips().Get(trip.ID)
	require.NoError(t, err)
	assert.Equal(t, trip, gotTrip)
	gotFly, err := store2.Flies().Get(fly.ID)
	require.NoError(t, err)
	assert.Equal(t, fly, gotFly)
}

func TestImportIsIdempotent(t *testing.T) {
	codec, store := newTestCodec(t)
	trip, _ := seedTrip(t, store)

	data, _, err := codec.ExportTrip(trip.ID)
	require.NoError(t, err)

	// Importing into the source store must not duplicate anything.
	_, err = codec.Import(data)
	require.NoError(t, err)

	trips, err := store.Trips().List()
	require.NoError(t, err)
	assert.Len(t, trips, 1)
	catches, err := store.Catches().ListByTrip(trip.ID)
	require.NoError(t, err)
	assert.Len(t, catches, 2)
}

func TestImportNotAZip(t *testing.T) {
	codec, _ := newTestCodec(t)
	_, err := codec.Import([]byte("this is not a zip file"))
	assert.ErrorIs(t, err, types.ErrCorruptContainer)
}

func TestImportMissingManifest(t *testing.T) {
	codec, _ := newTestCodec(t)

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("readme.txt")
	require.NoError(t, err)
	_, err = w.Write([]byte("nothing useful"))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	_, err = codec.Import(buf.Bytes())
	var missing *types.MissingManifestError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, []string{"readme.txt"}, missing.Entries)
}

func TestImportSchemaMismatch(t *testing.T) {
	codec, _ := newTestCodec(t)

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create(TripManifestName)
	require.NoError(t, err)
	_, err = w.Write([]byte(`{"_schema":"somebody_elses_format","trip":{"id":"x"}}`))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	_, err = codec.Import(buf.Bytes())
	var mismatch *types.SchemaMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, "somebody_elses_format", mismatch.Got)
	assert.Equal(t, SchemaTrip, mismatch.Want)
}

func TestImportMalformedManifest(t *testing.T) {
	codec, _ := newTestCodec(t)

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create(TripManifestName)
	require.NoError(t, err)
	_, err = w.Write([]byte(`{"_schema": "riverlog_trip_zip", "trip": {`))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	_, err = codec.Import(buf.Bytes())
	assert.ErrorIs(t, err, types.ErrCorruptContainer)
}

func TestImportMissingPhotoEntry(t *testing.T) {
	codec, store := newTestCodec(t)
	trip, catches := seedTrip(t, store)

	data, _, err := codec.ExportTrip(trip.ID)
	require.NoError(t, err)

	// Rebuild the archive without its photos directory.
	r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, f := range r.File {
		if f.Name != TripManifestName {
			continue
		}
		rc, err := f.Open()
		require.NoError(t, err)
		w, err := zw.Create(f.Name)
		require.NoError(t, err)
		_, err = io.Copy(w, rc)
		require.NoError(t, err)
		rc.Close()
	}
	require.NoError(t, zw.Close())

	codec2, store2 := newTestCodec(t)
	result, err := codec2.Import(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, 2, result.Catches, "catches import even when photos are gone")
	require.Len(t, result.MissingPhotos, 1)

	got, err := store2.Catches().Get(catches[0].ID)
	require.NoError(t, err)
	assert.False(t, got.HasPhoto())
}

func TestImportRewrappedArchive(t *testing.T) {
	codec, store := newTestCodec(t)
	trip, catches := seedTrip(t, store)

	data, _, err := codec.ExportTrip(trip.ID)
	require.NoError(t, err)

	// Simulate an archive tool that re-zips everything under a folder.
	r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, f := range r.File {
		rc, err := f.Open()
		require.NoError(t, err)
		w, err := zw.Create("Export Folder/" + f.Name)
		require.NoError(t, err)
		_, err = io.Copy(w, rc)
		require.NoError(t, err)
		rc.Close()
	}
	require.NoError(t, zw.Close())

	codec2, store2 := newTestCodec(t)
	result, err := codec2.Import(buf.Bytes())
	require.NoError(t, err)
	assert.Empty(t, result.MissingPhotos)

	got, err := store2.Catches().Get(catches[0].ID)
	require.NoError(t, err)
	assert.Equal(t, catches[0].Photo, got.Photo)
}

func TestExportedManifestShape(t *testing.T) {
	codec, store := newTestCodec(t)
	trip, catches := seedTrip(t, store)

	data, _, err := codec.ExportTrip(trip.ID)
	require.NoError(t, err)

	r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)

	f := resolveManifest(r.File, TripManifestName)
	require.NotNil(t, f)
	raw, err := readEntry(f)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(raw, &doc))
	assert.Equal(t, SchemaTrip, doc["_schema"])
	assert.Equal(t, float64(Version), doc["_version"])
	assert.NotZero(t, doc["exportedAt"])

	// Photo bytes live in an entry, not in the manifest.
	photoEntry := photoEntryName(catches[0])
	assert.NotNil(t, resolveAttachment(r.File, photoEntry))

	// The catch with a photo names its entry; the bare one does not.
	rows := doc["catches"].([]any)
	require.Len(t, rows, 2)
	for _, rowAny := range rows {
		row := rowAny.(map[string]any)
		if row["id"] == catches[0].ID {
			assert.Equal(t, photoEntry, row["photoFile"])
		} else {
			_, present := row["photoFile"]
			assert.False(t, present)
		}
	}
}

func TestEndToEndExportDeleteReimport(t *testing.T) {
	codec, store := newTestCodec(t)

	trip := &types.Trip{
		ID:        sqlite.NewID(),
		Name:      "Keuka Lake",
		Date:      "2024-09-01",
		Location:  "Keuka Lake",
		CreatedAt: 1725148800000,
		UpdatedAt: 1725148800000,
	}
	require.NoError(t, store.Trips().Save(trip))

	photo := make([]byte, 200)
	for i := range photo {
		photo[i] = byte(i)
	}
	row := &types.Catch{
		ID:        sqlite.NewID(),
		TripID:    trip.ID,
		Species:   "lake trout",
		Length:    "18.5",
		Photo:     photo,
		PhotoMime: "image/jpeg",
		CreatedAt: 1725150000000,
		UpdatedAt: 1725150000000,
	}
	require.NoError(t, store.Catches().Save(row))

	data, _, err := codec.ExportTrip(trip.ID)
	require.NoError(t, err)

	// Wipe the originals from the same store.
	require.NoError(t, store.DeleteTrip(trip.ID))
	_, err = store.Trips().Get(trip.ID)
	require.ErrorIs(t, err, types.ErrNotFound)
	_, err = store.Catches().Get(row.ID)
	require.ErrorIs(t, err, types.ErrNotFound)

	// Importing the archive brings everything back bit-identical.
	result, err := codec.Import(data)
	require.NoError(t, err)
	assert.Equal(t, trip.ID, result.TripID)

	gotTrip, err := store.Trips().Get(trip.ID)
	require.NoError(t, err)
	assert.Equal(t, trip, gotTrip)

	gotCatch, err := store.Catches().Get(row.ID)
	require.NoError(t, err)
	assert.Equal(t, row, gotCatch)
	assert.Equal(t, photo, gotCatch.Photo)
}

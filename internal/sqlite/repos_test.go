package sqlite

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tightlines/riverlog/pkg/types"
)

func TestTripSaveGetRoundTrip(t *testing.T) {
	store := newTestStore(t)

	trip := &types.Trip{
		ID:        NewID(),
		Name:      "Keuka Lake",
		Date:      "2026-08-30",
		Location:  "Keuka Outlet",
		Desc:      "low water",
		FlyWin:    "size 18 BWO",
		Lessons:   "fish the seams",
		Recap:     "two browns",
		CreatedAt: 1700000000000,
		UpdatedAt: 1700000000000,
	}
	require.NoError(t, store.Trips().Save(trip))

	got, err := store.Trips().Get(trip.ID)
	require.NoError(t, err)
	assert.Equal(t, trip, got)
}

func TestTripSaveEmptyID(t *testing.T) {
	store := newTestStore(t)
	err := store.Trips().Save(&types.Trip{})
	assert.ErrorIs(t, err, types.ErrInvalidID)
}

func TestTripGetMissing(t *testing.T) {
	store := newTestStore(t)
	_, err := store.Trips().Get(NewID())
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestTripUpsertKeepsListPosition(t *testing.T) {
	store := newTestStore(t)

	first := &types.Trip{ID: NewID(), Name: "first", CreatedAt: 100, UpdatedAt: 100}
	second := &types.Trip{ID: NewID(), Name: "second", CreatedAt: 100, UpdatedAt: 100}
	require.NoError(t, store.Trips().Save(first))
	require.NoError(t, store.Trips().Save(second))

	// Re-saving must update in place, not move the row to the end.
	first.Name = "first edited"
	require.NoError(t, store.Trips().Save(first))

	trips, err := store.Trips().List()
	require.NoError(t, err)
	require.Len(t, trips, 2)
	assert.Equal(t, "first edited", trips[0].Name)
	assert.Equal(t, "second", trips[1].Name)
}

func TestTripListNewestFirst(t *testing.T) {
	store := newTestStore(t)

	old := &types.Trip{ID: NewID(), Name: "old", CreatedAt: 100, UpdatedAt: 100}
	recent := &types.Trip{ID: NewID(), Name: "recent", CreatedAt: 200, UpdatedAt: 200}
	require.NoError(t, store.Trips().Save(old))
	require.NoError(t, store.Trips().Save(recent))

	trips, err := store.Trips().List()
	require.NoError(t, err)
	require.Len(t, trips, 2)
	assert.Equal(t, "recent", trips[0].Name)
	assert.Equal(t, "old", trips[1].Name)
}

func TestTripDeleteMissingIsNoop(t *testing.T) {
	store := newTestStore(t)
	assert.NoError(t, store.Trips().Delete(NewID()))
}

func TestTripEnsureDefault(t *testing.T) {
	store := newTestStore(t)

	trip, err := store.Trips().EnsureDefault()
	require.NoError(t, err)
	assert.NotEmpty(t, trip.ID)
	assert.NotEmpty(t, trip.Name)
	assert.NotZero(t, trip.CreatedAt)

	// Second call returns the same trip, not a new one.
	again, err := store.Trips().EnsureDefault()
	require.NoError(t, err)
	assert.Equal(t, trip.ID, again.ID)

	trips, err := store.Trips().List()
	require.NoError(t, err)
	assert.Len(t, trips, 1)
}

func TestCatchRoundTripWithGPSAndPhoto(t *testing.T) {
	store := newTestStore(t)

	c := &types.Catch{
		ID:        NewID(),
		TripID:    NewID(),
		Species:   "brown trout",
		Fly:       "pheasant tail",
		Length:    "14.5 in",
		Notes:     "tail of the pool",
		GPS:       &types.GPSFix{Lat: 42.6, Lon: -77.1, Acc: 8, TS: 1700000000000},
		Photo:     []byte{0x89, 0x50, 0x4e, 0x47},
		PhotoMime: "image/png",
		PhotoName: "brown.png",
		CreatedAt: 1700000000000,
		UpdatedAt: 1700000000000,
	}
	require.NoError(t, store.Catches().Save(c))

	got, err := store.Catches().Get(c.ID)
	require.NoError(t, err)
	assert.Equal(t, c, got)
}

func TestCatchWithoutGPSOrPhoto(t *testing.T) {
	store := newTestStore(t)

	c := &types.Catch{ID: NewID(), TripID: NewID(), Species: "rainbow", CreatedAt: 1, UpdatedAt: 1}
	require.NoError(t, store.Catches().Save(c))

	got, err := store.Catches().Get(c.ID)
	require.NoError(t, err)
	assert.Nil(t, got.GPS)
	assert.Nil(t, got.Photo)
	assert.False(t, got.HasPhoto())
}

func TestCatchListByTrip(t *testing.T) {
	store := newTestStore(t)

	tripA := NewID()
	tripB := NewID()
	require.NoError(t, store.Catches().Save(&types.Catch{ID: NewID(), TripID: tripA, Species: "a1", CreatedAt: 1, UpdatedAt: 1}))
	require.NoError(t, store.Catches().Save(&types.Catch{ID: NewID(), TripID: tripB, Species: "b1", CreatedAt: 2, UpdatedAt: 2}))
	require.NoError(t, store.Catches().Save(&types.Catch{ID: NewID(), TripID: tripA, Species: "a2", CreatedAt: 3, UpdatedAt: 3}))

	catches, err := store.Catches().ListByTrip(tripA)
	require.NoError(t, err)
	require.Len(t, catches, 2)
	assert.Equal(t, "a2", catches[0].Species)
	assert.Equal(t, "a1", catches[1].Species)

	all, err := store.Catches().ListAll()
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestFlyBoxEnsureDefault(t *testing.T) {
	store := newTestStore(t)

	box, err := store.FlyBoxes().EnsureDefault()
	require.NoError(t, err)
	assert.Equal(t, DefaultFlyBoxName, box.Name)

	again, err := store.FlyBoxes().EnsureDefault()
	require.NoError(t, err)
	assert.Equal(t, box.ID, again.ID)
}

func TestFlyBoxEnsureDefaultPrefersNewest(t *testing.T) {
	store := newTestStore(t)

	older := &types.FlyBox{ID: NewID(), Name: "streamers", CreatedAt: 100, UpdatedAt: 100}
	newer := &types.FlyBox{ID: NewID(), Name: "dries", CreatedAt: 200, UpdatedAt: 200}
	require.NoError(t, store.FlyBoxes().Save(older))
	require.NoError(t, store.FlyBoxes().Save(newer))

	box, err := store.FlyBoxes().EnsureDefault()
	require.NoError(t, err)
	assert.Equal(t, "dries", box.Name)
}

func TestFlyRoundTrip(t *testing.T) {
	store := newTestStore(t)

	fly := &types.Fly{
		ID:        NewID(),
		BoxID:     NewID(),
		Type:      types.FlyTypeNymph,
		Pattern:   "hare's ear",
		Size:      "16",
		Qty:       6,
		Colors:    "natural",
		Photo:     "data:image/png;base64,iVBORw0KGgo=",
		CreatedAt: 1700000000000,
		UpdatedAt: 1700000000000,
	}
	require.NoError(t, store.Flies().Save(fly))

	got, err := store.Flies().Get(fly.ID)
	require.NoError(t, err)
	assert.Equal(t, fly, got)
}

func TestFlyListByBox(t *testing.T) {
	store := newTestStore(t)

	boxA := NewID()
	require.NoError(t, store.Flies().Save(&types.Fly{ID: NewID(), BoxID: boxA, Pattern: "adams", CreatedAt: 1, UpdatedAt: 1}))
	require.NoError(t, store.Flies().Save(&types.Fly{ID: NewID(), BoxID: NewID(), Pattern: "zonker", CreatedAt: 2, UpdatedAt: 2}))

	flies, err := store.Flies().ListByBox(boxA)
	require.NoError(t, err)
	require.Len(t, flies, 1)
	assert.Equal(t, "adams", flies[0].Pattern)
}

func TestFlyEventListByFlyAndBox(t *testing.T) {
	store := newTestStore(t)

	boxID := NewID()
	flyID := NewID()
	require.NoError(t, store.FlyEvents().Save(&types.FlyEvent{
		ID: NewID(), BoxID: boxID, FlyID: flyID, Kind: types.EventAdd,
		Delta: 3, QtyBefore: 0, QtyAfter: 3, CreatedAt: 1,
	}))
	require.NoError(t, store.FlyEvents().Save(&types.FlyEvent{
		ID: NewID(), BoxID: boxID, FlyID: NewID(), Kind: types.EventUse,
		Delta: -1, QtyBefore: 2, QtyAfter: 1, CreatedAt: 2,
	}))

	byFly, err := store.FlyEvents().ListByFly(flyID)
	require.NoError(t, err)
	assert.Len(t, byFly, 1)

	byBox, err := store.FlyEvents().ListByBox(boxID)
	require.NoError(t, err)
	assert.Len(t, byBox, 2)
}

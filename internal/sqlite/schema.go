// Package sqlite implements the SQLite storage backend for RiverLog.
package sqlite

// schemaVersion is recorded in PRAGMA user_version after the DDL below has
// been applied. Bumping it re-runs the (idempotent) DDL on the next Attach;
// it never drops existing tables or rows.
const schemaVersion = 1

// Table DDL. Every statement is IF NOT EXISTS so re-running the schema at
// the same or a higher version is safe.
const (
	createTrips = `CREATE TABLE IF NOT EXISTS trips (
    trip_id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    date TEXT NOT NULL DEFAULT '',
    location TEXT NOT NULL DEFAULT '',
    description TEXT NOT NULL DEFAULT '',
    fly_win TEXT NOT NULL DEFAULT '',
    lessons TEXT NOT NULL DEFAULT '',
    recap TEXT NOT NULL DEFAULT '',
    created_at INTEGER NOT NULL,
    updated_at INTEGER NOT NULL
);`

	createCatches = `CREATE TABLE IF NOT EXISTS catches (
    catch_id TEXT PRIMARY KEY,
    trip_id TEXT NOT NULL,
    species TEXT NOT NULL DEFAULT '',
    fly TEXT NOT NULL DEFAULT '',
    length TEXT NOT NULL DEFAULT '',
    notes TEXT NOT NULL DEFAULT '',
    gps TEXT,
    photo BLOB,
    photo_mime TEXT NOT NULL DEFAULT '',
    photo_name TEXT NOT NULL DEFAULT '',
    created_at INTEGER NOT NULL,
    updated_at INTEGER NOT NULL
);`

	createFlyBoxes = `CREATE TABLE IF NOT EXISTS flyboxes (
    flybox_id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    notes TEXT NOT NULL DEFAULT '',
    created_at INTEGER NOT NULL,
    updated_at INTEGER NOT NULL
);`

	createFlies = `CREATE TABLE IF NOT EXISTS flies (
    fly_id TEXT PRIMARY KEY,
    box_id TEXT NOT NULL,
    fly_type TEXT NOT NULL DEFAULT '',
    pattern TEXT NOT NULL DEFAULT '',
    size TEXT NOT NULL DEFAULT '',
    qty INTEGER NOT NULL DEFAULT 0,
    colors TEXT NOT NULL DEFAULT '',
    photo TEXT NOT NULL DEFAULT '',
    created_at INTEGER NOT NULL,
    updated_at INTEGER NOT NULL
);`

	createFlyEvents = `CREATE TABLE IF NOT EXISTS fly_events (
    event_id TEXT PRIMARY KEY,
    box_id TEXT NOT NULL,
    fly_id TEXT NOT NULL,
    kind TEXT NOT NULL,
    delta INTEGER NOT NULL,
    qty_before INTEGER NOT NULL,
    qty_after INTEGER NOT NULL,
    note TEXT NOT NULL DEFAULT '',
    created_at INTEGER NOT NULL
);`
)

// Index DDL for parent-id lookups and recency sorts.
const (
	idxTripsCreated     = `CREATE INDEX IF NOT EXISTS idx_trips_created ON trips(created_at);`
	idxCatchesTrip      = `CREATE INDEX IF NOT EXISTS idx_catches_trip ON catches(trip_id);`
	idxCatchesCreated   = `CREATE INDEX IF NOT EXISTS idx_catches_created ON catches(created_at);`
	idxFlyBoxesCreated  = `CREATE INDEX IF NOT EXISTS idx_flyboxes_created ON flyboxes(created_at);`
	idxFliesBox         = `CREATE INDEX IF NOT EXISTS idx_flies_box ON flies(box_id);`
	idxFliesCreated     = `CREATE INDEX IF NOT EXISTS idx_flies_created ON flies(created_at);`
	idxFlyEventsBox     = `CREATE INDEX IF NOT EXISTS idx_fly_events_box ON fly_events(box_id);`
	idxFlyEventsFly     = `CREATE INDEX IF NOT EXISTS idx_fly_events_fly ON fly_events(fly_id);`
	idxFlyEventsKind    = `CREATE INDEX IF NOT EXISTS idx_fly_events_kind ON fly_events(kind);`
	idxFlyEventsCreated = `CREATE INDEX IF NOT EXISTS idx_fly_events_created ON fly_events(created_at);`
)

// schemaDDL lists all CREATE TABLE statements.
var schemaDDL = []string{
	createTrips,
	createCatches,
	createFlyBoxes,
	createFlies,
	createFlyEvents,
}

// indexDDL lists all CREATE INDEX statements.
var indexDDL = []string{
	idxTripsCreated,
	idxCatchesTrip,
	idxCatchesCreated,
	idxFlyBoxesCreated,
	idxFliesBox,
	idxFliesCreated,
	idxFlyEventsBox,
	idxFlyEventsFly,
	idxFlyEventsKind,
	idxFlyEventsCreated,
}

// Shared helpers for riverlog CLI commands.
package main

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/tightlines/riverlog/internal/sqlite"
	"github.com/tightlines/riverlog/pkg/types"
)

// attachStore resolves the data directory and attaches the store. The
// caller must defer store.Detach().
func attachStore() (*sqlite.Store, error) {
	dataDir, err := resolveDataDir()
	if err != nil {
		return nil, fmt.Errorf("resolve data dir: %w", err)
	}

	store := sqlite.NewStore()
	if err := store.Attach(types.Config{DataDir: dataDir}); err != nil {
		return nil, fmt.Errorf("attach store: %w", err)
	}

	return store, nil
}

// printJSON writes v as indented JSON to stdout.
func printJSON(v any) error {
	output, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	fmt.Println(string(output))
	return nil
}

// shortID truncates an id to its first 8 characters for table output.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// formatMillis renders a Unix-millisecond timestamp as a local date.
func formatMillis(ms int64) string {
	if ms == 0 {
		return "-"
	}
	return time.UnixMilli(ms).Format("2006-01-02")
}

// truncate shortens s for table output.
func truncate(s string, max int) string {
	if len(s) > max {
		return s[:max-3] + "..."
	}
	return s
}

package types

import (
	"errors"
	"fmt"
	"strings"
)

// Store lifecycle and repository errors.
var (
	ErrStoreDetached   = errors.New("store is detached")
	ErrAlreadyAttached = errors.New("store is already attached")
	ErrNotFound        = errors.New("not found")
	ErrInvalidID       = errors.New("invalid id")
)

// ErrCorruptContainer marks archive bytes that cannot be parsed as a valid
// container, or a manifest document that is not valid JSON.
var ErrCorruptContainer = errors.New("corrupt archive container")

// SchemaMismatchError reports a manifest document that was found but whose
// schema tag does not match the expected variant.
type SchemaMismatchError struct {
	Entry string // entry name inside the container
	Got   string
	Want  string
}

func (e *SchemaMismatchError) Error() string {
	return fmt.Sprintf("manifest %s: schema %q, want %q", e.Entry, e.Got, e.Want)
}

// MissingManifestError reports a container holding no recognized manifest
// entry. Entries lists the entry names that were found, for diagnostics.
type MissingManifestError struct {
	Entries []string
}

func (e *MissingManifestError) Error() string {
	if len(e.Entries) == 0 {
		return "no manifest entry found (container is empty)"
	}
	return "no manifest entry found (container has: " + strings.Join(e.Entries, ", ") + ")"
}

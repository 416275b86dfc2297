package docweaver

import (
	"context"
	"time"
)

// Fragment is one captured page: its markdown body plus capture metadata.
// Fragments are written once and never mutated.
type Fragment struct {
	// Name is the fragment's file name within its category directory.
	// Deep captures encode a zero-padded ordinal plus URL slug
	// (e.g. 003-getting-started.md); single captures use the URL slug alone.
	Name string

	SourceURL string
	Title     string
	Body      string

	// Position is the explicit capture-order stamp assigned at write time.
	// Assembly orders fragments by this value rather than by file
	// modification time.
	Position int

	// Hash is the xxhash of the body, for change detection.
	Hash string

	// Failed marks a capture that produced no usable content. Failed
	// fragments are reported and logged but never persisted.
	Failed  bool
	Message string

	CapturedAt time.Time

	// ModTime is populated when reading fragments back from storage. It is
	// only consulted as an ordering fallback for fragments written before
	// positions were stamped.
	ModTime time.Time
}

// FragmentStore persists fragments under a project/category directory.
type FragmentStore interface {
	// SaveFragment writes a fragment immediately (write-as-you-go). When
	// the fragment carries no position, the store stamps the next free one.
	SaveFragment(ctx context.Context, project, category string, frag *Fragment) error

	// ListFragments returns a category's fragments in assembly order:
	// by stamped position, then file modification time, then name.
	ListFragments(ctx context.Context, project, category string) ([]*Fragment, error)
}

// DocumentStore persists the artifacts assembled from a category's
// fragments. The combined document is overwritten on each assembly run;
// the improved document is a sibling artifact and never replaces it.
type DocumentStore interface {
	WriteCombined(ctx context.Context, project, category, content string) error
	WriteImproved(ctx context.Context, project, category, content string) error
}

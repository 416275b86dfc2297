package docweaver

import (
	"context"
	"time"
)

// Capture modes recorded in the activity log and history catalog.
const (
	ModeSingle   = "single"
	ModeDeep     = "deep"
	ModeSitemap  = "sitemap"
	ModeAssemble = "assemble"
)

// CaptureRecord describes one orchestration invocation: what was requested,
// with which parameters, and how it went.
type CaptureRecord struct {
	ID        string
	Project   string
	Category  string
	URL       string
	Mode      string
	Params    string
	Pages     int
	Bytes     int
	Outcome   string
	Error     string
	CreatedAt time.Time
}

// ActivityLog appends one human-readable block per orchestration invocation
// to the category's append-only log.
type ActivityLog interface {
	Append(ctx context.Context, project, category string, rec *CaptureRecord) error
}

// CaptureFilter selects records from the capture history catalog.
type CaptureFilter struct {
	Project  *string
	Category *string
	Limit    int
}

// CaptureHistory is a queryable mirror of the activity logs, one row per
// invocation across all projects. The per-category log files remain the
// authoritative record.
type CaptureHistory interface {
	RecordCapture(ctx context.Context, rec *CaptureRecord) error
	ListCaptures(ctx context.Context, filter CaptureFilter) ([]*CaptureRecord, error)
}

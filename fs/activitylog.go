package fs

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/docweaver/docweaver"
)

// Ensure ActivityLog implements docweaver.ActivityLog at compile time.
var _ docweaver.ActivityLog = (*ActivityLog)(nil)

// ActivityLog appends capture records to the category's activity.log.
// The file is append-only: one human-readable block per invocation,
// blocks separated by a blank line.
type ActivityLog struct {
	root string
}

// NewActivityLog creates an ActivityLog rooted at root.
func NewActivityLog(root string) *ActivityLog {
	return &ActivityLog{root: root}
}

func (l *ActivityLog) Append(ctx context.Context, project, category string, rec *docweaver.CaptureRecord) error {
	dir := categoryDir(l.root, project, category)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	f, err := os.OpenFile(filepath.Join(dir, activityFile), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	if _, err := f.WriteString(FormatRecord(rec)); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// FormatRecord renders one activity-log block.
func FormatRecord(rec *docweaver.CaptureRecord) string {
	created := rec.CreatedAt
	if created.IsZero() {
		created = time.Now().UTC()
	}

	var b strings.Builder
	b.WriteString("[")
	b.WriteString(created.Format(time.RFC3339))
	b.WriteString("] ")
	b.WriteString(rec.Mode)
	b.WriteString(" ")
	b.WriteString(rec.URL)
	b.WriteString("\n")
	if rec.Params != "" {
		b.WriteString("  params: ")
		b.WriteString(rec.Params)
		b.WriteString("\n")
	}
	b.WriteString("  outcome: ")
	b.WriteString(rec.Outcome)
	b.WriteString(" pages=")
	b.WriteString(strconv.Itoa(rec.Pages))
	b.WriteString(" bytes=")
	b.WriteString(strconv.Itoa(rec.Bytes))
	b.WriteString("\n")
	if rec.Error != "" {
		b.WriteString("  error: ")
		b.WriteString(rec.Error)
		b.WriteString("\n")
	}
	b.WriteString("\n")
	return b.String()
}

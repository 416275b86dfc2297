package sqlite

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/docweaver/docweaver"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ docweaver.CaptureHistory = (*HistoryService)(nil)

// HistoryService implements docweaver.CaptureHistory using SQLite.
type HistoryService struct {
	db *DB
}

// NewHistoryService creates a new HistoryService.
func NewHistoryService(db *DB) *HistoryService {
	return &HistoryService{db: db}
}

// RecordCapture inserts one capture record into the catalog.
func (s *HistoryService) RecordCapture(ctx context.Context, rec *docweaver.CaptureRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO captures (id, project, category, url, mode, params, pages, bytes, outcome, error, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, rec.ID, rec.Project, rec.Category, rec.URL, rec.Mode, rec.Params,
		rec.Pages, rec.Bytes, rec.Outcome, rec.Error, rec.CreatedAt.Format(time.RFC3339))

	return err
}

// ListCaptures retrieves capture records matching the filter, newest first.
func (s *HistoryService) ListCaptures(ctx context.Context, filter docweaver.CaptureFilter) ([]*docweaver.CaptureRecord, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, project, category, url, mode, params, pages, bytes, outcome, error, created_at FROM captures WHERE 1=1")

	if filter.Project != nil {
		query.WriteString(" AND project = ?")
		args = append(args, *filter.Project)
	}
	if filter.Category != nil {
		query.WriteString(" AND category = ?")
		args = append(args, *filter.Category)
	}

	query.WriteString(" ORDER BY created_at DESC, id")

	if filter.Limit > 0 {
		query.WriteString(" LIMIT ?")
		args = append(args, filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recs []*docweaver.CaptureRecord
	for rows.Next() {
		var rec docweaver.CaptureRecord
		var createdAt string

		if err := rows.Scan(&rec.ID, &rec.Project, &rec.Category, &rec.URL, &rec.Mode, &rec.Params,
			&rec.Pages, &rec.Bytes, &rec.Outcome, &rec.Error, &createdAt); err != nil {
			return nil, err
		}

		rec.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse created_at: %w", err)
		}

		recs = append(recs, &rec)
	}

	return recs, rows.Err()
}

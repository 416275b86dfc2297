package mock

import (
	"context"

	"github.com/docweaver/docweaver"
)

var _ docweaver.ActivityLog = (*ActivityLog)(nil)

// ActivityLog is a mock implementation of docweaver.ActivityLog.
type ActivityLog struct {
	AppendFn func(ctx context.Context, project, category string, rec *docweaver.CaptureRecord) error
}

func (l *ActivityLog) Append(ctx context.Context, project, category string, rec *docweaver.CaptureRecord) error {
	return l.AppendFn(ctx, project, category, rec)
}

var _ docweaver.CaptureHistory = (*CaptureHistory)(nil)

// CaptureHistory is a mock implementation of docweaver.CaptureHistory.
type CaptureHistory struct {
	RecordCaptureFn func(ctx context.Context, rec *docweaver.CaptureRecord) error
	ListCapturesFn  func(ctx context.Context, filter docweaver.CaptureFilter) ([]*docweaver.CaptureRecord, error)
}

func (h *CaptureHistory) RecordCapture(ctx context.Context, rec *docweaver.CaptureRecord) error {
	return h.RecordCaptureFn(ctx, rec)
}

func (h *CaptureHistory) ListCaptures(ctx context.Context, filter docweaver.CaptureFilter) ([]*docweaver.CaptureRecord, error) {
	return h.ListCapturesFn(ctx, filter)
}

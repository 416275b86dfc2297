package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/docweaver/docweaver"
	"github.com/docweaver/docweaver/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openDB(t *testing.T) *sqlite.DB {
	t.Helper()
	db := sqlite.NewDB(":memory:")
	require.NoError(t, db.Open())
	t.Cleanup(func() { db.Close() })
	return db
}

func TestHistoryService_RecordCapture(t *testing.T) {
	t.Parallel()

	t.Run("assigns ID and timestamp when missing", func(t *testing.T) {
		t.Parallel()

		s := sqlite.NewHistoryService(openDB(t))
		rec := &docweaver.CaptureRecord{
			Project:  "acme",
			Category: "api",
			URL:      "https://x.test/docs",
			Mode:     docweaver.ModeDeep,
			Pages:    5,
			Outcome:  "ok",
		}

		require.NoError(t, s.RecordCapture(context.Background(), rec))

		assert.NotEmpty(t, rec.ID)
		assert.False(t, rec.CreatedAt.IsZero())
	})
}

func TestHistoryService_ListCaptures(t *testing.T) {
	t.Parallel()

	seed := func(t *testing.T, s *sqlite.HistoryService) {
		t.Helper()
		ctx := context.Background()
		base := time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC)
		records := []*docweaver.CaptureRecord{
			{Project: "acme", Category: "api", URL: "https://x.test/1", Mode: docweaver.ModeSingle, Outcome: "ok", CreatedAt: base},
			{Project: "acme", Category: "guides", URL: "https://x.test/2", Mode: docweaver.ModeDeep, Outcome: "ok", CreatedAt: base.Add(time.Hour)},
			{Project: "widgets", Category: "api", URL: "https://y.test/3", Mode: docweaver.ModeDeep, Outcome: "failed", CreatedAt: base.Add(2 * time.Hour)},
		}
		for _, rec := range records {
			require.NoError(t, s.RecordCapture(ctx, rec))
		}
	}

	t.Run("newest first", func(t *testing.T) {
		t.Parallel()

		s := sqlite.NewHistoryService(openDB(t))
		seed(t, s)

		recs, err := s.ListCaptures(context.Background(), docweaver.CaptureFilter{})

		require.NoError(t, err)
		require.Len(t, recs, 3)
		assert.Equal(t, "https://y.test/3", recs[0].URL)
		assert.Equal(t, "https://x.test/2", recs[1].URL)
		assert.Equal(t, "https://x.test/1", recs[2].URL)
	})

	t.Run("filters by project and category", func(t *testing.T) {
		t.Parallel()

		s := sqlite.NewHistoryService(openDB(t))
		seed(t, s)

		project := "acme"
		category := "api"
		recs, err := s.ListCaptures(context.Background(), docweaver.CaptureFilter{
			Project:  &project,
			Category: &category,
		})

		require.NoError(t, err)
		require.Len(t, recs, 1)
		assert.Equal(t, "https://x.test/1", recs[0].URL)
	})

	t.Run("applies limit", func(t *testing.T) {
		t.Parallel()

		s := sqlite.NewHistoryService(openDB(t))
		seed(t, s)

		recs, err := s.ListCaptures(context.Background(), docweaver.CaptureFilter{Limit: 2})

		require.NoError(t, err)
		assert.Len(t, recs, 2)
	})

	t.Run("round-trips all fields", func(t *testing.T) {
		t.Parallel()

		s := sqlite.NewHistoryService(openDB(t))
		ctx := context.Background()
		rec := &docweaver.CaptureRecord{
			Project:   "acme",
			Category:  "api",
			URL:       "https://x.test/docs",
			Mode:      docweaver.ModeSitemap,
			Params:    "max_pages=50",
			Pages:     12,
			Bytes:     34567,
			Outcome:   "ok (page cap reached)",
			Error:     "2 pages failed",
			CreatedAt: time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC),
		}
		require.NoError(t, s.RecordCapture(ctx, rec))

		recs, err := s.ListCaptures(ctx, docweaver.CaptureFilter{})
		require.NoError(t, err)
		require.Len(t, recs, 1)
		assert.Equal(t, rec.ID, recs[0].ID)
		assert.Equal(t, "max_pages=50", recs[0].Params)
		assert.Equal(t, 12, recs[0].Pages)
		assert.Equal(t, 34567, recs[0].Bytes)
		assert.Equal(t, "ok (page cap reached)", recs[0].Outcome)
		assert.Equal(t, "2 pages failed", recs[0].Error)
		assert.True(t, recs[0].CreatedAt.Equal(rec.CreatedAt))
	})
}

package slog_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/docweaver/docweaver"
	"github.com/docweaver/docweaver/mock"
	dwslog "github.com/docweaver/docweaver/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingFetcher(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	inner := &mock.Fetcher{
		FetchFn: func(_ context.Context, url string, _ docweaver.FetchOptions) (string, error) {
			return "<html></html>", nil
		},
	}

	f := dwslog.NewLoggingFetcher(inner, logger)
	html, err := f.Fetch(context.Background(), "https://x.test/a", docweaver.FetchOptions{})

	require.NoError(t, err)
	assert.Equal(t, "<html></html>", html)
	assert.Contains(t, buf.String(), "page fetch")
	assert.Contains(t, buf.String(), "https://x.test/a")
}

func TestLoggingImprover(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	inner := &mock.Improver{
		ImproveTextFn: func(_ context.Context, text string) (string, error) {
			return text + " improved", nil
		},
	}

	i := dwslog.NewLoggingImprover(inner, logger)
	improved, err := i.ImproveText(context.Background(), "draft")

	require.NoError(t, err)
	assert.Equal(t, "draft improved", improved)
	assert.Contains(t, buf.String(), "document improvement")
}

package crawl_test

import (
	"testing"

	"github.com/docweaver/docweaver/crawl"
	"github.com/stretchr/testify/assert"
)

func TestComputeHash(t *testing.T) {
	t.Parallel()

	a := crawl.ComputeHash("# Install\n")
	b := crawl.ComputeHash("# Install\n")
	c := crawl.ComputeHash("# Usage\n")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.NotEmpty(t, a)
}

func TestTruncateURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		url    string
		maxLen int
		want   string
	}{
		{"short URL unchanged", "https://x.test/a", 50, "https://x.test/a"},
		{"long URL keeps the tail", "https://x.test/docs/guides/installation", 20, "...ides/installation"},
		{"zero length", "https://x.test", 0, ""},
		{"tiny budget", "https://x.test", 3, "htt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := crawl.TruncateURL(tt.url, tt.maxLen)
			assert.Equal(t, tt.want, got)
			assert.LessOrEqual(t, len(got), tt.maxLen)
		})
	}
}

func TestFormatBytes(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "512 B", crawl.FormatBytes(512))
	assert.Equal(t, "1.5 KB", crawl.FormatBytes(1536))
	assert.Equal(t, "2.0 MB", crawl.FormatBytes(2*1024*1024))
}

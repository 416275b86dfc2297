package docweaver_test

import (
	"testing"

	"github.com/docweaver/docweaver"
	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"simple", "Getting Started", "getting-started"},
		{"special characters", "API & Auth (v2)", "api-auth-v2"},
		{"collapses separators", "a -- b__c", "a-b-c"},
		{"trims trailing", "trailing! ", "trailing"},
		{"digits kept", "Section 42", "section-42"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, docweaver.Slugify(tt.input))
		})
	}
}

func TestSlugFromURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		rawURL string
		want   string
	}{
		{"path", "https://x.test/docs/api/users", "docs-api-users"},
		{"root", "https://x.test/", "x-test"},
		{"no path", "https://x.test", "x-test"},
		{"trailing slash", "https://x.test/guide/", "guide"},
		{"single page", "https://x.test/a", "a"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, docweaver.SlugFromURL(tt.rawURL))
		})
	}
}

func TestDeriveTitle(t *testing.T) {
	t.Parallel()

	t.Run("uses first heading line", func(t *testing.T) {
		t.Parallel()

		body := "\n\n## Installation Guide\n\nSome text."
		assert.Equal(t, "Installation Guide", docweaver.DeriveTitle(body, "001-install.md"))
	})

	t.Run("falls back to filename when first line is not a heading", func(t *testing.T) {
		t.Parallel()

		body := "Plain paragraph first.\n# Heading later"
		assert.Equal(t, "001 Install Guide", docweaver.DeriveTitle(body, "001-install_guide.md"))
	})

	t.Run("falls back to filename for empty body", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "Api Reference", docweaver.DeriveTitle("", "api-reference.md"))
	})
}

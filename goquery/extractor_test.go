package goquery_test

import (
	"strings"
	"testing"

	"github.com/docweaver/docweaver"
	gq "github.com/docweaver/docweaver/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScopedExtractor_Extract(t *testing.T) {
	t.Parallel()

	t.Run("returns only the matching subtree", func(t *testing.T) {
		t.Parallel()

		html := `<html><head><title>API Reference</title></head><body>
			<nav>ignore me</nav>
			<div class="doc-body"><h2>Endpoints</h2><p>GET /users</p></div>
			<footer>ignore me too</footer>
		</body></html>`

		e := gq.NewScopedExtractor(".doc-body")
		result, err := e.Extract(html)

		require.NoError(t, err)
		assert.Equal(t, "API Reference", result.Title)
		assert.Contains(t, result.ContentHTML, "<h2>Endpoints</h2>")
		assert.Contains(t, result.ContentHTML, "GET /users")
		assert.NotContains(t, result.ContentHTML, "ignore me")
	})

	t.Run("concatenates multiple matches in document order", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
			<section class="part"><p>one</p></section>
			<section class="part"><p>two</p></section>
		</body></html>`

		e := gq.NewScopedExtractor(".part")
		result, err := e.Extract(html)

		require.NoError(t, err)
		assert.Contains(t, result.ContentHTML, "one")
		assert.Contains(t, result.ContentHTML, "two")
		assert.Less(t,
			strings.Index(result.ContentHTML, "one"),
			strings.Index(result.ContentHTML, "two"))
	})

	t.Run("falls back to h1 when title is missing", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><main><h1>Install Guide</h1><p>Steps.</p></main></body></html>`

		e := gq.NewScopedExtractor("main")
		result, err := e.Extract(html)

		require.NoError(t, err)
		assert.Equal(t, "Install Guide", result.Title)
	})

	t.Run("no match is reported, not silently empty", func(t *testing.T) {
		t.Parallel()

		e := gq.NewScopedExtractor("#missing")
		_, err := e.Extract("<html><body><p>hi</p></body></html>")

		require.Error(t, err)
		assert.Equal(t, docweaver.ENOTFOUND, docweaver.ErrorCode(err))
	})

	t.Run("empty selector is invalid", func(t *testing.T) {
		t.Parallel()

		e := gq.NewScopedExtractor("")
		_, err := e.Extract("<html></html>")

		require.Error(t, err)
		assert.Equal(t, docweaver.EINVALID, docweaver.ErrorCode(err))
	})
}

package goquery_test

import (
	"testing"

	"github.com/docweaver/docweaver"
	gq "github.com/docweaver/docweaver/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinkSelector_ExtractLinks(t *testing.T) {
	t.Parallel()

	t.Run("assigns priority by page area", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
			<aside class="sidebar"><a href="/guide">Guide</a></aside>
			<nav><a href="/api">API</a></nav>
			<main><a href="/tutorial">Tutorial</a></main>
			<footer><a href="/license">License</a></footer>
		</body></html>`

		s := gq.NewLinkSelector()
		links, err := s.ExtractLinks(html, "https://x.test/docs")

		require.NoError(t, err)
		require.Len(t, links, 4)

		byURL := make(map[string]docweaver.DiscoveredLink)
		for _, link := range links {
			byURL[link.URL] = link
		}
		assert.Equal(t, docweaver.PriorityTOC, byURL["https://x.test/guide"].Priority)
		assert.Equal(t, docweaver.PriorityNavigation, byURL["https://x.test/api"].Priority)
		assert.Equal(t, docweaver.PriorityContent, byURL["https://x.test/tutorial"].Priority)
		assert.Equal(t, docweaver.PriorityFooter, byURL["https://x.test/license"].Priority)
	})

	t.Run("deduplicates keeping the highest priority", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
			<nav><a href="/guide">Guide</a></nav>
			<footer><a href="/guide">Guide</a></footer>
		</body></html>`

		s := gq.NewLinkSelector()
		links, err := s.ExtractLinks(html, "https://x.test/")

		require.NoError(t, err)
		require.Len(t, links, 1)
		assert.Equal(t, docweaver.PriorityNavigation, links[0].Priority)
	})

	t.Run("resolves relative URLs", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><main>
			<a href="getting-started">Getting Started</a>
			<a href="../reference/cli">CLI</a>
		</main></body></html>`

		s := gq.NewLinkSelector()
		links, err := s.ExtractLinks(html, "https://x.test/docs/guides/")

		require.NoError(t, err)
		require.Len(t, links, 2)
		assert.Equal(t, "https://x.test/docs/guides/getting-started", links[0].URL)
		assert.Equal(t, "https://x.test/docs/reference/cli", links[1].URL)
	})

	t.Run("filters external hosts and non-HTTP schemes", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><main>
			<a href="https://other.test/page">External</a>
			<a href="https://sub.x.test/page">Subdomain</a>
			<a href="mailto:docs@x.test">Mail</a>
			<a href="javascript:void(0)">JS</a>
			<a href="/keep">Keep</a>
		</main></body></html>`

		s := gq.NewLinkSelector()
		links, err := s.ExtractLinks(html, "https://x.test/")

		require.NoError(t, err)
		require.Len(t, links, 1)
		assert.Equal(t, "https://x.test/keep", links[0].URL)
		assert.Equal(t, "Keep", links[0].Text)
	})

	t.Run("invalid base URL", func(t *testing.T) {
		t.Parallel()

		s := gq.NewLinkSelector()
		_, err := s.ExtractLinks("<html></html>", "://bad")

		require.Error(t, err)
		assert.Equal(t, docweaver.EINVALID, docweaver.ErrorCode(err))
	})
}

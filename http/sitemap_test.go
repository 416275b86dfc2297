package http_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	dwhttp "github.com/docweaver/docweaver/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSitemapService_DiscoverURLs(t *testing.T) {
	t.Parallel()

	t.Run("reads sitemap from robots.txt directive", func(t *testing.T) {
		t.Parallel()

		mux := http.NewServeMux()
		var srv *httptest.Server
		mux.HandleFunc("/robots.txt", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprintf(w, "User-agent: *\nSitemap: %s/custom-sitemap.xml\n", srv.URL)
		})
		mux.HandleFunc("/custom-sitemap.xml", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprintf(w, `<?xml version="1.0" encoding="UTF-8"?>
<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
  <url><loc>%s/docs/intro</loc></url>
  <url><loc>%s/docs/setup</loc></url>
</urlset>`, srv.URL, srv.URL)
		})
		srv = httptest.NewServer(mux)
		defer srv.Close()

		s := dwhttp.NewSitemapService(nil)
		urls, err := s.DiscoverURLs(context.Background(), srv.URL)

		require.NoError(t, err)
		assert.Equal(t, []string{srv.URL + "/docs/intro", srv.URL + "/docs/setup"}, urls)
	})

	t.Run("falls back to /sitemap.xml", func(t *testing.T) {
		t.Parallel()

		mux := http.NewServeMux()
		var srv *httptest.Server
		mux.HandleFunc("/sitemap.xml", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprintf(w, `<urlset><url><loc>%s/page</loc></url></urlset>`, srv.URL)
		})
		srv = httptest.NewServer(mux)
		defer srv.Close()

		s := dwhttp.NewSitemapService(nil)
		urls, err := s.DiscoverURLs(context.Background(), srv.URL)

		require.NoError(t, err)
		assert.Equal(t, []string{srv.URL + "/page"}, urls)
	})

	t.Run("recurses into sitemap indexes", func(t *testing.T) {
		t.Parallel()

		mux := http.NewServeMux()
		var srv *httptest.Server
		mux.HandleFunc("/sitemap.xml", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprintf(w, `<sitemapindex>
  <sitemap><loc>%s/sitemap-a.xml</loc></sitemap>
  <sitemap><loc>%s/sitemap-b.xml</loc></sitemap>
</sitemapindex>`, srv.URL, srv.URL)
		})
		mux.HandleFunc("/sitemap-a.xml", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprintf(w, `<urlset><url><loc>%s/a1</loc></url><url><loc>%s/a2</loc></url></urlset>`, srv.URL, srv.URL)
		})
		mux.HandleFunc("/sitemap-b.xml", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprintf(w, `<urlset><url><loc>%s/b1</loc></url></urlset>`, srv.URL)
		})
		srv = httptest.NewServer(mux)
		defer srv.Close()

		s := dwhttp.NewSitemapService(nil)
		urls, err := s.DiscoverURLs(context.Background(), srv.URL)

		require.NoError(t, err)
		assert.Equal(t, []string{srv.URL + "/a1", srv.URL + "/a2", srv.URL + "/b1"}, urls)
	})

	t.Run("filters by the base URL path prefix", func(t *testing.T) {
		t.Parallel()

		mux := http.NewServeMux()
		var srv *httptest.Server
		mux.HandleFunc("/sitemap.xml", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprintf(w, `<urlset>
  <url><loc>%s/docs/intro</loc></url>
  <url><loc>%s/blog/news</loc></url>
  <url><loc>%s/docs</loc></url>
</urlset>`, srv.URL, srv.URL, srv.URL)
		})
		srv = httptest.NewServer(mux)
		defer srv.Close()

		s := dwhttp.NewSitemapService(nil)
		urls, err := s.DiscoverURLs(context.Background(), srv.URL+"/docs")

		require.NoError(t, err)
		assert.Equal(t, []string{srv.URL + "/docs/intro", srv.URL + "/docs"}, urls)
	})

	t.Run("no sitemap yields an empty list", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.NotFoundHandler())
		defer srv.Close()

		s := dwhttp.NewSitemapService(nil)
		urls, err := s.DiscoverURLs(context.Background(), srv.URL)

		require.NoError(t, err)
		assert.Empty(t, urls)
	})
}

package docweaver

import "context"

// SitemapService discovers URLs from website sitemaps.
type SitemapService interface {
	// DiscoverURLs finds all URLs from a site's sitemap. It first checks
	// robots.txt for sitemap directives, then falls back to /sitemap.xml.
	// Sitemap indexes are resolved recursively. URLs outside the base
	// URL's path prefix are excluded.
	DiscoverURLs(ctx context.Context, baseURL string) ([]string, error)
}

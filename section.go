package docweaver

import (
	"net/url"
	"strings"
	"unicode"
)

// Section is an assembly-time view of a fragment: its final ordinal, the
// derived title, the anchor both the table of contents and the body
// heading use, and the fragment it came from. Sections are derived
// deterministically, never invented.
type Section struct {
	Ordinal  int
	Title    string
	Anchor   string
	Fragment *Fragment
}

// Slugify creates a URL-safe slug from a string: lowercase, letters and
// digits kept, runs of everything else collapsed to single hyphens.
// The same function is used for fragment file names and for combined
// document anchors so that navigation round-trips.
func Slugify(s string) string {
	var sb strings.Builder
	prevHyphen := false

	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			sb.WriteRune(r)
			prevHyphen = false
		} else if !prevHyphen && sb.Len() > 0 {
			sb.WriteRune('-')
			prevHyphen = true
		}
	}

	return strings.TrimSuffix(sb.String(), "-")
}

// SlugFromURL derives a file-name slug from a URL, based on its host and
// path. A bare host or root path yields the host's slug.
func SlugFromURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return Slugify(rawURL)
	}

	path := strings.Trim(u.Path, "/")
	if path == "" {
		if slug := Slugify(u.Host); slug != "" {
			return slug
		}
		return "index"
	}

	if slug := Slugify(path); slug != "" {
		return slug
	}
	return "index"
}

// DeriveTitle derives a section title from a fragment. If the body's first
// non-empty line is a markdown heading, the marker is stripped and the
// remainder used; otherwise the title comes from the file name with
// separators replaced by spaces and title casing applied.
func DeriveTitle(body, filename string) string {
	for _, line := range strings.Split(body, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if strings.HasPrefix(trimmed, "#") {
			return strings.TrimSpace(strings.TrimLeft(trimmed, "#"))
		}
		break
	}
	return TitleFromFilename(filename)
}

// TitleFromFilename turns a fragment file name into a display title:
// extension dropped, separators replaced with spaces, words title-cased.
func TitleFromFilename(filename string) string {
	name := filename
	if idx := strings.LastIndex(name, "."); idx > 0 {
		name = name[:idx]
	}

	name = strings.NewReplacer("-", " ", "_", " ").Replace(name)

	words := strings.Fields(name)
	for i, w := range words {
		r := []rune(w)
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}

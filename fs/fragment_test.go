package fs_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/docweaver/docweaver"
	"github.com/docweaver/docweaver/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFragmentStore_SaveFragment(t *testing.T) {
	t.Parallel()

	t.Run("round-trips metadata and body", func(t *testing.T) {
		t.Parallel()

		root := t.TempDir()
		s := fs.NewFragmentStore(root)
		ctx := context.Background()

		frag := &docweaver.Fragment{
			Name:       "001-getting-started.md",
			SourceURL:  "https://x.test/docs/getting-started",
			Title:      "Getting Started: Install",
			Body:       "# Getting Started\n\nRun the installer.\n",
			Position:   1,
			Hash:       "abcd1234",
			CapturedAt: time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC),
		}
		require.NoError(t, s.SaveFragment(ctx, "acme", "api", frag))

		frags, err := s.ListFragments(ctx, "acme", "api")
		require.NoError(t, err)
		require.Len(t, frags, 1)

		got := frags[0]
		assert.Equal(t, "001-getting-started.md", got.Name)
		assert.Equal(t, "https://x.test/docs/getting-started", got.SourceURL)
		assert.Equal(t, "Getting Started: Install", got.Title)
		assert.Equal(t, "# Getting Started\n\nRun the installer.\n", got.Body)
		assert.Equal(t, 1, got.Position)
		assert.Equal(t, "abcd1234", got.Hash)
		assert.True(t, got.CapturedAt.Equal(frag.CapturedAt))
	})

	t.Run("stamps the next free position", func(t *testing.T) {
		t.Parallel()

		root := t.TempDir()
		s := fs.NewFragmentStore(root)
		ctx := context.Background()

		require.NoError(t, s.SaveFragment(ctx, "acme", "api", &docweaver.Fragment{
			Name: "001-a.md", SourceURL: "https://x.test/a", Position: 1,
		}))
		require.NoError(t, s.SaveFragment(ctx, "acme", "api", &docweaver.Fragment{
			Name: "002-b.md", SourceURL: "https://x.test/b", Position: 2,
		}))

		unstamped := &docweaver.Fragment{Name: "c.md", SourceURL: "https://x.test/c"}
		require.NoError(t, s.SaveFragment(ctx, "acme", "api", unstamped))

		assert.Equal(t, 3, unstamped.Position)
	})

	t.Run("refuses failed fragments", func(t *testing.T) {
		t.Parallel()

		s := fs.NewFragmentStore(t.TempDir())

		err := s.SaveFragment(context.Background(), "acme", "api", &docweaver.Fragment{
			Name:   "a.md",
			Failed: true,
		})

		require.Error(t, err)
		assert.Equal(t, docweaver.EINVALID, docweaver.ErrorCode(err))
	})
}

func TestFragmentStore_ListFragments(t *testing.T) {
	t.Parallel()

	t.Run("orders by position", func(t *testing.T) {
		t.Parallel()

		root := t.TempDir()
		s := fs.NewFragmentStore(root)
		ctx := context.Background()

		// Save out of order: positions decide, not write order or names.
		require.NoError(t, s.SaveFragment(ctx, "acme", "api", &docweaver.Fragment{
			Name: "zzz.md", SourceURL: "https://x.test/b", Position: 2,
		}))
		require.NoError(t, s.SaveFragment(ctx, "acme", "api", &docweaver.Fragment{
			Name: "aaa.md", SourceURL: "https://x.test/c", Position: 3,
		}))
		require.NoError(t, s.SaveFragment(ctx, "acme", "api", &docweaver.Fragment{
			Name: "mmm.md", SourceURL: "https://x.test/a", Position: 1,
		}))

		frags, err := s.ListFragments(ctx, "acme", "api")

		require.NoError(t, err)
		require.Len(t, frags, 3)
		assert.Equal(t, "mmm.md", frags[0].Name)
		assert.Equal(t, "zzz.md", frags[1].Name)
		assert.Equal(t, "aaa.md", frags[2].Name)
	})

	t.Run("skips assembly artifacts and non-markdown files", func(t *testing.T) {
		t.Parallel()

		root := t.TempDir()
		s := fs.NewFragmentStore(root)
		ctx := context.Background()

		require.NoError(t, s.SaveFragment(ctx, "acme", "api", &docweaver.Fragment{
			Name: "001-a.md", SourceURL: "https://x.test/a", Position: 1,
		}))
		dir := filepath.Join(root, "acme", "api")
		require.NoError(t, os.WriteFile(filepath.Join(dir, "_combined.md"), []byte("combined"), 0644))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "_improved.md"), []byte("improved"), 0644))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "category.yaml"), []byte("overrides: {}"), 0644))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "activity.log"), []byte(""), 0644))

		frags, err := s.ListFragments(ctx, "acme", "api")

		require.NoError(t, err)
		require.Len(t, frags, 1)
		assert.Equal(t, "001-a.md", frags[0].Name)
	})

	t.Run("fragments without positions fall back to mtime then name", func(t *testing.T) {
		t.Parallel()

		root := t.TempDir()
		s := fs.NewFragmentStore(root)
		ctx := context.Background()
		dir := filepath.Join(root, "acme", "api")
		require.NoError(t, os.MkdirAll(dir, 0755))

		// Legacy files written without frontmatter positions.
		older := time.Now().Add(-time.Hour)
		newer := time.Now().Add(-time.Minute)
		require.NoError(t, os.WriteFile(filepath.Join(dir, "zeta.md"), []byte("# Zeta"), 0644))
		require.NoError(t, os.Chtimes(filepath.Join(dir, "zeta.md"), older, older))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "alpha.md"), []byte("# Alpha"), 0644))
		require.NoError(t, os.Chtimes(filepath.Join(dir, "alpha.md"), newer, newer))

		frags, err := s.ListFragments(ctx, "acme", "api")

		require.NoError(t, err)
		require.Len(t, frags, 2)
		assert.Equal(t, "zeta.md", frags[0].Name)
		assert.Equal(t, "alpha.md", frags[1].Name)
	})

	t.Run("missing category is empty, not an error", func(t *testing.T) {
		t.Parallel()

		s := fs.NewFragmentStore(t.TempDir())

		frags, err := s.ListFragments(context.Background(), "acme", "nope")

		require.NoError(t, err)
		assert.Empty(t, frags)
	})
}

func TestParseFragment(t *testing.T) {
	t.Parallel()

	t.Run("bare markdown without frontmatter", func(t *testing.T) {
		t.Parallel()

		frag, err := fs.ParseFragment("notes.md", "# Notes\n\nPlain file.\n")

		require.NoError(t, err)
		assert.Equal(t, "# Notes\n\nPlain file.\n", frag.Body)
		assert.Zero(t, frag.Position)
		assert.Empty(t, frag.SourceURL)
	})
}

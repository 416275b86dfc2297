package fs_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/docweaver/docweaver"
	"github.com/docweaver/docweaver/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionService(t *testing.T) {
	t.Parallel()

	t.Run("round-trips the session", func(t *testing.T) {
		t.Parallel()

		root := t.TempDir()
		s := fs.NewSessionService(root)
		ctx := context.Background()

		require.NoError(t, s.Save(ctx, &docweaver.Session{
			Project:  "acme",
			Category: "api",
			URL:      "https://x.test/docs",
		}))

		session, err := s.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, "acme", session.Project)
		assert.Equal(t, "api", session.Category)
		assert.Equal(t, "https://x.test/docs", session.URL)
		assert.False(t, session.UpdatedAt.IsZero())
	})

	t.Run("missing state file degrades to empty session", func(t *testing.T) {
		t.Parallel()

		s := fs.NewSessionService(t.TempDir())

		session, err := s.Load(context.Background())

		require.NoError(t, err)
		assert.True(t, session.Empty())
	})

	t.Run("malformed state file degrades to empty session", func(t *testing.T) {
		t.Parallel()

		root := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(root, "session.yaml"), []byte("{{{not yaml"), 0644))
		s := fs.NewSessionService(root)

		session, err := s.Load(context.Background())

		require.NoError(t, err)
		assert.True(t, session.Empty())
	})

	t.Run("save replaces the previous record", func(t *testing.T) {
		t.Parallel()

		root := t.TempDir()
		s := fs.NewSessionService(root)
		ctx := context.Background()

		require.NoError(t, s.Save(ctx, &docweaver.Session{Project: "acme", Category: "api"}))
		require.NoError(t, s.Save(ctx, &docweaver.Session{Project: "widgets"}))

		session, err := s.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, "widgets", session.Project)
		assert.Empty(t, session.Category)
	})
}

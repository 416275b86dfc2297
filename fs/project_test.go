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

func TestProjectService_InitProject(t *testing.T) {
	t.Parallel()

	t.Run("creates project directory and metadata", func(t *testing.T) {
		t.Parallel()

		root := t.TempDir()
		s := fs.NewProjectService(root)

		err := s.InitProject(context.Background(), &docweaver.Project{
			Name:        "acme",
			Description: "Acme platform docs",
		})

		require.NoError(t, err)
		_, err = os.Stat(filepath.Join(root, "acme", "project.yaml"))
		require.NoError(t, err)

		found, err := s.FindProject(context.Background(), "acme")
		require.NoError(t, err)
		assert.Equal(t, "acme", found.Name)
		assert.Equal(t, "Acme platform docs", found.Description)
		assert.False(t, found.CreatedAt.IsZero())
	})

	t.Run("re-initializing is a conflict", func(t *testing.T) {
		t.Parallel()

		root := t.TempDir()
		s := fs.NewProjectService(root)

		require.NoError(t, s.InitProject(context.Background(), &docweaver.Project{Name: "acme"}))
		err := s.InitProject(context.Background(), &docweaver.Project{Name: "acme"})

		require.Error(t, err)
		assert.Equal(t, docweaver.ECONFLICT, docweaver.ErrorCode(err))
	})

	t.Run("rejects empty name", func(t *testing.T) {
		t.Parallel()

		s := fs.NewProjectService(t.TempDir())

		err := s.InitProject(context.Background(), &docweaver.Project{})

		require.Error(t, err)
		assert.Equal(t, docweaver.EINVALID, docweaver.ErrorCode(err))
	})
}

func TestProjectService_FindProject(t *testing.T) {
	t.Parallel()

	t.Run("unknown project", func(t *testing.T) {
		t.Parallel()

		s := fs.NewProjectService(t.TempDir())

		_, err := s.FindProject(context.Background(), "ghost")

		require.Error(t, err)
		assert.Equal(t, docweaver.ENOTFOUND, docweaver.ErrorCode(err))
	})
}

func TestProjectService_ListProjects(t *testing.T) {
	t.Parallel()

	t.Run("orders by name and skips stray directories", func(t *testing.T) {
		t.Parallel()

		root := t.TempDir()
		s := fs.NewProjectService(root)

		require.NoError(t, s.InitProject(context.Background(), &docweaver.Project{Name: "zulu"}))
		require.NoError(t, s.InitProject(context.Background(), &docweaver.Project{Name: "alpha"}))
		require.NoError(t, os.MkdirAll(filepath.Join(root, "not-a-project"), 0755))

		projects, err := s.ListProjects(context.Background())

		require.NoError(t, err)
		require.Len(t, projects, 2)
		assert.Equal(t, "alpha", projects[0].Name)
		assert.Equal(t, "zulu", projects[1].Name)
	})

	t.Run("missing root is empty, not an error", func(t *testing.T) {
		t.Parallel()

		s := fs.NewProjectService(filepath.Join(t.TempDir(), "nonexistent"))

		projects, err := s.ListProjects(context.Background())

		require.NoError(t, err)
		assert.Empty(t, projects)
	})
}

func TestCategoryService_EnsureCategory(t *testing.T) {
	t.Parallel()

	t.Run("creates the directory lazily", func(t *testing.T) {
		t.Parallel()

		root := t.TempDir()
		require.NoError(t, fs.NewProjectService(root).InitProject(context.Background(), &docweaver.Project{Name: "acme"}))
		s := fs.NewCategoryService(root)

		category, err := s.EnsureCategory(context.Background(), "acme", "api")

		require.NoError(t, err)
		assert.Equal(t, "api", category.Name)
		info, err := os.Stat(filepath.Join(root, "acme", "api"))
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	})

	t.Run("requires an existing project", func(t *testing.T) {
		t.Parallel()

		s := fs.NewCategoryService(t.TempDir())

		_, err := s.EnsureCategory(context.Background(), "ghost", "api")

		require.Error(t, err)
		assert.Equal(t, docweaver.ENOTFOUND, docweaver.ErrorCode(err))
	})
}

func TestCategoryService_SetOverrides(t *testing.T) {
	t.Parallel()

	t.Run("merges into existing overrides", func(t *testing.T) {
		t.Parallel()

		root := t.TempDir()
		require.NoError(t, fs.NewProjectService(root).InitProject(context.Background(), &docweaver.Project{Name: "acme"}))
		s := fs.NewCategoryService(root)

		require.NoError(t, s.SetOverrides(context.Background(), "acme", "api", docweaver.Settings{
			"max_pages": 10,
			"verbose":   true,
		}))
		require.NoError(t, s.SetOverrides(context.Background(), "acme", "api", docweaver.Settings{
			"max_pages": 25,
		}))

		category, err := s.FindCategory(context.Background(), "acme", "api")
		require.NoError(t, err)
		assert.Equal(t, 25, category.Overrides.Int("max_pages", 0))
		assert.True(t, category.Overrides.Bool("verbose", false))
	})
}

func TestCategoryService_FindCategory(t *testing.T) {
	t.Parallel()

	t.Run("unconfigured category has empty overrides", func(t *testing.T) {
		t.Parallel()

		s := fs.NewCategoryService(t.TempDir())

		category, err := s.FindCategory(context.Background(), "acme", "api")

		require.NoError(t, err)
		assert.Empty(t, category.Overrides)
	})
}

func TestCategoryService_ListCategories(t *testing.T) {
	t.Parallel()

	t.Run("counts fragments and detects assembly artifacts", func(t *testing.T) {
		t.Parallel()

		root := t.TempDir()
		ctx := context.Background()
		require.NoError(t, fs.NewProjectService(root).InitProject(ctx, &docweaver.Project{Name: "acme"}))
		s := fs.NewCategoryService(root)
		_, err := s.EnsureCategory(ctx, "acme", "api")
		require.NoError(t, err)
		_, err = s.EnsureCategory(ctx, "acme", "guides")
		require.NoError(t, err)

		apiDir := filepath.Join(root, "acme", "api")
		require.NoError(t, os.WriteFile(filepath.Join(apiDir, "001-intro.md"), []byte("# Intro"), 0644))
		require.NoError(t, os.WriteFile(filepath.Join(apiDir, "002-usage.md"), []byte("# Usage"), 0644))
		require.NoError(t, os.WriteFile(filepath.Join(apiDir, "_combined.md"), []byte("combined"), 0644))
		require.NoError(t, os.WriteFile(filepath.Join(apiDir, "activity.log"), []byte(""), 0644))

		summaries, err := s.ListCategories(ctx, "acme")

		require.NoError(t, err)
		require.Len(t, summaries, 2)
		assert.Equal(t, "api", summaries[0].Name)
		assert.Equal(t, 2, summaries[0].Fragments)
		assert.True(t, summaries[0].HasCombined)
		assert.False(t, summaries[0].HasImproved)
		assert.Equal(t, "guides", summaries[1].Name)
		assert.Equal(t, 0, summaries[1].Fragments)
	})

	t.Run("unknown project", func(t *testing.T) {
		t.Parallel()

		s := fs.NewCategoryService(t.TempDir())

		_, err := s.ListCategories(context.Background(), "ghost")

		require.Error(t, err)
		assert.Equal(t, docweaver.ENOTFOUND, docweaver.ErrorCode(err))
	})
}

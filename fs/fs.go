// Package fs provides filesystem-backed storage for projects, categories,
// fragments, and assembled documents. The directory tree itself is the data
// model: a project is a directory with a project.yaml, a category is a
// subdirectory, and fragments are markdown files with YAML frontmatter.
package fs

import (
	"os"
	"path/filepath"
)

// Well-known file names inside the tree.
const (
	projectFile  = "project.yaml"
	categoryFile = "category.yaml"
	sessionFile  = "session.yaml"
	activityFile = "activity.log"
	combinedFile = "_combined.md"
	improvedFile = "_improved.md"
)

func projectDir(root, project string) string {
	return filepath.Join(root, project)
}

func categoryDir(root, project, category string) string {
	return filepath.Join(root, project, category)
}

// writeFileAtomic writes data to path via a temporary sibling and rename, so
// readers never observe a partially written file.
func writeFileAtomic(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

package fs

import (
	"context"
	"path/filepath"

	"github.com/docweaver/docweaver"
)

// Ensure DocumentStore implements docweaver.DocumentStore at compile time.
var _ docweaver.DocumentStore = (*DocumentStore)(nil)

// DocumentStore writes assembled documents into category directories. The
// underscore prefix keeps the artifacts out of fragment listings, so
// re-assembly never folds a previous output into itself.
type DocumentStore struct {
	root string
}

// NewDocumentStore creates a DocumentStore rooted at root.
func NewDocumentStore(root string) *DocumentStore {
	return &DocumentStore{root: root}
}

func (s *DocumentStore) WriteCombined(ctx context.Context, project, category, content string) error {
	return writeFileAtomic(filepath.Join(categoryDir(s.root, project, category), combinedFile), []byte(content))
}

func (s *DocumentStore) WriteImproved(ctx context.Context, project, category, content string) error {
	return writeFileAtomic(filepath.Join(categoryDir(s.root, project, category), improvedFile), []byte(content))
}

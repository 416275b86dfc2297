package mock

import (
	"context"

	"github.com/docweaver/docweaver"
)

var _ docweaver.FragmentStore = (*FragmentStore)(nil)

// FragmentStore is a mock implementation of docweaver.FragmentStore.
type FragmentStore struct {
	SaveFragmentFn  func(ctx context.Context, project, category string, frag *docweaver.Fragment) error
	ListFragmentsFn func(ctx context.Context, project, category string) ([]*docweaver.Fragment, error)
}

func (s *FragmentStore) SaveFragment(ctx context.Context, project, category string, frag *docweaver.Fragment) error {
	return s.SaveFragmentFn(ctx, project, category, frag)
}

func (s *FragmentStore) ListFragments(ctx context.Context, project, category string) ([]*docweaver.Fragment, error) {
	return s.ListFragmentsFn(ctx, project, category)
}

var _ docweaver.DocumentStore = (*DocumentStore)(nil)

// DocumentStore is a mock implementation of docweaver.DocumentStore.
type DocumentStore struct {
	WriteCombinedFn func(ctx context.Context, project, category, content string) error
	WriteImprovedFn func(ctx context.Context, project, category, content string) error
}

func (s *DocumentStore) WriteCombined(ctx context.Context, project, category, content string) error {
	return s.WriteCombinedFn(ctx, project, category, content)
}

func (s *DocumentStore) WriteImproved(ctx context.Context, project, category, content string) error {
	return s.WriteImprovedFn(ctx, project, category, content)
}

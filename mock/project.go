package mock

import (
	"context"

	"github.com/docweaver/docweaver"
)

var _ docweaver.ProjectService = (*ProjectService)(nil)

// ProjectService is a mock implementation of docweaver.ProjectService.
type ProjectService struct {
	InitProjectFn  func(ctx context.Context, project *docweaver.Project) error
	FindProjectFn  func(ctx context.Context, name string) (*docweaver.Project, error)
	ListProjectsFn func(ctx context.Context) ([]*docweaver.Project, error)
}

func (s *ProjectService) InitProject(ctx context.Context, project *docweaver.Project) error {
	return s.InitProjectFn(ctx, project)
}

func (s *ProjectService) FindProject(ctx context.Context, name string) (*docweaver.Project, error) {
	return s.FindProjectFn(ctx, name)
}

func (s *ProjectService) ListProjects(ctx context.Context) ([]*docweaver.Project, error) {
	return s.ListProjectsFn(ctx)
}

var _ docweaver.CategoryService = (*CategoryService)(nil)

// CategoryService is a mock implementation of docweaver.CategoryService.
type CategoryService struct {
	EnsureCategoryFn func(ctx context.Context, project, name string) (*docweaver.Category, error)
	FindCategoryFn   func(ctx context.Context, project, name string) (*docweaver.Category, error)
	SetOverridesFn   func(ctx context.Context, project, name string, updates docweaver.Settings) error
	ListCategoriesFn func(ctx context.Context, project string) ([]*docweaver.CategorySummary, error)
}

func (s *CategoryService) EnsureCategory(ctx context.Context, project, name string) (*docweaver.Category, error) {
	return s.EnsureCategoryFn(ctx, project, name)
}

func (s *CategoryService) FindCategory(ctx context.Context, project, name string) (*docweaver.Category, error) {
	return s.FindCategoryFn(ctx, project, name)
}

func (s *CategoryService) SetOverrides(ctx context.Context, project, name string, updates docweaver.Settings) error {
	return s.SetOverridesFn(ctx, project, name, updates)
}

func (s *CategoryService) ListCategories(ctx context.Context, project string) ([]*docweaver.CategorySummary, error) {
	return s.ListCategoriesFn(ctx, project)
}

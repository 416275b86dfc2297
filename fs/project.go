package fs

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/docweaver/docweaver"
	"gopkg.in/yaml.v3"
)

// Ensure ProjectService implements docweaver.ProjectService at compile time.
var _ docweaver.ProjectService = (*ProjectService)(nil)

// ProjectService manages project directories under a collection root.
type ProjectService struct {
	root string
}

// NewProjectService creates a ProjectService rooted at root.
func NewProjectService(root string) *ProjectService {
	return &ProjectService{root: root}
}

func (s *ProjectService) InitProject(ctx context.Context, project *docweaver.Project) error {
	if err := project.Validate(); err != nil {
		return err
	}

	dir := projectDir(s.root, project.Name)
	metaPath := filepath.Join(dir, projectFile)

	if _, err := os.Stat(metaPath); err == nil {
		return docweaver.Errorf(docweaver.ECONFLICT, "project %q already exists", project.Name)
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	if project.CreatedAt.IsZero() {
		project.CreatedAt = time.Now().UTC()
	}

	data, err := yaml.Marshal(project)
	if err != nil {
		return err
	}
	return writeFileAtomic(metaPath, data)
}

func (s *ProjectService) FindProject(ctx context.Context, name string) (*docweaver.Project, error) {
	data, err := os.ReadFile(filepath.Join(projectDir(s.root, name), projectFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, docweaver.Errorf(docweaver.ENOTFOUND, "project %q not found", name)
		}
		return nil, err
	}

	var project docweaver.Project
	if err := yaml.Unmarshal(data, &project); err != nil {
		return nil, docweaver.Errorf(docweaver.EINTERNAL, "project %q has a corrupt metadata file: %v", name, err)
	}
	project.Name = name
	return &project, nil
}

func (s *ProjectService) ListProjects(ctx context.Context) ([]*docweaver.Project, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var projects []*docweaver.Project
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		project, err := s.FindProject(ctx, entry.Name())
		if err != nil {
			// Directories without metadata are not projects.
			if docweaver.ErrorCode(err) == docweaver.ENOTFOUND {
				continue
			}
			return nil, err
		}
		projects = append(projects, project)
	}

	sort.Slice(projects, func(i, j int) bool { return projects[i].Name < projects[j].Name })
	return projects, nil
}

// Ensure CategoryService implements docweaver.CategoryService at compile time.
var _ docweaver.CategoryService = (*CategoryService)(nil)

// CategoryService manages category subdirectories within projects.
type CategoryService struct {
	root string
}

// NewCategoryService creates a CategoryService rooted at root.
func NewCategoryService(root string) *CategoryService {
	return &CategoryService{root: root}
}

func (s *CategoryService) EnsureCategory(ctx context.Context, project, name string) (*docweaver.Category, error) {
	if name == "" {
		return nil, docweaver.Errorf(docweaver.EINVALID, "category name required")
	}

	if _, err := os.Stat(filepath.Join(projectDir(s.root, project), projectFile)); err != nil {
		if os.IsNotExist(err) {
			return nil, docweaver.Errorf(docweaver.ENOTFOUND, "project %q not found", project)
		}
		return nil, err
	}

	if err := os.MkdirAll(categoryDir(s.root, project, name), 0755); err != nil {
		return nil, err
	}
	return s.FindCategory(ctx, project, name)
}

func (s *CategoryService) FindCategory(ctx context.Context, project, name string) (*docweaver.Category, error) {
	category := &docweaver.Category{Project: project, Name: name}

	data, err := os.ReadFile(filepath.Join(categoryDir(s.root, project, name), categoryFile))
	if err != nil {
		// A category without stored configuration has empty overrides.
		if os.IsNotExist(err) {
			return category, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, category); err != nil {
		return nil, docweaver.Errorf(docweaver.EINTERNAL, "category %s/%s has a corrupt config file: %v", project, name, err)
	}
	return category, nil
}

func (s *CategoryService) SetOverrides(ctx context.Context, project, name string, updates docweaver.Settings) error {
	category, err := s.EnsureCategory(ctx, project, name)
	if err != nil {
		return err
	}

	if category.Overrides == nil {
		category.Overrides = docweaver.Settings{}
	}
	for key, value := range updates {
		category.Overrides[key] = value
	}

	data, err := yaml.Marshal(category)
	if err != nil {
		return err
	}
	return writeFileAtomic(filepath.Join(categoryDir(s.root, project, name), categoryFile), data)
}

func (s *CategoryService) ListCategories(ctx context.Context, project string) ([]*docweaver.CategorySummary, error) {
	dir := projectDir(s.root, project)
	if _, err := os.Stat(filepath.Join(dir, projectFile)); err != nil {
		if os.IsNotExist(err) {
			return nil, docweaver.Errorf(docweaver.ENOTFOUND, "project %q not found", project)
		}
		return nil, err
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var summaries []*docweaver.CategorySummary
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		summary, err := s.summarize(dir, entry.Name())
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, summary)
	}

	sort.Slice(summaries, func(i, j int) bool { return summaries[i].Name < summaries[j].Name })
	return summaries, nil
}

func (s *CategoryService) summarize(projectDir, name string) (*docweaver.CategorySummary, error) {
	dir := filepath.Join(projectDir, name)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	summary := &docweaver.CategorySummary{Name: name}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch entry.Name() {
		case combinedFile:
			summary.HasCombined = true
			continue
		case improvedFile:
			summary.HasImproved = true
			continue
		}
		if strings.HasPrefix(entry.Name(), "_") || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}
		summary.Fragments++
	}
	return summary, nil
}

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

// Ensure FragmentStore implements docweaver.FragmentStore at compile time.
var _ docweaver.FragmentStore = (*FragmentStore)(nil)

// FragmentStore persists fragments as markdown files with YAML frontmatter
// inside category directories. Files are written once per capture; assembly
// artifacts and other non-fragment files carry a leading underscore and are
// never treated as fragments.
type FragmentStore struct {
	root string
}

// NewFragmentStore creates a FragmentStore rooted at root.
func NewFragmentStore(root string) *FragmentStore {
	return &FragmentStore{root: root}
}

// fragmentMeta is the frontmatter block at the top of every fragment file.
type fragmentMeta struct {
	Source   string    `yaml:"source"`
	Title    string    `yaml:"title,omitempty"`
	Position int       `yaml:"position,omitempty"`
	Hash     string    `yaml:"hash,omitempty"`
	Captured time.Time `yaml:"captured"`
}

func (s *FragmentStore) SaveFragment(ctx context.Context, project, category string, frag *docweaver.Fragment) error {
	if frag.Failed {
		return docweaver.Errorf(docweaver.EINVALID, "failed captures are not persisted")
	}
	if frag.Name == "" {
		return docweaver.Errorf(docweaver.EINVALID, "fragment name required")
	}

	dir := categoryDir(s.root, project, category)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	if frag.Position == 0 {
		next, err := s.nextPosition(ctx, project, category)
		if err != nil {
			return err
		}
		frag.Position = next
	}
	if frag.CapturedAt.IsZero() {
		frag.CapturedAt = time.Now().UTC()
	}

	content, err := FormatFragment(frag)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, frag.Name), []byte(content), 0644)
}

func (s *FragmentStore) ListFragments(ctx context.Context, project, category string) ([]*docweaver.Fragment, error) {
	dir := categoryDir(s.root, project, category)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var frags []*docweaver.Fragment
	for _, entry := range entries {
		if entry.IsDir() || !isFragmentFile(entry.Name()) {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, err
		}
		frag, err := ParseFragment(entry.Name(), string(data))
		if err != nil {
			return nil, err
		}

		if info, err := entry.Info(); err == nil {
			frag.ModTime = info.ModTime()
		}
		frags = append(frags, frag)
	}

	sortFragments(frags)
	return frags, nil
}

// nextPosition returns one past the highest stamped position in the category.
func (s *FragmentStore) nextPosition(ctx context.Context, project, category string) (int, error) {
	frags, err := s.ListFragments(ctx, project, category)
	if err != nil {
		return 0, err
	}
	max := 0
	for _, frag := range frags {
		if frag.Position > max {
			max = frag.Position
		}
	}
	return max + 1, nil
}

// isFragmentFile reports whether a directory entry holds a fragment.
// Assembly artifacts (underscore prefix), hidden files, and non-markdown
// files such as category.yaml and activity.log are not fragments.
func isFragmentFile(name string) bool {
	if strings.HasPrefix(name, "_") || strings.HasPrefix(name, ".") {
		return false
	}
	return strings.HasSuffix(name, ".md")
}

// sortFragments orders fragments for assembly: stamped position first, then
// file modification time for legacy fragments without one, then name.
func sortFragments(frags []*docweaver.Fragment) {
	sort.SliceStable(frags, func(i, j int) bool {
		pi, pj := frags[i].Position, frags[j].Position
		if pi > 0 && pj > 0 && pi != pj {
			return pi < pj
		}
		if (pi > 0) != (pj > 0) {
			return pi > 0
		}
		if !frags[i].ModTime.Equal(frags[j].ModTime) {
			return frags[i].ModTime.Before(frags[j].ModTime)
		}
		return frags[i].Name < frags[j].Name
	})
}

// FormatFragment renders a fragment as YAML frontmatter plus the markdown
// body, the on-disk representation.
func FormatFragment(frag *docweaver.Fragment) (string, error) {
	meta, err := yaml.Marshal(fragmentMeta{
		Source:   frag.SourceURL,
		Title:    frag.Title,
		Position: frag.Position,
		Hash:     frag.Hash,
		Captured: frag.CapturedAt,
	})
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("---\n")
	b.Write(meta)
	b.WriteString("---\n\n")
	b.WriteString(frag.Body)
	return b.String(), nil
}

// ParseFragment reads a fragment back from its on-disk representation.
// Files without a frontmatter block are treated as bare markdown bodies.
func ParseFragment(name, content string) (*docweaver.Fragment, error) {
	frag := &docweaver.Fragment{Name: name, Body: content}

	rest, ok := strings.CutPrefix(content, "---\n")
	if !ok {
		return frag, nil
	}
	metaText, body, ok := strings.Cut(rest, "\n---\n")
	if !ok {
		return frag, nil
	}

	var meta fragmentMeta
	if err := yaml.Unmarshal([]byte(metaText), &meta); err != nil {
		return nil, docweaver.Errorf(docweaver.EINTERNAL, "fragment %s has corrupt frontmatter: %v", name, err)
	}

	frag.SourceURL = meta.Source
	frag.Title = meta.Title
	frag.Position = meta.Position
	frag.Hash = meta.Hash
	frag.CapturedAt = meta.Captured
	frag.Body = strings.TrimPrefix(body, "\n")
	return frag, nil
}

package fs

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/docweaver/docweaver"
	"gopkg.in/yaml.v3"
)

// Ensure SessionService implements docweaver.SessionService at compile time.
var _ docweaver.SessionService = (*SessionService)(nil)

// SessionService persists the last-used project, category, and URL in a
// single YAML file at the collection root.
type SessionService struct {
	root string
}

// NewSessionService creates a SessionService rooted at root.
func NewSessionService(root string) *SessionService {
	return &SessionService{root: root}
}

// Load reads the remembered session. A missing or unreadable state file is
// not an error; the session simply starts empty.
func (s *SessionService) Load(ctx context.Context) (*docweaver.Session, error) {
	data, err := os.ReadFile(filepath.Join(s.root, sessionFile))
	if err != nil {
		return &docweaver.Session{}, nil
	}

	var session docweaver.Session
	if err := yaml.Unmarshal(data, &session); err != nil {
		return &docweaver.Session{}, nil
	}
	return &session, nil
}

func (s *SessionService) Save(ctx context.Context, session *docweaver.Session) error {
	if session.UpdatedAt.IsZero() {
		session.UpdatedAt = time.Now().UTC()
	}
	data, err := yaml.Marshal(session)
	if err != nil {
		return err
	}
	return writeFileAtomic(filepath.Join(s.root, sessionFile), data)
}

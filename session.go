package docweaver

import (
	"context"
	"time"
)

// Session is the process-wide memory of the last-used project, category,
// and URL. A single record exists at the project-collection root; it is
// overwritten on every successful interactive session, never merged.
type Session struct {
	Project   string    `yaml:"project,omitempty"`
	Category  string    `yaml:"category,omitempty"`
	URL       string    `yaml:"url,omitempty"`
	UpdatedAt time.Time `yaml:"updated_at"`
}

// Empty reports whether the session carries no remembered values.
func (s *Session) Empty() bool {
	return s.Project == "" && s.Category == "" && s.URL == ""
}

// SessionService loads and persists the single session record.
type SessionService interface {
	// Load reads the last-used record. A missing or malformed state file
	// degrades to an empty session, never an error.
	Load(ctx context.Context) (*Session, error)

	// Save atomically replaces the persisted record.
	Save(ctx context.Context, session *Session) error
}

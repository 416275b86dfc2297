package mock

import (
	"context"

	"github.com/docweaver/docweaver"
)

var _ docweaver.SessionService = (*SessionService)(nil)

// SessionService is a mock implementation of docweaver.SessionService.
type SessionService struct {
	LoadFn func(ctx context.Context) (*docweaver.Session, error)
	SaveFn func(ctx context.Context, session *docweaver.Session) error
}

func (s *SessionService) Load(ctx context.Context) (*docweaver.Session, error) {
	return s.LoadFn(ctx)
}

func (s *SessionService) Save(ctx context.Context, session *docweaver.Session) error {
	return s.SaveFn(ctx, session)
}

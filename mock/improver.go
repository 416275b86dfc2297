package mock

import (
	"context"

	"github.com/docweaver/docweaver"
)

var _ docweaver.Improver = (*Improver)(nil)

// Improver is a mock implementation of docweaver.Improver.
type Improver struct {
	ImproveTextFn func(ctx context.Context, text string) (string, error)
}

func (i *Improver) ImproveText(ctx context.Context, text string) (string, error) {
	return i.ImproveTextFn(ctx, text)
}

var _ docweaver.TokenCounter = (*TokenCounter)(nil)

// TokenCounter is a mock implementation of docweaver.TokenCounter.
type TokenCounter struct {
	CountTokensFn func(ctx context.Context, text string) (int, error)
}

func (tc *TokenCounter) CountTokens(ctx context.Context, text string) (int, error) {
	return tc.CountTokensFn(ctx, text)
}

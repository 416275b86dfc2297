package docweaver

import "context"

// Improver rewrites assembled documentation for structure and readability.
// It is the narrow seam to the external text-improvement service.
// Implementations must instruct the service to preserve all technical
// content, numbers, and code, and to improve structure and formatting only.
type Improver interface {
	// ImproveText returns the improved variant of text.
	// Returns EUNAVAILABLE when the service cannot be reached.
	ImproveText(ctx context.Context, text string) (string, error)
}

// TokenCounter counts tokens in text for a specific model.
type TokenCounter interface {
	CountTokens(ctx context.Context, text string) (int, error)
}

package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/docweaver/docweaver"
)

// Ensure LoggingImprover implements docweaver.Improver.
var _ docweaver.Improver = (*LoggingImprover)(nil)

// LoggingImprover wraps an Improver with logging.
type LoggingImprover struct {
	next   docweaver.Improver
	logger *slog.Logger
}

// NewLoggingImprover creates a new LoggingImprover.
func NewLoggingImprover(next docweaver.Improver, logger *slog.Logger) *LoggingImprover {
	return &LoggingImprover{next: next, logger: logger}
}

// ImproveText delegates to the wrapped improver and logs the operation.
func (i *LoggingImprover) ImproveText(ctx context.Context, text string) (improved string, err error) {
	defer func(begin time.Time) {
		i.logger.Info("document improvement",
			"input_bytes", len(text),
			"output_bytes", len(improved),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return i.next.ImproveText(ctx, text)
}

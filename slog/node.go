package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/scrape"
)

// Ensure LoggingNodeHandler implements scrape.NodeHandler.
var _ scrape.NodeHandler = (*LoggingNodeHandler)(nil)

// LoggingNodeHandler wraps a NodeHandler and logs each invocation.
type LoggingNodeHandler struct {
	kind   scrape.NodeKind
	next   scrape.NodeHandler
	logger *slog.Logger
}

// NewLoggingNodeHandler creates a new LoggingNodeHandler for the node kind.
func NewLoggingNodeHandler(kind scrape.NodeKind, next scrape.NodeHandler, logger *slog.Logger) *LoggingNodeHandler {
	return &LoggingNodeHandler{kind: kind, next: next, logger: logger}
}

// Handle delegates to the wrapped handler. Failures are logged at error level
// with their code.
func (h *LoggingNodeHandler) Handle(ctx context.Context, ev *scrape.Event) (out any, err error) {
	defer func(begin time.Time) {
		if err != nil {
			h.logger.Error("node",
				"kind", h.kind,
				"code", scrape.ErrorCode(err),
				"duration", time.Since(begin),
				"err", err,
			)
			return
		}
		h.logger.Info("node",
			"kind", h.kind,
			"duration", time.Since(begin),
		)
	}(time.Now())
	return h.next.Handle(ctx, ev)
}

package mock

import (
	"context"

	"github.com/fwojciec/scrape"
)

var _ scrape.NodeHandler = (*NodeHandler)(nil)

// NodeHandler is a mock implementation of scrape.NodeHandler.
type NodeHandler struct {
	HandleFn func(ctx context.Context, ev *scrape.Event) (any, error)
}

func (h *NodeHandler) Handle(ctx context.Context, ev *scrape.Event) (any, error) {
	return h.HandleFn(ctx, ev)
}

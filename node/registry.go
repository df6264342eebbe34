package node

import (
	"context"
	"slices"

	"github.com/fwojciec/scrape"
)

// Registry maps node kinds to their handlers.
type Registry struct {
	handlers map[scrape.NodeKind]scrape.NodeHandler
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{handlers: make(map[scrape.NodeKind]scrape.NodeHandler)}
}

// NewDefaultRegistry registers the converter nodes and, when given, the
// scrape and search nodes.
func NewDefaultRegistry(scraper *ScrapeHandler, search *SearchHandler) *Registry {
	r := NewRegistry()
	r.Register(scrape.NodeArrayToString, &EncodeHandler{})
	r.Register(scrape.NodeStringToArray, &DecodeHandler{Shape: ShapeArray})
	r.Register(scrape.NodeStringToObject, &DecodeHandler{Shape: ShapeObject})
	if scraper != nil {
		r.Register(scrape.NodeScrape, scraper)
	}
	if search != nil {
		r.Register(scrape.NodeSearch, search)
	}
	return r
}

// Register adds a handler for kind.
// If a handler is already registered for kind, it is replaced.
func (r *Registry) Register(kind scrape.NodeKind, h scrape.NodeHandler) {
	r.handlers[kind] = h
}

// Get returns the handler for kind.
// Returns ENOTFOUND if no handler is registered.
func (r *Registry) Get(kind scrape.NodeKind) (scrape.NodeHandler, error) {
	h, ok := r.handlers[kind]
	if !ok {
		return nil, scrape.Errorf(scrape.ENOTFOUND, "unknown node kind %q", kind)
	}
	return h, nil
}

// Handle dispatches ev to the handler registered for kind.
func (r *Registry) Handle(ctx context.Context, kind scrape.NodeKind, ev *scrape.Event) (any, error) {
	h, err := r.Get(kind)
	if err != nil {
		return nil, err
	}
	return h.Handle(ctx, ev)
}

// List returns all registered kinds in sorted order.
func (r *Registry) List() []scrape.NodeKind {
	kinds := make([]scrape.NodeKind, 0, len(r.handlers))
	for k := range r.handlers {
		kinds = append(kinds, k)
	}
	slices.Sort(kinds)
	return kinds
}

package special

import (
	"context"
	"net/http"
	"sync"
)

// Handler defines the interface for special page handlers.
type Handler interface {
	Handle(rw http.ResponseWriter, req *http.Request)
}

// Registry holds all registered special pages.
type Registry struct {
	mu       sync.RWMutex
	handlers map[string]Handler
}

// NewRegistry creates a new special page registry.
func NewRegistry() *Registry {
	return &Registry{
		handlers: make(map[string]Handler),
	}
}

// Register adds a special page handler to the registry.
func (r *Registry) Register(name string, handler Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers[name] = handler
}

// Get retrieves a special page handler by name.
func (r *Registry) Get(name string) (Handler, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	handler, ok := r.handlers[name]
	return handler, ok
}

// Has returns true if a special page handler is registered for the given name.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.handlers[name]
	return ok
}

type subpageKey struct{}

// WithSubpage stores the part of the path after "Special:Name/".
func WithSubpage(ctx context.Context, subpage string) context.Context {
	return context.WithValue(ctx, subpageKey{}, subpage)
}

// Subpage returns the subpage of a special page request, or "".
func Subpage(req *http.Request) string {
	subpage, _ := req.Context().Value(subpageKey{}).(string)
	return subpage
}

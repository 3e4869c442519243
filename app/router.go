package app

import (
	"regexp"

	"github.com/goldtix/registry"
	"github.com/goldtix/registry/errors"
)

// isPath defines a valid message path.
var isPath = regexp.MustCompile(`^[a-z0-9_/]{3,40}$`).MatchString

// Router is a registry.Registry that dispatches each transaction to the
// handler registered for its message path.
type Router struct {
	handlers map[string]registry.Handler
}

var _ registry.Registry = (*Router)(nil)
var _ registry.Handler = (*Router)(nil)

func NewRouter() *Router {
	return &Router{
		handlers: make(map[string]registry.Handler),
	}
}

// Handle registers a handler for messages of the same type as the given
// one. Paths must be unique; a repeated or malformed registration is a
// programmer error and panics.
func (r *Router) Handle(m registry.Msg, h registry.Handler) {
	path := m.Path()
	if !isPath(path) {
		panic("invalid path: " + path)
	}
	if _, ok := r.handlers[path]; ok {
		panic("double registration of path: " + path)
	}
	r.handlers[path] = h
}

// handler returns the registered handler, or a handler that always fails
// for unknown paths.
func (r *Router) handler(path string) registry.Handler {
	if h, ok := r.handlers[path]; ok {
		return h
	}
	return notFoundHandler(path)
}

func (r *Router) Check(ctx registry.Context, db registry.KVStore, tx registry.Tx) (*registry.CheckResult, error) {
	return r.handler(registry.GetPath(tx)).Check(ctx, db, tx)
}

func (r *Router) Deliver(ctx registry.Context, db registry.KVStore, tx registry.Tx) (*registry.DeliverResult, error) {
	return r.handler(registry.GetPath(tx)).Deliver(ctx, db, tx)
}

type notFoundHandler string

var _ registry.Handler = notFoundHandler("")

func (h notFoundHandler) Check(registry.Context, registry.KVStore, registry.Tx) (*registry.CheckResult, error) {
	return nil, errors.Wrapf(errors.ErrNotFound, "no handler for %q", string(h))
}

func (h notFoundHandler) Deliver(registry.Context, registry.KVStore, registry.Tx) (*registry.DeliverResult, error) {
	return nil, errors.Wrapf(errors.ErrNotFound, "no handler for %q", string(h))
}

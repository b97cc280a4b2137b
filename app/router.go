package app

import (
	"fmt"
	"regexp"

	"github.com/lockstead/timevault"
	"github.com/lockstead/timevault/errors"
)

var isPath = regexp.MustCompile(`^[a-z0-9_/]{3,32}$`).MatchString

// Router allows us to register many handlers with different
// paths and then direct each message to the registered handler.
type Router struct {
	handlers map[string]timevault.Handler
}

var _ timevault.Registry = (*Router)(nil)
var _ timevault.Handler = (*Router)(nil)

// NewRouter initializes a router with no routes.
func NewRouter() *Router {
	return &Router{
		handlers: make(map[string]timevault.Handler),
	}
}

// Handle implements the Registry interface. It panics if a handler
// for the message path is already registered or the path is invalid.
func (r *Router) Handle(m timevault.Msg, h timevault.Handler) {
	path := m.Path()
	if !isPath(path) {
		panic(fmt.Sprintf("invalid path: %q", path))
	}
	if _, ok := r.handlers[path]; ok {
		panic(fmt.Sprintf("re-registering route: %q", path))
	}
	r.handlers[path] = h
}

// handler returns the registered Handler for this message, or a
// notFoundHandler if none was registered for that path.
func (r *Router) handler(tx timevault.Tx) timevault.Handler {
	msg, err := tx.GetMsg()
	if err != nil || msg == nil {
		return notFoundHandler("")
	}
	if h, ok := r.handlers[msg.Path()]; ok {
		return h
	}
	return notFoundHandler(msg.Path())
}

// Check dispatches to the proper handler based on the message path.
func (r *Router) Check(ctx timevault.Context, store timevault.KVStore, tx timevault.Tx) (*timevault.CheckResult, error) {
	return r.handler(tx).Check(ctx, store, tx)
}

// Deliver dispatches to the proper handler based on the message path.
func (r *Router) Deliver(ctx timevault.Context, store timevault.KVStore, tx timevault.Tx) (*timevault.DeliverResult, error) {
	return r.handler(tx).Deliver(ctx, store, tx)
}

// notFoundHandler always returns ErrNotFound.
type notFoundHandler string

var _ timevault.Handler = notFoundHandler("")

func (h notFoundHandler) Check(timevault.Context, timevault.KVStore, timevault.Tx) (*timevault.CheckResult, error) {
	return nil, errors.Wrapf(errors.ErrNotFound, "no handler for message path %q", string(h))
}

func (h notFoundHandler) Deliver(timevault.Context, timevault.KVStore, timevault.Tx) (*timevault.DeliverResult, error) {
	return nil, errors.Wrapf(errors.ErrNotFound, "no handler for message path %q", string(h))
}

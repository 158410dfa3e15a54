package handlers

import (
	"context"
	"log/slog"
)

// HandlerFunc handles one classified event.
type HandlerFunc func(ctx context.Context, ev Event) error

// Router maps event kinds to handlers. It is built once by the entry point.
type Router struct {
	routes map[EventKind]HandlerFunc
	log    *slog.Logger
}

func NewRouter(log *slog.Logger) *Router {
	if log == nil {
		log = slog.Default()
	}
	return &Router{
		routes: map[EventKind]HandlerFunc{},
		log:    log,
	}
}

// Handle registers fn for kind, replacing any previous handler.
func (r *Router) Handle(kind EventKind, fn HandlerFunc) *Router {
	r.routes[kind] = fn
	return r
}

// Dispatch runs the handler registered for ev.Kind.
// Events without a route are dropped.
func (r *Router) Dispatch(ctx context.Context, ev Event) error {
	fn, ok := r.routes[ev.Kind]
	if !ok {
		r.log.Debug("no route for update", "update_id", ev.UpdateID, "kind", ev.Kind.String())
		return nil
	}
	return fn(ctx, ev)
}

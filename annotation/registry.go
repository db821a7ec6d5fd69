package annotation

import (
	"log/slog"
	"maps"
	"slices"

	"github.com/iw2rmb/marginalia/content"
)

type options struct {
	logger *slog.Logger
}

// Option configures a Registry.
type Option func(*options)

// WithLogger sets the logger for the registry and its handles.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// Registry maps entity keys to handles for one field.
//
// Create overwrites an existing entry for the same key. Entries leave the
// registry through Remove or Sync, which the owning field calls whenever the
// content reports removed entities.
type Registry struct {
	handles map[string]*Handle
	anchors AnchorResolver
	logger  *slog.Logger
}

// New returns an empty registry whose handles resolve anchors via anchors.
func New(anchors AnchorResolver, opts ...Option) *Registry {
	o := options{logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(&o)
	}
	return &Registry{
		handles: map[string]*Handle{},
		anchors: anchors,
		logger:  o.logger,
	}
}

// Create stores a new handle for key and returns it.
func (r *Registry) Create(key string, acc Accessors) *Handle {
	if _, ok := r.handles[key]; ok {
		r.logger.Debug("annotation: overwriting handle", "entity", key)
	}
	h := &Handle{
		key:     key,
		acc:     acc,
		anchors: r.anchors,
		logger:  r.logger,
	}
	r.handles[key] = h
	return h
}

// Lookup returns the handle for key. A miss is a normal outcome.
func (r *Registry) Lookup(key string) (*Handle, bool) {
	h, ok := r.handles[key]
	return h, ok
}

// Remove drops the handle for key and reports whether one existed.
func (r *Registry) Remove(key string) bool {
	if _, ok := r.handles[key]; !ok {
		return false
	}
	delete(r.handles, key)
	r.logger.Debug("annotation: removed handle", "entity", key)
	return true
}

// Sync removes the handles of entities the change removed and returns how
// many were dropped.
func (r *Registry) Sync(ch content.Change) int {
	n := 0
	for _, key := range ch.RemovedEntities {
		if r.Remove(key) {
			n++
		}
	}
	return n
}

func (r *Registry) Len() int { return len(r.handles) }

// Keys returns the registered entity keys in sorted order.
func (r *Registry) Keys() []string {
	return slices.Sorted(maps.Keys(r.handles))
}

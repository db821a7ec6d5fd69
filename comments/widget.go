package comments

import (
	"log/slog"
	"slices"

	"github.com/iw2rmb/marginalia/annotation"
)

const (
	// DefaultEntityType is the entity type used for comment annotations.
	DefaultEntityType = "COMMENT"
	DefaultLocation   = "content"
)

// Anchors is the anchor table a widget's decorator mounts anchors in.
type Anchors interface {
	annotation.AnchorResolver
	Allocate() annotation.AnchorID
	Release(id annotation.AnchorID)
}

type options struct {
	location   string
	entityType string
	logger     *slog.Logger
}

// Option configures a Widget.
type Option func(*options)

// WithLocation sets the location identifier passed to App.MakeComment.
func WithLocation(location string) Option {
	return func(o *options) {
		if location != "" {
			o.location = location
		}
	}
}

// WithEntityType sets the entity type created by the widget's sources.
func WithEntityType(typ string) Option {
	return func(o *options) {
		if typ != "" {
			o.entityType = typ
		}
	}
}

// WithLogger sets the logger shared by the widget and its registry.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// Widget is the host-facing facade of one field's comment annotations.
type Widget struct {
	app        App
	anchors    Anchors
	registry   *annotation.Registry
	decorator  *Decorator
	location   string
	entityType string
	logger     *slog.Logger

	acc         annotation.Accessors
	initialized bool
	enabled     bool
	comments    []Comment
}

// New returns a widget reporting to app. Commenting starts disabled.
func New(app App, anchors Anchors, opts ...Option) *Widget {
	o := options{
		location:   DefaultLocation,
		entityType: DefaultEntityType,
		logger:     slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(&o)
	}
	w := &Widget{
		app:        app,
		anchors:    anchors,
		registry:   annotation.New(anchors, annotation.WithLogger(o.logger)),
		location:   o.location,
		entityType: o.entityType,
		logger:     o.logger,
	}
	w.decorator = newDecorator(w)
	return w
}

// Initialize captures the field's accessors and registers the widget with
// the host. It succeeds once per widget.
func (w *Widget) Initialize(acc annotation.Accessors) error {
	if w.initialized {
		return ErrAlreadyInitialized
	}
	if acc.State == nil || acc.SetState == nil {
		return ErrInvalidAccessors
	}
	w.acc = acc
	w.initialized = true
	if w.app != nil {
		w.app.RegisterWidget(w)
	}
	w.logger.Debug("comments: widget registered", "location", w.location)
	return nil
}

func (w *Widget) Initialized() bool { return w.initialized }

// SetEnabled records whether new comments may be created. Callers of Source
// enforce it.
func (w *Widget) SetEnabled(enabled bool) { w.enabled = enabled }

func (w *Widget) Enabled() bool { return w.enabled }

// OnChangeComments receives the host's comments for this widget's location.
// Only the cached snapshot changes; handles are not touched.
func (w *Widget) OnChangeComments(list []Comment) {
	w.comments = slices.Clone(list)
}

// CommentCount returns the size of the last snapshot from the host.
func (w *Widget) CommentCount() int { return len(w.comments) }

// Comments returns a copy of the last snapshot from the host.
func (w *Widget) Comments() []Comment { return slices.Clone(w.comments) }

func (w *Widget) Registry() *annotation.Registry { return w.registry }

func (w *Widget) Decorator() *Decorator { return w.decorator }

func (w *Widget) Location() string { return w.location }

func (w *Widget) EntityType() string { return w.entityType }

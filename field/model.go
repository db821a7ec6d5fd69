package field

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/marginalia/annotation"
	"github.com/iw2rmb/marginalia/comments"
	"github.com/iw2rmb/marginalia/content"
)

// ErrCommentsDisabled is returned by AddComment while the widget is disabled.
var ErrCommentsDisabled = errors.New("field: comments are disabled")

// document is the field's shared mutable cell. Handles reach it through
// accessors, so it outlives copies of Model.
type document struct {
	state    content.State
	value    string
	raw      content.Raw
	registry *annotation.Registry
	onSave   func(SaveEvent)
	logger   *slog.Logger
}

// commit replaces the state, drops handles of removed entities and
// re-serializes the value. Committing the current snapshot is a no-op.
func (d *document) commit(next content.State) {
	if next.Same(d.state) {
		return
	}
	ch := content.Diff(d.state, next)
	d.state = next
	if d.registry != nil {
		d.registry.Sync(ch)
	}
	if err := d.serialize(); err != nil {
		d.logger.Error("field: serialize", "err", err)
		return
	}
	if d.onSave != nil {
		d.onSave(SaveEvent{
			Version:         next.Version(),
			Value:           d.value,
			Raw:             d.raw,
			RemovedEntities: ch.RemovedEntities,
		})
	}
}

func (d *document) serialize() error {
	data, err := content.Marshal(d.state)
	if err != nil {
		return err
	}
	d.value = string(data)
	d.raw = d.state.Raw()
	return nil
}

func (d *document) accessors() annotation.Accessors {
	return annotation.Accessors{
		State:    func() content.State { return d.state },
		SetState: d.commit,
	}
}

// Model is a Bubble Tea component editing annotated content.
type Model struct {
	cfg     Config
	doc     *document
	widget  *comments.Widget
	anchors *annotation.AnchorTable
	types   map[string]EntityType
	logger  *slog.Logger

	focused bool

	viewport viewport.Model
	layout   *layout

	mouseDragging bool
	mouseAnchor   content.Pos
}

// New builds a field. Malformed Config.Value fails here; the caller decides
// how to recover.
func New(cfg Config) (Model, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if len(cfg.KeyMap.AddComment.Keys()) == 0 && len(cfg.KeyMap.Left.Keys()) == 0 {
		cfg.KeyMap = DefaultKeyMap()
	}

	var opts []content.Option
	if cfg.KeyFunc != nil {
		opts = append(opts, content.WithKeyFunc(cfg.KeyFunc))
	}
	state := content.New(cfg.Text, opts...)
	if cfg.Value != "" {
		parsed, err := content.Parse([]byte(cfg.Value), opts...)
		if err != nil {
			return Model{}, fmt.Errorf("field: load value: %w", err)
		}
		state = parsed
	}

	anchors := annotation.NewAnchorTable()
	widget := comments.New(cfg.App, anchors,
		comments.WithLocation(cfg.Location),
		comments.WithLogger(logger),
	)
	widget.SetEnabled(cfg.CommentsEnabled)

	doc := &document{
		state:    state,
		registry: widget.Registry(),
		onSave:   cfg.OnSave,
		logger:   logger,
	}
	if err := doc.serialize(); err != nil {
		return Model{}, fmt.Errorf("field: serialize: %w", err)
	}
	if err := widget.Initialize(doc.accessors()); err != nil {
		return Model{}, fmt.Errorf("field: initialize comments: %w", err)
	}

	types := map[string]EntityType{}
	for _, t := range cfg.Plugins.Resolve(cfg.EntityTypes) {
		types[t.Type] = t
	}
	types[widget.EntityType()] = EntityType{
		Type:        widget.EntityType(),
		Label:       "Comment",
		Description: "Comment",
	}

	m := Model{
		cfg:      cfg,
		doc:      doc,
		widget:   widget,
		anchors:  anchors,
		types:    types,
		logger:   logger,
		focused:  true,
		viewport: viewport.New(0, 0),
	}
	m.rebuildContent()
	return m, nil
}

func (m Model) Init() tea.Cmd { return nil }

// Widget returns the field's comment widget.
func (m Model) Widget() *comments.Widget { return m.widget }

// State returns the current content state.
func (m Model) State() content.State { return m.doc.state }

// SetState replaces the content state as a commit.
func (m Model) SetState(s content.State) Model {
	m.doc.commit(s)
	m.rebuildContent()
	m.followCursor()
	return m
}

// Value returns the serialized content.
func (m Model) Value() string { return m.doc.value }

// Raw returns the parsed form of Value, cached at the last commit.
func (m Model) Raw() content.Raw { return m.doc.raw }

// EntityType returns the resolved entity type for typ.
func (m Model) EntityType(typ string) (EntityType, bool) {
	t, ok := m.types[typ]
	return t, ok
}

// AddComment runs a fresh comment source over the current selection.
func (m Model) AddComment() (Model, *annotation.Handle, error) {
	if !m.widget.Enabled() {
		return m, nil, ErrCommentsDisabled
	}
	h, err := m.widget.NewSource().Run()
	if err != nil {
		return m, nil, err
	}
	m.rebuildContent()
	return m, h, nil
}

func (m Model) SetSize(width, height int) Model {
	m.viewport.Width = max(width, 0)
	m.viewport.Height = max(height, 0)
	m.rebuildContent()
	m.followCursor()
	return m
}

func (m Model) Focus() Model {
	if !m.focused {
		m.focused = true
		m.rebuildContent()
	}
	return m
}

func (m Model) Blur() Model {
	if m.focused {
		m.focused = false
		m.rebuildContent()
	}
	return m
}

func (m Model) Focused() bool { return m.focused }

// ScrollOffset returns the first visible document row.
func (m Model) ScrollOffset() int { return m.viewport.YOffset }

// AnchorRect resolves an anchor placed by the last paint.
func (m Model) AnchorRect(id annotation.AnchorID) (annotation.Rect, bool) {
	return m.anchors.ResolveAnchor(id)
}

// Refresh repaints, picking up handle state changed outside Update.
func (m Model) Refresh() Model {
	m.rebuildContent()
	return m
}

// View repaints before returning the viewport, so every frame re-binds
// decorators to their handles.
func (m Model) View() string {
	m.rebuildContent()
	return m.viewport.View()
}

func (m *Model) rebuildContent() {
	out, lay := m.renderContent()
	m.viewport.SetContent(out)
	m.layout = lay
	m.placeAnchors(lay.placements)
}

func (m *Model) placeAnchors(placements []placement) {
	top := m.viewport.YOffset
	m.anchors.SetScroll(top)
	for _, p := range placements {
		m.anchors.Place(p.anchor, annotation.Rect{
			Top:    p.row - top,
			Left:   m.layout.gutter + p.left,
			Width:  p.width,
			Height: 1,
		})
	}
}

func (m *Model) followCursor() {
	h := m.visibleRowCount()
	if h <= 0 {
		return
	}
	cur := m.doc.state.Cursor()
	y := m.viewport.YOffset
	switch {
	case cur.Row < y:
		m.viewport.SetYOffset(cur.Row)
	case cur.Row >= y+h:
		m.viewport.SetYOffset(cur.Row - h + 1)
	default:
		return
	}
	m.placeAnchors(m.layout.placements)
}

func (m Model) visibleRowCount() int {
	return max(m.viewport.Height-m.viewport.Style.GetVerticalFrameSize(), 0)
}

package main

import (
	"log/slog"
	"slices"

	"github.com/google/uuid"

	"github.com/iw2rmb/marginalia/annotation"
	"github.com/iw2rmb/marginalia/comments"
)

// thread is one comment owned by the in-memory app.
type thread struct {
	id       string
	location string
	handle   *annotation.Handle
	text     string
	resolved bool
	hidden   bool
}

// commentApp is an in-memory host that owns the canonical comment list.
type commentApp struct {
	author  string
	logger  *slog.Logger
	widgets map[string]*comments.Widget
	threads []*thread
	focused string
	// draft is the comment created last and not yet given text.
	draft string
}

func newCommentApp(author string, logger *slog.Logger) *commentApp {
	return &commentApp{
		author:  author,
		logger:  logger,
		widgets: map[string]*comments.Widget{},
	}
}

func (a *commentApp) RegisterWidget(w *comments.Widget) {
	a.widgets[w.Location()] = w
	a.publish(w.Location())
}

func (a *commentApp) MakeComment(h *annotation.Handle, location string) {
	t := &thread{id: uuid.NewString(), location: location, handle: h}
	a.threads = append(a.threads, t)
	h.RegisterClickHandler(func() { a.focus(t.id) })
	a.draft = t.id
	a.logger.Info("comment created", "id", t.id, "entity", h.Key(), "location", location)
	a.publish(location)
}

func (a *commentApp) find(id string) *thread {
	for _, t := range a.threads {
		if t.id == id {
			return t
		}
	}
	return nil
}

// focus focuses one comment and unfocuses the rest.
func (a *commentApp) focus(id string) {
	a.focused = id
	for _, t := range a.threads {
		if t.id == id {
			t.handle.Focus()
		} else {
			t.handle.Unfocus()
		}
	}
}

// cycle moves focus to the next comment in document order.
func (a *commentApp) cycle() {
	if len(a.threads) == 0 {
		return
	}
	ordered := a.ordered()
	i := slices.IndexFunc(ordered, func(t *thread) bool { return t.id == a.focused })
	a.focus(ordered[(i+1)%len(ordered)].id)
}

func (a *commentApp) toggleHidden(id string) {
	t := a.find(id)
	if t == nil {
		return
	}
	t.hidden = !t.hidden
	if t.hidden {
		t.handle.Hide()
	} else {
		t.handle.Show()
	}
}

func (a *commentApp) setText(id, text string) {
	if t := a.find(id); t != nil {
		t.text = text
		a.publish(t.location)
	}
}

// remove deletes the comment and asks its field to drop the annotation.
func (a *commentApp) remove(id string) {
	t := a.find(id)
	if t == nil {
		return
	}
	t.handle.RequestRemoval()
	a.drop(id)
	a.publish(t.location)
}

func (a *commentApp) drop(id string) {
	a.threads = slices.DeleteFunc(a.threads, func(t *thread) bool { return t.id == id })
	if a.focused == id {
		a.focused = ""
	}
	if a.draft == id {
		a.draft = ""
	}
}

// prune drops comments whose annotation left the document, e.g. because
// its text was deleted.
func (a *commentApp) prune() {
	for _, t := range slices.Clone(a.threads) {
		w := a.widgets[t.location]
		if w == nil {
			continue
		}
		if _, ok := w.Registry().Lookup(t.handle.Key()); !ok {
			a.logger.Info("comment orphaned by edit", "id", t.id, "entity", t.handle.Key())
			a.drop(t.id)
			a.publish(t.location)
		}
	}
}

// ordered returns the comments sorted by where their anchor sits.
func (a *commentApp) ordered() []*thread {
	out := slices.Clone(a.threads)
	slices.SortStableFunc(out, func(x, y *thread) int {
		return x.handle.AnchorPosition() - y.handle.AnchorPosition()
	})
	return out
}

// publish pushes the location's comments to its widget.
func (a *commentApp) publish(location string) {
	w := a.widgets[location]
	if w == nil {
		return
	}
	var list []comments.Comment
	for _, t := range a.threads {
		if t.location != location {
			continue
		}
		list = append(list, comments.Comment{
			ID:        t.id,
			Location:  t.location,
			EntityKey: t.handle.Key(),
			Author:    a.author,
			Text:      t.text,
			Resolved:  t.resolved,
		})
	}
	w.OnChangeComments(list)
}

package comments

import (
	"fmt"

	"github.com/iw2rmb/marginalia/annotation"
	"github.com/iw2rmb/marginalia/content"
)

type made struct {
	handle   *annotation.Handle
	location string
}

type fakeApp struct {
	registered []*Widget
	made       []made
}

func (a *fakeApp) RegisterWidget(w *Widget) { a.registered = append(a.registered, w) }

func (a *fakeApp) MakeComment(h *annotation.Handle, location string) {
	a.made = append(a.made, made{handle: h, location: location})
}

type doc struct {
	state content.State
	sets  int
}

func newDoc(text string) *doc {
	n := 0
	keys := func() string {
		n++
		return fmt.Sprintf("k%d", n)
	}
	return &doc{state: content.New(text, content.WithKeyFunc(keys))}
}

func (d *doc) accessors() annotation.Accessors {
	return annotation.Accessors{
		State:    func() content.State { return d.state },
		SetState: func(s content.State) { d.state = s; d.sets++ },
	}
}

func newTestWidget(text string) (*Widget, *fakeApp, *doc, *annotation.AnchorTable) {
	app := &fakeApp{}
	anchors := annotation.NewAnchorTable()
	w := New(app, anchors, WithLocation("page.body"))
	d := newDoc(text)
	if err := w.Initialize(d.accessors()); err != nil {
		panic(err)
	}
	return w, app, d, anchors
}

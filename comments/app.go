package comments

import "github.com/iw2rmb/marginalia/annotation"

// App is the host comment application that owns the canonical comment list.
type App interface {
	// RegisterWidget is called once when the widget initializes.
	RegisterWidget(w *Widget)
	// MakeComment is called by a Source for each new annotation. location
	// identifies the field the annotation belongs to.
	MakeComment(h *annotation.Handle, location string)
}

// Comment is the host's view of one comment, as reported through
// Widget.OnChangeComments.
type Comment struct {
	ID        string
	Location  string
	EntityKey string
	Author    string
	Text      string
	Resolved  bool
}

package field

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/marginalia/content"
)

func (m Model) updateMouse(msg tea.MouseMsg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	if isWheel(msg) {
		m.viewport, cmd = m.viewport.Update(msg)
		m.rebuildContent()
		return m, cmd
	}
	if !m.focused || (msg.Action == tea.MouseActionPress && !m.mouseInBounds(msg.X, msg.Y)) {
		return m, nil
	}

	switch msg.Action { //nolint:exhaustive
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		h := m.screenToDoc(msg.X, msg.Y)
		if h.marker && !msg.Shift && m.widget.Decorator().Click(h.entity) {
			m.rebuildContent()
			return m, nil
		}

		s := m.doc.state
		if msg.Shift {
			anchor := s.Cursor()
			if r, ok := s.Selection(); ok {
				anchor = r.Start
			}
			m.mouseAnchor = anchor
			m.mouseDragging = true
			return m.SetState(s.WithSelection(content.Range{Start: anchor, End: h.pos})), nil
		}
		m.mouseAnchor = h.pos
		m.mouseDragging = true
		return m.SetState(s.WithCursor(h.pos)), nil

	case tea.MouseActionMotion:
		if !m.mouseDragging {
			return m, nil
		}
		x, y := m.clampMouseToBounds(msg.X, msg.Y)
		p := m.screenToDoc(x, y).pos
		return m.SetState(m.doc.state.WithSelection(content.Range{Start: m.mouseAnchor, End: p})), nil

	case tea.MouseActionRelease:
		m.mouseDragging = false
	}
	return m, nil
}

func isWheel(msg tea.MouseMsg) bool {
	return msg.Action == tea.MouseActionPress &&
		(msg.Button == tea.MouseButtonWheelUp ||
			msg.Button == tea.MouseButtonWheelDown ||
			msg.Button == tea.MouseButtonWheelLeft ||
			msg.Button == tea.MouseButtonWheelRight)
}

func (m Model) mouseInBounds(x, y int) bool {
	if m.viewport.Width <= 0 || m.viewport.Height <= 0 {
		return false
	}
	return x >= 0 && x < m.viewport.Width && y >= 0 && y < m.viewport.Height
}

func (m Model) clampMouseToBounds(x, y int) (int, int) {
	if m.viewport.Width > 0 {
		x = clampInt(x, 0, m.viewport.Width-1)
	}
	if m.viewport.Height > 0 {
		y = clampInt(y, 0, m.viewport.Height-1)
	}
	return x, y
}

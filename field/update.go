package field

import (
	"errors"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/marginalia/content"
)

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.SetSize(msg.Width, msg.Height), nil
	case tea.MouseMsg:
		return m.updateMouse(msg)
	case tea.KeyMsg:
		if !m.focused {
			return m, nil
		}
		m = m.handleKey(msg)
		return m, nil
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) Model {
	km := m.cfg.KeyMap
	s := m.doc.state

	if key.Matches(msg, km.AddComment) {
		next, _, err := m.AddComment()
		if err != nil && !errors.Is(err, ErrCommentsDisabled) {
			m.logger.Warn("field: add comment", "err", err)
		}
		return next
	}

	var next content.State
	switch {
	case key.Matches(msg, km.ShiftLeft):
		next = s.Move(content.Move{Unit: content.MoveRune, Dir: content.DirLeft, Extend: true})
	case key.Matches(msg, km.ShiftRight):
		next = s.Move(content.Move{Unit: content.MoveRune, Dir: content.DirRight, Extend: true})
	case key.Matches(msg, km.ShiftUp):
		next = s.Move(content.Move{Unit: content.MoveLine, Dir: content.DirUp, Extend: true})
	case key.Matches(msg, km.ShiftDown):
		next = s.Move(content.Move{Unit: content.MoveLine, Dir: content.DirDown, Extend: true})
	case key.Matches(msg, km.WordLeft):
		next = s.Move(content.Move{Unit: content.MoveWord, Dir: content.DirLeft})
	case key.Matches(msg, km.WordRight):
		next = s.Move(content.Move{Unit: content.MoveWord, Dir: content.DirRight})
	case key.Matches(msg, km.Left):
		next = s.Move(content.Move{Unit: content.MoveRune, Dir: content.DirLeft})
	case key.Matches(msg, km.Right):
		next = s.Move(content.Move{Unit: content.MoveRune, Dir: content.DirRight})
	case key.Matches(msg, km.Up):
		next = s.Move(content.Move{Unit: content.MoveLine, Dir: content.DirUp})
	case key.Matches(msg, km.Down):
		next = s.Move(content.Move{Unit: content.MoveLine, Dir: content.DirDown})
	case key.Matches(msg, km.Home):
		next = s.Move(content.Move{Unit: content.MoveLine, Dir: content.DirHome})
	case key.Matches(msg, km.End):
		next = s.Move(content.Move{Unit: content.MoveLine, Dir: content.DirEnd})
	case key.Matches(msg, km.Backspace):
		next, _ = s.DeleteBackward()
	case key.Matches(msg, km.Delete):
		next, _ = s.DeleteForward()
	case key.Matches(msg, km.Enter):
		next, _ = s.InsertText("\n")
	case msg.Type == tea.KeySpace:
		next, _ = s.InsertText(" ")
	case msg.Type == tea.KeyRunes && !msg.Alt:
		next, _ = s.InsertText(string(msg.Runes))
	default:
		return m
	}
	return m.SetState(next)
}

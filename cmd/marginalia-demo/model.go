package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	overlay "github.com/rmhubbert/bubbletea-overlay"

	"github.com/iw2rmb/marginalia/field"
	"github.com/iw2rmb/marginalia/internal/grapheme"
)

var (
	sidebarStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderLeft(true).
			BorderForeground(lipgloss.Color("240")).
			PaddingLeft(1)
	cardStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	cardFocusedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#01afb0")).Bold(true)
	cardHiddenStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Italic(true)
	popupStyle       = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("#01afb0")).
				Padding(0, 1)
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

type model struct {
	cfg    demoConfig
	field  field.Model
	app    *commentApp
	logger *slog.Logger

	width, height int

	composing string // id of the comment being written
	input     textinput.Model
	status    string
}

func newModel(cfg demoConfig, logger *slog.Logger, savePath string) (model, error) {
	value, err := cfg.value()
	if err != nil {
		return model{}, err
	}
	app := newCommentApp(cfg.Author, logger)

	fc := field.Config{
		Value:           value,
		Text:            cfg.Text,
		Location:        cfg.Location,
		App:             app,
		CommentsEnabled: cfg.commentsEnabled(),
		EntityTypes:     cfg.entityTypes(),
		Plugins:         demoPlugins(),
		ShowLineNums:    cfg.LineNumbers,
		Style:           field.DefaultStyle(),
		Logger:          logger,
	}
	if savePath != "" {
		fc.OnSave = func(ev field.SaveEvent) {
			if err := os.WriteFile(savePath, []byte(ev.Value), 0o644); err != nil {
				logger.Error("save content", "path", savePath, "err", err)
			}
		}
	}
	f, err := field.New(fc)
	if err != nil {
		return model{}, err
	}

	in := textinput.New()
	in.Placeholder = "Write a comment"
	in.Prompt = ""
	in.CharLimit = 280

	return model{cfg: cfg, field: f, app: app, logger: logger, input: in}, nil
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.field = m.field.SetSize(m.fieldWidth(), max(m.height-1, 1))
		m.input.Width = max(m.fieldWidth()/2, 10)
		return m, nil
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.composing != "" {
			return m.updateCompose(msg)
		}
		switch msg.String() {
		case "tab":
			m.app.cycle()
			return m, nil
		case "ctrl+t":
			m.app.toggleHidden(m.app.focused)
			return m, nil
		case "ctrl+d":
			m.app.remove(m.app.focused)
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.field, cmd = m.field.Update(msg)
	m.app.prune()
	if id := m.app.draft; id != "" {
		m.app.draft = ""
		m.app.focus(id)
		return m.startCompose(id), tea.Batch(cmd, textinput.Blink)
	}
	if k, ok := msg.(tea.KeyMsg); ok && k.String() == "ctrl+k" && !m.field.Widget().Enabled() {
		m.status = "commenting is disabled"
	}
	return m, cmd
}

func (m model) startCompose(id string) model {
	m.composing = id
	m.input.SetValue("")
	m.input.Focus()
	m.field = m.field.Blur()
	m.status = ""
	return m
}

func (m model) updateCompose(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type { //nolint:exhaustive
	case tea.KeyEnter:
		text := strings.TrimSpace(m.input.Value())
		if text == "" {
			return m, nil
		}
		m.app.setText(m.composing, text)
		m.status = fmt.Sprintf("%d comments", m.field.Widget().CommentCount())
		return m.endCompose(), nil
	case tea.KeyEsc:
		// An abandoned draft takes its annotation with it.
		m.app.remove(m.composing)
		return m.endCompose(), nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m model) endCompose() model {
	m.composing = ""
	m.input.Blur()
	m.field = m.field.Focus()
	return m
}

func (m model) fieldWidth() int {
	return max(m.width-m.cfg.SidebarWidth-2, 10)
}

func (m model) View() string {
	base := m.field.View()
	if m.composing != "" {
		base = m.composePopup(base)
	}
	body := lipgloss.JoinHorizontal(lipgloss.Top, base, m.sidebar())
	status := m.status
	if status == "" {
		status = "ctrl+k comment · tab focus · ctrl+t hide · ctrl+d delete · ctrl+c quit"
	}
	return lipgloss.JoinVertical(lipgloss.Left, body, statusStyle.Render(status))
}

// composePopup draws the comment input just below the comment's anchor.
func (m model) composePopup(base string) string {
	t := m.app.find(m.composing)
	if t == nil {
		return base
	}
	popup := popupStyle.Render(m.input.View())
	x, y := 0, 0
	if r, ok := m.field.AnchorRect(t.handle.Anchor()); ok {
		x, y = r.Left, r.Top+r.Height
	}
	maxY := max(m.height-1-lipgloss.Height(popup), 0)
	maxX := max(m.fieldWidth()-lipgloss.Width(popup), 0)
	x = min(max(x, 0), maxX)
	y = min(max(y, 0), maxY)
	return overlay.Composite(popup, base, overlay.Left, overlay.Top, x, y)
}

// sidebar lays comment cards out next to their anchors. A card never
// overlaps the one above it.
func (m model) sidebar() string {
	height := max(m.height-1, 1)
	width := max(m.cfg.SidebarWidth, 8)
	lines := make([]string, height)

	scroll := m.field.ScrollOffset()
	next := 0
	for _, t := range m.app.ordered() {
		top := t.handle.AnchorPosition() - scroll
		if top < next {
			top = next
		}
		if top >= height {
			break
		}
		card := m.card(t, width)
		for i, line := range card {
			if top+i >= height {
				break
			}
			lines[top+i] = line
		}
		next = top + len(card)
	}
	return sidebarStyle.Height(height).Render(strings.Join(lines, "\n"))
}

func (m model) card(t *thread, width int) []string {
	text := t.text
	if text == "" {
		text = "…"
	}
	st := cardStyle
	switch {
	case t.hidden:
		st = cardHiddenStyle
		text = "(hidden) " + text
	case t.id == m.app.focused:
		st = cardFocusedStyle
	}
	author := m.app.author
	if author == "" {
		author = "anonymous"
	}
	return []string{
		st.Render(truncate(author+": "+text, width)),
	}
}

func truncate(s string, width int) string {
	if grapheme.Width(s) <= width {
		return s
	}
	var sb strings.Builder
	w := 0
	for _, r := range s {
		rw := grapheme.RuneWidth(r)
		if w+rw > width-1 {
			break
		}
		sb.WriteRune(r)
		w += rw
	}
	return sb.String() + "…"
}

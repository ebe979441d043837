package tui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/drake/componentgrid/grid"
	"github.com/drake/componentgrid/ui/style"
	"github.com/drake/componentgrid/ui/tui/widget"
)

// KeyMap holds the program-level bindings. Focus movement lives in the
// table's own key map.
type KeyMap struct {
	Refresh key.Binding
	Remove  key.Binding
	Toggle  key.Binding
	Help    key.Binding
	Quit    key.Binding

	table widget.KeyMap
}

// DefaultKeyMap returns the default bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Refresh: key.NewBinding(
			key.WithKeys("r", "ctrl+r"),
			key.WithHelp("r", "refresh"),
		),
		Remove: key.NewBinding(
			key.WithKeys("d", "delete"),
			key.WithHelp("d", "remove row"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("enter", "x"),
			key.WithHelp("x", "toggle"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Refresh, k.Remove, k.Toggle, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return append(k.table.FullHelp(), []key.Binding{k.Refresh, k.Remove, k.Toggle, k.Help, k.Quit})
}

// Config wires a Model to a view and its table.
type Config[T any, K comparable] struct {
	View  *grid.View[T, K]
	Table *widget.Table[T, K]

	// Toggle returns an updated copy of row for the toggle key. Nil
	// disables the key.
	Toggle func(row T) T

	Title  string
	Styles style.Styles
	Logger *log.Logger
}

// Model is the Bubble Tea model hosting a grid view.
type Model[T any, K comparable] struct {
	view   *grid.View[T, K]
	table  *widget.Table[T, K]
	toggle func(T) T
	title  string
	logger *log.Logger

	width  int
	height int
	bottom dock
	status *widget.Status
	help   *helpBar
	keys   KeyMap

	notice   string
	quitting bool
}

// NewModel creates a model for cfg.
func NewModel[T any, K comparable](cfg Config[T, K]) *Model[T, K] {
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	keys := DefaultKeyMap()
	keys.table = cfg.Table.KeyMap()

	status := widget.NewStatus(cfg.Styles)
	hb := &helpBar{model: help.New(), keys: keys}
	hb.model.Styles.ShortKey = cfg.Styles.Help
	hb.model.Styles.ShortDesc = cfg.Styles.Help

	m := &Model[T, K]{
		view:   cfg.View,
		table:  cfg.Table,
		toggle: cfg.Toggle,
		title:  cfg.Title,
		logger: logger.WithPrefix("tui"),
		status: status,
		help:   hb,
		keys:   keys,
	}
	m.bottom = dock{widget.NewSeparator(cfg.Styles), status, hb}
	m.updateStatus()
	return m
}

// Init implements tea.Model.
func (m *Model[T, K]) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model[T, K]) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.relayout()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m *Model[T, K]) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.notice = ""

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.model.ShowAll = !m.help.model.ShowAll
		m.relayout()

	case key.Matches(msg, m.keys.Refresh):
		m.refresh()

	case key.Matches(msg, m.keys.Remove):
		m.removeFocused()

	case key.Matches(msg, m.keys.Toggle):
		m.toggleFocused()

	default:
		m.table.HandleKey(msg)
	}

	m.updateStatus()
	return m, nil
}

func (m *Model[T, K]) refresh() {
	_, hadFocus := m.table.Focused()
	if err := m.view.Refresh(); err != nil {
		m.notice = err.Error()
		m.logger.Error("refresh failed", "err", err)
		return
	}
	if _, ok := m.table.Focused(); hadFocus && !ok {
		m.notice = "focus lost"
	}
}

func (m *Model[T, K]) focusedRow() (T, bool) {
	coord, ok := m.table.Focused()
	if !ok {
		var zero T
		return zero, false
	}
	return m.view.Store().Get(coord.Row)
}

func (m *Model[T, K]) removeFocused() {
	row, ok := m.focusedRow()
	if !ok {
		m.notice = "no row focused"
		return
	}
	if _, err := m.view.Remove(row); err != nil {
		m.notice = err.Error()
		return
	}
	m.logger.Debug("row removed", "key", m.view.Key(row))
}

// toggleFocused swaps the focused row for its toggled copy with a single
// bulk replace.
func (m *Model[T, K]) toggleFocused() {
	if m.toggle == nil {
		return
	}
	row, ok := m.focusedRow()
	if !ok {
		m.notice = "no row focused"
		return
	}

	rows := m.view.Rows()
	i := m.view.Store().IndexOf(m.view.Key(row))
	rows[i] = m.toggle(row)
	if err := m.view.SetRows(rows); err != nil {
		m.notice = err.Error()
	}
}

func (m *Model[T, K]) relayout() {
	m.table.SetSize(m.width, m.bottom.fit(m.width, m.height))
}

func (m *Model[T, K]) updateStatus() {
	s := m.view.Stats()
	left := fmt.Sprintf("%s  %d rows", m.title, m.view.Len())
	if m.notice != "" {
		left += "  " + m.notice
	}
	right := fmt.Sprintf("refreshes %d  restored %d  dropped %d", s.Refreshes, s.FocusRestores, s.FocusDrops)
	m.status.Set(left, right)
}

// View implements tea.Model.
func (m *Model[T, K]) View() string {
	if m.quitting {
		return ""
	}
	return m.table.View() + "\n" + m.bottom.View()
}

// Notice returns the last transient status message.
func (m *Model[T, K]) Notice() string {
	return m.notice
}

// helpBar adapts the bubbles help model to a dock item.
type helpBar struct {
	model help.Model
	keys  KeyMap
}

func (h *helpBar) SetWidth(w int) { h.model.Width = w }

func (h *helpBar) Height() int {
	if !h.model.ShowAll {
		return 1
	}
	rows := 0
	for _, col := range h.keys.FullHelp() {
		rows = max(rows, len(col))
	}
	return rows
}

func (h *helpBar) View() string { return h.model.View(h.keys) }

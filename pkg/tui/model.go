// Package tui is the terminal host for qf: the query is typed once and
// results are refreshed on every keystroke, like in a graphical launcher.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/lvim-tech/qf/pkg/search"
)

// Searcher renders the rows for a query numbered gen; a query older than
// one already seen is dropped. *search.Handler implements it.
type Searcher interface {
	OnQueryGen(ctx context.Context, gen uint64, keyword, rawInput string, prefs search.Preferences) ([]search.Item, error)
}

// resultsMsg carries the rows of one search back to the model
type resultsMsg struct {
	gen   uint64
	items []search.Item
	err   error
}

// Model is the bubbletea model of the qf TUI
type Model struct {
	ctx      context.Context
	searcher Searcher
	prefs    search.Preferences
	keyword  string

	input  textinput.Model
	items  []search.Item
	cursor int
	gen    uint64
	status string
	width  int
	height int

	chosen *search.Action
}

// New creates the model; keyword selects the search mode when the typed text has none
func New(ctx context.Context, searcher Searcher, prefs search.Preferences, keyword, initial string) Model {
	ti := textinput.New()
	ti.Placeholder = "search files and folders"
	ti.Prompt = promptStyle.Render("qf ") + "› "
	ti.SetValue(initial)
	ti.Focus()

	m := Model{
		ctx:      ctx,
		searcher: searcher,
		prefs:    prefs,
		keyword:  keyword,
		input:    ti,
	}
	if strings.TrimSpace(initial) != "" {
		m.gen = 1
	}
	return m
}

func (m Model) Init() tea.Cmd {
	if m.gen == 0 {
		return textinput.Blink
	}
	return tea.Batch(textinput.Blink, m.search(m.gen))
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case resultsMsg:
		return m.applyResults(msg), nil

	case tea.KeyMsg:
		return m.updateKey(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		return m, tea.Quit

	case "up", "ctrl+p", "ctrl+k":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case "down", "ctrl+n", "ctrl+j", "tab":
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}
		return m, nil

	case "enter":
		return m.activate(false)

	case "alt+enter":
		return m.activate(true)
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() == before {
		return m, cmd
	}

	m.gen++
	return m, tea.Batch(cmd, m.search(m.gen))
}

// activate picks the action of the highlighted row; DoNothing keeps the TUI open
func (m Model) activate(alt bool) (tea.Model, tea.Cmd) {
	if m.cursor >= len(m.items) {
		return m, nil
	}

	item := m.items[m.cursor]
	action := item.OnEnter
	if alt {
		action = item.OnAltEnter
	}
	if !action.Ends() {
		if alt && item.Candidate != nil {
			m.status = fmt.Sprintf("unknown terminal %q", m.prefs.TerminalEmulator)
		}
		return m, nil
	}

	m.chosen = &action
	return m, tea.Quit
}

// search runs the query in the background; the result is tagged with gen
func (m Model) search(gen uint64) tea.Cmd {
	keyword, query := m.prefs.SplitKeyword(m.input.Value())
	if keyword == "" {
		keyword = m.keyword
	}

	ctx, searcher, prefs := m.ctx, m.searcher, m.prefs
	return func() tea.Msg {
		items, err := searcher.OnQueryGen(ctx, gen, keyword, query, prefs)
		return resultsMsg{gen: gen, items: items, err: err}
	}
}

// applyResults drops rows that belong to an older query
func (m Model) applyResults(msg resultsMsg) Model {
	if msg.gen != m.gen || errors.Is(msg.err, search.ErrSuperseded) {
		return m
	}
	if msg.err != nil {
		m.status = msg.err.Error()
		return m
	}

	m.items = msg.items
	m.cursor = 0
	m.status = ""
	return m
}

// Chosen returns the action picked by the user, nil when the TUI was left with ESC
func (m Model) Chosen() *search.Action {
	return m.chosen
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	for i, item := range m.items {
		line := item.Name
		if item.Candidate != nil && item.Candidate.IsDir {
			line += "/"
		}
		switch {
		case item.Candidate == nil:
			line = messageStyle.Render(line)
		case i == m.cursor:
			line = selectedStyle.Render(line)
		case item.Candidate.IsDir:
			line = directoryStyle.Render(line)
		default:
			line = fileStyle.Render(line)
		}

		marker := "  "
		if i == m.cursor {
			marker = "› "
		}
		b.WriteString(marker + line + "\n")
	}

	if m.status != "" {
		b.WriteString("\n" + statusStyle.Render(m.status) + "\n")
	}
	b.WriteString("\n" + helpStyle.Render("enter open • alt+enter terminal • ↑/↓ move • esc quit"))
	return b.String()
}

// Run starts the TUI and returns the chosen action, nil when the user quit
func Run(ctx context.Context, searcher Searcher, prefs search.Preferences, keyword, initial string) (*search.Action, error) {
	p := tea.NewProgram(New(ctx, searcher, prefs, keyword, initial), tea.WithAltScreen(), tea.WithContext(ctx))
	final, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("tui: %w", err)
	}
	return final.(Model).Chosen(), nil
}

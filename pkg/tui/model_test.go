package tui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/lvim-tech/qf/pkg/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type query struct {
	gen     uint64
	keyword string
	input   string
}

type fakeSearcher struct {
	queries []query
	items   []search.Item
	err     error
}

func (f *fakeSearcher) OnQueryGen(_ context.Context, gen uint64, keyword, rawInput string, _ search.Preferences) ([]search.Item, error) {
	f.queries = append(f.queries, query{gen: gen, keyword: keyword, input: rawInput})
	return f.items, f.err
}

func testItems() []search.Item {
	report := &search.Candidate{Path: "/home/u/report.pdf", Name: "/home/u/report.pdf"}
	reports := &search.Candidate{Path: "/home/u/reports", Name: "/home/u/reports", IsDir: true}
	return []search.Item{
		{
			Name:       report.Name,
			OnEnter:    search.OpenAction(report.Path),
			OnAltEnter: search.TerminalAction("tilix", report.Dir()),
			Candidate:  report,
		},
		{
			Name:       reports.Name,
			OnEnter:    search.OpenAction(reports.Path),
			OnAltEnter: search.TerminalAction("tilix", reports.Dir()),
			Candidate:  reports,
		},
	}
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	require.True(t, ok)
	return nm, cmd
}

func withItems(m Model, items []search.Item) Model {
	m.gen++
	return m.applyResults(resultsMsg{gen: m.gen, items: items})
}

func TestUpdate_TypingStartsNewGeneration(t *testing.T) {
	m := New(context.Background(), &fakeSearcher{}, search.DefaultPreferences(), "", "")
	assert.Zero(t, m.gen)

	m, cmd := update(t, m, key("r"))
	assert.Equal(t, uint64(1), m.gen)
	assert.NotNil(t, cmd)

	m, _ = update(t, m, key("e"))
	assert.Equal(t, uint64(2), m.gen)
	assert.Equal(t, "re", m.input.Value())
}

func TestInit_SearchesInitialQuery(t *testing.T) {
	m := New(context.Background(), &fakeSearcher{}, search.DefaultPreferences(), "", "report")
	assert.Equal(t, uint64(1), m.gen)
	assert.NotNil(t, m.Init())

	empty := New(context.Background(), &fakeSearcher{}, search.DefaultPreferences(), "", "")
	assert.Zero(t, empty.gen)
}

func TestSearch_Keyword(t *testing.T) {
	fs := &fakeSearcher{}
	prefs := search.DefaultPreferences()

	m := New(context.Background(), fs, prefs, "", "ff report")
	msg, ok := m.search(m.gen)().(resultsMsg)
	require.True(t, ok)
	assert.Equal(t, uint64(1), msg.gen)

	m = New(context.Background(), fs, prefs, "fd", "report")
	m.search(4)()

	assert.Equal(t, []query{{gen: 1, keyword: "ff", input: "report"}, {gen: 4, keyword: "fd", input: "report"}}, fs.queries)
}

func TestApplyResults_DropsStaleGenerations(t *testing.T) {
	m := New(context.Background(), &fakeSearcher{}, search.DefaultPreferences(), "", "")
	m.gen = 2

	m, _ = update(t, m, resultsMsg{gen: 1, items: testItems()})
	assert.Empty(t, m.items)

	m, _ = update(t, m, resultsMsg{gen: 2, err: search.ErrSuperseded})
	assert.Empty(t, m.items)
	assert.Empty(t, m.status)

	m, _ = update(t, m, resultsMsg{gen: 2, items: testItems()})
	assert.Len(t, m.items, 2)
}

func TestEnterOpens(t *testing.T) {
	m := withItems(New(context.Background(), &fakeSearcher{}, search.DefaultPreferences(), "", ""), testItems())

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	require.NotNil(t, m.Chosen())
	assert.Equal(t, search.OpenAction("/home/u/reports"), *m.Chosen())
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestAltEnterOpensTerminal(t *testing.T) {
	m := withItems(New(context.Background(), &fakeSearcher{}, search.DefaultPreferences(), "", ""), testItems())

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter, Alt: true})
	require.NotNil(t, m.Chosen())
	assert.Equal(t, search.TerminalAction("tilix", "/home/u"), *m.Chosen())
}

func TestEnterOnMessageRowKeepsOpen(t *testing.T) {
	rows := []search.Item{{Name: search.MessageKeepTyping, OnEnter: search.DoNothingAction(), OnAltEnter: search.DoNothingAction()}}
	m := withItems(New(context.Background(), &fakeSearcher{}, search.DefaultPreferences(), "", ""), rows)

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, m.Chosen())
	assert.Nil(t, cmd)
}

func TestAltEnterUnknownTerminal(t *testing.T) {
	items := testItems()
	items[0].OnAltEnter = search.DoNothingAction()
	prefs := search.DefaultPreferences()
	prefs.TerminalEmulator = "unknown-term"
	m := withItems(New(context.Background(), &fakeSearcher{}, prefs, "", ""), items)

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter, Alt: true})
	assert.Nil(t, m.Chosen())
	assert.Nil(t, cmd)
	assert.Contains(t, m.status, "unknown-term")
}

func TestCursorStaysInRange(t *testing.T) {
	m := withItems(New(context.Background(), &fakeSearcher{}, search.DefaultPreferences(), "", ""), testItems())

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 0, m.cursor)
	for i := 0; i < 5; i++ {
		m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	}
	assert.Equal(t, 1, m.cursor)

	m = withItems(m, testItems()[:1])
	assert.Equal(t, 0, m.cursor)
}

func TestEscQuitsWithoutAction(t *testing.T) {
	m := withItems(New(context.Background(), &fakeSearcher{}, search.DefaultPreferences(), "", ""), testItems())

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Nil(t, m.Chosen())
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestView(t *testing.T) {
	m := withItems(New(context.Background(), &fakeSearcher{}, search.DefaultPreferences(), "", ""), testItems())

	view := m.View()
	assert.Contains(t, view, "/home/u/report.pdf")
	assert.Contains(t, view, "/home/u/reports/")
	assert.Contains(t, view, "alt+enter terminal")
}

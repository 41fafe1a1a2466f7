package search

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testAppIcon = "icons/qf.svg"

func newTestHandler(r *fakeRunner, dirs ...string) (*Handler, *[]string) {
	d, _ := newTestDispatcher(r, dirs...)
	var errs []string
	h := NewHandler(d, testAppIcon, func(title, msg string) {
		errs = append(errs, title+": "+msg)
	})
	return h, &errs
}

func TestOnQuery_ShortInputNeverSearches(t *testing.T) {
	for _, input := range []string{"", " ", "a", " a ", "é"} {
		t.Run(fmt.Sprintf("%q", input), func(t *testing.T) {
			r := newFakeRunner("fd").output("/x\n", 0)
			h, _ := newTestHandler(r)

			items, err := h.OnQuery(context.Background(), "f", input, testPrefs())
			require.NoError(t, err)

			require.Len(t, items, 1)
			assert.Equal(t, MessageKeepTyping, items[0].Name)
			assert.Equal(t, DoNothing, items[0].OnEnter.Kind)
			assert.Equal(t, testAppIcon, items[0].Icon)
			assert.Zero(t, r.callCount())
			assert.Empty(t, r.lookups)
		})
	}
}

func TestOnQuery_ReportScenario(t *testing.T) {
	r := newFakeRunner("fd").output("/home/u/report.pdf\n/home/u/reports\n", 0)
	h, _ := newTestHandler(r, "/home/u/reports")

	items, err := h.OnQuery(context.Background(), "f", "report", testPrefs())
	require.NoError(t, err)

	require.Len(t, items, 2)
	assert.Equal(t, "/home/u/report.pdf", items[0].Name)
	assert.Equal(t, testFileIcon, items[0].Icon)
	assert.Equal(t, OpenAction("/home/u/report.pdf"), items[0].OnEnter)
	assert.Equal(t, RunScriptAction("gnome-terminal", "--working-directory", "/home/u"), items[0].OnAltEnter)

	assert.Equal(t, "/home/u/reports", items[1].Name)
	assert.Equal(t, testFolderIcon, items[1].Icon)
	assert.Equal(t, OpenAction("/home/u/reports"), items[1].OnEnter)
	assert.Equal(t, RunScriptAction("gnome-terminal", "--working-directory", "/home/u/reports"), items[1].OnAltEnter)
}

func TestOnQuery_ExitOneEmptyOutputIsNoResults(t *testing.T) {
	r := newFakeRunner("fd").output("", 1)
	h, errs := newTestHandler(r)

	items, err := h.OnQuery(context.Background(), "f", "report", testPrefs())
	require.NoError(t, err)

	require.Len(t, items, 1)
	assert.Equal(t, "No Results found matching report", items[0].Name)
	assert.Equal(t, HideWindow, items[0].OnEnter.Kind)
	assert.Empty(t, *errs)
}

func TestOnQuery_RenderedLengthIsMinOfCapAndLines(t *testing.T) {
	for _, n := range []int{1, 14, 15, 16, 50} {
		t.Run(fmt.Sprint(n), func(t *testing.T) {
			var b strings.Builder
			for i := 0; i < n; i++ {
				fmt.Fprintf(&b, "/p/%d\n\n", i)
			}
			r := newFakeRunner("fd").output(b.String(), 0)
			h, _ := newTestHandler(r)

			items, err := h.OnQuery(context.Background(), "f", "pp", testPrefs())
			require.NoError(t, err)

			require.Len(t, items, min(n, MaxResults))
			for i, item := range items {
				assert.Equal(t, fmt.Sprintf("/p/%d", i), item.Name)
			}
		})
	}
}

func TestOnQuery_KeywordSelectsMode(t *testing.T) {
	for _, tc := range []struct {
		keyword string
		want    []string
	}{
		{"ff", []string{"-t", "f"}},
		{"fd", []string{"-t", "d"}},
	} {
		r := newFakeRunner("fd").output("", 0)
		h, _ := newTestHandler(r)

		_, err := h.OnQuery(context.Background(), tc.keyword, "report", testPrefs())
		require.NoError(t, err)
		require.Equal(t, 1, r.callCount())
		assert.Subset(t, r.calls[0].args, tc.want)
	}

	r := newFakeRunner("fd").output("", 0)
	h, _ := newTestHandler(r)
	_, err := h.OnQuery(context.Background(), "f", "report", testPrefs())
	require.NoError(t, err)
	assert.NotContains(t, r.calls[0].args, "-t")
}

func TestOnQuery_TrimsQuery(t *testing.T) {
	r := newFakeRunner("fd").output("", 0)
	h, _ := newTestHandler(r)

	items, err := h.OnQuery(context.Background(), "f", "  report  ", testPrefs())
	require.NoError(t, err)
	assert.Equal(t, "No Results found matching report", items[0].Name)
	assert.Equal(t, "report", r.calls[0].args[len(r.calls[0].args)-1])
}

func TestOnQuery_ToolUnavailable(t *testing.T) {
	r := newFakeRunner()
	h, errs := newTestHandler(r)

	items, err := h.OnQuery(context.Background(), "f", "report", testPrefs())
	require.NoError(t, err)

	require.Len(t, items, 1)
	assert.Equal(t, MessageToolUnavailable, items[0].Name)
	assert.Equal(t, HideWindow, items[0].OnEnter.Kind)
	require.Len(t, *errs, 1)
	assert.Contains(t, (*errs)[0], "tool unavailable")
}

func TestOnQueryGen_StaleQueryIsDropped(t *testing.T) {
	r := newFakeRunner("fd").output("/home/u/abc.txt\n", 0)
	h, _ := newTestHandler(r)

	items, err := h.OnQueryGen(context.Background(), 2, "f", "abc", testPrefs())
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "/home/u/abc.txt", items[0].Name)

	items, err = h.OnQueryGen(context.Background(), 1, "f", "ab", testPrefs())
	assert.ErrorIs(t, err, ErrSuperseded)
	assert.Nil(t, items)
	assert.Equal(t, 1, r.callCount())
}

func TestOnQuery_TerminalPreference(t *testing.T) {
	r := newFakeRunner("fd").output("/home/u/notes.txt\n", 0)

	prefs := testPrefs()
	prefs.TerminalEmulator = "tilix"
	h, _ := newTestHandler(r)
	items, err := h.OnQuery(context.Background(), "f", "notes", prefs)
	require.NoError(t, err)
	assert.Equal(t, RunScriptAction("tilix", "--working-directory", "/home/u"), items[0].OnAltEnter)

	prefs.TerminalEmulator = "unknown-term"
	items, err = h.OnQuery(context.Background(), "f", "notes", prefs)
	require.NoError(t, err)
	assert.Equal(t, DoNothingAction(), items[0].OnAltEnter)
}

func TestRenderItems_Caps(t *testing.T) {
	cs := make([]Candidate, 20)
	for i := range cs {
		cs[i] = Candidate{Path: fmt.Sprint(i), Name: fmt.Sprint(i)}
	}
	items := RenderItems(cs, testPrefs())
	assert.Len(t, items, MaxResults)
	assert.Same(t, &cs[0], items[0].Candidate)
}

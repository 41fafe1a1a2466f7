package main

import (
	"bytes"
	"testing"

	"github.com/lvim-tech/qf/pkg/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveMode(t *testing.T) {
	prefs := search.DefaultPreferences()

	for _, tc := range []struct {
		in      string
		mode    search.Mode
		keyword string
	}{
		{"", search.All, "f"},
		{"f", search.All, "f"},
		{"ff", search.FileOnly, "ff"},
		{"fd", search.DirectoryOnly, "fd"},
		{"file", search.FileOnly, "ff"},
		{"directory", search.DirectoryOnly, "fd"},
		{"nonsense", search.All, "f"},
	} {
		mode, kw := resolveMode(prefs, tc.in)
		assert.Equal(t, tc.mode, mode, tc.in)
		assert.Equal(t, tc.keyword, kw, tc.in)
	}
}

func TestSplitQuery(t *testing.T) {
	prefs := search.DefaultPreferences()

	for _, tc := range []struct {
		name    string
		flag    string
		words   []string
		keyword string
		rest    []string
	}{
		{"keyword first", "", []string{"ff", "report"}, "ff", []string{"report"}},
		{"keyword in one arg", "", []string{"fd reports"}, "fd", []string{"reports"}},
		{"no keyword", "", []string{"report"}, "", []string{"report"}},
		{"flag wins", "fd", []string{"ff", "report"}, "fd", []string{"ff", "report"}},
		{"no words", "", nil, "", nil},
	} {
		t.Run(tc.name, func(t *testing.T) {
			kw, rest := splitQuery(prefs, tc.flag, tc.words)
			assert.Equal(t, tc.keyword, kw)
			assert.Equal(t, tc.rest, rest)
		})
	}

	kw, rest := splitQuery(prefs, "", []string{"ff", "report"})
	mode, _ := resolveMode(prefs, kw)
	assert.Equal(t, search.FileOnly, mode)
	assert.Equal(t, []string{"report"}, rest)
}

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"version"})
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	require.NoError(t, Execute())
	assert.Equal(t, "qf version dev\n", out.String())
}

func TestListRejectsBadFormat(t *testing.T) {
	rootCmd.SetArgs([]string{"list", "--output", "xml", "report"})
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		outputFormat = "table"
	})

	err := Execute()
	assert.ErrorContains(t, err, "unknown output format")
}

package output

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/lvim-tech/qf/pkg/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func testList() *search.ResultList {
	return &search.ResultList{
		Query: "report",
		Mode:  search.All,
		State: search.Rendered,
		Candidates: []search.Candidate{
			{Path: "/home/u/report.pdf", Name: "/home/u/report.pdf", Icon: "icons/file.png"},
			{Path: "/home/u/reports", Name: "/home/u/reports", Icon: "icons/folder.png", IsDir: true},
		},
	}
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"": Table, "TABLE": Table, "json": JSON, "yml": YAML, " yaml ": YAML} {
		got, err := ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseFormat("xml")
	assert.ErrorContains(t, err, "xml")
}

func TestWrite_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, JSON, NewReport(testList())))

	var got Report
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "report", got.Query)
	assert.Equal(t, "all", got.Mode)
	require.Len(t, got.Results, 2)
	assert.True(t, got.Results[1].IsDir)
	assert.Contains(t, buf.String(), `"is_dir": true`)
}

func TestWrite_YAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, YAML, NewReport(testList())))

	var got Report
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, testList().Candidates, got.Results)
	assert.Contains(t, buf.String(), "path: /home/u/report.pdf")
}

func TestWrite_EmptyJSONHasResultsArray(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, JSON, NewReport(&search.ResultList{Query: "zz", State: search.Completed})))
	assert.Contains(t, buf.String(), `"results": []`)
}

func TestWrite_Table(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, Table, NewReport(testList())))

	out := buf.String()
	assert.Contains(t, out, "report (all)")
	assert.Contains(t, out, "/home/u/report.pdf")
	assert.Contains(t, out, "dir")
	assert.NotContains(t, out, "search rendered")
}

func TestWrite_TableTimedOut(t *testing.T) {
	list := testList()
	list.State = search.TimedOut

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, Table, NewReport(list)))
	assert.Contains(t, buf.String(), "search timed-out")
}

func TestWrite_TableNoResults(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, Table, NewReport(&search.ResultList{Query: "zz", State: search.Completed})))
	assert.Contains(t, buf.String(), "no results")
}

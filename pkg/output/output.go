// Package output prints search results for `qf list` as a table, JSON or YAML.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/lvim-tech/qf/pkg/search"
	"gopkg.in/yaml.v3"
)

// Format is an output format
type Format string

const (
	Table Format = "table"
	JSON  Format = "json"
	YAML  Format = "yaml"
)

// Formats lists the supported formats
var Formats = []Format{Table, JSON, YAML}

// ParseFormat accepts a format name, case-insensitively ("yml" is YAML)
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "table":
		return Table, nil
	case "json":
		return JSON, nil
	case "yaml", "yml":
		return YAML, nil
	default:
		return "", fmt.Errorf("unknown output format %q (use table, json or yaml)", s)
	}
}

// Report is what `qf list` prints
type Report struct {
	Query   string             `json:"query" yaml:"query"`
	Mode    string             `json:"mode" yaml:"mode"`
	State   string             `json:"state" yaml:"state"`
	Command string             `json:"command" yaml:"command"`
	Results []search.Candidate `json:"results" yaml:"results"`
}

func NewReport(list *search.ResultList) Report {
	results := list.Candidates
	if results == nil {
		results = []search.Candidate{}
	}
	return Report{
		Query:   list.Query,
		Mode:    list.Mode.String(),
		State:   list.State.String(),
		Command: list.Command.String(),
		Results: results,
	}
}

// Write prints r to w in format f
func Write(w io.Writer, f Format, r Report) error {
	switch f {
	case JSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	case YAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return err
		}
		return enc.Close()
	case Table, "":
		_, err := io.WriteString(w, renderTable(r))
		return err
	default:
		return fmt.Errorf("unknown output format %q", f)
	}
}

func renderTable(r Report) string {
	var b strings.Builder
	b.WriteString(text.Bold.Sprint(fmt.Sprintf("%s (%s)", r.Query, r.Mode)) + "\n")

	tw := table.NewWriter()
	tw.SetStyle(table.StyleLight)
	tw.AppendHeader(table.Row{"#", "Type", "Path"})
	for i, c := range r.Results {
		kind := "file"
		if c.IsDir {
			kind = "dir"
		}
		tw.AppendRow(table.Row{i + 1, kind, c.Path})
	}
	if len(r.Results) == 0 {
		tw.AppendRow(table.Row{"-", "-", "no results"})
	}
	b.WriteString(tw.Render())
	b.WriteString("\n")

	if r.State == search.TimedOut.String() || r.State == search.Failed.String() {
		b.WriteString(fmt.Sprintf("search %s\n", r.State))
	}
	return b.String()
}

package launcher

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	fzfAltKey    = "alt-enter"
	fzfNoMatch   = 1
	fzfInterrupt = 130
)

type Fzf struct {
	args []string
}

func NewFzf(args []string) *Fzf {
	return &Fzf{args: args}
}

func (f *Fzf) Show(options []string, prompt string) (string, error) {
	sel, err := f.run(optionsToRows(options), prompt, false)
	if err != nil {
		return "", err
	}
	return sel.Label, nil
}

// Prompt runs fzf without input and returns the typed query
func (f *Fzf) Prompt(prompt string) (string, error) {
	args := append([]string{}, f.args...)
	args = append(args, "--prompt", prompt+"> ", "--print-query")

	res, err := runCommand("fzf", args, "", true)
	if err != nil {
		return "", fmt.Errorf("failed to run fzf: %w", err)
	}
	if res.exitCode != 0 && res.exitCode != fzfNoMatch {
		return "", ErrCancelled
	}

	query, _, _ := strings.Cut(res.stdout, "\n")
	query = strings.TrimSpace(query)
	if query == "" {
		return "", ErrCancelled
	}
	return query, nil
}

func (f *Fzf) Select(rows []Row, prompt string) (Selection, error) {
	return f.run(rows, prompt, true)
}

func (f *Fzf) run(rows []Row, prompt string, alt bool) (Selection, error) {
	res, err := runCommand("fzf", f.selectArgs(prompt, alt), indexedRows(rows), true)
	if err != nil {
		return Selection{}, fmt.Errorf("failed to run fzf: %w", err)
	}

	switch res.exitCode {
	case 0:
	case fzfNoMatch, fzfInterrupt:
		return Selection{}, ErrCancelled
	default:
		return Selection{}, fmt.Errorf("fzf exited with code %d", res.exitCode)
	}

	return parseFzfOutput(rows, res.stdout, alt)
}

func (f *Fzf) selectArgs(prompt string, alt bool) []string {
	args := append([]string{}, f.args...)
	args = append(args, "--prompt", prompt+"> ", "--delimiter", "\t", "--with-nth", "2..")
	if alt {
		args = append(args, "--expect", fzfAltKey)
	}
	return args
}

// indexedRows prefixes every row with its index so duplicates stay distinct
func indexedRows(rows []Row) string {
	var b strings.Builder
	for i, r := range rows {
		fmt.Fprintf(&b, "%d\t%s\n", i, sanitize(r.Label))
	}
	return b.String()
}

// parseFzfOutput reads "<key>\n<index>\t<label>" (key line only with --expect)
func parseFzfOutput(rows []Row, out string, expect bool) (Selection, error) {
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")

	pressed := ""
	if expect {
		if len(lines) < 2 {
			return Selection{}, ErrCancelled
		}
		pressed, lines = lines[0], lines[1:]
	}

	idx, _, found := strings.Cut(lines[0], "\t")
	if !found {
		return Selection{}, ErrCancelled
	}
	i, err := strconv.Atoi(idx)
	if err != nil || i < 0 || i >= len(rows) {
		return Selection{}, fmt.Errorf("unexpected fzf output %q", lines[0])
	}

	return Selection{Index: i, Label: rows[i].Label, Alt: pressed == fzfAltKey}, nil
}

func (f *Fzf) SupportsAlt() bool {
	return true
}

func (f *Fzf) Name() string {
	return "fzf"
}

func (f *Fzf) Args() []string {
	return f.args
}

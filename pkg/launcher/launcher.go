// Package launcher provides an abstraction layer for different launcher programs.
// It supports rofi, fuzzel, dmenu, bemenu, fzf and a plain terminal prompt with a
// unified interface. Launchers are selected via flags or configuration, and the
// package handles command execution and error handling automatically.
package launcher

import (
	"bytes"
	"errors"
	"os"
	"os/exec"
	"strconv"
	"strings"
)

// Row is one entry of a menu
type Row struct {
	Label string
	Icon  string
}

// Selection is the row the user picked
type Selection struct {
	Index int
	Label string
	// Alt is set when the row was accepted with the secondary key (Alt+Enter)
	Alt bool
}

// Launcher is a menu program used as the qf UI
type Launcher interface {
	Name() string
	Args() []string

	// Show shows plain options and returns the chosen one
	Show(options []string, prompt string) (string, error)

	// Prompt asks for free text
	Prompt(prompt string) (string, error)

	// Select shows rows (with icons where supported) and returns the choice
	Select(rows []Row, prompt string) (Selection, error)

	// SupportsAlt reports whether Select can return Alt selections
	SupportsAlt() bool
}

// menuResult is the raw outcome of a menu process
type menuResult struct {
	stdout   string
	exitCode int
}

// runCommand runs a menu program with input on stdin.
// Replaced in tests.
var runCommand = func(name string, args []string, input string, interactive bool) (menuResult, error) {
	cmd := exec.Command(name, args...)
	cmd.Stdin = strings.NewReader(input)
	if interactive {
		// fzf draws its UI on stderr
		cmd.Stderr = os.Stderr
	}

	var out bytes.Buffer
	cmd.Stdout = &out

	err := cmd.Run()
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return menuResult{stdout: out.String(), exitCode: exitErr.ExitCode()}, nil
	}
	if err != nil {
		return menuResult{}, err
	}
	return menuResult{stdout: out.String()}, nil
}

// iconRows renders rows in the rofi/fuzzel dmenu icon protocol: "label\0icon\x1f<icon>"
func iconRows(rows []Row) string {
	var b strings.Builder
	for i, r := range rows {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(sanitize(r.Label))
		if r.Icon != "" {
			b.WriteString("\x00icon\x1f")
			b.WriteString(sanitize(r.Icon))
		}
	}
	return b.String()
}

// plainRows renders rows one label per line
func plainRows(rows []Row) string {
	labels := make([]string, len(rows))
	for i, r := range rows {
		labels[i] = sanitize(r.Label)
	}
	return strings.Join(labels, "\n")
}

// sanitize keeps a label on one line; newlines in file names would split the row
func sanitize(s string) string {
	return strings.NewReplacer("\n", " ", "\x00", "", "\x1f", "").Replace(s)
}

// selectionByLabel maps a returned line back to its row
func selectionByLabel(rows []Row, line string) (Selection, error) {
	line = strings.TrimRight(line, "\n")
	if line == "" {
		return Selection{}, ErrCancelled
	}
	for i, r := range rows {
		if sanitize(r.Label) == line {
			return Selection{Index: i, Label: r.Label}, nil
		}
	}
	return Selection{Index: -1, Label: line}, nil
}

// selectionByIndex maps a printed row index back to its row
func selectionByIndex(rows []Row, line string) (Selection, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return Selection{}, ErrCancelled
	}
	idx, err := strconv.Atoi(line)
	if err != nil || idx < 0 || idx >= len(rows) {
		return Selection{Index: -1, Label: line}, nil
	}
	return Selection{Index: idx, Label: rows[idx].Label}, nil
}

func optionsToRows(options []string) []Row {
	rows := make([]Row, len(options))
	for i, o := range options {
		rows[i] = Row{Label: o}
	}
	return rows
}

package search

import (
	"strconv"
	"strings"
	"time"

	"github.com/kballard/go-shellquote"
)

// CommandSpec is a fully built fd invocation.
// Filters are applied in-process to the output lines, in order.
type CommandSpec struct {
	Name    string
	Tool    string
	Args    []string
	Pattern string
	Filters []string
	Timeout time.Duration
}

// BuildCommand translates a query into an fd invocation:
//
//	timeout 5s ionice -c 3 <tool> --threads 1 [--hidden] [-t f|-t d] [--search-path <dir>]... <pattern>
//
// The first word of query is the fd pattern, every other word becomes a filter.
func BuildCommand(query string, mode Mode, prefs Preferences, tool string) CommandSpec {
	prefs = prefs.normalized()

	words := strings.Fields(query)
	var pattern string
	var filters []string
	if len(words) > 0 {
		pattern = words[0]
		filters = words[1:]
	}

	args := []string{formatTimeout(prefs.Timeout), "ionice", "-c", "3", tool, "--threads", "1"}

	if prefs.HiddenEnabled() {
		args = append(args, "--hidden")
	}

	if t := mode.typeFilter(); t != "" {
		args = append(args, "-t", t)
	}

	for _, root := range prefs.Roots() {
		args = append(args, "--search-path", root)
	}

	// a pattern like "-x" must not turn into an fd flag
	if strings.HasPrefix(pattern, "-") {
		args = append(args, "--")
	}
	args = append(args, pattern)

	return CommandSpec{
		Name:    "timeout",
		Tool:    tool,
		Args:    args,
		Pattern: pattern,
		Filters: filters,
		Timeout: prefs.Timeout,
	}
}

// Argv returns the program followed by its arguments
func (c CommandSpec) Argv() []string {
	return append([]string{c.Name}, c.Args...)
}

// String renders the equivalent shell pipeline. It is only used for logging;
// the command is never run through a shell.
func (c CommandSpec) String() string {
	var b strings.Builder
	b.WriteString(shellquote.Join(c.Argv()...))
	for _, f := range c.Filters {
		b.WriteString(" | grep ")
		b.WriteString(shellquote.Join(f))
	}
	return b.String()
}

// formatTimeout renders d for coreutils timeout: "5s", "1.5s"
func formatTimeout(d time.Duration) string {
	if d%time.Second == 0 {
		return strconv.FormatInt(int64(d/time.Second), 10) + "s"
	}
	return strconv.FormatFloat(d.Seconds(), 'f', -1, 64) + "s"
}

// ApplyFilters keeps the lines that contain every filter word, like a chain of grep stages
func ApplyFilters(lines, filters []string) []string {
	if len(filters) == 0 {
		return lines
	}
	var kept []string
	for _, line := range lines {
		if matchesAll(line, filters) {
			kept = append(kept, line)
		}
	}
	return kept
}

func matchesAll(line string, filters []string) bool {
	for _, f := range filters {
		if !strings.Contains(line, f) {
			return false
		}
	}
	return true
}

// splitLines splits tool output into non-empty lines
func splitLines(out []byte) []string {
	var lines []string
	for _, line := range strings.Split(string(out), "\n") {
		line = strings.TrimSuffix(line, "\r")
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

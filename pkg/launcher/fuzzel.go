package launcher

import (
	"fmt"
	"slices"
	"strings"
)

type Fuzzel struct {
	args []string
}

func NewFuzzel(args []string) *Fuzzel {
	return &Fuzzel{args: args}
}

func (f *Fuzzel) Show(options []string, prompt string) (string, error) {
	sel, err := f.Select(optionsToRows(options), prompt)
	if err != nil {
		return "", err
	}
	return sel.Label, nil
}

func (f *Fuzzel) Prompt(prompt string) (string, error) {
	res, err := runCommand("fuzzel", f.baseArgs(prompt), "", false)
	if err != nil {
		return "", fmt.Errorf("failed to run fuzzel: %w", err)
	}
	if res.exitCode != 0 {
		return "", ErrCancelled
	}

	result := strings.TrimSpace(res.stdout)
	if result == "" {
		return "", ErrCancelled
	}
	return result, nil
}

func (f *Fuzzel) Select(rows []Row, prompt string) (Selection, error) {
	args := append(f.baseArgs(prompt), "--index")

	res, err := runCommand("fuzzel", args, iconRows(rows), false)
	if err != nil {
		return Selection{}, fmt.Errorf("failed to run fuzzel: %w", err)
	}
	if res.exitCode != 0 {
		return Selection{}, ErrCancelled
	}
	return selectionByIndex(rows, res.stdout)
}

// baseArgs always runs fuzzel in dmenu mode, even if the config forgot --dmenu
func (f *Fuzzel) baseArgs(prompt string) []string {
	args := append([]string{}, f.args...)
	if !slices.Contains(args, "--dmenu") && !slices.Contains(args, "-d") {
		args = append(args, "--dmenu")
	}
	return append(args, "--prompt", prompt+" ")
}

func (f *Fuzzel) SupportsAlt() bool {
	return false
}

func (f *Fuzzel) Name() string {
	return "fuzzel"
}

func (f *Fuzzel) Args() []string {
	return f.args
}

package launcher

import (
	"fmt"
	"strings"
)

// rofi exit code for -kb-custom-1
const rofiCustom1 = 10

type Rofi struct {
	args []string
}

func NewRofi(args []string) *Rofi {
	return &Rofi{args: args}
}

func (r *Rofi) Show(options []string, prompt string) (string, error) {
	sel, err := r.run(optionsToRows(options), prompt, false)
	if err != nil {
		return "", err
	}
	return sel.Label, nil
}

func (r *Rofi) Prompt(prompt string) (string, error) {
	args := append([]string{}, r.args...)
	args = append(args, "-dmenu", "-p", prompt)

	res, err := runCommand("rofi", args, "", false)
	if err != nil {
		return "", fmt.Errorf("failed to run rofi: %w", err)
	}
	if res.exitCode == 1 {
		return "", ErrCancelled
	}

	result := strings.TrimSpace(res.stdout)
	if result == "" {
		return "", ErrCancelled
	}
	return result, nil
}

func (r *Rofi) Select(rows []Row, prompt string) (Selection, error) {
	return r.run(rows, prompt, true)
}

func (r *Rofi) run(rows []Row, prompt string, alt bool) (Selection, error) {
	res, err := runCommand("rofi", r.selectArgs(prompt, alt), iconRows(rows), false)
	if err != nil {
		return Selection{}, fmt.Errorf("failed to run rofi: %w", err)
	}

	switch res.exitCode {
	case 0:
		return selectionByIndex(rows, res.stdout)
	case rofiCustom1:
		if !alt {
			return Selection{}, ErrCancelled
		}
		sel, err := selectionByIndex(rows, res.stdout)
		sel.Alt = true
		return sel, err
	case 1:
		return Selection{}, ErrCancelled
	default:
		return Selection{}, fmt.Errorf("rofi exited with code %d", res.exitCode)
	}
}

func (r *Rofi) selectArgs(prompt string, alt bool) []string {
	args := append([]string{}, r.args...)
	args = append(args, "-dmenu", "-p", prompt, "-format", "i", "-no-custom")
	if alt {
		args = append(args, "-kb-custom-1", "Alt+Return")
	}
	return args
}

func (r *Rofi) SupportsAlt() bool {
	return true
}

func (r *Rofi) Name() string {
	return "rofi"
}

func (r *Rofi) Args() []string {
	return r.args
}

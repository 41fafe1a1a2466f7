package launcher

import (
	"fmt"
	"strings"
)

// plainMenu runs dmenu-compatible programs that read lines on stdin and print the chosen line
type plainMenu struct {
	program string
	args    []string
}

func (m *plainMenu) Show(options []string, prompt string) (string, error) {
	return m.run(plainRows(optionsToRows(options)), prompt)
}

func (m *plainMenu) Prompt(prompt string) (string, error) {
	return m.run("", prompt)
}

func (m *plainMenu) Select(rows []Row, prompt string) (Selection, error) {
	out, err := m.run(plainRows(rows), prompt)
	if err != nil {
		return Selection{}, err
	}
	return selectionByLabel(rows, out)
}

func (m *plainMenu) run(input, prompt string) (string, error) {
	args := append([]string{}, m.args...)
	args = append(args, "-p", prompt)

	res, err := runCommand(m.program, args, input, false)
	if err != nil {
		return "", fmt.Errorf("failed to run %s: %w", m.program, err)
	}
	if res.exitCode == 1 {
		return "", ErrCancelled
	}
	if res.exitCode != 0 {
		return "", fmt.Errorf("%s exited with code %d", m.program, res.exitCode)
	}

	result := strings.TrimSpace(res.stdout)
	if result == "" {
		return "", ErrCancelled
	}
	return result, nil
}

func (m *plainMenu) SupportsAlt() bool {
	return false
}

func (m *plainMenu) Name() string {
	return m.program
}

func (m *plainMenu) Args() []string {
	return m.args
}

type Dmenu struct {
	plainMenu
}

func NewDmenu(args []string) *Dmenu {
	return &Dmenu{plainMenu{program: "dmenu", args: args}}
}

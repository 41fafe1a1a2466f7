package launcher

import (
	"errors"
	"fmt"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
)

// Term asks in the current terminal instead of a graphical menu
type Term struct {
	ask func(p survey.Prompt, response interface{}, opts ...survey.AskOpt) error
}

func NewTerm() *Term {
	return &Term{ask: survey.AskOne}
}

func (t *Term) Show(options []string, prompt string) (string, error) {
	sel, err := t.Select(optionsToRows(options), prompt)
	if err != nil {
		return "", err
	}
	return sel.Label, nil
}

func (t *Term) Prompt(prompt string) (string, error) {
	var answer string
	if err := t.ask(&survey.Input{Message: prompt}, &answer); err != nil {
		return "", termError(err)
	}

	answer = strings.TrimSpace(answer)
	if answer == "" {
		return "", ErrCancelled
	}
	return answer, nil
}

func (t *Term) Select(rows []Row, prompt string) (Selection, error) {
	if len(rows) == 0 {
		return Selection{}, ErrCancelled
	}

	labels := make([]string, len(rows))
	for i, r := range rows {
		labels[i] = sanitize(r.Label)
	}

	var idx int
	sel := &survey.Select{Message: prompt, Options: labels, PageSize: len(labels)}
	if err := t.ask(sel, &idx); err != nil {
		return Selection{}, termError(err)
	}
	if idx < 0 || idx >= len(rows) {
		return Selection{}, fmt.Errorf("selection %d out of range", idx)
	}
	return Selection{Index: idx, Label: rows[idx].Label}, nil
}

func termError(err error) error {
	if errors.Is(err, terminal.InterruptErr) {
		return ErrCancelled
	}
	return err
}

func (t *Term) SupportsAlt() bool {
	return false
}

func (t *Term) Name() string {
	return "term"
}

func (t *Term) Args() []string {
	return nil
}

package search

import (
	"fmt"

	"github.com/lvim-tech/qf/pkg/utils"
)

// ActionKind is what happens when a row is chosen
type ActionKind int

const (
	DoNothing ActionKind = iota
	HideWindow
	Open
	RunScript
)

func (k ActionKind) String() string {
	switch k {
	case HideWindow:
		return "hide"
	case Open:
		return "open"
	case RunScript:
		return "run"
	default:
		return "none"
	}
}

// Action is bound to a rendered row. It is built at render time and never stored.
type Action struct {
	Kind    ActionKind
	Target  string
	Program string
	Args    []string
}

// StartFunc starts a program without waiting for it
type StartFunc func(name string, args ...string) error

// KnownTerminals are the emulators that accept --working-directory
var KnownTerminals = []string{"gnome-terminal", "terminator", "tilix", "xfce-terminal", "xfce4-terminal"}

// OpenCommand is the program used for the primary action
var OpenCommand = "xdg-open"

func DoNothingAction() Action {
	return Action{Kind: DoNothing}
}

func HideWindowAction() Action {
	return Action{Kind: HideWindow}
}

// OpenAction opens path with the default handler
func OpenAction(path string) Action {
	return Action{Kind: Open, Target: path}
}

func RunScriptAction(program string, args ...string) Action {
	return Action{Kind: RunScript, Program: program, Args: args}
}

// TerminalAction opens terminal in dir. Unknown terminals get a no-op.
func TerminalAction(terminal, dir string) Action {
	for _, known := range KnownTerminals {
		if terminal == known {
			return RunScriptAction(terminal, "--working-directory", dir)
		}
	}
	return DoNothingAction()
}

// Command returns the program and arguments the action would start
func (a Action) Command() (string, []string, bool) {
	switch a.Kind {
	case Open:
		return OpenCommand, []string{a.Target}, true
	case RunScript:
		return a.Program, a.Args, true
	default:
		return "", nil, false
	}
}

// Ends reports whether performing the action should close the host
func (a Action) Ends() bool {
	return a.Kind != DoNothing
}

// Run performs the action with a detached process
func (a Action) Run() error {
	return a.RunWith(utils.StartDetachedProcess)
}

func (a Action) RunWith(start StartFunc) error {
	name, args, ok := a.Command()
	if !ok {
		return nil
	}
	if err := start(name, args...); err != nil {
		return fmt.Errorf("failed to start %s: %w", name, err)
	}
	return nil
}

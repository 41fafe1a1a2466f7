// Package find registers the qf search commands: everything, files only and directories only.
package find

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lvim-tech/qf/internal/logging"
	"github.com/lvim-tech/qf/pkg/commands"
	"github.com/lvim-tech/qf/pkg/launcher"
	"github.com/lvim-tech/qf/pkg/search"
	"github.com/lvim-tech/qf/pkg/utils"
)

const (
	OpenLabel     = "Open"
	TerminalLabel = "Open terminal here"
)

// runAction starts the chosen action. Replaced in tests.
var runAction = func(a search.Action) error {
	return a.Run()
}

func init() {
	for _, mode := range []search.Mode{search.All, search.FileOnly, search.DirectoryOnly} {
		commands.Register(commands.Command{
			Name:        mode.String(),
			Description: Description(mode),
			Run:         RunMode(mode),
		})
	}
}

// Description is the menu label of a search mode
func Description(mode search.Mode) string {
	switch mode {
	case search.FileOnly:
		return "Find files"
	case search.DirectoryOnly:
		return "Find folders"
	default:
		return "Find files and folders"
	}
}

func RunMode(mode search.Mode) func(commands.LauncherContext) commands.CommandResult {
	return func(ctx commands.LauncherContext) commands.CommandResult {
		return run(ctx, mode)
	}
}

func run(ctx commands.LauncherContext, mode search.Mode) commands.CommandResult {
	prefs := ctx.Preferences()
	keyword := prefs.KeywordForMode(mode)
	prompt := Description(mode)
	query := strings.Join(ctx.QueryWords(), " ")

	for {
		if strings.TrimSpace(query) == "" {
			q, err := ctx.Prompt(prompt)
			if err != nil {
				if ctx.IsDirectLaunch() {
					return commands.CommandResult{Success: false}
				}
				return commands.CommandResult{Success: false, Error: commands.ErrBack}
			}
			query = q
		}

		items, err := ctx.Searcher().OnQuery(ctx.Context(), keyword, query, prefs)
		if err != nil {
			return commands.CommandResult{Success: false, Error: err}
		}

		action, err := choose(ctx, items, query)
		if launcher.IsCancelled(err) {
			// ESC pressed - exit completely
			return commands.CommandResult{Success: false}
		}
		if err != nil {
			return commands.CommandResult{Success: false, Error: err}
		}

		if !action.Ends() {
			query = ""
			continue
		}

		logging.Debug(fmt.Sprintf("action %s %s%s", action.Kind, action.Target, action.Program))
		if err := runAction(action); err != nil {
			notifCfg := ctx.Config().GetNotificationConfig()
			utils.ShowErrorNotificationWithConfig(&notifCfg, "qf", err.Error())
			return commands.CommandResult{Success: false, Error: err}
		}
		return commands.CommandResult{Success: true}
	}
}

// choose shows the result rows and returns the action bound to the user's choice
func choose(ctx commands.LauncherContext, items []search.Item, prompt string) (search.Action, error) {
	rows := make([]launcher.Row, len(items))
	for i, item := range items {
		rows[i] = launcher.Row{Label: item.Name, Icon: item.Icon}
	}

	for {
		sel, err := ctx.Select(rows, prompt)
		if err != nil {
			return search.Action{}, err
		}
		if sel.Index < 0 || sel.Index >= len(items) {
			return search.DoNothingAction(), nil
		}

		item := items[sel.Index]
		if sel.Alt {
			return item.OnAltEnter, nil
		}
		if ctx.SupportsAlt() || item.Candidate == nil || item.OnAltEnter.Kind == search.DoNothing {
			return item.OnEnter, nil
		}

		// launchers without Alt+Enter get a second menu
		action, err := chooseAction(ctx, item)
		if errors.Is(err, commands.ErrBack) {
			continue
		}
		return action, err
	}
}

func chooseAction(ctx commands.LauncherContext, item search.Item) (search.Action, error) {
	selected, err := ctx.Show([]string{OpenLabel, TerminalLabel, commands.BackLabel}, item.Name)
	if err != nil {
		return search.Action{}, err
	}

	switch selected {
	case OpenLabel:
		return item.OnEnter, nil
	case TerminalLabel:
		return item.OnAltEnter, nil
	case commands.BackLabel:
		return search.Action{}, commands.ErrBack
	default:
		return search.DoNothingAction(), nil
	}
}

package launcher

import (
	"fmt"
	"strings"

	"github.com/lvim-tech/qf/pkg/config"
	"github.com/lvim-tech/qf/pkg/utils"
	"github.com/texttheater/golang-levenshtein/levenshtein"
)

// Auto picks the first installed launcher
const Auto = "auto"

// Names lists the supported launchers in detection order
var Names = []string{"rofi", "dmenu", "fzf", "bemenu", "fuzzel", "term"}

// maxSuggestDistance is the edit distance under which an unknown name gets a suggestion
const maxSuggestDistance = 3

// New returns the launcher called name, configured from cfg
func New(name string, cfg *config.Config) (Launcher, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" || name == Auto {
		return DetectAvailable(cfg)
	}

	var args []string
	if lc := cfg.GetLauncherCommand(name); lc != nil {
		args = lc.Args
	}

	switch name {
	case "rofi":
		return NewRofi(args), nil
	case "dmenu":
		return NewDmenu(args), nil
	case "fzf":
		return NewFzf(args), nil
	case "bemenu":
		return NewBemenu(args), nil
	case "fuzzel":
		return NewFuzzel(args), nil
	case "term":
		return NewTerm(), nil
	}

	if s := Suggest(name); s != "" {
		return nil, fmt.Errorf("%w %q, did you mean %q?", ErrUnknownLauncher, name, s)
	}
	return nil, fmt.Errorf("%w %q (supported: %s)", ErrUnknownLauncher, name, strings.Join(Names, ", "))
}

// Suggest returns the supported launcher closest to name, or "" when none is close
func Suggest(name string) string {
	best, bestDist := "", maxSuggestDistance+1
	for _, n := range Names {
		d := levenshtein.DistanceForStrings([]rune(strings.ToLower(name)), []rune(n), levenshtein.DefaultOptions)
		if d < bestDist {
			best, bestDist = n, d
		}
	}
	return best
}

// DetectAvailable намира първия наличен launcher
func DetectAvailable(cfg *config.Config) (Launcher, error) {
	interactive := utils.IsTerminal()

	for _, name := range Names {
		switch name {
		case "term":
			if !interactive {
				continue
			}
		case "fzf":
			if !interactive || !utils.CommandExists(name) {
				continue
			}
		default:
			if !utils.CommandExists(name) {
				continue
			}
		}
		return New(name, cfg)
	}

	return nil, ErrNoLauncher
}

package search

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/lvim-tech/qf/pkg/utils"
	"github.com/mitchellh/mapstructure"
)

const (
	// MaxResults caps both the candidate list and the rendered items
	MaxResults = 15

	DefaultTimeout = 5 * time.Second
)

// Preferences is the [search] config table. It is read once per query and never mutated.
type Preferences struct {
	BaseDir          string        `mapstructure:"base_dir"`
	ShowHidden       string        `mapstructure:"show_hidden"`
	TerminalEmulator string        `mapstructure:"terminal_emulator"`
	Timeout          time.Duration `mapstructure:"timeout"`
	MaxResults       int           `mapstructure:"max_results"`
	IconTheme        string        `mapstructure:"icon_theme"`
	IconSize         int           `mapstructure:"icon_size"`

	AllKeyword       string `mapstructure:"fa_kw"`
	FileKeyword      string `mapstructure:"ff_kw"`
	DirectoryKeyword string `mapstructure:"fd_kw"`
}

// DefaultPreferences returns default search preferences
func DefaultPreferences() Preferences {
	return Preferences{
		BaseDir:          "~",
		ShowHidden:       "false",
		TerminalEmulator: "gnome-terminal",
		Timeout:          DefaultTimeout,
		MaxResults:       MaxResults,
		IconSize:         128,
		AllKeyword:       "f",
		FileKeyword:      "ff",
		DirectoryKeyword: "fd",
	}
}

// DecodePreferences decodes the raw [search] table over the defaults.
// TOML booleans are accepted for show_hidden and become "true"/"false".
func DecodePreferences(raw map[string]any) (Preferences, error) {
	prefs := DefaultPreferences()

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &prefs,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			boolToStringHook,
			mapstructure.StringToTimeDurationHookFunc(),
		),
	})
	if err != nil {
		return DefaultPreferences(), err
	}
	if err := decoder.Decode(raw); err != nil {
		return DefaultPreferences(), fmt.Errorf("invalid [search] config: %w", err)
	}

	return prefs.normalized(), nil
}

func boolToStringHook(from, to reflect.Type, data any) (any, error) {
	if from.Kind() == reflect.Bool && to.Kind() == reflect.String {
		return strconv.FormatBool(data.(bool)), nil
	}
	return data, nil
}

func (p Preferences) normalized() Preferences {
	if p.Timeout <= 0 {
		p.Timeout = DefaultTimeout
	}
	if p.MaxResults <= 0 || p.MaxResults > MaxResults {
		p.MaxResults = MaxResults
	}
	if p.IconSize <= 0 {
		p.IconSize = 128
	}
	return p
}

// HiddenEnabled reports whether hidden entries are searched.
// Only the literal "true" enables them.
func (p Preferences) HiddenEnabled() bool {
	return p.ShowHidden == "true"
}

// Roots returns the ;-separated base directories in order, ~ expanded
func (p Preferences) Roots() []string {
	var roots []string
	for _, dir := range strings.Split(p.BaseDir, ";") {
		dir = strings.TrimSpace(dir)
		if dir == "" {
			continue
		}
		roots = append(roots, utils.ExpandHomeDir(dir))
	}
	return roots
}

// Keywords maps keyword ids to the keyword the user types
func (p Preferences) Keywords() map[string]string {
	return map[string]string{
		KeywordAll:       p.AllKeyword,
		KeywordFile:      p.FileKeyword,
		KeywordDirectory: p.DirectoryKeyword,
	}
}

// ModeForKeyword finds the mode bound to keyword; unknown keywords search everything
func (p Preferences) ModeForKeyword(keyword string) Mode {
	switch {
	case keyword == "":
		return All
	case keyword == p.FileKeyword:
		return FileOnly
	case keyword == p.DirectoryKeyword:
		return DirectoryOnly
	default:
		return All
	}
}

// KeywordForMode returns the keyword that selects m
func (p Preferences) KeywordForMode(m Mode) string {
	switch m {
	case FileOnly:
		return p.FileKeyword
	case DirectoryOnly:
		return p.DirectoryKeyword
	default:
		return p.AllKeyword
	}
}

// SplitKeyword separates a leading mode keyword from the query.
// When the first word is not a bound keyword the whole input is the query.
func (p Preferences) SplitKeyword(input string) (keyword, query string) {
	trimmed := strings.TrimLeft(input, " \t")
	first, rest, _ := strings.Cut(trimmed, " ")
	for _, kw := range []string{p.AllKeyword, p.FileKeyword, p.DirectoryKeyword} {
		if kw != "" && first == kw {
			return kw, rest
		}
	}
	return "", input
}

// Package commands provides the core command system for qf.
// It defines the Command type, CommandResult for navigation control,
// and LauncherContext interface for command execution.
package commands

import (
	"context"
	"errors"

	"github.com/lvim-tech/qf/pkg/config"
	"github.com/lvim-tech/qf/pkg/launcher"
	"github.com/lvim-tech/qf/pkg/search"
)

// BackLabel is the menu entry that returns to the previous menu
const BackLabel = "← Back"

// ErrBack is returned when the user chose BackLabel
var ErrBack = errors.New("back")

// CommandResult represents the result of command execution
type CommandResult struct {
	Success bool
	Error   error
}

// Command представлява команда
type Command struct {
	Name        string
	Description string
	Run         func(LauncherContext) CommandResult
}

// LauncherContext is what a command sees of the running qf
type LauncherContext interface {
	launcher.Launcher

	Context() context.Context
	Config() *config.Config
	Preferences() search.Preferences
	Searcher() *search.Handler

	// QueryWords holds the query given on the command line
	QueryWords() []string
	// IsDirectLaunch is true when the command was picked by keyword instead of the menu
	IsDirectLaunch() bool
}

// Context is the LauncherContext used by qf
type Context struct {
	launcher.Launcher

	ctx      context.Context
	cfg      *config.Config
	prefs    search.Preferences
	searcher *search.Handler
	words    []string
	direct   bool
}

// NewContext wraps l with everything a command needs
func NewContext(ctx context.Context, l launcher.Launcher, cfg *config.Config, prefs search.Preferences, searcher *search.Handler) *Context {
	return &Context{
		Launcher: l,
		ctx:      ctx,
		cfg:      cfg,
		prefs:    prefs,
		searcher: searcher,
	}
}

// Direct returns a copy of c for a command started directly with words as its query
func (c *Context) Direct(words []string) *Context {
	cp := *c
	cp.words = words
	cp.direct = true
	return &cp
}

func (c *Context) Context() context.Context { return c.ctx }
func (c *Context) Config() *config.Config { return c.cfg }
func (c *Context) Preferences() search.Preferences { return c.prefs }
func (c *Context) Searcher() *search.Handler { return c.searcher }
func (c *Context) QueryWords() []string { return c.words }
func (c *Context) IsDirectLaunch() bool { return c.direct }

// Package search turns a typed query into a bounded list of matching files
// and directories by running fd, and maps list selections to actions.
package search

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/lvim-tech/qf/internal/logging"
	"github.com/lvim-tech/qf/pkg/icons"
)

// State is a step of the query lifecycle:
// Idle -> ToolProbe -> CommandBuilt -> Executing -> (Completed | TimedOut | Failed) -> Rendered
type State int

const (
	Idle State = iota
	ToolProbe
	CommandBuilt
	Executing
	Completed
	TimedOut
	Failed
	Rendered
)

func (s State) String() string {
	switch s {
	case ToolProbe:
		return "tool-probe"
	case CommandBuilt:
		return "command-built"
	case Executing:
		return "executing"
	case Completed:
		return "completed"
	case TimedOut:
		return "timed-out"
	case Failed:
		return "failed"
	case Rendered:
		return "rendered"
	default:
		return "idle"
	}
}

// Candidate is one matched path with its display data
type Candidate struct {
	Path  string `json:"path" yaml:"path"`
	Name  string `json:"name" yaml:"name"`
	Icon  string `json:"icon" yaml:"icon"`
	IsDir bool   `json:"is_dir" yaml:"is_dir"`
}

// Dir is the directory a terminal should open in
func (c Candidate) Dir() string {
	if c.IsDir {
		return c.Path
	}
	return filepath.Dir(c.Path)
}

// ResultList is the outcome of one search, in fd output order
type ResultList struct {
	Query      string
	Mode       Mode
	State      State
	Generation uint64
	Command    CommandSpec
	Candidates []Candidate
}

// Dispatcher runs searches. Each newer search supersedes the previous one:
// the older invocation is cancelled and its result is dropped.
type Dispatcher struct {
	runner Runner
	tools  *ToolResolver
	icons  icons.Resolver
	stat   func(string) (os.FileInfo, error)

	mu         sync.Mutex
	generation uint64
	cancel     context.CancelFunc
}

func NewDispatcher(runner Runner, tools *ToolResolver, resolver icons.Resolver) *Dispatcher {
	return &Dispatcher{
		runner: runner,
		tools:  tools,
		icons:  resolver,
		stat:   os.Stat,
	}
}

// Search resolves fd, builds the command for query and runs it.
// It returns ErrToolUnavailable when fd is missing and ErrSuperseded when a
// newer Search started before this one finished.
func (d *Dispatcher) Search(ctx context.Context, query string, mode Mode, prefs Preferences) (*ResultList, error) {
	return d.SearchGen(ctx, 0, query, mode, prefs)
}

// SearchGen is Search with a caller-assigned generation. A search only
// supersedes the one in flight when gen is newer; an older gen returns
// ErrSuperseded without running anything. Zero takes the next number.
func (d *Dispatcher) SearchGen(ctx context.Context, gen uint64, query string, mode Mode, prefs Preferences) (*ResultList, error) {
	gen, ctx, ok := d.begin(ctx, gen)
	if !ok {
		logging.Debug(fmt.Sprintf("search #%d %q: stale, skipped", gen, query))
		return nil, ErrSuperseded
	}
	defer d.end(gen)

	list := &ResultList{Query: query, Mode: mode, Generation: gen}

	d.transition(list, ToolProbe)
	tool, err := d.tools.Resolve()
	if err != nil {
		d.transition(list, Failed)
		return list, err
	}

	list.Command = BuildCommand(query, mode, prefs, tool)
	d.transition(list, CommandBuilt)
	logging.Info(list.Command.String())

	d.execute(ctx, list, prefs)

	if d.superseded(gen) {
		return nil, ErrSuperseded
	}
	return list, nil
}

// Generation returns the number of the most recent search
func (d *Dispatcher) Generation() uint64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.generation
}

func (d *Dispatcher) begin(parent context.Context, gen uint64) (uint64, context.Context, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if gen == 0 {
		gen = d.generation + 1
	}
	if gen <= d.generation {
		return gen, parent, false
	}

	ctx, cancel := context.WithCancel(parent)
	if d.cancel != nil {
		d.cancel()
	}
	d.generation = gen
	d.cancel = cancel
	return gen, ctx, true
}

func (d *Dispatcher) end(gen uint64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.generation == gen && d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
}

func (d *Dispatcher) superseded(gen uint64) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.generation != gen
}

func (d *Dispatcher) transition(list *ResultList, s State) {
	list.State = s
	logging.Debug(fmt.Sprintf("search #%d %q: %s", list.Generation, list.Query, s))
}

// execute runs the command and fills list.Candidates. Failures are logged,
// never returned: whatever output exists is still used.
func (d *Dispatcher) execute(ctx context.Context, list *ResultList, prefs Preferences) {
	spec := list.Command

	// timeout(1) is the real limit; the context is only a backstop
	runCtx, cancel := context.WithTimeout(ctx, spec.Timeout+time.Second)
	defer cancel()

	d.transition(list, Executing)
	res, err := d.runner.Run(runCtx, spec.Name, spec.Args...)

	state := Completed
	switch {
	case res == nil:
		logging.Error(fmt.Sprintf("failed to start %s: %v", spec.Name, err))
		state = Failed
	case ctx.Err() != nil:
		logging.Debug(fmt.Sprintf("search #%d cancelled", list.Generation))
		state = Failed
	case errors.Is(runCtx.Err(), context.DeadlineExceeded) || res.ExitCode == exitTimedOut:
		logging.Error(fmt.Sprintf("search timed out after %s", spec.Timeout))
		state = TimedOut
	case res.ExitCode == exitNotFound || res.ExitCode == exitCannotExecute:
		logging.Error(fmt.Sprintf("%s could not be executed: %s", spec.Tool, strings.TrimSpace(string(res.Stderr))))
		d.tools.Invalidate()
		state = Failed
	case err != nil || res.ExitCode != 0:
		logging.Error(fmt.Sprintf("search exited with status %d: %s", res.ExitCode, strings.TrimSpace(string(res.Stderr))))
		state = Failed
	}

	if res != nil {
		list.Candidates = d.candidates(res.Stdout, spec.Filters, prefs.normalized().MaxResults)
	}
	d.transition(list, state)
}

// candidates filters and truncates the output, then annotates each path.
// The folder icon is resolved at most once per search.
func (d *Dispatcher) candidates(out []byte, filters []string, limit int) []Candidate {
	paths := ApplyFilters(splitLines(out), filters)
	if len(paths) > limit {
		paths = paths[:limit]
	}

	var folderIcon string
	result := make([]Candidate, 0, len(paths))
	for _, p := range paths {
		c := Candidate{Path: p, Name: p}
		if info, err := d.stat(p); err == nil && info.IsDir() {
			if folderIcon == "" {
				folderIcon = d.icons.Folder()
			}
			c.IsDir = true
			c.Icon = folderIcon
		} else {
			c.Icon = d.icons.ForFile(p)
		}
		result = append(result, c)
	}
	return result
}

package search

import (
	"sync"

	"github.com/lvim-tech/qf/internal/logging"
)

// Exit codes of coreutils timeout / util-linux ionice when the wrapped
// program could not be executed.
const (
	exitCannotExecute = 126
	exitNotFound      = 127
	exitTimedOut      = 124
)

// DefaultToolNames lists the fd binary names; Debian and Ubuntu ship it as fdfind
var DefaultToolNames = []string{"fd", "fdfind"}

// ToolResolver finds the fd binary once per process and remembers it
// until Invalidate is called after a failure.
type ToolResolver struct {
	runner Runner
	names  []string

	mu       sync.Mutex
	resolved string
}

func NewToolResolver(runner Runner, names ...string) *ToolResolver {
	if len(names) == 0 {
		names = DefaultToolNames
	}
	return &ToolResolver{runner: runner, names: names}
}

// Resolve returns the first tool name found in PATH
func (t *ToolResolver) Resolve() (string, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.resolved != "" {
		return t.resolved, nil
	}

	for _, name := range t.names {
		if _, err := t.runner.LookPath(name); err == nil {
			logging.Debug("search tool: " + name)
			t.resolved = name
			return name, nil
		}
	}
	return "", ErrToolUnavailable
}

// Invalidate forgets the cached tool so the next Resolve probes again
func (t *ToolResolver) Invalidate() {
	t.mu.Lock()
	t.resolved = ""
	t.mu.Unlock()
}

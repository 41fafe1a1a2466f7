package search

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"strconv"
	"sync"
	"time"
)

type call struct {
	name string
	args []string
}

// fakeRunner answers Run with a canned result and records every call.
type fakeRunner struct {
	mu        sync.Mutex
	installed map[string]bool
	lookups   []string
	calls     []call

	result *RunResult
	err    error
	// block, when set, makes Run wait until ctx is done or block is closed
	block chan struct{}
}

func newFakeRunner(installed ...string) *fakeRunner {
	f := &fakeRunner{installed: map[string]bool{}}
	for _, name := range installed {
		f.installed[name] = true
	}
	return f
}

func (f *fakeRunner) output(stdout string, code int) *fakeRunner {
	f.result = &RunResult{Stdout: []byte(stdout), ExitCode: code}
	if code != 0 {
		f.err = errors.New("exit status " + strconv.Itoa(code))
	}
	return f
}

func (f *fakeRunner) LookPath(name string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lookups = append(f.lookups, name)
	if f.installed[name] {
		return "/usr/bin/" + name, nil
	}
	return "", exec.ErrNotFound
}

func (f *fakeRunner) Run(ctx context.Context, name string, args ...string) (*RunResult, error) {
	f.mu.Lock()
	f.calls = append(f.calls, call{name: name, args: args})
	block, result, err := f.block, f.result, f.err
	f.mu.Unlock()

	if block != nil {
		select {
		case <-ctx.Done():
			return &RunResult{ExitCode: -1}, ctx.Err()
		case <-block:
		}
	}
	if result == nil {
		return &RunResult{}, err
	}
	return result, err
}

func (f *fakeRunner) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

// fakeIcons returns fixed handles and counts folder lookups.
type fakeIcons struct {
	mu          sync.Mutex
	folderCalls int
}

const (
	testFolderIcon = "icons/folder.png"
	testFileIcon   = "icons/file.png"
)

func (f *fakeIcons) Folder() string {
	f.mu.Lock()
	f.folderCalls++
	f.mu.Unlock()
	return testFolderIcon
}

func (f *fakeIcons) ForFile(string) string {
	return testFileIcon
}

type fakeInfo struct {
	os.FileInfo
	dir bool
}

func (i fakeInfo) IsDir() bool { return i.dir }

// fakeStat treats the listed paths as directories and everything else as files.
func fakeStat(dirs ...string) func(string) (os.FileInfo, error) {
	set := map[string]bool{}
	for _, d := range dirs {
		set[d] = true
	}
	return func(p string) (os.FileInfo, error) {
		if set[p] {
			return fakeInfo{dir: true}, nil
		}
		if p == "" {
			return nil, errors.New("empty path")
		}
		return fakeInfo{}, nil
	}
}

func testPrefs() Preferences {
	p := DefaultPreferences()
	p.BaseDir = "/home/u"
	p.ShowHidden = "false"
	p.Timeout = 5 * time.Second
	return p
}

func newTestDispatcher(r *fakeRunner, dirs ...string) (*Dispatcher, *fakeIcons) {
	icons := &fakeIcons{}
	d := NewDispatcher(r, NewToolResolver(r), icons)
	d.stat = fakeStat(dirs...)
	return d, icons
}

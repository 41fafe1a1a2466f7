package search

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"syscall"
	"time"
)

// RunResult holds the output of a finished process.
type RunResult struct {
	Stdout   []byte
	Stderr   []byte
	ExitCode int
}

// Runner starts external programs. Tests substitute a fake.
type Runner interface {
	// Run executes name and waits for it. A process that ran but exited
	// non-zero returns both a result and an *exec.ExitError.
	// A process that could not be started returns a nil result.
	Run(ctx context.Context, name string, args ...string) (*RunResult, error)

	// LookPath searches for an executable in PATH.
	LookPath(name string) (string, error)
}

// ExecRunner runs programs with os/exec.
type ExecRunner struct{}

func NewExecRunner() *ExecRunner {
	return &ExecRunner{}
}

func (ExecRunner) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}

// Run starts the program in its own process group so that cancelling ctx
// kills the whole pipeline (timeout, ionice and fd), not just the wrapper.
func (ExecRunner) Run(ctx context.Context, name string, args ...string) (*RunResult, error) {
	cmd := exec.CommandContext(ctx, name, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	cmd.Cancel = func() error {
		return syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
	}
	cmd.WaitDelay = 500 * time.Millisecond

	if err := cmd.Start(); err != nil {
		return nil, err
	}

	err := cmd.Wait()
	res := &RunResult{
		Stdout:   stdout.Bytes(),
		Stderr:   stderr.Bytes(),
		ExitCode: -1,
	}
	if cmd.ProcessState != nil {
		res.ExitCode = cmd.ProcessState.ExitCode()
	}

	var exitErr *exec.ExitError
	if err != nil && !errors.As(err, &exitErr) {
		// WaitDelay expired; the output read so far is still usable
		if res.ExitCode == 0 {
			res.ExitCode = -1
		}
	}
	return res, err
}

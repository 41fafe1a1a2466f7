// Package logging writes qf's diagnostic log.
// Until Init is called everything goes to stderr through the standard logger.
package logging

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"
)

var (
	mu      sync.Mutex
	logfile *os.File
	verbose bool
)

// DefaultPath returns $XDG_STATE_HOME/qf/qf.log, falling back to the cache dir.
func DefaultPath() string {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return filepath.Join(dir, "qf", "qf.log")
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".local", "state", "qf", "qf.log")
	}
	dir, _ := os.UserCacheDir()
	return filepath.Join(dir, "qf", "qf.log")
}

// Init redirects the log to path. An empty path uses DefaultPath.
func Init(path string) error {
	if path == "" {
		path = DefaultPath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}

	mu.Lock()
	defer mu.Unlock()
	if logfile != nil {
		_ = logfile.Close()
	}
	logfile = f
	log.SetOutput(f)
	return nil
}

// SetOutput sends the log to w. Used by tests.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	log.SetOutput(w)
}

func Close() {
	mu.Lock()
	defer mu.Unlock()
	if logfile != nil {
		_ = logfile.Close()
		logfile = nil
	}
	log.SetOutput(os.Stderr)
}

// SetVerbose toggles Debug output.
func SetVerbose(v bool) {
	mu.Lock()
	verbose = v
	mu.Unlock()
}

func Info(msg string) {
	log.Println("[INFO] " + msg)
}

func Error(msg string) {
	log.Println("[ERROR] " + msg)
}

// Debug logs only when verbose mode is enabled.
func Debug(msg string) {
	mu.Lock()
	v := verbose
	mu.Unlock()
	if !v {
		return
	}
	log.Println("[DEBUG] " + msg)
}

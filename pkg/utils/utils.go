// Package utils provides common utility functions for qf.
// It includes helpers for command lookup, detached process start,
// path expansion and XDG directories.
package utils

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"syscall"
)

// ============================================================================
// Command Utilities
// ============================================================================

// CommandExists checks if a command exists in PATH
func CommandExists(cmd string) bool {
	_, err := exec.LookPath(cmd)
	return err == nil
}

// StartDetachedProcess starts a process completely detached from qf,
// so it survives the launcher closing.
func StartDetachedProcess(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	cmd.Stdin = nil
	cmd.Stdout = nil
	cmd.Stderr = nil
	cmd.Env = os.Environ()
	cmd.SysProcAttr = &syscall.SysProcAttr{
		Setpgid: true,
		Pgid:    0,
	}
	if err := cmd.Start(); err != nil {
		return err
	}
	go cmd.Wait()
	return nil
}

// ============================================================================
// File System Utilities
// ============================================================================

// ExpandHomeDir expands a leading ~ in paths
func ExpandHomeDir(path string) string {
	if path == "~" {
		return GetHomeDir()
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(GetHomeDir(), path[2:])
	}
	return path
}

// ============================================================================
// Environment Utilities
// ============================================================================

// GetHomeDir returns home directory
func GetHomeDir() string {
	return os.Getenv("HOME")
}

// GetDataDir returns XDG data directory
func GetDataDir() string {
	if dataDir := os.Getenv("XDG_DATA_HOME"); dataDir != "" {
		return dataDir
	}
	return filepath.Join(GetHomeDir(), ".local", "share")
}

// GetDataDirs returns XDG_DATA_DIRS, defaulting to /usr/local/share and /usr/share
func GetDataDirs() []string {
	value := os.Getenv("XDG_DATA_DIRS")
	if value == "" {
		return []string{"/usr/local/share", "/usr/share"}
	}
	var dirs []string
	for _, d := range strings.Split(value, ":") {
		if d != "" {
			dirs = append(dirs, d)
		}
	}
	return dirs
}

// GetCacheDir returns XDG cache directory
func GetCacheDir() string {
	if cacheDir := os.Getenv("XDG_CACHE_HOME"); cacheDir != "" {
		return cacheDir
	}
	return filepath.Join(GetHomeDir(), ".cache")
}

// ============================================================================
// Terminal Detection
// ============================================================================

// IsTerminal checks if program is running in a terminal
func IsTerminal() bool {
	stdinInfo, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	if stdinInfo.Mode()&os.ModeCharDevice == 0 {
		return false
	}

	tty, err := os.Open("/dev/tty")
	if err != nil {
		return false
	}
	tty.Close()

	return true
}

// Package utils provides notification utilities for qf.
// Supports configurable notification behavior via NotificationConfig.
package utils

import (
	"fmt"
	"os"
	"os/exec"
	"strconv"

	"github.com/lvim-tech/qf/pkg/config"
)

// ShowErrorNotificationWithConfig sends an error notification using the provided config
func ShowErrorNotificationWithConfig(cfg *config.NotificationConfig, title, message string) {
	if cfg == nil || !cfg.Enabled {
		return
	}

	if cfg.ShowInTerminal && IsTerminal() {
		fmt.Fprintf(os.Stderr, "[ERROR] [%s] %s\n", title, message)
		return
	}

	// Errors are always critical
	sendNotification(resolveTool(cfg.Tool), title, message, cfg.Timeout, "critical", "critical")
}

// ============================================================================
// Internal Helper Functions
// ============================================================================

func resolveTool(tool string) string {
	switch tool {
	case "", "auto":
		return detectNotificationTool()
	case "none":
		return ""
	default:
		return tool
	}
}

// detectNotificationTool detects which notification tool is available
func detectNotificationTool() string {
	if CommandExists("dunstify") {
		return "dunstify"
	}
	if CommandExists("notify-send") {
		return "notify-send"
	}
	return ""
}

// notificationArgs builds the arguments for dunstify/notify-send, nil for unknown tools
func notificationArgs(tool, title, message string, timeout int, urgency, fallbackUrgency string) []string {
	if tool != "dunstify" && tool != "notify-send" {
		return nil
	}

	if urgency == "" {
		urgency = fallbackUrgency
	}
	if timeout <= 0 {
		timeout = 5000
	}

	return []string{
		"-u", urgency,
		"-t", strconv.Itoa(timeout),
		"-a", "qf",
		title,
		message,
	}
}

// sendNotification sends a notification using the specified tool
func sendNotification(tool, title, message string, timeout int, urgency, fallbackUrgency string) {
	args := notificationArgs(tool, title, message, timeout, urgency, fallbackUrgency)
	if args == nil {
		return
	}

	cmd := exec.Command(tool, args...)
	cmd.Env = os.Environ()
	if err := cmd.Start(); err == nil {
		go cmd.Wait()
	}
}

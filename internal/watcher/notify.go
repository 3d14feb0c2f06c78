package watcher

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"
)

// Notify raises a desktop notification for alert: osascript on macOS and
// notify-send on Linux. The alert is written to stderr instead when the
// platform has no notifier or the notifier fails.
func Notify(alert Alert) error {
	cmd := notifyCommand(runtime.GOOS, alert, exec.LookPath)
	if cmd != nil && cmd.Run() == nil {
		return nil
	}
	return writeAlert(os.Stderr, alert)
}

// notifyCommand builds the notifier invocation for goos, or returns nil when
// none is available.
func notifyCommand(goos string, alert Alert, lookPath func(string) (string, error)) *exec.Cmd {
	switch goos {
	case "darwin":
		script := fmt.Sprintf(`display notification %q with title "fitwatch" subtitle %q`, alert.Message, alert.Title)
		return exec.Command("osascript", "-e", script)
	case "linux":
		bin, err := lookPath("notify-send")
		if err != nil {
			return nil
		}
		return exec.Command(bin,
			"--app-name", "fitwatch",
			"--urgency", urgency(alert.Level),
			"fitwatch: "+alert.Title,
			alert.Message,
		)
	}
	return nil
}

// writeAlert prints alert as a single "[level] title: message" line.
func writeAlert(w io.Writer, alert Alert) error {
	_, err := fmt.Fprintf(w, "[%s] %s: %s\n", alert.Level, alert.Title, alert.Message)
	return err
}

// urgency maps an alert level to a notify-send urgency.
func urgency(level string) string {
	switch level {
	case LevelCritical:
		return "critical"
	case LevelWarning:
		return "normal"
	}
	return "low"
}

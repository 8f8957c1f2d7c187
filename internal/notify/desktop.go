package notify

import (
	"fmt"
	"os/exec"
	"runtime"
	"strings"
)

// Sender delivers a fired request to the user immediately.
type Sender interface {
	Send(req Request) error
}

type NoopSender struct{}

func (NoopSender) Send(Request) error { return nil }

// ExecSender shells out to the platform notifier binary.
type ExecSender struct{}

func (ExecSender) Send(req Request) error {
	switch runtime.GOOS {
	case "linux":
		return exec.Command("notify-send", req.Title, req.Body).Run()
	case "darwin":
		script := fmt.Sprintf(`display notification "%s" with title "%s"`, escapeAppleScript(req.Body), escapeAppleScript(req.Title))
		if req.Sound {
			script += ` sound name "default"`
		}
		return exec.Command("osascript", "-e", script).Run()
	default:
		return nil
	}
}

func escapeAppleScript(s string) string {
	return strings.ReplaceAll(s, `"`, `\"`)
}

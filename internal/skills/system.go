package skills

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"aura/internal/executor"
	"aura/internal/logging"

	"github.com/atotto/clipboard"
)

// Volume adjusts the system output volume.
type Volume struct{}

// NewVolume creates the volume skill.
func NewVolume() *Volume {
	return &Volume{}
}

// Handle accepts "up", "down", or "mute".
func (s *Volume) Handle(ctx context.Context, args string) (*executor.Result, error) {
	direction := strings.TrimSpace(strings.ToLower(args))

	var cmdArgs []string
	var message string
	switch direction {
	case "up":
		cmdArgs = []string{"set-sink-volume", "@DEFAULT_SINK@", "+10%"}
		message = "Volume up"
	case "down":
		cmdArgs = []string{"set-sink-volume", "@DEFAULT_SINK@", "-10%"}
		message = "Volume down"
	case "mute":
		cmdArgs = []string{"set-sink-mute", "@DEFAULT_SINK@", "toggle"}
		message = "Toggled mute"
	default:
		return executor.Fail(executor.ErrValidationFailed,
			fmt.Sprintf("unrecognized volume direction %q", direction)), nil
	}

	if _, err := exec.LookPath("pactl"); err != nil {
		return executor.Fail("", "volume control not found (pactl missing)"), nil
	}
	if out, err := exec.CommandContext(ctx, "pactl", cmdArgs...).CombinedOutput(); err != nil {
		return executor.Fail("", fmt.Sprintf("volume change failed: %s", strings.TrimSpace(string(out)))), nil
	}
	return executor.Ok(message), nil
}

// Screenshot captures the screen and copies the file path to the
// clipboard so the user can paste it straight away.
type Screenshot struct {
	dir string
}

// NewScreenshot creates the screenshot skill writing into dir
// (defaults to the user's home directory).
func NewScreenshot(dir string) *Screenshot {
	if dir == "" {
		if home, err := os.UserHomeDir(); err == nil {
			dir = home
		} else {
			dir = "."
		}
	}
	return &Screenshot{dir: dir}
}

// Handle captures the screen to a timestamped file.
func (s *Screenshot) Handle(ctx context.Context, args string) (*executor.Result, error) {
	path := filepath.Join(s.dir, fmt.Sprintf("screenshot_%s.png", time.Now().Format("20060102_150405")))

	tool, toolArgs := screenshotCommand(path)
	if tool == "" {
		return executor.Fail("", "no screenshot tool installed"), nil
	}
	if out, err := exec.CommandContext(ctx, tool, toolArgs...).CombinedOutput(); err != nil {
		return executor.Fail("", fmt.Sprintf("screenshot failed: %s", strings.TrimSpace(string(out)))), nil
	}

	msg := fmt.Sprintf("Screenshot saved to %s", path)
	if err := clipboard.WriteAll(path); err == nil {
		msg += " (path copied to clipboard)"
	} else {
		logging.Debug("clipboard write failed", "error", err)
	}
	return executor.Ok(msg).WithData("path", path), nil
}

// screenshotCommand picks the first available capture tool.
func screenshotCommand(path string) (string, []string) {
	if runtime.GOOS == "darwin" {
		if _, err := exec.LookPath("screencapture"); err == nil {
			return "screencapture", []string{"-x", path}
		}
		return "", nil
	}
	if _, err := exec.LookPath("gnome-screenshot"); err == nil {
		return "gnome-screenshot", []string{"-f", path}
	}
	if _, err := exec.LookPath("scrot"); err == nil {
		return "scrot", []string{path}
	}
	return "", nil
}

package snapshot

import (
	"context"
	"os/exec"
	"runtime"
	"strings"
	"time"

	"aura/internal/logging"
)

// Desktop reads the active window from the running desktop session.
// Results are cached briefly so repeated reads within one utterance
// don't shell out twice.
type Desktop struct {
	cached   Snapshot
	cachedAt time.Time
}

const desktopCacheTTL = 2 * time.Second

// NewDesktop creates a desktop snapshot provider.
func NewDesktop() *Desktop {
	return &Desktop{}
}

// Get returns the current foreground window, or a zero snapshot when the
// desktop state cannot be read (headless, missing tools, unsupported OS).
func (d *Desktop) Get(ctx context.Context) Snapshot {
	if time.Since(d.cachedAt) < desktopCacheTTL {
		return d.cached
	}

	var snap Snapshot
	switch runtime.GOOS {
	case "linux":
		snap = d.linuxSnapshot(ctx)
	case "darwin":
		snap = d.darwinSnapshot(ctx)
	}

	d.cached = snap
	d.cachedAt = time.Now()
	return snap
}

func (d *Desktop) linuxSnapshot(ctx context.Context) Snapshot {
	out, err := exec.CommandContext(ctx, "xdotool", "getactivewindow", "getwindowname").Output()
	if err != nil {
		logging.Debug("active window lookup failed", "error", err)
		return Snapshot{}
	}
	name := strings.TrimSpace(string(out))
	if name == "" {
		return Snapshot{}
	}

	snap := Snapshot{ActiveWindow: name, AppName: appFromTitle(name)}

	if pidOut, err := exec.CommandContext(ctx, "xdotool", "getactivewindow", "getwindowpid").Output(); err == nil {
		pid := strings.TrimSpace(string(pidOut))
		if commOut, err := exec.CommandContext(ctx, "ps", "-p", pid, "-o", "comm=").Output(); err == nil {
			snap.ProcessName = strings.TrimSpace(string(commOut))
		}
	}
	return snap
}

func (d *Desktop) darwinSnapshot(ctx context.Context) Snapshot {
	script := `tell application "System Events" to get name of first application process whose frontmost is true`
	out, err := exec.CommandContext(ctx, "osascript", "-e", script).Output()
	if err != nil {
		logging.Debug("active window lookup failed", "error", err)
		return Snapshot{}
	}
	name := strings.TrimSpace(string(out))
	if name == "" {
		return Snapshot{}
	}
	return Snapshot{ActiveWindow: name, AppName: name, ProcessName: name}
}

// appFromTitle extracts an application name from a window title.
// Titles commonly end with " - AppName".
func appFromTitle(title string) string {
	if idx := strings.LastIndex(title, " - "); idx >= 0 {
		return strings.TrimSpace(title[idx+3:])
	}
	return title
}

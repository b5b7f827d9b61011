package skills

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"strings"

	"aura/internal/executor"
	"aura/internal/logging"
	"aura/internal/session"
)

// knownApps maps spoken names to executable names per platform family.
var knownApps = map[string]string{
	"chrome":   "google-chrome",
	"firefox":  "firefox",
	"vscode":   "code",
	"terminal": "x-terminal-emulator",
	"files":    "nautilus",
	"spotify":  "spotify",
}

// OpenApp launches an application by spoken name.
type OpenApp struct {
	memory *session.Memory
}

// NewOpenApp creates the open-application skill.
func NewOpenApp(memory *session.Memory) *OpenApp {
	return &OpenApp{memory: memory}
}

// Handle launches the target application. The launched name is recorded
// as the session's recent entity so follow-up pronouns resolve.
func (s *OpenApp) Handle(ctx context.Context, args string) (*executor.Result, error) {
	target := strings.TrimSpace(args)
	if target == "" {
		return executor.Fail(executor.ErrValidationFailed, "Nothing to open."), nil
	}

	bin := resolveApp(target)
	if _, err := exec.LookPath(bin); err != nil {
		return executor.Fail("", fmt.Sprintf("%s is not installed", target)), nil
	}

	cmd := exec.CommandContext(ctx, bin)
	if err := cmd.Start(); err != nil {
		return executor.Fail("", fmt.Sprintf("failed to launch %s: %v", target, err)), nil
	}
	// Detach; the assistant does not babysit launched apps.
	go func() { _ = cmd.Wait() }()

	logging.Info("application launched", "target", target, "bin", bin)
	s.memory.SetContext("recent_entity", target)
	return executor.Ok(fmt.Sprintf("Opening %s", target)), nil
}

// CloseApp terminates an application by spoken name.
type CloseApp struct {
	memory *session.Memory
}

// NewCloseApp creates the close-application skill.
func NewCloseApp(memory *session.Memory) *CloseApp {
	return &CloseApp{memory: memory}
}

// Handle terminates the target application's processes.
func (s *CloseApp) Handle(ctx context.Context, args string) (*executor.Result, error) {
	target := strings.TrimSpace(args)
	if target == "" {
		return executor.Fail(executor.ErrValidationFailed, "Nothing to close."), nil
	}

	killer := "pkill"
	if runtime.GOOS == "windows" {
		killer = "taskkill"
	}
	if _, err := exec.LookPath(killer); err != nil {
		return executor.Fail("", fmt.Sprintf("%s not found on this system", killer)), nil
	}

	bin := resolveApp(target)
	var cmd *exec.Cmd
	if killer == "taskkill" {
		cmd = exec.CommandContext(ctx, killer, "/IM", bin+".exe", "/F")
	} else {
		cmd = exec.CommandContext(ctx, killer, "-f", bin)
	}
	if out, err := cmd.CombinedOutput(); err != nil {
		msg := strings.TrimSpace(string(out))
		if msg == "" {
			msg = fmt.Sprintf("%s is not running", target)
		}
		return executor.Fail("", msg), nil
	}

	logging.Info("application closed", "target", target)
	s.memory.SetContext("recent_entity", target)
	return executor.Ok(fmt.Sprintf("Closed %s", target)), nil
}

// resolveApp maps a spoken app name to an executable name.
func resolveApp(target string) string {
	key := strings.ToLower(strings.TrimSpace(target))
	if bin, ok := knownApps[key]; ok {
		return bin
	}
	// Multi-word names rarely match a binary; take the first word.
	return strings.Fields(key)[0]
}

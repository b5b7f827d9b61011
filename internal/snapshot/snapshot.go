// Package snapshot provides ambient desktop context for classification:
// the active foreground window, if any can be determined.
package snapshot

import "context"

// Snapshot describes the foreground state at the moment an utterance
// is processed. Empty fields mean the value could not be determined.
type Snapshot struct {
	ActiveWindow string `json:"active_window,omitempty"`
	ProcessName  string `json:"process_name,omitempty"`
	AppName      string `json:"app_name,omitempty"`
}

// HasActiveWindow reports whether any foreground application is known.
func (s Snapshot) HasActiveWindow() bool {
	return s.ActiveWindow != "" || s.ProcessName != "" || s.AppName != ""
}

// Provider supplies the current snapshot. Implementations are best-effort
// and must return a zero snapshot rather than an error when the desktop
// state cannot be read.
type Provider interface {
	Get(ctx context.Context) Snapshot
}

// Static is a fixed-value provider, used in tests and headless mode.
type Static struct {
	Snap Snapshot
}

// Get returns the fixed snapshot.
func (s Static) Get(ctx context.Context) Snapshot {
	return s.Snap
}

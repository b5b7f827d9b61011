// Package capability maps subsystem health to a coarse availability
// status. The pipeline consults it to decide whether to attempt AI
// classification at all; it never gates individual skills mid-plan.
package capability

import (
	"os/exec"

	"aura/internal/config"
	"aura/internal/logging"
)

// Status is the availability of one capability.
type Status string

const (
	Enabled  Status = "ENABLED"
	Limited  Status = "LIMITED"
	Disabled Status = "DISABLED"
)

// Capability names.
const (
	LLMReasoning = "llm_reasoning"
	Automation   = "automation"
	Vision       = "vision"
)

// Manifest holds the per-capability status, derived once at startup from
// config and environment probes.
type Manifest struct {
	statuses map[string]Status
}

// Detect builds the manifest from config and environment probes.
func Detect(cfg *config.Config) *Manifest {
	m := &Manifest{statuses: make(map[string]Status)}

	m.statuses[LLMReasoning] = detectLLM(cfg)
	m.statuses[Automation] = detectAutomation(cfg)
	m.statuses[Vision] = detectVision(cfg)

	for name, st := range m.statuses {
		logging.Info("capability detected", "capability", name, "status", string(st))
	}
	return m
}

func detectLLM(cfg *config.Config) Status {
	if cfg.Capabilities.DisableLLM {
		return Disabled
	}
	switch cfg.API.GetActiveProvider() {
	case "gemini":
		if cfg.API.GetActiveKey() == "" {
			return Disabled
		}
	case "ollama":
		// A local server may still be down; the backend fails closed,
		// so a configured provider counts as limited rather than off.
		return Limited
	}
	return Enabled
}

func detectAutomation(cfg *config.Config) Status {
	if cfg.Capabilities.DisableAutomation {
		return Disabled
	}
	if _, err := exec.LookPath("xdg-open"); err == nil {
		return Enabled
	}
	if _, err := exec.LookPath("open"); err == nil {
		return Enabled
	}
	return Limited
}

func detectVision(cfg *config.Config) Status {
	if cfg.Capabilities.DisableVision {
		return Disabled
	}
	for _, tool := range []string{"gnome-screenshot", "scrot", "screencapture"} {
		if _, err := exec.LookPath(tool); err == nil {
			return Enabled
		}
	}
	return Limited
}

// Status returns the status for a capability, Disabled when unknown.
func (m *Manifest) Status(name string) Status {
	if st, ok := m.statuses[name]; ok {
		return st
	}
	return Disabled
}

// CanUse reports whether a capability is at least partially available.
func (m *Manifest) CanUse(name string) bool {
	return m.Status(name) != Disabled
}

package skills

import (
	"aura/internal/classify"
	"aura/internal/config"
	"aura/internal/session"
)

// BuildRegistry wires every reference skill into a registry, one per
// category in the closed set. responder may be nil (no AI backend).
func BuildRegistry(cfg *config.Config, memory *session.Memory, responder Responder) *Registry {
	r := NewRegistry()

	r.MustRegister(classify.CategoryOpen, NewOpenApp(memory),
		[]string{"open", "launch", "start"})
	r.MustRegister(classify.CategoryClose, NewCloseApp(memory),
		[]string{"close", "quit", "kill"})
	r.MustRegister(classify.CategoryPlay, NewPlay(memory),
		[]string{"play", "music", "video"})
	r.MustRegister(classify.CategorySearch, NewWebSearch(cfg.Skills.SearchURL, memory),
		[]string{"search", "google", "look up"})
	r.MustRegister(classify.CategoryFileSearch, NewFileSearch(cfg.Skills.SearchDirs, memory),
		[]string{"file", "pdf", "document", "downloaded"})
	r.MustRegister(classify.CategoryVolume, NewVolume(),
		[]string{"volume", "mute", "louder", "quieter"})
	r.MustRegister(classify.CategoryScreenshot, NewScreenshot(cfg.Skills.ScreenshotDir),
		[]string{"screenshot"})
	r.MustRegister(classify.CategoryGeneral, NewGeneral(responder, memory), nil)

	return r
}

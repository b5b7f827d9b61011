package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
)

const maxHistorySize = 100

// InputModel represents the single-line command input.
type InputModel struct {
	textarea     textarea.Model
	styles       *Styles
	history      []string
	historyIndex int // -1 = new input
	savedInput   string
}

// NewInputModel creates a new input model.
func NewInputModel(styles *Styles) InputModel {
	ta := textarea.New()
	ta.Placeholder = "Tell me what to do... (Ctrl+C to quit)"
	ta.Focus()
	ta.CharLimit = 2000
	ta.ShowLineNumbers = false
	ta.SetHeight(1)

	return InputModel{
		textarea:     ta,
		styles:       styles,
		history:      make([]string, 0, maxHistorySize),
		historyIndex: -1,
	}
}

// Init starts the cursor blink.
func (m InputModel) Init() tea.Cmd {
	return textarea.Blink
}

// Update handles input events.
func (m InputModel) Update(msg tea.Msg) (InputModel, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyUp:
			m.browseHistory(-1)
			return m, nil
		case tea.KeyDown:
			m.browseHistory(1)
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.textarea, cmd = m.textarea.Update(msg)
	return m, cmd
}

// View renders the input component.
func (m InputModel) View() string {
	return m.styles.Input.Render(m.textarea.View())
}

// Value returns the trimmed input text.
func (m InputModel) Value() string {
	return strings.TrimSpace(m.textarea.Value())
}

// Reset clears the input and records the submitted line in history.
func (m *InputModel) Reset(submitted string) {
	if submitted != "" {
		if n := len(m.history); n == 0 || m.history[n-1] != submitted {
			m.history = append(m.history, submitted)
			if len(m.history) > maxHistorySize {
				m.history = m.history[1:]
			}
		}
	}
	m.historyIndex = -1
	m.savedInput = ""
	m.textarea.Reset()
}

// SetWidth resizes the textarea.
func (m *InputModel) SetWidth(width int) {
	m.textarea.SetWidth(width)
}

// browseHistory moves through previously submitted lines. dir is -1 for
// older, +1 for newer.
func (m *InputModel) browseHistory(dir int) {
	if len(m.history) == 0 {
		return
	}

	if m.historyIndex == -1 {
		if dir > 0 {
			return
		}
		m.savedInput = m.textarea.Value()
		m.historyIndex = len(m.history) - 1
	} else {
		m.historyIndex += dir
		if m.historyIndex >= len(m.history) {
			m.historyIndex = -1
			m.textarea.SetValue(m.savedInput)
			return
		}
		if m.historyIndex < 0 {
			m.historyIndex = 0
		}
	}

	m.textarea.SetValue(m.history[m.historyIndex])
	m.textarea.CursorEnd()
}

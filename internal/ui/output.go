package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
)

// outputState holds the transcript buffer behind a pointer so the model
// stays safe to copy on every Bubble Tea update.
type outputState struct {
	content strings.Builder
}

// OutputModel represents the scrollable conversation view.
type OutputModel struct {
	viewport viewport.Model
	styles   *Styles
	renderer *glamour.TermRenderer
	state    *outputState

	width int
	ready bool
}

// NewOutputModel creates a new output model.
func NewOutputModel(styles *Styles) OutputModel {
	renderer, _ := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(0),
	)

	return OutputModel{
		styles:   styles,
		renderer: renderer,
		state:    &outputState{},
	}
}

// Update handles output events.
func (m OutputModel) Update(msg tea.Msg) (OutputModel, tea.Cmd) {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		// Everything except the input box and status bar belongs to
		// the viewport.
		available := size.Height - 5
		if !m.ready {
			m.viewport = viewport.New(size.Width, available)
			m.viewport.MouseWheelEnabled = true
			m.ready = true
		} else {
			m.viewport.Width = size.Width
			m.viewport.Height = available
		}
		m.width = size.Width
		m.viewport.SetContent(m.state.content.String())
		m.viewport.GotoBottom()
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View renders the output component.
func (m OutputModel) View() string {
	if !m.ready {
		return "Loading..."
	}
	return m.styles.Viewport.Render(m.viewport.View())
}

// AppendUser appends the user's utterance to the transcript.
func (m *OutputModel) AppendUser(text string) {
	m.append(m.styles.UserLabel.Render("You") + "  " + text + "\n")
}

// AppendResponse appends an assistant response, rendered as markdown.
func (m *OutputModel) AppendResponse(text string) {
	rendered := text
	if m.renderer != nil {
		if out, err := m.renderer.Render(text); err == nil {
			rendered = strings.TrimRight(out, "\n")
		}
	}
	m.append(m.styles.AuraLabel.Render("Aura") + " " + rendered + "\n\n")
}

// AppendError appends an error line.
func (m *OutputModel) AppendError(text string) {
	m.append(m.styles.Error.Render(MessageIcons["error"]+" "+text) + "\n\n")
}

// AppendInfo appends a muted informational line.
func (m *OutputModel) AppendInfo(text string) {
	m.append(m.styles.Muted.Render(text) + "\n")
}

func (m *OutputModel) append(text string) {
	m.state.content.WriteString(text)
	if m.ready {
		m.viewport.SetContent(m.state.content.String())
		m.viewport.GotoBottom()
	}
}

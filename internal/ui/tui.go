package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"aura/internal/logging"
)

// Processor turns one utterance into a response. Satisfied by the brain.
type Processor interface {
	Process(ctx context.Context, raw string) string
}

// State describes what the TUI is currently doing.
type State int

const (
	StateIdle State = iota
	StateThinking
)

// responseMsg carries a finished pipeline run back onto the UI loop.
type responseMsg struct {
	text string
}

// pipelineErrMsg carries a pipeline crash back onto the UI loop so the
// session can keep going instead of hanging in the thinking state.
type pipelineErrMsg struct {
	text string
}

// Model represents the main TUI model.
type Model struct {
	input   InputModel
	output  OutputModel
	spinner spinner.Model
	styles  *Styles

	processor Processor
	state     State
	width     int
	height    int
	version   string
	provider  string
	turns     int
}

// NewModel creates the TUI model.
func NewModel(processor Processor, version, provider string) *Model {
	styles := NewStyles()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(ColorPrimary)

	return &Model{
		input:     NewInputModel(styles),
		output:    NewOutputModel(styles),
		spinner:   sp,
		styles:    styles,
		processor: processor,
		state:     StateIdle,
		version:   version,
		provider:  provider,
	}
}

// Init initializes the TUI.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.input.Init(), m.spinner.Tick)
}

// Update handles TUI events.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.SetWidth(msg.Width - 4)
		var cmd tea.Cmd
		m.output, cmd = m.output.Update(msg)
		if m.turns == 0 {
			m.output.AppendInfo(m.banner())
		}
		return m, cmd

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			if m.state == StateThinking {
				return m, nil
			}
			line := m.input.Value()
			if line == "" {
				return m, nil
			}
			m.input.Reset(line)
			m.output.AppendUser(line)
			m.state = StateThinking
			m.turns++
			return m, tea.Batch(m.spinner.Tick, m.runPipeline(line))
		}

		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		cmds = append(cmds, cmd)
		m.output, cmd = m.output.Update(msg)
		cmds = append(cmds, cmd)
		return m, tea.Batch(cmds...)

	case tea.MouseMsg:
		var cmd tea.Cmd
		m.output, cmd = m.output.Update(msg)
		return m, cmd

	case responseMsg:
		m.state = StateIdle
		if msg.text == "" {
			msg.text = "(no response)"
		}
		m.output.AppendResponse(msg.text)
		return m, nil

	case pipelineErrMsg:
		m.state = StateIdle
		m.output.AppendError(msg.text)
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)
	m.output, cmd = m.output.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

// runPipeline executes the utterance off the UI loop.
func (m *Model) runPipeline(line string) tea.Cmd {
	return func() (msg tea.Msg) {
		defer func() {
			if r := recover(); r != nil {
				logging.Error("pipeline panic", "panic", r)
				msg = pipelineErrMsg{text: "Something went wrong handling that. It has been logged."}
			}
		}()
		return responseMsg{text: m.processor.Process(context.Background(), line)}
	}
}

// View renders the TUI.
func (m *Model) View() string {
	if m.width == 0 {
		return "Starting..."
	}

	var b strings.Builder
	b.WriteString(m.output.View())
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")
	b.WriteString(m.statusBar())
	return b.String()
}

func (m *Model) banner() string {
	return fmt.Sprintf("Aura %s ready. Try \"open chrome\", \"find my tax pdf\", or \"take a screenshot\".", m.version)
}

func (m *Model) statusBar() string {
	left := fmt.Sprintf(" aura %s · %s", m.version, m.provider)
	right := fmt.Sprintf("%d turns ", m.turns)
	if m.state == StateThinking {
		left = " " + m.spinner.View() + " thinking..."
	}

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return m.styles.StatusBar.Width(m.width).Render(left + strings.Repeat(" ", gap) + right)
}

// Run starts the TUI and blocks until the user quits.
func Run(processor Processor, version, provider string) error {
	model := NewModel(processor, version, provider)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("ui: %w", err)
	}
	return nil
}

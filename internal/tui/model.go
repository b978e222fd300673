package tui

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"sentiment/internal/domain"
	"sentiment/internal/report"
)

// AnalyzerPort is the TUI-facing subset of the sentiment pipeline.
type AnalyzerPort interface {
	Analyze(comments []string) ([]domain.Prediction, error)
}

// Model is the Bubble Tea model for the interactive classifier. Every
// submitted comment re-classifies the whole batch.
type Model struct {
	analyzer    AnalyzerPort
	tokens      report.TokenFunc
	log         *slog.Logger
	input       textinput.Model
	viewport    viewport.Model
	comments    []string
	predictions []domain.Prediction
	description string
	status      string
	cursor      int
	ready       bool
}

// New creates a TUI model seeded with already-loaded comments.
func New(analyzer AnalyzerPort, tokens report.TokenFunc, description string, comments []string, log *slog.Logger) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Type a comment and press Enter"
	ti.Focus()
	ti.CharLimit = 0
	vp := viewport.New(0, 0)
	if log == nil {
		log = slog.Default()
	}
	m := Model{
		analyzer:    analyzer,
		tokens:      tokens,
		log:         log,
		input:       ti,
		viewport:    vp,
		description: description,
		status:      "Type a comment to classify it.",
	}
	if len(comments) > 0 {
		m.comments = append(m.comments, comments...)
		m.classify()
	}
	return m
}

// Init initializes the model (text input cursor blink).
func (m Model) Init() tea.Cmd { return textinput.Blink }

// Update handles key and window events and updates the view state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		_, rh := resultBoxStyle.GetFrameSize()
		_, qh := queryBoxStyle.GetFrameSize()
		reserved := 2 + 1 + qh + 1 // header+description, status, spacer
		vh := msg.Height - reserved
		if vh < 3 {
			vh = 3
		}
		m.viewport.Width = max(20, msg.Width)
		m.viewport.Height = max(3, vh-rh)
		m.viewport.SetContent(m.renderPredictions())
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD {
			return m, tea.Quit
		}
		switch msg.String() {
		case "enter":
			c := strings.TrimSpace(m.input.Value())
			if c != "" {
				m.comments = append(m.comments, c)
				m.input.SetValue("")
				m.classify()
				m.cursor = len(m.predictions) - 1
				m.viewport.SetContent(m.renderPredictions())
				return m, nil
			}
		case "ctrl+l":
			m.comments = nil
			m.predictions = nil
			m.cursor = 0
			m.status = "Cleared."
			m.viewport.SetContent(m.renderPredictions())
			return m, nil
		case "down":
			if len(m.predictions) > 0 {
				m.cursor = (m.cursor + 1) % len(m.predictions)
				m.viewport.SetContent(m.renderPredictions())
				return m, nil
			}
		case "up":
			if len(m.predictions) > 0 {
				m.cursor = (m.cursor - 1 + len(m.predictions)) % len(m.predictions)
				m.viewport.SetContent(m.renderPredictions())
				return m, nil
			}
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the TUI layout.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	header := lipgloss.NewStyle().Bold(true).Render("Comment Sentiment")
	desc := lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Render(m.description)
	input := queryBoxStyle.Render(m.input.View())
	status := lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Render(m.status)
	results := resultBoxStyle.Render(m.viewport.View())
	return header + "\n" + desc + "\n" + results + "\n" + input + "\n" + status
}

// Predictions returns the current classification of the batch.
func (m Model) Predictions() []domain.Prediction { return m.predictions }

// Status returns the status line.
func (m Model) Status() string { return m.status }

func (m *Model) classify() {
	preds, err := m.analyzer.Analyze(m.comments)
	if err != nil {
		m.log.Error("Classification failed", "error", err)
		m.status = "Error: " + err.Error()
		m.predictions = nil
		return
	}
	m.predictions = preds
	m.status = report.Summarize(preds, m.tokens, 3).String()
}

func (m Model) renderPredictions() string {
	if len(m.predictions) == 0 {
		return "No comments yet."
	}
	var b strings.Builder
	for i, p := range m.predictions {
		line := fmt.Sprintf("%s %3.0f%%  %s", LabelStyle(p.Label).Render(fmt.Sprintf("%-8s", p.Label)), p.Confidence*100, p.Comment)
		if i == m.cursor {
			line = cursorStyle.Render("▸ ") + line
		} else {
			line = "  " + line
		}
		b.WriteString(line)
		if i < len(m.predictions)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

// LabelStyle colors a label for terminal output.
func LabelStyle(l domain.Label) lipgloss.Style {
	switch l {
	case domain.Positive:
		return positiveStyle
	case domain.Negative:
		return negativeStyle
	default:
		return neutralStyle
	}
}

var (
	resultBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	queryBoxStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	cursorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	positiveStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	neutralStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	negativeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
)

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

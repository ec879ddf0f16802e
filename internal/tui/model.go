package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"agentrag/internal/service"
)

// TurnRunner is the TUI-facing subset of the chat service.
type TurnRunner interface {
	RunTurn(ctx context.Context, query string) (service.Answer, error)
}

// turnMsg carries the outcome of one completed turn back into Update.
type turnMsg struct {
	query  string
	answer service.Answer
	err    error
}

// turn is one transcript entry: the query plus either an answer or the
// error that failed the turn.
type turn struct {
	query  string
	answer service.Answer
	err    error
}

// Model is the Bubble Tea model for the chat loop.
type Model struct {
	service    TurnRunner
	input      textinput.Model
	viewport   viewport.Model
	transcript []turn
	status     string
	busy       bool
	ready      bool
}

// New creates a new chat model instance.
func New(svc TurnRunner, status string) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Ask a question ('quit' to exit)"
	ti.Focus()
	ti.CharLimit = 0
	vp := viewport.New(0, 0)
	return Model{service: svc, input: ti, viewport: vp, status: status}
}

// Init initializes the model (text input cursor blink).
func (m Model) Init() tea.Cmd { return textinput.Blink }

// Update handles key, window, and turn-completion events.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		_, rh := transcriptBoxStyle.GetFrameSize()
		_, qh := queryBoxStyle.GetFrameSize()
		totalHeaderLines := 1
		totalFooterLines := 1
		reserved := totalHeaderLines + totalFooterLines + qh + 1
		vh := msg.Height - reserved
		if vh < 3 {
			vh = 3
		}
		m.viewport.Width = maxInt(20, msg.Width)
		m.viewport.Height = maxInt(3, vh-rh)
		m.viewport.SetContent(m.renderTranscript())
		return m, nil
	case turnMsg:
		m.busy = false
		m.transcript = append(m.transcript, turn{query: msg.query, answer: msg.answer, err: msg.err})
		if msg.err != nil {
			m.status = "Turn failed. Ask another question."
		} else {
			m.status = fmt.Sprintf("Answered via %s", msg.answer.Route)
		}
		m.viewport.SetContent(m.renderTranscript())
		m.viewport.GotoBottom()
		return m, nil
	case tea.KeyMsg:
		// Global quits
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD || msg.Type == tea.KeyEsc {
			return m, tea.Quit
		}
		switch msg.String() {
		case "enter":
			q := strings.TrimSpace(m.input.Value())
			if q == "" || m.busy {
				return m, nil
			}
			if strings.EqualFold(q, "quit") {
				return m, tea.Quit
			}
			m.input.SetValue("")
			m.busy = true
			m.status = fmt.Sprintf("Routing %q...", q)
			return m, runTurn(m.service, q)
		case "up":
			m.viewport.LineUp(1)
			return m, nil
		case "down":
			m.viewport.LineDown(1)
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// runTurn executes the route/retrieve/answer pipeline off the UI loop.
// One turn is in flight at a time; the busy flag blocks further submits.
func runTurn(svc TurnRunner, query string) tea.Cmd {
	return func() tea.Msg {
		answer, err := svc.RunTurn(context.Background(), query)
		return turnMsg{query: query, answer: answer, err: err}
	}
}

// View renders the chat layout.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	header := lipgloss.NewStyle().Bold(true).Render("Agentic RAG Chat")
	transcript := transcriptBoxStyle.Render(m.viewport.View())
	input := queryBoxStyle.Render(m.input.View())
	status := statusStyle.Render(m.status)
	return header + "\n" + transcript + "\n" + input + "\n" + status
}

func (m Model) renderTranscript() string {
	if len(m.transcript) == 0 {
		return "No questions yet."
	}
	blocks := make([]string, 0, len(m.transcript))
	for _, t := range m.transcript {
		var b strings.Builder
		b.WriteString(queryStyle.Render("> " + t.query))
		b.WriteString("\n")
		if t.err != nil {
			b.WriteString(errorStyle.Render("error: " + t.err.Error()))
		} else {
			b.WriteString(routeStyle.Render("[" + string(t.answer.Route) + "]"))
			b.WriteString("\n")
			b.WriteString(t.answer.Text)
		}
		blocks = append(blocks, b.String())
	}
	return strings.Join(blocks, "\n\n")
}

var (
	transcriptBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	queryBoxStyle      = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	queryStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	routeStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	errorStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	statusStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
)

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

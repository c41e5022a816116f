package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"newsrag/internal/domain"
	"newsrag/internal/logger"
)

const (
	inputPlaceholder = "find relationship between tech labour market trends and guidlines for educators"
	failureNotice    = "Something went wrong while answering. Please try again."
	idleStatus       = "Type a question and press Enter. ↑/↓ select article, Tab expands snippet, Ctrl+C quits."
)

// RAGPort is the TUI-facing subset of the RAG service.
type RAGPort interface {
	Answer(ctx context.Context, query string) (domain.Result, error)
}

type answerMsg struct {
	result domain.Result
	err    error
}

// Model is the Bubble Tea model for the TUI application.
type Model struct {
	ctx       context.Context
	service   RAGPort
	previewer domain.Previewer
	input     textinput.Model
	spinner   spinner.Model
	viewport  viewport.Model
	result    *domain.Result
	expanded  map[int]bool
	cursor    int
	busy      bool
	ready     bool
	status    string
}

// New creates a new TUI model instance. ctx carries the logger for each cycle.
func New(ctx context.Context, service RAGPort, previewer domain.Previewer) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = inputPlaceholder
	ti.Focus()
	ti.CharLimit = 0
	sp := spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(statusStyle))
	return Model{
		ctx:       ctx,
		service:   service,
		previewer: previewer,
		input:     ti,
		spinner:   sp,
		viewport:  viewport.New(0, 0),
		expanded:  map[int]bool{},
		status:    idleStatus,
	}
}

// Init initializes the model (text input cursor blink).
func (m Model) Init() tea.Cmd { return textinput.Blink }

// Update handles key, window and answer events and updates the view state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		_, rh := resultBoxStyle.GetFrameSize()
		_, qh := queryBoxStyle.GetFrameSize()
		reserved := 1 + 1 + qh + 1 // header, status, input box, spacer
		m.viewport.Width = max(20, msg.Width-2)
		m.viewport.Height = max(3, msg.Height-reserved-rh)
		m.viewport.SetContent(m.renderBody())
		return m, nil
	case answerMsg:
		m.busy = false
		if msg.err != nil {
			logger.FromContext(m.ctx).Error("question failed", zap.Error(msg.err))
			m.status = failureNotice
			m.result = nil
		} else {
			m.status = idleStatus
			res := msg.result
			m.result = &res
			m.cursor = 0
			m.expanded = map[int]bool{}
		}
		m.viewport.SetContent(m.renderBody())
		m.viewport.GotoTop()
		return m, nil
	case spinner.TickMsg:
		if !m.busy {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.MouseMsg:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD {
			return m, tea.Quit
		}
		switch msg.String() {
		case "enter":
			q := strings.TrimSpace(m.input.Value())
			if q == "" || m.busy {
				return m, nil
			}
			m.busy = true
			m.input.Reset()
			return m, tea.Batch(m.spinner.Tick, m.ask(q))
		case "down", "up":
			if n := m.hitCount(); n > 0 {
				step := 1
				if msg.String() == "up" {
					step = n - 1
				}
				m.cursor = (m.cursor + step) % n
				m.viewport.SetContent(m.renderBody())
			}
			return m, nil
		case "tab":
			if m.hitCount() > 0 {
				m.expanded[m.cursor] = !m.expanded[m.cursor]
				m.viewport.SetContent(m.renderBody())
			}
			return m, nil
		case "pgup", "pgdown":
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) ask(q string) tea.Cmd {
	svc, ctx := m.service, m.ctx
	return func() tea.Msg {
		res, err := svc.Answer(ctx, q)
		return answerMsg{result: res, err: err}
	}
}

func (m Model) hitCount() int {
	if m.result == nil {
		return 0
	}
	return len(m.result.Hits)
}

// View renders the TUI layout and current result.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	status := statusStyle.Render(m.status)
	if m.busy {
		status = m.spinner.View() + " " + statusStyle.Render("Searching articles...")
	}
	body := resultBoxStyle.Render(m.viewport.View())
	input := queryBoxStyle.Render(m.input.View())
	return titleStyle.Render(appTitle) + "\n" + body + "\n" + input + "\n" + status
}

func (m Model) renderBody() string {
	if m.result == nil {
		return "No question asked yet."
	}
	return Render(*m.result, m.previewer, RenderOptions{
		Selected: m.cursor,
		Expanded: func(i int) bool { return m.expanded[i] },
		Width:    m.viewport.Width,
	})
}

var (
	resultBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	queryBoxStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	statusStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
)

// Package tui implements the interactive calc prompt.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"go.uber.org/zap"

	"github.com/MrLobotomist/test-pipeline/internal/calculator"
	"github.com/MrLobotomist/test-pipeline/internal/config"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	inputStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	valueStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	noticeStyle = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("11"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// Entry is one evaluated line.
type Entry struct {
	Input  string
	Output string
	Err    error
}

type reloadMsg config.Reload

// Model is the bubbletea model for the interactive prompt.
type Model struct {
	input   textinput.Model
	history []Entry
	cfg     config.Config
	reloads <-chan config.Reload
	logger  *zap.Logger
	notice  string
	width   int

	// precision set on the command line, kept across reloads
	precision *int
}

// Option configures a Model.
type Option func(*Model)

// WithReloads makes the model apply config reloads delivered on ch.
func WithReloads(ch <-chan config.Reload) Option {
	return func(m *Model) {
		m.reloads = ch
	}
}

// WithPrecision fixes the precision regardless of the config file, including
// after reloads.
func WithPrecision(p int) Option {
	return func(m *Model) {
		m.precision = &p
	}
}

// WithLogger sets the logger used for evaluation events.
func WithLogger(logger *zap.Logger) Option {
	return func(m *Model) {
		m.logger = logger
	}
}

// New creates a model using cfg for precision and history size.
func New(cfg config.Config, opts ...Option) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "2 + 3, divide 7 2, 5!"
	ti.Focus()

	m := Model{
		input:  ti,
		cfg:    cfg,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(&m)
	}
	m.applyOverrides()
	return m
}

// History returns the evaluated lines, oldest first.
func (m Model) History() []Entry {
	return m.history
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.waitForReload())
}

func (m Model) waitForReload() tea.Cmd {
	if m.reloads == nil {
		return nil
	}
	ch := m.reloads
	return func() tea.Msg {
		r, ok := <-ch
		if !ok {
			return nil
		}
		return reloadMsg(r)
	}
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			line := strings.TrimSpace(m.input.Value())
			m.input.SetValue("")
			switch line {
			case "":
				return m, nil
			case "quit", "exit":
				return m, tea.Quit
			case "clear":
				m.history = nil
				return m, nil
			}
			m.evaluate(line)
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width

	case reloadMsg:
		if msg.Err != nil {
			m.notice = "config reload failed: " + msg.Err.Error()
			m.logger.Warn("config reload failed", zap.Error(msg.Err))
		} else {
			m.cfg = msg.Config
			m.applyOverrides()
			m.trimHistory()
			m.notice = fmt.Sprintf("config reloaded (precision %d, history %d)", m.cfg.GetPrecision(), m.cfg.GetHistory())
			m.logger.Info("config reloaded")
		}
		return m, m.waitForReload()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) evaluate(line string) {
	entry := Entry{Input: line}

	expr, err := calculator.ParseExpression(line)
	if err == nil {
		var result calculator.Result
		result, err = expr.Eval()
		if err == nil {
			entry.Output = result.Format(m.cfg.GetPrecision())
		}
	}
	entry.Err = err

	if err != nil {
		m.logger.Debug("evaluation failed", zap.String("input", line), zap.Error(err))
	} else {
		m.logger.Debug("evaluated", zap.Stringer("expr", expr), zap.String("result", entry.Output))
	}

	m.history = append(m.history, entry)
	m.trimHistory()
}

func (m *Model) applyOverrides() {
	if m.precision != nil {
		m.cfg.Precision = m.precision
	}
}

func (m *Model) trimHistory() {
	if n := m.cfg.GetHistory(); len(m.history) > n {
		m.history = m.history[len(m.history)-n:]
	}
}

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("calc"))
	b.WriteString("\n\n")

	for _, e := range m.history {
		var line string
		if e.Err != nil {
			line = inputStyle.Render(e.Input) + "  " + errorStyle.Render(e.Err.Error())
		} else {
			line = inputStyle.Render(e.Input) + "  = " + valueStyle.Render(e.Output)
		}
		b.WriteString(m.fit(line))
		b.WriteString("\n")
	}

	if m.notice != "" {
		b.WriteString(m.fit(noticeStyle.Render(m.notice)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("enter: evaluate • clear: reset history • esc: quit"))
	b.WriteString("\n")
	return b.String()
}

func (m Model) fit(line string) string {
	if m.width <= 0 {
		return line
	}
	return ansi.Truncate(line, m.width, "…")
}

// Run starts the interactive prompt and blocks until the user quits.
func Run(m Model) error {
	_, err := tea.NewProgram(m).Run()
	return err
}

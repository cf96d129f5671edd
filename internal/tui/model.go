// Package tui provides the Bubble Tea quiz interface.
package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"devprep/internal/model"
	"devprep/internal/report"
	"devprep/internal/session"
)

type phase int

const (
	phaseQuestion phase = iota
	phaseFeedback
	phaseSummary
)

const tickInterval = 250 * time.Millisecond

type tickMsg time.Time

var (
	headerStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	scenarioStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#B0B0B0")).Italic(true)
	questionStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	optionStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#D0D0D0"))
	correctStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#52C41A")).Bold(true)
	incorrectStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F")).Bold(true)
	mutedStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
)

// Model implements the Bubble Tea quiz UI. It owns presentation and input
// capture only; scoring lives in the session engine.
type Model struct {
	engine     *session.Engine
	exportPath string

	input      textinput.Model
	prompt     session.Prompt
	phase      phase
	errMsg     string
	last       model.Response
	lastPrompt session.Prompt
	summary    model.Summary
	exportNote string

	// Aborted is set when the user quits mid-session; the session is
	// discarded without a summary.
	Aborted bool

	width  int
	height int
}

// NewModel constructs the quiz UI over a started engine.
func NewModel(engine *session.Engine, exportPath string) *Model {
	input := textinput.New()
	input.Placeholder = "answer"
	input.CharLimit = 4
	input.Width = 8
	input.Focus()

	m := &Model{
		engine:     engine,
		exportPath: exportPath,
		input:      input,
	}
	m.prompt, _ = engine.PresentNext()
	return m
}

// Summary returns the final report; valid once the program has finished
// without aborting.
func (m *Model) Summary() (model.Summary, bool) {
	return m.summary, m.phase == phaseSummary
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink}
	if _, ok := m.engine.Deadline(); ok {
		cmds = append(cmds, tick())
	}
	return tea.Batch(cmds...)
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tickMsg:
		return m.updateTick()
	case tea.KeyMsg:
		return m.updateKey(msg)
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
}

func (m *Model) updateTick() (tea.Model, tea.Cmd) {
	deadline, ok := m.engine.Deadline()
	if !ok || m.phase == phaseSummary {
		return m, nil
	}
	if time.Now().After(deadline) && m.phase == phaseQuestion {
		if _, err := m.engine.Timeout(); err == nil {
			m.finishSession()
		}
		return m, nil
	}
	return m, tick()
}

func (m *Model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		if m.phase != phaseSummary {
			m.Aborted = true
		}
		return m, tea.Quit
	}
	switch m.phase {
	case phaseSummary:
		return m, tea.Quit
	case phaseFeedback:
		if msg.Type == tea.KeyEnter {
			m.advance()
		}
		return m, nil
	default:
		if msg.Type == tea.KeyEnter {
			m.handleSubmit()
			return m, nil
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
}

func (m *Model) handleSubmit() {
	value := strings.TrimSpace(m.input.Value())
	if value == "" {
		return
	}
	if value == "s" || value == "skip" {
		resp, err := m.engine.Skip()
		if err != nil {
			return
		}
		m.recordOutcome(resp)
		return
	}
	rangeHint := fmt.Sprintf("Enter a number between 1 and %d, or s to skip", len(m.prompt.Options))
	chosen, err := strconv.Atoi(value)
	if err != nil {
		m.errMsg = rangeHint
		m.input.Reset()
		return
	}
	resp, err := m.engine.SubmitAnswer(chosen)
	if err != nil {
		if errors.Is(err, session.ErrInvalidInput) {
			m.errMsg = rangeHint
			m.input.Reset()
			return
		}
		m.errMsg = err.Error()
		return
	}
	m.recordOutcome(resp)
}

func (m *Model) recordOutcome(resp model.Response) {
	m.last = resp
	m.lastPrompt = m.prompt
	m.errMsg = ""
	if resp.TimedOut {
		m.finishSession()
		return
	}
	if m.engine.Session().Options.InterviewMode {
		m.advance()
		return
	}
	m.phase = phaseFeedback
}

func (m *Model) advance() {
	if m.engine.IsComplete() {
		m.finishSession()
		return
	}
	prompt, ok := m.engine.PresentNext()
	if !ok {
		m.finishSession()
		return
	}
	m.prompt = prompt
	m.input.Reset()
	m.errMsg = ""
	m.phase = phaseQuestion
}

func (m *Model) finishSession() {
	m.summary = report.Build(m.engine.Session())
	m.phase = phaseSummary
	if m.exportPath == "" {
		return
	}
	if err := report.Export(m.exportPath, m.summary, m.engine.Session().Responses); err != nil {
		m.exportNote = fmt.Sprintf("Export failed: %v", err)
		return
	}
	m.exportNote = fmt.Sprintf("Results exported to %s", m.exportPath)
}

// View implements tea.Model.
func (m *Model) View() string {
	switch m.phase {
	case phaseSummary:
		return m.viewSummary()
	case phaseFeedback:
		return m.viewFeedback()
	default:
		return m.viewQuestion()
	}
}

func (m *Model) contentWidth() int {
	if m.width <= 0 {
		return 72
	}
	width := m.width - 4
	if width > 76 {
		width = 76
	}
	if width < 20 {
		width = 20
	}
	return width
}

func (m *Model) viewQuestion() string {
	width := m.contentWidth()
	var b strings.Builder

	header := fmt.Sprintf("Question %d/%d · %s · %s",
		m.prompt.Number, m.prompt.Total,
		m.prompt.Question.Topic, strings.ToUpper(m.prompt.Question.Difficulty))
	if deadline, ok := m.engine.Deadline(); ok {
		remaining := time.Until(deadline).Round(time.Second)
		if remaining < 0 {
			remaining = 0
		}
		header += fmt.Sprintf(" · %s left", remaining)
	}
	b.WriteString(headerStyle.Render(header))
	b.WriteString("\n\n")

	if m.prompt.Question.Scenario != "" {
		b.WriteString(scenarioStyle.Render(wrapText("Scenario: "+m.prompt.Question.Scenario, width)))
		b.WriteString("\n\n")
	}
	b.WriteString(questionStyle.Render(wrapText(m.prompt.Question.Question, width)))
	b.WriteString("\n\n")
	for i, option := range m.prompt.Options {
		b.WriteString(optionStyle.Render(wrapText(fmt.Sprintf("%d. %s", i+1, option), width)))
		b.WriteByte('\n')
	}
	b.WriteString("\nYour answer: ")
	b.WriteString(m.input.View())
	b.WriteByte('\n')
	if m.errMsg != "" {
		b.WriteString(errorStyle.Render(m.errMsg))
		b.WriteByte('\n')
	}
	b.WriteString(mutedStyle.Render("enter: answer · s: skip · ctrl+c: quit"))
	return b.String()
}

func (m *Model) viewFeedback() string {
	width := m.contentWidth()
	var b strings.Builder

	correctText := m.lastPrompt.Options[m.lastPrompt.CorrectIndex-1]
	switch {
	case m.last.Correct:
		b.WriteString(correctStyle.Render("✓ Correct!"))
	case m.last.Skipped:
		b.WriteString(mutedStyle.Render(wrapText("Skipped. Correct answer: "+correctText, width)))
	default:
		b.WriteString(incorrectStyle.Render(wrapText("✗ Incorrect. Correct answer: "+correctText, width)))
	}
	b.WriteString("\n\n")
	b.WriteString(questionStyle.Render(wrapText("Explanation: "+m.lastPrompt.Question.Explanation, width)))
	b.WriteByte('\n')
	if ctx := m.lastPrompt.Question.RealWorldContext; ctx != "" {
		b.WriteByte('\n')
		b.WriteString(scenarioStyle.Render(wrapText("Real-world context: "+ctx, width)))
		b.WriteByte('\n')
	}
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render("press enter to continue"))
	return b.String()
}

func (m *Model) viewSummary() string {
	var b strings.Builder
	b.WriteString(renderSummaryText(m.summary))
	if m.exportNote != "" {
		b.WriteByte('\n')
		b.WriteString(mutedStyle.Render(m.exportNote))
		b.WriteByte('\n')
	}
	b.WriteByte('\n')
	b.WriteString(mutedStyle.Render("press any key to exit"))
	return b.String()
}

func renderSummaryText(s model.Summary) string {
	var b strings.Builder
	if err := report.Render(&b, s); err != nil {
		return fmt.Sprintf("failed to render summary: %v", err)
	}
	return b.String()
}

// Package tui provides the interactive terminal form for grading landing pages.
package tui

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/f3rmion/grader/internal/api"
	"github.com/f3rmion/grader/internal/clipboard"
	"github.com/f3rmion/grader/internal/grader"
	"github.com/f3rmion/grader/internal/report"
)

// fallbackError is shown when a failure carries no message of its own.
const fallbackError = "An error occurred"

const (
	defaultWidth  = 80
	textareaLines = 8
)

// analyzeResultMsg carries the outcome of a submission back into Update.
type analyzeResultMsg struct {
	resp *grader.AnalyzeResponse
	err  error
}

// clearCopiedMsg hides the badge set by copy number seq.
type clearCopiedMsg struct {
	seq int
}

func clearCopiedAfter(d time.Duration, seq int) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return clearCopiedMsg{seq: seq}
	})
}

// Model is the Bubble Tea model for the analysis form.
type Model struct {
	ctx      context.Context
	analyzer grader.Analyzer
	logger   *slog.Logger
	copy     func(string) error

	// Input state; both fields keep their value across mode switches.
	mode grader.Mode
	url  textinput.Model
	text textarea.Model

	// Submission state
	loading bool
	result  *grader.AnalyzeResponse
	err     string
	spinner spinner.Model

	// Clipboard
	canCopy bool
	copied  bool
	copySeq int
	copyErr string

	width  int
	height int
}

// New creates a form that submits through analyzer. Requests inherit ctx.
func New(ctx context.Context, analyzer grader.Analyzer, logger *slog.Logger) Model {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	ti := textinput.New()
	ti.Placeholder = "https://example.com"
	ti.Prompt = "> "
	ti.CharLimit = 2048
	ti.Width = defaultWidth - 8
	ti.PromptStyle = InputPromptStyle
	ti.TextStyle = InputTextStyle
	ti.Focus()

	ta := textarea.New()
	ta.Placeholder = "Paste your landing page copy here..."
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.SetWidth(defaultWidth - 4)
	ta.SetHeight(textareaLines)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = LoadingStyle

	return Model{
		ctx:      ctx,
		analyzer: analyzer,
		logger:   logger,
		copy:     clipboard.Write,
		canCopy:  clipboard.Available(),
		mode:     grader.ModeURL,
		url:      ti,
		text:     ta,
		spinner:  sp,
	}
}

// Mode returns the active input mode.
func (m Model) Mode() grader.Mode { return m.mode }

// Loading reports whether a submission is in flight.
func (m Model) Loading() bool { return m.loading }

// Result returns the last successful scorecard, or nil.
func (m Model) Result() *grader.AnalyzeResponse { return m.result }

// Err returns the last failure message, or "".
func (m Model) Err() string { return m.err }

// activeValue returns the raw contents of the field for the current mode.
func (m Model) activeValue() string {
	if m.mode == grader.ModeText {
		return m.text.Value()
	}
	return m.url.Value()
}

// CanSubmit reports whether the submit control is enabled.
func (m Model) CanSubmit() bool {
	return !m.loading && strings.TrimSpace(m.activeValue()) != ""
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "tab", "shift+tab":
			return m, m.toggleMode()
		case "ctrl+s":
			return m.submit()
		case "enter":
			// Enter inserts a newline in the copy field.
			if m.mode == grader.ModeURL {
				return m.submit()
			}
		case "ctrl+y":
			return m.copyResult()
		}

	case analyzeResultMsg:
		m.loading = false
		switch {
		case msg.err != nil:
			m.err = errorMessage(msg.err)
			m.logger.Warn("analysis failed", "error", msg.err)
		case msg.resp == nil:
			m.err = fallbackError
		default:
			m.result = msg.resp
			m.logger.Info("analysis complete", "scores", msg.resp.Scores)
		}
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case clearCopiedMsg:
		if msg.seq == m.copySeq {
			m.copied = false
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.setSize(msg.Width, msg.Height)
		return m, nil
	}

	// Inputs stay editable while a request is in flight.
	var cmd tea.Cmd
	if m.mode == grader.ModeText {
		m.text, cmd = m.text.Update(msg)
	} else {
		m.url, cmd = m.url.Update(msg)
	}
	return m, cmd
}

// toggleMode switches between URL and text input without touching either value
// or the last result.
func (m *Model) toggleMode() tea.Cmd {
	m.mode = m.mode.Toggle()
	if m.mode == grader.ModeText {
		m.url.Blur()
		return m.text.Focus()
	}
	m.text.Blur()
	return m.url.Focus()
}

// submit starts a submission if the form is valid.
func (m Model) submit() (tea.Model, tea.Cmd) {
	if !m.CanSubmit() {
		return m, nil
	}

	req, err := grader.NewRequest(m.mode, m.activeValue())
	if err != nil {
		return m, nil
	}

	m.err = ""
	m.result = nil
	m.copyErr = ""
	m.loading = true

	m.logger.Debug("submitting", "mode", m.mode)
	return m, tea.Batch(m.analyze(req), m.spinner.Tick)
}

// analyze creates a command that runs the request off the UI loop.
func (m Model) analyze(req grader.AnalyzeRequest) tea.Cmd {
	ctx := m.ctx
	if ctx == nil {
		ctx = context.Background()
	}
	analyzer := m.analyzer

	return func() tea.Msg {
		resp, err := analyzer.Analyze(ctx, req)
		return analyzeResultMsg{resp: resp, err: err}
	}
}

// copyResult puts the current scorecard on the clipboard.
func (m Model) copyResult() (tea.Model, tea.Cmd) {
	if m.result == nil {
		return m, nil
	}
	if !m.canCopy {
		m.copyErr = clipboard.ErrUnavailable.Error()
		return m, nil
	}
	if err := m.copy(report.Text(m.result, report.DefaultWidth)); err != nil {
		m.copyErr = err.Error()
		return m, nil
	}
	m.copyErr = ""
	m.copied = true
	m.copySeq++
	return m, clearCopiedAfter(2*time.Second, m.copySeq)
}

func (m *Model) setSize(width, height int) {
	m.width = width
	m.height = height

	inner := m.contentWidth()
	m.url.Width = max(10, inner-4)
	m.text.SetWidth(max(10, inner))
}

func (m Model) contentWidth() int {
	if m.width <= 0 {
		return defaultWidth
	}
	return max(20, m.width-4)
}

// errorMessage converts a failure into the single string shown to the user.
func errorMessage(err error) string {
	if strings.TrimSpace(err.Error()) == "" {
		return fallbackError
	}
	return api.Message(err)
}

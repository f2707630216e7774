// Package tui implements the Bubble Tea consent form.
package tui

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sprite-ai/consentlens/internal/form"
	"github.com/sprite-ai/consentlens/internal/model"
)

type focusArea int

const (
	focusPolicy focusArea = iota
	focusPermissions
	focusSubmit
	focusCount
)

// Options configures the form.
type Options struct {
	Analyzer    form.Analyzer
	AppName     string
	Permissions []string      // permission ids offered in the checklist
	Timeout     time.Duration // per request; zero means no limit
	Logger      *slog.Logger
}

// Model is the top-level Bubble Tea model for the consent form.
type Model struct {
	state form.State

	analyzer form.Analyzer
	appName  string
	catalog  []string
	timeout  time.Duration
	logger   *slog.Logger

	// ctx is cancelled on quit, aborting any in-flight request.
	ctx    context.Context
	cancel context.CancelFunc

	input   textarea.Model
	spinner spinner.Model

	// UI state
	width      int
	height     int
	focus      focusArea
	permCursor int
	showRaw    bool
	showHelp   bool
}

// New creates a form model. The parent context bounds every request.
func New(ctx context.Context, opts Options) Model {
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if opts.AppName == "" {
		opts.AppName = model.DefaultAppName
	}
	ctx, cancel := context.WithCancel(ctx)

	ta := textarea.New()
	ta.Placeholder = "Paste the full agreement text here..."
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.SetHeight(10)
	ta.Focus()

	sp := spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(spinnerStyle))

	return Model{
		state:    form.New(),
		analyzer: opts.Analyzer,
		appName:  opts.AppName,
		catalog:  append([]string(nil), opts.Permissions...),
		timeout:  opts.Timeout,
		logger:   opts.Logger,
		ctx:      ctx,
		cancel:   cancel,
		input:    ta,
		spinner:  sp,
	}
}

// State returns the current form state.
func (m Model) State() form.State {
	return m.state
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textarea.Blink
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.SetWidth(m.contentWidth() - 2) // border
		return m, nil

	case form.Outcome:
		return m.complete(msg), nil

	case spinner.TickMsg:
		if m.state.Status() != form.StatusLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		m.cancel()
		return m, tea.Quit

	case key.Matches(msg, keys.Submit):
		return m.submit()

	case key.Matches(msg, keys.Raw):
		m.showRaw = !m.showRaw
		return m, nil

	case key.Matches(msg, keys.NextFocus):
		return m.setFocus((m.focus + 1) % focusCount)

	case key.Matches(msg, keys.PrevFocus):
		return m.setFocus((m.focus + focusCount - 1) % focusCount)
	}

	if m.focus == focusPolicy {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		m.state = m.state.SetPolicyText(m.input.Value())
		return m, cmd
	}

	switch {
	case key.Matches(msg, keys.Close):
		m.cancel()
		return m, tea.Quit

	case key.Matches(msg, keys.Help):
		m.showHelp = !m.showHelp

	case m.showHelp:
		// Any other key closes help.
		m.showHelp = false

	case m.focus == focusPermissions && key.Matches(msg, keys.Up):
		if m.permCursor > 0 {
			m.permCursor--
		}

	case m.focus == focusPermissions && key.Matches(msg, keys.Down):
		if m.permCursor < len(m.catalog)-1 {
			m.permCursor++
		}

	case m.focus == focusPermissions && key.Matches(msg, keys.Toggle):
		if m.permCursor < len(m.catalog) {
			m.state = m.state.TogglePermission(m.catalog[m.permCursor])
		}

	case m.focus == focusSubmit && key.Matches(msg, keys.Press):
		return m.submit()
	}

	return m, nil
}

func (m Model) setFocus(f focusArea) (tea.Model, tea.Cmd) {
	m.focus = f
	if f == focusPolicy {
		cmd := m.input.Focus()
		return m, cmd
	}
	m.input.Blur()
	return m, nil
}

// submit starts an analysis if the form allows it. While a request is in
// flight it is a no-op.
func (m Model) submit() (tea.Model, tea.Cmd) {
	next, req, ok := m.state.BeginSubmit(m.appName)
	if !ok {
		return m, nil
	}
	m.state = next
	m.logger.Info("submitting analysis",
		"seq", next.Seq(),
		"permissions", len(req.Permissions),
		"policy_bytes", len(req.PolicyText),
	)
	return m, tea.Batch(m.spinner.Tick, m.analyze(next.Seq(), req))
}

// analyze returns the command that runs one request off the event loop and
// reports its completion as a form.Outcome.
func (m Model) analyze(seq uint64, req model.AnalysisRequest) tea.Cmd {
	ctx, analyzer, timeout := m.ctx, m.analyzer, m.timeout
	return func() tea.Msg {
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}
		return form.Execute(ctx, analyzer, seq, req)
	}
}

func (m Model) complete(o form.Outcome) Model {
	if o.Seq != m.state.Seq() {
		m.logger.Warn("dropping stale analysis outcome", "seq", o.Seq, "current", m.state.Seq())
	}
	m.state = m.state.Complete(o)

	switch m.state.Status() {
	case form.StatusCompleted:
		r := m.state.Result()
		m.logger.Info("analysis completed", "seq", o.Seq, "app", r.App, "risk_level", r.RiskLevel, "risk_score", r.RiskScore)
	case form.StatusFailed:
		m.logger.Error("analysis failed", "seq", o.Seq, "error", m.state.Err())
	}
	return m
}

func (m Model) contentWidth() int {
	w := m.width - 2
	if w > 100 {
		w = 100
	}
	if w < 20 {
		w = 20
	}
	return w
}

// Run starts the form and blocks until the user quits. It returns the final
// form state.
func Run(ctx context.Context, opts Options) (form.State, error) {
	m := New(ctx, opts)
	defer m.cancel()

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	final, err := p.Run()
	if fm, ok := final.(Model); ok {
		return fm.state, err
	}
	return m.state, err
}

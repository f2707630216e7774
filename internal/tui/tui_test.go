package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sprite-ai/consentlens/internal/form"
	"github.com/sprite-ai/consentlens/internal/model"
)

type stubAnalyzer struct {
	calls  int
	last   model.AnalysisRequest
	result *model.AnalysisResult
	err    error
}

func (a *stubAnalyzer) Analyze(ctx context.Context, req model.AnalysisRequest) (*model.AnalysisResult, error) {
	a.calls++
	a.last = req
	return a.result, a.err
}

var testPermissions = []string{"location", "contacts", "call_logs"}

func testResult() *model.AnalysisResult {
	return &model.AnalysisResult{
		App:                 "Test App",
		PlainEnglishSummary: "This app tracks where you are and shares it.",
		RiskLevel:           "High",
		RiskScore:           82,
		WhyItMatters:        []string{"data_sharing", "location_tracking"},
	}
}

func setupModel(t *testing.T, a *stubAnalyzer) Model {
	t.Helper()
	m := New(context.Background(), Options{
		Analyzer:    a,
		Permissions: testPermissions,
	})
	// Simulate window size
	newM, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 60})
	return newM.(Model)
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	newM, cmd := m.Update(msg)
	return newM.(Model), cmd
}

func typeText(t *testing.T, m Model, s string) Model {
	t.Helper()
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
	return m
}

func press(t *testing.T, m Model, k tea.KeyMsg) (Model, tea.Cmd) {
	t.Helper()
	return update(t, m, k)
}

var (
	keyTab    = tea.KeyMsg{Type: tea.KeyTab}
	keyCtrlS  = tea.KeyMsg{Type: tea.KeyCtrlS}
	keyCtrlR  = tea.KeyMsg{Type: tea.KeyCtrlR}
	keyEnter  = tea.KeyMsg{Type: tea.KeyEnter}
	keyEsc    = tea.KeyMsg{Type: tea.KeyEsc}
	keyToggle = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}}
	keyDown   = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}}
)

// collect runs cmd and any batched commands, returning their messages.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

// outcomeOf runs cmd and returns the analysis outcome it produced.
func outcomeOf(t *testing.T, cmd tea.Cmd) form.Outcome {
	t.Helper()
	for _, msg := range collect(cmd) {
		if o, ok := msg.(form.Outcome); ok {
			return o
		}
	}
	t.Fatal("command produced no analysis outcome")
	return form.Outcome{}
}

func TestModelInit(t *testing.T) {
	m := setupModel(t, &stubAnalyzer{})

	if m.focus != focusPolicy {
		t.Errorf("expected policy focus, got %d", m.focus)
	}
	if m.state.Status() != form.StatusIdle {
		t.Errorf("expected idle, got %s", m.state.Status())
	}
	if m.state.IsSubmittable() {
		t.Error("empty form must not be submittable")
	}
}

func TestTypingUpdatesPolicyText(t *testing.T) {
	m := setupModel(t, &stubAnalyzer{})
	m = typeText(t, m, "We collect your location.")

	if got := m.state.PolicyText(); got != "We collect your location." {
		t.Errorf("policy text = %q", got)
	}
	if !m.state.IsSubmittable() {
		t.Error("expected submittable after typing")
	}
}

func TestTogglePermissions(t *testing.T) {
	m := setupModel(t, &stubAnalyzer{})

	m, _ = press(t, m, keyTab)
	if m.focus != focusPermissions {
		t.Fatalf("expected permissions focus, got %d", m.focus)
	}

	m, _ = press(t, m, keyToggle) // location
	m, _ = press(t, m, keyDown)
	m, _ = press(t, m, keyDown)
	m, _ = press(t, m, keyToggle) // call_logs

	got := m.state.Permissions()
	if len(got) != 2 || got[0] != "location" || got[1] != "call_logs" {
		t.Errorf("permissions = %v", got)
	}

	view := m.View()
	if !strings.Contains(view, "[x] location") || !strings.Contains(view, "[x] call logs") {
		t.Error("expected selected permissions in view")
	}
	if !strings.Contains(view, "[ ] contacts") {
		t.Error("expected unselected permission in view")
	}

	// Toggling again removes it.
	m, _ = press(t, m, keyToggle)
	if got := m.state.Permissions(); len(got) != 1 || got[0] != "location" {
		t.Errorf("permissions after untoggle = %v", got)
	}
}

func TestCursorBounds(t *testing.T) {
	m := setupModel(t, &stubAnalyzer{})
	m, _ = press(t, m, keyTab)

	for i := 0; i < 10; i++ {
		m, _ = press(t, m, keyDown)
	}
	if m.permCursor != len(testPermissions)-1 {
		t.Errorf("cursor = %d", m.permCursor)
	}

	up := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'k'}}
	for i := 0; i < 10; i++ {
		m, _ = press(t, m, up)
	}
	if m.permCursor != 0 {
		t.Errorf("cursor = %d", m.permCursor)
	}
}

func TestSubmitDisabledWhenEmpty(t *testing.T) {
	a := &stubAnalyzer{result: testResult()}
	m := setupModel(t, a)

	m, cmd := press(t, m, keyCtrlS)
	if cmd != nil {
		t.Error("empty form must not issue a request")
	}
	if m.state.Status() != form.StatusIdle {
		t.Errorf("expected idle, got %s", m.state.Status())
	}
	if a.calls != 0 {
		t.Errorf("expected no calls, got %d", a.calls)
	}
}

func TestSubmitScenario(t *testing.T) {
	a := &stubAnalyzer{result: testResult()}
	m := setupModel(t, a)

	m = typeText(t, m, "We collect your location.")
	m, _ = press(t, m, keyTab)
	m, _ = press(t, m, keyToggle)

	m, cmd := press(t, m, keyCtrlS)
	if m.state.Status() != form.StatusLoading {
		t.Fatalf("expected loading, got %s", m.state.Status())
	}
	if !strings.Contains(m.View(), "Analyzing Agreement...") {
		t.Error("expected loading label on the button")
	}
	if strings.Contains(m.View(), "Test App") {
		t.Error("result panel must not show while loading")
	}

	m, _ = update(t, m, outcomeOf(t, cmd))

	if a.calls != 1 {
		t.Errorf("expected 1 call, got %d", a.calls)
	}
	if a.last.AppName != model.DefaultAppName {
		t.Errorf("app_name = %q", a.last.AppName)
	}
	if a.last.PolicyText != "We collect your location." {
		t.Errorf("policy_text = %q", a.last.PolicyText)
	}
	if len(a.last.Permissions) != 1 || a.last.Permissions[0] != "location" {
		t.Errorf("permissions = %v", a.last.Permissions)
	}

	if m.state.Status() != form.StatusCompleted {
		t.Fatalf("expected completed, got %s", m.state.Status())
	}

	view := m.View()
	for _, want := range []string{"Test App", "High", "82", "data sharing", "location tracking"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected view to contain %q", want)
		}
	}
	if strings.Contains(view, "data_sharing") {
		t.Error("reason codes must be rendered with spaces")
	}
	if got := riskForeground(m.state.Result().RiskLevel); got != colorRed {
		t.Errorf("expected red for High, got %v", got)
	}
}

func TestSubmitWithoutPermissions(t *testing.T) {
	a := &stubAnalyzer{result: testResult()}
	m := setupModel(t, a)
	m = typeText(t, m, "Some policy.")

	m, cmd := press(t, m, keyCtrlS)
	outcomeOf(t, cmd)

	if a.last.Permissions == nil || len(a.last.Permissions) != 0 {
		t.Errorf("expected empty permissions, got %#v", a.last.Permissions)
	}
}

func TestSecondSubmitWhileLoadingRejected(t *testing.T) {
	a := &stubAnalyzer{result: testResult()}
	m := setupModel(t, a)
	m = typeText(t, m, "policy")

	m, first := press(t, m, keyCtrlS)
	seq := m.state.Seq()

	m, second := press(t, m, keyCtrlS)
	if second != nil {
		t.Error("second submit while loading must not issue a request")
	}
	if m.state.Seq() != seq {
		t.Error("second submit must not start a new submission")
	}

	m, _ = update(t, m, outcomeOf(t, first))
	if a.calls != 1 {
		t.Errorf("expected exactly 1 call, got %d", a.calls)
	}

	// Once completed, a new submission is allowed again.
	_, third := press(t, m, keyCtrlS)
	if third == nil {
		t.Error("expected submit to be allowed after completion")
	}
}

func TestInputStaysLiveWhileLoading(t *testing.T) {
	a := &stubAnalyzer{result: testResult()}
	m := setupModel(t, a)
	m = typeText(t, m, "first")

	m, cmd := press(t, m, keyCtrlS)
	m = typeText(t, m, " more")
	m, _ = press(t, m, keyTab)
	m, _ = press(t, m, keyToggle)

	if m.state.PolicyText() != "first more" {
		t.Errorf("policy text = %q", m.state.PolicyText())
	}
	if !m.state.HasPermission("location") {
		t.Error("toggle must work while loading")
	}

	m, _ = update(t, m, outcomeOf(t, cmd))
	if a.last.PolicyText != "first" {
		t.Errorf("request must use the snapshot, got %q", a.last.PolicyText)
	}
	if m.state.Status() != form.StatusCompleted {
		t.Error("late response must still be displayed")
	}
}

func TestResubmitClearsResult(t *testing.T) {
	a := &stubAnalyzer{result: testResult()}
	m := setupModel(t, a)
	m = typeText(t, m, "policy")

	m, cmd := press(t, m, keyCtrlS)
	m, _ = update(t, m, outcomeOf(t, cmd))
	if !strings.Contains(m.View(), "Test App") {
		t.Fatal("expected result")
	}

	m, _ = press(t, m, keyCtrlS)
	if strings.Contains(m.View(), "Test App") {
		t.Error("result panel must disappear when a new submission begins")
	}
}

func TestSubmitViaButton(t *testing.T) {
	a := &stubAnalyzer{result: testResult()}
	m := setupModel(t, a)
	m = typeText(t, m, "policy")

	m, _ = press(t, m, keyTab)
	m, _ = press(t, m, keyTab)
	if m.focus != focusSubmit {
		t.Fatalf("expected submit focus, got %d", m.focus)
	}

	m, cmd := press(t, m, keyEnter)
	if cmd == nil || m.state.Status() != form.StatusLoading {
		t.Error("enter on the button must submit")
	}
}

func TestEnterInPolicyInsertsNewline(t *testing.T) {
	a := &stubAnalyzer{result: testResult()}
	m := setupModel(t, a)
	m = typeText(t, m, "line one")

	m, _ = press(t, m, keyEnter)
	m = typeText(t, m, "line two")

	if m.state.Status() != form.StatusIdle {
		t.Error("enter in the text area must not submit")
	}
	if m.state.PolicyText() != "line one\nline two" {
		t.Errorf("policy text = %q", m.state.PolicyText())
	}
}

func TestFailureState(t *testing.T) {
	a := &stubAnalyzer{err: errors.New("connection refused")}
	m := setupModel(t, a)
	m = typeText(t, m, "policy")

	m, cmd := press(t, m, keyCtrlS)
	m, _ = update(t, m, outcomeOf(t, cmd))

	if m.state.Status() != form.StatusFailed {
		t.Fatalf("expected failed, got %s", m.state.Status())
	}
	view := m.View()
	if !strings.Contains(view, "Analysis failed, try again") {
		t.Error("expected failure panel")
	}
	if !strings.Contains(view, "connection refused") {
		t.Error("expected failure cause")
	}
	if strings.Contains(view, "Analyzing Agreement...") {
		t.Error("must not remain in loading after failure")
	}

	// Retry is possible.
	a.err, a.result = nil, testResult()
	m, cmd = press(t, m, keyCtrlS)
	m, _ = update(t, m, outcomeOf(t, cmd))
	if m.state.Status() != form.StatusCompleted {
		t.Errorf("expected completed after retry, got %s", m.state.Status())
	}
}

func TestMissingRiskLevel(t *testing.T) {
	a := &stubAnalyzer{result: &model.AnalysisResult{App: "Bare App", RiskScore: 2}}
	m := setupModel(t, a)
	m = typeText(t, m, "policy")

	m, cmd := press(t, m, keyCtrlS)
	m, _ = update(t, m, outcomeOf(t, cmd))

	view := m.View()
	if !strings.Contains(view, "Bare App") || !strings.Contains(view, unknownLevel) {
		t.Error("expected fallback risk label")
	}
	if got := riskForeground(""); got != colorGreen {
		t.Errorf("expected green for missing level, got %v", got)
	}
}

func TestRiskForeground(t *testing.T) {
	tests := []struct {
		level string
		want  lipgloss.Color
	}{
		{"High", colorRed},
		{"Medium", colorOrange},
		{"Low", colorGreen},
		{"", colorGreen},
	}
	for _, tt := range tests {
		if got := riskForeground(tt.level); got != tt.want {
			t.Errorf("riskForeground(%q) = %v, want %v", tt.level, got, tt.want)
		}
	}
}

func TestRawView(t *testing.T) {
	a := &stubAnalyzer{result: testResult()}
	m := setupModel(t, a)
	m = typeText(t, m, "policy")
	m, cmd := press(t, m, keyCtrlS)
	m, _ = update(t, m, outcomeOf(t, cmd))

	m, _ = press(t, m, keyCtrlR)
	view := m.View()
	if !strings.Contains(view, `"risk_score"`) || !strings.Contains(view, `"location_tracking"`) {
		t.Error("expected raw JSON in view")
	}

	m, _ = press(t, m, keyCtrlR)
	if strings.Contains(m.View(), `"risk_score"`) {
		t.Error("expected structured view after second toggle")
	}
}

func TestHighlightJSONPreservesText(t *testing.T) {
	lines := highlightJSON(testResult())

	var b strings.Builder
	for i, line := range lines {
		for _, tok := range line {
			b.WriteString(tok.Text)
		}
		if i < len(lines)-1 {
			b.WriteByte('\n')
		}
	}
	if !strings.Contains(b.String(), `"app": "Test App"`) {
		t.Errorf("unexpected highlighted text:\n%s", b.String())
	}
}

func TestQuitCancelsInFlight(t *testing.T) {
	m := setupModel(t, &stubAnalyzer{})

	m, cmd := press(t, m, keyEsc)
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
	if m.ctx.Err() == nil {
		t.Error("quit must cancel the request context")
	}
}

func TestQOnlyQuitsOutsideTextArea(t *testing.T) {
	m := setupModel(t, &stubAnalyzer{})

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if m.state.PolicyText() != "q" {
		t.Errorf("q must be typed into the policy, got %q", m.state.PolicyText())
	}

	m, _ = press(t, m, keyTab)
	_, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q outside the text area must quit")
	}
}

func TestHelpToggle(t *testing.T) {
	m := setupModel(t, &stubAnalyzer{})
	m, _ = press(t, m, keyTab)

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'?'}})
	if !m.showHelp {
		t.Error("expected help to be shown")
	}

	view := m.View()
	if !strings.Contains(view, "Keyboard Shortcuts") {
		t.Error("expected help view to contain shortcuts")
	}

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'?'}})
	if m.showHelp {
		t.Error("expected help to close")
	}
}

func TestStaleOutcomeIgnored(t *testing.T) {
	a := &stubAnalyzer{result: testResult()}
	m := setupModel(t, a)
	m = typeText(t, m, "policy")
	m, _ = press(t, m, keyCtrlS)

	m, _ = update(t, m, form.Outcome{Seq: m.state.Seq() + 5, Result: testResult()})
	if m.state.Status() != form.StatusLoading {
		t.Errorf("stale outcome changed status to %s", m.state.Status())
	}
}

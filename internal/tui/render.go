package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/sprite-ai/consentlens/internal/form"
	"github.com/sprite-ai/consentlens/internal/model"
)

// unknownLevel is shown when the service omits risk_level.
const unknownLevel = "Unknown"

// View implements tea.Model.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}

	if m.showHelp {
		return m.renderHelp()
	}

	width := m.contentWidth()
	sections := []string{
		titleStyle.Render("Consent Transparency Engine"),
		subtitleStyle.Render("Paste a consent or privacy agreement to understand what you are actually agreeing to."),
		m.renderInput(),
		m.renderPermissions(),
		m.renderButton(),
	}

	switch m.state.Status() {
	case form.StatusCompleted:
		if m.showRaw {
			sections = append(sections, panelStyle.Width(width).Render(renderTokens(highlightJSON(m.state.Result()))))
		} else {
			sections = append(sections, renderResult(m.state.Result(), width))
		}
	case form.StatusFailed:
		sections = append(sections, renderFailure(m.state.Err(), width))
	}

	sections = append(sections, m.renderStatusBar())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderInput() string {
	style := inputStyle
	if m.focus == focusPolicy {
		style = inputFocusedStyle
	}
	label := labelStyle.Render("Privacy Policy / Consent Agreement")
	return label + "\n" + style.Render(m.input.View())
}

func (m Model) renderPermissions() string {
	var b strings.Builder
	b.WriteString(labelStyle.Render("Permissions requested"))
	b.WriteByte('\n')

	for i, id := range m.catalog {
		cursor := "  "
		if m.focus == focusPermissions && i == m.permCursor {
			cursor = permCursorStyle.Render("> ")
		}

		box, style := "[ ]", permItemStyle
		if m.state.HasPermission(id) {
			box, style = "[x]", permSelectedStyle
		}

		b.WriteString(cursor)
		b.WriteString(style.Render(box + " " + model.ReasonText(id)))
		if i < len(m.catalog)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func (m Model) renderButton() string {
	if m.state.Status() == form.StatusLoading {
		return "\n" + buttonDisabledStyle.Render("Analyzing Agreement...") + " " + m.spinner.View()
	}
	if !m.state.IsSubmittable() {
		return "\n" + buttonDisabledStyle.Render("Analyze Agreement")
	}
	if m.focus == focusSubmit {
		return "\n" + buttonFocusedStyle.Render("Analyze Agreement")
	}
	return "\n" + buttonStyle.Render("Analyze Agreement")
}

// renderResult draws the result panel for a completed analysis.
func renderResult(r *model.AnalysisResult, width int) string {
	inner := width - 4 // border + padding
	body := lipgloss.NewStyle().Width(inner)

	var b strings.Builder
	b.WriteString(appNameStyle.Render(r.App))
	b.WriteByte('\n')

	b.WriteString(sectionStyle.Render("Plain-English Summary"))
	b.WriteByte('\n')
	b.WriteString(body.Render(r.PlainEnglishSummary))
	b.WriteString("\n\n")

	level := r.RiskLevel
	if level == "" {
		level = unknownLevel
	}
	b.WriteString(sectionStyle.Render("Risk Assessment"))
	b.WriteByte('\n')
	b.WriteString(lipgloss.NewStyle().Foreground(riskForeground(r.RiskLevel)).Bold(true).Render(level))
	b.WriteString(fmt.Sprintf(" risk (%s)", r.Score()))
	b.WriteString("\n\n")

	b.WriteString(sectionStyle.Render("Why this matters"))
	reasons := r.Reasons()
	if len(reasons) == 0 {
		b.WriteString("\n")
		b.WriteString(helpBarStyle.Render("  No specific concerns reported."))
	}
	for _, reason := range reasons {
		b.WriteString("\n  • ")
		b.WriteString(reason)
	}

	return panelStyle.Width(width).Render(b.String())
}

// renderFailure draws the panel shown when the last analysis failed.
func renderFailure(err error, width int) string {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	content := failureTitleStyle.Render("Analysis failed, try again.") + "\n" +
		lipgloss.NewStyle().Width(width-4).Foreground(colorDim).Render(msg)
	return failurePanelStyle.Width(width).Render(content)
}

func (m Model) renderStatusBar() string {
	left := " " + m.state.Status().String()
	if n := len(m.state.Permissions()); n > 0 {
		left += fmt.Sprintf("  %d permission(s)", n)
	}

	right := "tab field  ctrl+s analyze  ctrl+r raw  esc quit "
	if m.focus != focusPolicy {
		right = "? help  " + right
	}

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}

	return statusBarStyle.Width(m.width).Render(left + strings.Repeat(" ", gap) + right)
}

func (m Model) renderHelp() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("consentlens — Keyboard Shortcuts"))
	b.WriteString("\n\n")

	for _, binding := range []struct{ key, desc string }{
		{keys.NextFocus.Help().Key, "Next field"},
		{keys.PrevFocus.Help().Key, "Previous field"},
		{keys.Up.Help().Key + " " + keys.Down.Help().Key, "Move through permissions"},
		{keys.Toggle.Help().Key, "Toggle permission"},
		{keys.Press.Help().Key, "Analyze (on the button)"},
		{keys.Submit.Help().Key, "Analyze from anywhere"},
		{keys.Raw.Help().Key, "Toggle raw JSON response"},
		{keys.Help.Help().Key, "Toggle this help"},
		{"q/esc", "Quit"},
	} {
		b.WriteString(fmt.Sprintf("  %s  %s\n",
			helpKeyStyle.Width(12).Render(binding.key),
			binding.desc,
		))
	}

	b.WriteString("\n")
	b.WriteString(helpBarStyle.Render("Press ? to close help"))

	return b.String()
}

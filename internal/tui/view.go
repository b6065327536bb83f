package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/f3rmion/grader/internal/grader"
	"github.com/f3rmion/grader/internal/report"
	"github.com/mattn/go-runewidth"
)

const twoColumnWidth = 100

// View renders the UI.
func (m Model) View() string {
	var b strings.Builder

	// Header
	b.WriteString(TitleStyle.Render("Landing Page Clarity Grader"))
	b.WriteString("\n")
	b.WriteString(SubtitleStyle.Render("Get AI-powered insights on how clear your landing page is to first-time visitors"))
	b.WriteString("\n\n")

	b.WriteString(m.renderModeTabs())
	b.WriteString("\n\n")

	// Input
	if m.mode == grader.ModeText {
		b.WriteString(FieldLabelStyle.Render("Landing Page Copy"))
		b.WriteString("\n")
		b.WriteString(m.text.View())
	} else {
		b.WriteString(FieldLabelStyle.Render("Landing Page URL"))
		b.WriteString("\n")
		b.WriteString(m.url.View())
	}
	b.WriteString("\n\n")

	b.WriteString(m.renderSubmit())
	b.WriteString("\n")

	if m.err != "" {
		b.WriteString(m.renderError())
		b.WriteString("\n")
	}

	if m.result != nil {
		b.WriteString(m.renderResults(*m.result))
		b.WriteString("\n")
	}

	if m.copyErr != "" {
		b.WriteString(ErrorStyle.Render("Copy failed: " + m.copyErr))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.renderHelp())

	return b.String()
}

// renderModeTabs renders the URL / Raw Text toggle.
func (m Model) renderModeTabs() string {
	tab := func(label string, mode grader.Mode) string {
		if m.mode == mode {
			return ModeTabActiveStyle.Render(label)
		}
		return ModeTabStyle.Render(label)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		tab("URL", grader.ModeURL),
		tab("Raw Text", grader.ModeText),
	)
}

// renderSubmit renders the submit control in its current state.
func (m Model) renderSubmit() string {
	if m.loading {
		return m.spinner.View() + " " + LoadingStyle.Render("Analyzing...")
	}
	if m.CanSubmit() {
		return ButtonStyle.Render("Grade My Landing Page")
	}
	return ButtonDisabledStyle.Render("Grade My Landing Page")
}

func (m Model) renderError() string {
	width := m.contentWidth() - 6
	return ErrorBoxStyle.Render(
		ErrorStyle.Render("Error") + "\n" + ValueStyle.Render(report.WordWrap(m.err, width)),
	)
}

// renderResults renders the scorecard, side by side on wide terminals.
func (m Model) renderResults(r grader.AnalyzeResponse) string {
	inner := m.contentWidth() - 6

	header := SectionTitleStyle.Render("Analysis Results")
	if m.copied {
		header += "  " + CopiedStyle.Render("Copied!")
	}

	var body string
	if m.width >= twoColumnWidth {
		colWidth := inner/2 - 2
		summaries := lipgloss.NewStyle().Width(colWidth).MarginRight(4).Render(renderSummaries(r, colWidth))
		body = lipgloss.JoinHorizontal(lipgloss.Top, summaries, renderScores(r.Scores))
	} else {
		body = renderSummaries(r, inner) + "\n\n" + renderScores(r.Scores)
	}

	return ResultsBoxStyle.Render(header + "\n\n" + body)
}

// renderSummaries renders the three labeled free-text sections.
func renderSummaries(r grader.AnalyzeResponse, width int) string {
	var parts []string
	for _, s := range report.Sections(&r) {
		parts = append(parts,
			SectionTitleStyle.Render(s.Title)+"\n"+ValueStyle.Render(report.WordWrap(s.Body, width)),
		)
	}
	return strings.Join(parts, "\n\n")
}

// renderScores renders one labeled bar per dimension.
func renderScores(scores grader.Scores) string {
	labelWidth := 0
	for _, d := range grader.Dimensions {
		labelWidth = max(labelWidth, runewidth.StringWidth(d.Label()))
	}

	lines := []string{SectionTitleStyle.Render(report.TitleScores)}
	for _, d := range grader.Dimensions {
		v := scores[d]
		lines = append(lines,
			ScoreLabelStyle.Render(runewidth.FillRight(d.Label(), labelWidth))+"  "+
				scoreBar(v, report.BarWidth)+"  "+
				ScoreValueStyle.Render(report.ScoreText(v)),
		)
	}
	return strings.Join(lines, "\n")
}

// scoreBar draws a bar whose filled share is value out of grader.MaxScore.
func scoreBar(value, width int) string {
	filled := report.FilledCells(value, width)
	return BarFilledStyle.Render(strings.Repeat("█", filled)) +
		BarEmptyStyle.Render(strings.Repeat("░", width-filled))
}

func (m Model) renderHelp() string {
	parts := []string{"tab: switch input"}
	if m.mode == grader.ModeURL {
		parts = append(parts, "enter: grade")
	}
	parts = append(parts, "ctrl+s: grade")
	if m.result != nil && m.canCopy {
		parts = append(parts, "ctrl+y: copy")
	}
	parts = append(parts, "esc: quit")
	return HelpStyle.Render(strings.Join(parts, " • "))
}

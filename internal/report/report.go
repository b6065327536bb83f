// Package report renders analysis scorecards as plain text, markdown, or JSON.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/f3rmion/grader/internal/grader"
	"github.com/mattn/go-runewidth"
)

// Format selects the output representation.
type Format string

const (
	FormatText     Format = "text"
	FormatMarkdown Format = "markdown"
	FormatJSON     Format = "json"
)

// DefaultWidth is the wrap width used when none is given.
const DefaultWidth = 80

// BarWidth is the number of cells in a text score bar.
const BarWidth = 20

// Section titles, in display order.
const (
	TitleWhatItIs   = "What it is"
	TitleWhoItIsFor = "Who it's for"
	TitleValueProp  = "Value proposition"
	TitleScores     = "Clarity Scores"
)

// ParseFormat converts a flag value into a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "text", "txt":
		return FormatText, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unknown format %q (want text, markdown or json)", s)
	}
}

// Section is a titled free-text summary.
type Section struct {
	Title string
	Body  string
}

// Sections returns the three summaries of resp in display order.
func Sections(resp *grader.AnalyzeResponse) []Section {
	return []Section{
		{TitleWhatItIs, resp.WhatItIs},
		{TitleWhoItIsFor, resp.WhoItIsFor},
		{TitleValueProp, resp.ValueProp},
	}
}

// Percent scales a score against grader.MaxScore. It does not clamp.
func Percent(value int) float64 {
	return float64(value) * 100 / grader.MaxScore
}

// FilledCells returns how many of width cells a score fills, limited to [0, width].
func FilledCells(value, width int) int {
	n := int(math.Round(Percent(value) / 100 * float64(width)))
	return max(0, min(n, width))
}

// ScoreText formats a score as "value/5".
func ScoreText(value int) string {
	return fmt.Sprintf("%d/%d", value, grader.MaxScore)
}

// Render writes resp to w in the requested format. Width applies to text wrapping.
func Render(w io.Writer, resp *grader.AnalyzeResponse, format Format, width int) error {
	if width <= 0 {
		width = DefaultWidth
	}

	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(resp)
	case FormatMarkdown:
		_, err := io.WriteString(w, Markdown(resp))
		return err
	default:
		_, err := io.WriteString(w, Text(resp, width))
		return err
	}
}

// Text renders resp as an indented plain-text scorecard.
func Text(resp *grader.AnalyzeResponse, width int) string {
	var sb strings.Builder

	for _, s := range Sections(resp) {
		sb.WriteString(s.Title)
		sb.WriteString("\n")
		for _, line := range strings.Split(WordWrap(s.Body, width-2), "\n") {
			sb.WriteString("  " + line + "\n")
		}
		sb.WriteString("\n")
	}

	sb.WriteString(TitleScores)
	sb.WriteString("\n")

	labelWidth := labelColumnWidth()
	for _, d := range grader.Dimensions {
		v := resp.Scores[d]
		filled := FilledCells(v, BarWidth)
		fmt.Fprintf(&sb, "  %s [%s%s]  %s\n",
			runewidth.FillRight(d.Label(), labelWidth),
			strings.Repeat("#", filled),
			strings.Repeat(" ", BarWidth-filled),
			ScoreText(v),
		)
	}

	return sb.String()
}

// Markdown renders resp as a markdown document with a score table.
func Markdown(resp *grader.AnalyzeResponse) string {
	var sb strings.Builder

	sb.WriteString("## Analysis Results\n\n")
	for _, s := range Sections(resp) {
		fmt.Fprintf(&sb, "### %s\n\n%s\n\n", s.Title, s.Body)
	}

	fmt.Fprintf(&sb, "### %s\n\n", TitleScores)
	sb.WriteString("| Dimension | Score |\n")
	sb.WriteString("|---|---|\n")
	for _, d := range grader.Dimensions {
		fmt.Fprintf(&sb, "| %s | %s |\n", d.Label(), ScoreText(resp.Scores[d]))
	}

	return sb.String()
}

func labelColumnWidth() int {
	w := 0
	for _, d := range grader.Dimensions {
		w = max(w, runewidth.StringWidth(d.Label()))
	}
	return w
}

// WordWrap breaks s into lines no wider than width display cells.
// Existing line breaks are kept.
func WordWrap(s string, width int) string {
	if width <= 0 {
		width = 60
	}

	var out []string
	for _, para := range strings.Split(s, "\n") {
		var lines []string
		var currentLine strings.Builder
		currentWidth := 0

		for _, word := range strings.Fields(para) {
			wordWidth := runewidth.StringWidth(word)
			if currentWidth+wordWidth+1 > width && currentWidth > 0 {
				lines = append(lines, currentLine.String())
				currentLine.Reset()
				currentWidth = 0
			}
			if currentWidth > 0 {
				currentLine.WriteString(" ")
				currentWidth++
			}
			currentLine.WriteString(word)
			currentWidth += wordWidth
		}
		lines = append(lines, currentLine.String())
		out = append(out, lines...)
	}

	return strings.Join(out, "\n")
}

package tui

import "github.com/charmbracelet/lipgloss"

// Color palette
var (
	ColorPrimary   = lipgloss.Color("#FF6B6B") // Red - titles, errors
	ColorSecondary = lipgloss.Color("#4ecdc4") // Teal - subtitles, active tab
	ColorAccent    = lipgloss.Color("#ffe66d") // Yellow - input text, bars
	ColorMuted     = lipgloss.Color("#666666") // Gray - help text, empty bar
	ColorSuccess   = lipgloss.Color("#a8e6cf") // Green - copied badge
	ColorText      = lipgloss.Color("#f1faee") // Light text
	ColorLabel     = lipgloss.Color("#a8dadc") // Label color
	ColorBg        = lipgloss.Color("#1a1a2e") // Dark background
	ColorBgAlt     = lipgloss.Color("#2d3436") // Alt background
	ColorBorder    = lipgloss.Color("#3d5a80") // Border color
)

// Title styles
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary).
			Background(ColorBg).
			Padding(0, 1)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(ColorSecondary)
)

// Mode toggle styles
var (
	ModeTabStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Background(ColorBgAlt).
			Padding(0, 2).
			MarginRight(1)

	ModeTabActiveStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorBg).
				Background(ColorSecondary).
				Padding(0, 2).
				MarginRight(1)
)

// Form styles
var (
	FieldLabelStyle = lipgloss.NewStyle().
			Foreground(ColorLabel).
			Bold(true)

	InputPromptStyle = lipgloss.NewStyle().
				Foreground(ColorSecondary)

	InputTextStyle = lipgloss.NewStyle().
			Foreground(ColorAccent)

	ButtonStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorBg).
			Background(ColorSecondary).
			Padding(0, 3)

	ButtonDisabledStyle = lipgloss.NewStyle().
				Foreground(ColorMuted).
				Background(ColorBgAlt).
				Padding(0, 3)
)

// Result styles
var (
	SectionTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorText)

	ValueStyle = lipgloss.NewStyle().
			Foreground(ColorText)

	ScoreLabelStyle = lipgloss.NewStyle().
			Foreground(ColorLabel).
			Bold(true)

	ScoreValueStyle = lipgloss.NewStyle().
			Foreground(ColorText).
			Bold(true)

	BarFilledStyle = lipgloss.NewStyle().
			Foreground(ColorAccent)

	BarEmptyStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	ResultsBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(1, 2).
			MarginTop(1)

	ErrorBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorPrimary).
			Padding(0, 2).
			MarginTop(1)
)

// Status styles
var (
	HelpStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true)

	LoadingStyle = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true).
			Italic(true)

	CopiedStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess).
			Bold(true)
)

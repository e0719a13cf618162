package format

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Monokai Pro palette.
const (
	colorRed     = "#FF6188"
	colorOrange  = "#FC9867"
	colorYellow  = "#FFD866"
	colorGreen   = "#A9DC76"
	colorCyan    = "#78DCE8"
	colorBlue    = "#AB9DF2"
	colorComment = "#727072"
)

// Styles paints the parts of a tree or outline line.
type Styles struct {
	Kind     func(...string) string
	Heading  func(...string) string
	Text     func(...string) string
	Code     func(...string) string
	Link     func(...string) string
	Position func(...string) string
	Key      func(...string) string
}

// ColorStyles returns lipgloss styles for terminal output.
func ColorStyles() Styles {
	return Styles{
		Kind:     lipgloss.NewStyle().Foreground(lipgloss.Color(colorCyan)).Render,
		Heading:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(colorRed)).Render,
		Text:     lipgloss.NewStyle().Foreground(lipgloss.Color(colorYellow)).Render,
		Code:     lipgloss.NewStyle().Foreground(lipgloss.Color(colorGreen)).Render,
		Link:     lipgloss.NewStyle().Underline(true).Foreground(lipgloss.Color(colorBlue)).Render,
		Position: lipgloss.NewStyle().Foreground(lipgloss.Color(colorComment)).Render,
		Key:      lipgloss.NewStyle().Foreground(lipgloss.Color(colorOrange)).Render,
	}
}

// PlainStyles leaves text untouched.
func PlainStyles() Styles {
	return Styles{
		Kind:     plain,
		Heading:  plain,
		Text:     plain,
		Code:     plain,
		Link:     plain,
		Position: plain,
		Key:      plain,
	}
}

func plain(strs ...string) string {
	return strings.Join(strs, " ")
}

func stylesFor(color bool) Styles {
	if color {
		return ColorStyles()
	}
	return PlainStyles()
}

package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"susc/internal/diag"
)

const fence = "```"

var (
	explainTitle = lipgloss.NewStyle().Bold(true)
	explainCode  = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).PaddingLeft(4)
	explainNote  = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).PaddingLeft(4)
	explainBox   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

// RenderExplanation formats e for a terminal. annotate is called for each
// fenced example and its output is printed under it; it may be nil.
// Without color the text is returned undecorated.
func RenderExplanation(e diag.Explanation, annotate func(example string) string, color bool, width int) string {
	style := func(s lipgloss.Style) lipgloss.Style {
		if !color {
			return lipgloss.NewStyle().PaddingLeft(s.GetPaddingLeft())
		}
		return s
	}

	var b strings.Builder
	header := e.Code.ID() + ": " + e.Code.Title() + " (" + e.Severity.String() + ")"
	if color {
		header = explainBox.Render(explainTitle.Render(header))
	}
	b.WriteString(header)
	b.WriteString("\n\n")

	for i, part := range strings.Split(e.Text, fence) {
		if i%2 == 0 {
			text := strings.Trim(part, "\n")
			if text == "" {
				continue
			}
			if width > 0 {
				text = lipgloss.NewStyle().Width(width).Render(text)
			}
			b.WriteString(text)
			b.WriteString("\n\n")
			continue
		}
		example := strings.Trim(part, "\n")
		b.WriteString(style(explainCode).Render(example))
		b.WriteString("\n")
		if annotate != nil {
			if note := strings.TrimRight(annotate(example+"\n"), "\n"); note != "" {
				b.WriteString("\n")
				b.WriteString(style(explainNote).Render(note))
				b.WriteString("\n")
			}
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n") + "\n"
}

package report

import "github.com/charmbracelet/lipgloss"

var (
	prefixStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	errorStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("1"))
	warnStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("3"))
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	countStyle  = lipgloss.NewStyle().Faint(true)
)

// paint renders text with style when colors are enabled.
func (r *Reporter) paint(style lipgloss.Style, text string) string {
	if !r.useColors {
		return text
	}
	return style.Render(text)
}

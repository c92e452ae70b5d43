package tui

import "github.com/charmbracelet/lipgloss"

// Styles holds every Lip Gloss style the interactive list uses.
type Styles struct {
	Title, Success, Pending, Accent, Muted, Error lipgloss.Style
	Selected, Done, Help, Bar                     lipgloss.Style
	BoxChecked, BoxUnchecked                      string
}

// StylesFor maps a theme name ("classic", "neon", "mono") to styles.
func StylesFor(theme string) Styles {
	s := Styles{
		Title:        lipgloss.NewStyle().Bold(true),
		Success:      lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		Pending:      lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		Accent:       lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		Muted:        lipgloss.NewStyle().Faint(true),
		Error:        lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		Selected:     lipgloss.NewStyle().Bold(true).Reverse(true),
		Done:         lipgloss.NewStyle().Faint(true).Strikethrough(true),
		Help:         lipgloss.NewStyle().Faint(true),
		Bar:          lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("8")).Padding(0, 1),
		BoxChecked:   "☑",
		BoxUnchecked: "☐",
	}
	switch theme {
	case "neon":
		s.Title = s.Title.Foreground(lipgloss.Color("201"))
		s.Accent = lipgloss.NewStyle().Foreground(lipgloss.Color("51"))
		s.BoxChecked, s.BoxUnchecked = "◼", "◻"
	case "mono":
		plain := lipgloss.NewStyle()
		s.Success, s.Pending, s.Accent, s.Error = plain, plain, plain.Underline(true), plain.Bold(true)
		s.Done = plain
		s.BoxChecked, s.BoxUnchecked = "[x]", "[ ]"
	}
	return s
}

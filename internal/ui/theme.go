package ui

import (
	"strings"

	"github.com/fatih/color"
)

// Theme bundles palette + symbols + box borders.
type Theme struct {
	Name                                          string
	Title, Muted, Accent, Success, Error, Pending *color.Color
	BoxUnchecked, BoxChecked                      string
	CornerTL, CornerTR, CornerBL, CornerBR        string
	H, V                                          string
	SymDone, SymPending, SymFail                  string
}

// ThemeByName returns one of "classic", "neon" or "mono".
// Unknown names get the classic theme.
func ThemeByName(name string) Theme {
	switch strings.ToLower(name) {
	case "neon":
		return Theme{
			Name:  "neon",
			Title: color.New(color.FgHiMagenta, color.Bold),
			Muted: color.New(color.FgHiBlack), Accent: color.New(color.FgHiCyan),
			Success: color.New(color.FgGreen), Error: color.New(color.FgRed), Pending: color.New(color.FgHiYellow),
			BoxUnchecked: "◻", BoxChecked: "◼",
			CornerTL: "╭", CornerTR: "╮", CornerBL: "╰", CornerBR: "╯",
			H: "─", V: "│",
			SymDone: "✔", SymPending: "•", SymFail: "✖",
		}
	case "mono":
		t := Theme{
			Name:         "mono",
			BoxUnchecked: "[ ]", BoxChecked: "[x]",
			CornerTL: "+", CornerTR: "+", CornerBL: "+", CornerBR: "+",
			H: "-", V: "|",
			SymDone: "x", SymPending: "-", SymFail: "!",
		}
		for _, c := range []**color.Color{&t.Title, &t.Muted, &t.Accent, &t.Success, &t.Error, &t.Pending} {
			*c = color.New(color.Reset)
			(*c).DisableColor()
		}
		return t
	default:
		return Theme{
			Name:  "classic",
			Title: color.New(color.Bold),
			Muted: color.New(color.FgHiBlack), Accent: color.New(color.FgBlue),
			Success: color.New(color.FgGreen), Error: color.New(color.FgRed), Pending: color.New(color.FgYellow),
			BoxUnchecked: "☐", BoxChecked: "☑",
			CornerTL: "┌", CornerTR: "┐", CornerBL: "└", CornerBR: "┘",
			H: "─", V: "│",
			SymDone: "✔", SymPending: "•", SymFail: "✖",
		}
	}
}

// DisableColor turns colored output off regardless of terminal detection.
func DisableColor() {
	color.NoColor = true
}

package output

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Styles holds the lipgloss styles used by text mode.
type Styles struct {
	Header1 lipgloss.Style
	Header2 lipgloss.Style
	Bold    lipgloss.Style
	Muted   lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style
	Success lipgloss.Style
	Dataset lipgloss.Style
	SQL     lipgloss.Style

	StatusSuccess lipgloss.Style
	StatusFailed  lipgloss.Style
	StatusSkipped lipgloss.Style
}

// newStyles builds styles bound to w. Without a TTY the color profile is
// ASCII, so rendered strings carry no escape codes.
func newStyles(w io.Writer, isTTY bool) *Styles {
	profile := termenv.Ascii
	if isTTY {
		profile = termenv.EnvColorProfile()
	}
	r := lipgloss.NewRenderer(w, termenv.WithProfile(profile))
	r.SetColorProfile(profile)

	green := lipgloss.AdaptiveColor{Light: "#2E7D32", Dark: "#73D216"}
	red := lipgloss.AdaptiveColor{Light: "#C62828", Dark: "#EF2929"}
	yellow := lipgloss.AdaptiveColor{Light: "#B26A00", Dark: "#FCE94F"}
	blue := lipgloss.AdaptiveColor{Light: "#1565C0", Dark: "#729FCF"}
	gray := lipgloss.AdaptiveColor{Light: "#757575", Dark: "#888A85"}

	return &Styles{
		Header1: r.NewStyle().Bold(true).Underline(true),
		Header2: r.NewStyle().Bold(true).Foreground(blue),
		Bold:    r.NewStyle().Bold(true),
		Muted:   r.NewStyle().Foreground(gray),
		Error:   r.NewStyle().Foreground(red),
		Warning: r.NewStyle().Foreground(yellow),
		Info:    r.NewStyle().Foreground(blue),
		Success: r.NewStyle().Foreground(green),
		Dataset: r.NewStyle().Bold(true).Foreground(blue),
		SQL:     r.NewStyle().Foreground(gray),

		StatusSuccess: r.NewStyle().Foreground(green).SetString("✓"),
		StatusFailed:  r.NewStyle().Foreground(red).SetString("✗"),
		StatusSkipped: r.NewStyle().Foreground(gray).SetString("-"),
	}
}

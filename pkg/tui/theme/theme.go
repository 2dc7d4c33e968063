// Package theme centralizes Lip Gloss styles for the subviews TUI.
package theme

import (
	"github.com/charmbracelet/lipgloss/v2"
	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/termenv"
)

// Theme groups every style used across the UI.
type Theme struct {
	Tree   TreeTheme
	Footer FooterTheme
	Panel  PanelTheme
}

// TreeTheme styles component rows by nesting depth.
type TreeTheme struct {
	// Depth holds one style per level; deeper levels reuse the last one.
	Depth    []lipgloss.Style
	Count    lipgloss.Style
	Selected lipgloss.Style
}

// FooterTheme groups styles used by the bottom status bar.
type FooterTheme struct {
	Help   lipgloss.Style
	Status lipgloss.Style
	Error  lipgloss.Style
}

// PanelTheme styles framed panels and headings.
type PanelTheme struct {
	Frame lipgloss.Style
	Title lipgloss.Style
	Body  lipgloss.Style
}

// DepthLevels is the number of distinct colours in the depth gradient.
const DepthLevels = 6

// Default returns the built-in theme for the current terminal background.
func Default() Theme {
	return ForBackground(termenv.HasDarkBackground())
}

// ForBackground returns the built-in theme tuned for a dark or light
// terminal background.
func ForBackground(dark bool) Theme {
	from, to := "#5FD7FF", "#AF87FF"
	if !dark {
		from, to = "#005F87", "#5F00AF"
	}

	return Theme{
		Tree: TreeTheme{
			Depth:    depthStyles(from, to, DepthLevels),
			Count:    lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
			Selected: lipgloss.NewStyle().Reverse(true),
		},
		Footer: FooterTheme{
			Help:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
			Status: lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
			Error:  lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5F5F")),
		},
		Panel: PanelTheme{
			Frame: lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				Padding(0, 1),
			Title: lipgloss.NewStyle().Bold(true),
			Body:  lipgloss.NewStyle(),
		},
	}
}

// DepthStyle returns the row style for depth.
func (t TreeTheme) DepthStyle(depth int) lipgloss.Style {
	if len(t.Depth) == 0 {
		return lipgloss.NewStyle()
	}
	if depth < 0 {
		depth = 0
	}
	if depth >= len(t.Depth) {
		depth = len(t.Depth) - 1
	}
	return t.Depth[depth]
}

// Gradient returns n hex colours blended in Lab space between from and to.
func Gradient(from, to string, n int) []string {
	if n <= 0 {
		return nil
	}
	a, errA := colorful.Hex(from)
	b, errB := colorful.Hex(to)
	if errA != nil || errB != nil {
		out := make([]string, n)
		for i := range out {
			out[i] = from
		}
		return out
	}
	out := make([]string, n)
	for i := 0; i < n; i++ {
		t := 0.0
		if n > 1 {
			t = float64(i) / float64(n-1)
		}
		out[i] = a.BlendLab(b, t).Clamped().Hex()
	}
	return out
}

func depthStyles(from, to string, n int) []lipgloss.Style {
	colors := Gradient(from, to, n)
	styles := make([]lipgloss.Style, len(colors))
	for i, c := range colors {
		styles[i] = lipgloss.NewStyle().Foreground(lipgloss.Color(c))
		if i == 0 {
			styles[i] = styles[i].Bold(true)
		}
	}
	return styles
}

package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Styles are the lipgloss styles derived from a Theme.
type Styles struct {
	Title  lipgloss.Style
	Row    lipgloss.Style
	RowAlt lipgloss.Style
	Edge   lipgloss.Style
	Thumb  lipgloss.Style
	Track  lipgloss.Style
	Chart  lipgloss.Style
	Label  lipgloss.Style
	Value  lipgloss.Style
	Help   lipgloss.Style
	List   lipgloss.Style
	Stats  lipgloss.Style
}

func NewStyles(t Theme) Styles {
	return Styles{
		Title:  lipgloss.NewStyle().Foreground(t.Title).Bold(true).MarginBottom(1),
		Row:    lipgloss.NewStyle().Foreground(t.Row),
		RowAlt: lipgloss.NewStyle().Foreground(t.RowAlt),
		Edge:   lipgloss.NewStyle().Foreground(t.Edge),
		Thumb:  lipgloss.NewStyle().Foreground(t.Thumb),
		Track:  lipgloss.NewStyle().Foreground(t.Track),
		Chart:  lipgloss.NewStyle().Foreground(t.Chart).Padding(1, 0),
		Label:  lipgloss.NewStyle().Foreground(t.Label).Width(12),
		Value:  lipgloss.NewStyle().Foreground(t.Value),
		Help:   lipgloss.NewStyle().Foreground(t.Muted).MarginTop(1),
		List: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Track).
			Padding(0, 1),
		Stats: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(t.Muted).
			Padding(0, 2).
			Width(48),
	}
}

// GradientText colors text with a linear blend from start to end.
func GradientText(text string, start, end lipgloss.Color) string {
	runes := []rune(text)
	if len(runes) == 0 {
		return ""
	}

	sr, sg, sb := parseHex(string(start))
	er, eg, eb := parseHex(string(end))

	var b strings.Builder
	n := len(runes)
	for i, c := range runes {
		t := 0.0
		if n > 1 {
			t = float64(i) / float64(n-1)
		}
		r := int(float64(sr) + t*float64(er-sr))
		g := int(float64(sg) + t*float64(eg-sg))
		bl := int(float64(sb) + t*float64(eb-sb))
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(hexColor(r, g, bl)))
		b.WriteString(style.Render(string(c)))
	}
	return b.String()
}

// Meter draws a signed bar centred on zero: negative overscroll fills to
// the left, positive to the right. limit is the magnitude of a full half.
func Meter(v, limit float64, width int) string {
	half := width / 2
	filled := 0
	if limit > 0 {
		filled = int(float64(half) * abs(v) / limit)
	}
	if filled > half {
		filled = half
	}

	left := strings.Repeat("░", half)
	right := strings.Repeat("░", width-half)
	switch {
	case v < 0:
		left = strings.Repeat("░", half-filled) + strings.Repeat("█", filled)
	case v > 0:
		right = strings.Repeat("█", filled) + strings.Repeat("░", width-half-filled)
	}
	return left + "│" + right
}

func Separator(width int) string {
	if width < 6 {
		return strings.Repeat("─", width)
	}
	mid := width / 2
	return strings.Repeat("─", mid-3) + " ◆ " + strings.Repeat("─", width-mid-3)
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

func parseHex(hex string) (r, g, b int) {
	if len(hex) != 7 || hex[0] != '#' {
		return 255, 255, 255
	}
	return parseHexByte(hex[1:3]), parseHexByte(hex[3:5]), parseHexByte(hex[5:7])
}

func parseHexByte(s string) int {
	val := 0
	for _, c := range s {
		val *= 16
		switch {
		case c >= '0' && c <= '9':
			val += int(c - '0')
		case c >= 'a' && c <= 'f':
			val += int(c - 'a' + 10)
		case c >= 'A' && c <= 'F':
			val += int(c - 'A' + 10)
		}
	}
	return val
}

func hexColor(r, g, b int) string {
	return "#" + hexByte(r) + hexByte(g) + hexByte(b)
}

func hexByte(v int) string {
	if v < 0 {
		v = 0
	}
	if v > 255 {
		v = 255
	}
	const hex = "0123456789abcdef"
	return string(hex[v/16]) + string(hex[v%16])
}

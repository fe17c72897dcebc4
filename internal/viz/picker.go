package viz

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	cyan   = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	white  = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	dim    = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	dimmer = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
)

type PickerItem struct {
	Name        string
	Description string
}

// Picker is a menu for choosing a preset before the demo starts.
type Picker struct {
	items  []PickerItem
	cursor int
	chosen string
}

func NewPicker(items []PickerItem) *Picker {
	return &Picker{items: items}
}

func (p *Picker) Init() tea.Cmd { return nil }

func (p *Picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return p, nil
	}
	switch key.String() {
	case "q", "ctrl+c", "esc":
		return p, tea.Quit
	case "up", "k":
		if p.cursor > 0 {
			p.cursor--
		}
	case "down", "j":
		if p.cursor < len(p.items)-1 {
			p.cursor++
		}
	case "enter", " ":
		if len(p.items) > 0 {
			p.chosen = p.items[p.cursor].Name
		}
		return p, tea.Quit
	}
	return p, nil
}

func (p *Picker) View() string {
	var b strings.Builder
	b.WriteString("\n  " + cyan.Render("KINETIC") + dim.Render("  scroll physics lab") + "\n\n")
	for i, it := range p.items {
		line := fmt.Sprintf("%-14s", it.Name)
		if i == p.cursor {
			b.WriteString("  " + cyan.Render("▸ ") + white.Render(line) + dim.Render(it.Description) + "\n")
		} else {
			b.WriteString("    " + dim.Render(line) + dimmer.Render(it.Description) + "\n")
		}
	}
	b.WriteString("\n  " + dimmer.Render("↑↓ select  enter start  q quit") + "\n")
	return b.String()
}

// Chosen is the selected name, empty if the user quit.
func (p *Picker) Chosen() string { return p.chosen }

// RunPicker shows the menu and returns the chosen name.
func RunPicker(items []PickerItem) (string, error) {
	p := NewPicker(items)
	if _, err := tea.NewProgram(p).Run(); err != nil {
		return "", err
	}
	return p.Chosen(), nil
}

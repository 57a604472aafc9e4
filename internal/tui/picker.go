// Package tui is the interactive unit picker used by `papergen paper
// --interactive`: choose units, enter total marks, confirm.
package tui

import (
	"fmt"
	"strconv"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
)

type phase int

const (
	phaseUnits phase = iota
	phaseMarks
	phaseDone
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true)
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true)
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

// Selection is the picker outcome.
type Selection struct {
	Units      []string
	TotalMarks int
	Accepted   bool
}

// Picker is the Bubble Tea model for the interactive paper flow.
type Picker struct {
	units    []string
	cursor   int
	chosen   map[int]bool
	marks    textinput.Model
	phase    phase
	accepted bool
	errMsg   string
	width    int
	height   int
}

// New creates a picker over the available units.
func New(units []string) Picker {
	ti := textinput.New()
	ti.Placeholder = "total marks, e.g. 100"
	ti.CharLimit = 4
	return Picker{
		units:  units,
		chosen: map[int]bool{},
		marks:  ti,
	}
}

func (p Picker) Init() tea.Cmd {
	return nil
}

func (p Picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		p.width = msg.Width
		p.height = msg.Height
		return p, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			p.phase = phaseDone
			return p, tea.Quit
		}
	}

	switch p.phase {
	case phaseUnits:
		return p.updateUnits(msg)
	case phaseMarks:
		return p.updateMarks(msg)
	}
	return p, nil
}

func (p Picker) updateUnits(msg tea.Msg) (tea.Model, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return p, nil
	}

	switch kmsg.String() {
	case "up", "k":
		if p.cursor > 0 {
			p.cursor--
		}
	case "down", "j":
		if p.cursor < len(p.units)-1 {
			p.cursor++
		}
	case " ", "space":
		p.chosen[p.cursor] = !p.chosen[p.cursor]
		p.errMsg = ""
	case "a":
		all := len(p.selectedUnits()) < len(p.units)
		for i := range p.units {
			p.chosen[i] = all
		}
		p.errMsg = ""
	case "enter":
		if len(p.selectedUnits()) == 0 {
			p.errMsg = "select at least one unit"
			return p, nil
		}
		p.phase = phaseMarks
		return p, p.marks.Focus()
	case "q", "esc":
		p.phase = phaseDone
		return p, tea.Quit
	}
	return p, nil
}

func (p Picker) updateMarks(msg tea.Msg) (tea.Model, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "enter":
			n, err := strconv.Atoi(p.marks.Value())
			if err != nil || n <= 0 {
				p.errMsg = "enter a positive number"
				return p, nil
			}
			p.errMsg = ""
			p.accepted = true
			p.phase = phaseDone
			return p, tea.Quit
		case "esc":
			p.phase = phaseUnits
			p.errMsg = ""
			return p, nil
		}
		// Digits only.
		if key := kmsg.String(); len(key) == 1 && (key[0] < '0' || key[0] > '9') {
			return p, nil
		}
	}

	var cmd tea.Cmd
	p.marks, cmd = p.marks.Update(msg)
	return p, cmd
}

func (p Picker) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true
	v.SetContent(p.content())
	return v
}

func (p Picker) content() string {
	var s string
	switch p.phase {
	case phaseUnits:
		s = titleStyle.Render("Select units") + "\n\n"
		for i, u := range p.units {
			cursor := "  "
			if i == p.cursor {
				cursor = "▸ "
			}
			check := "[ ]"
			if p.chosen[i] {
				check = "[x]"
			}
			line := fmt.Sprintf("%s%s %s", cursor, check, u)
			if i == p.cursor {
				s += selectedStyle.Render(line) + "\n"
			} else {
				s += line + "\n"
			}
		}
		s += "\n" + dimStyle.Render("space toggle · a all · enter continue · q quit")
	case phaseMarks:
		s = titleStyle.Render("Total marks") + "\n\n"
		s += p.marks.View() + "\n\n"
		s += dimStyle.Render("enter confirm · esc back")
	case phaseDone:
		s = ""
	}
	if p.errMsg != "" {
		s += "\n" + errorStyle.Render(p.errMsg)
	}
	return s
}

// Selection returns the picker outcome. Accepted is false when the user
// quit without confirming.
func (p Picker) Selection() Selection {
	return Selection{
		Units:      p.selectedUnits(),
		TotalMarks: p.marksValue(),
		Accepted:   p.accepted,
	}
}

func (p Picker) selectedUnits() []string {
	var out []string
	for i, u := range p.units {
		if p.chosen[i] {
			out = append(out, u)
		}
	}
	return out
}

func (p Picker) marksValue() int {
	n, err := strconv.Atoi(p.marks.Value())
	if err != nil {
		return 0
	}
	return n
}

// Run starts the picker program and returns the final selection.
func Run(units []string) (Selection, error) {
	p := tea.NewProgram(New(units))
	m, err := p.Run()
	if err != nil {
		return Selection{}, fmt.Errorf("run picker: %w", err)
	}
	picker, ok := m.(Picker)
	if !ok {
		return Selection{}, fmt.Errorf("unexpected model type %T", m)
	}
	return picker.Selection(), nil
}

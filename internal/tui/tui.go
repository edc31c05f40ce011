package tui

import (
	"fmt"
	"strings"
	"unicode"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tldr-it-stepankutaj/enigmakit/internal/app"
	"github.com/tldr-it-stepankutaj/enigmakit/internal/enigma"
)

var lampRows = []string{"QWERTZUIO", "ASDFGHJK", "PYXCVBNML"}

// Model is the keyboard and lampboard of one machine. Plain text only.
type Model struct {
	machine *enigma.Machine
	start   enigma.Letters
	input   []rune
	output  []rune
	lamp    rune
	msg     string
	// notes is shared by every copy of the model; the listener writes to it.
	notes *notes
}

type notes struct {
	last string
}

// New returns a model for m; ctrl+r turns the rotors back to start.
func New(m *enigma.Machine, start enigma.Letters) Model {
	n := &notes{}
	m.Listen("tui", enigma.ListenerFunc(func(e enigma.Event) {
		if e.Kind == enigma.EventDoubleStep {
			n.last = "Double step on rotor " + e.Name + "."
		}
	}))
	return Model{machine: m, start: start, msg: "Ready.", notes: n}
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.Type {
	case tea.KeyEsc, tea.KeyCtrlC:
		return m, tea.Quit
	case tea.KeyCtrlR:
		if err := m.machine.SetStart(m.start); err != nil {
			m.msg = "Reset failed: " + err.Error()
			return m, nil
		}
		m.input, m.output, m.lamp = nil, nil, 0
		m.msg = "Rotors reset to " + string(m.start) + "."
		return m, nil
	case tea.KeyRunes, tea.KeySpace:
		m.msg = ""
		for _, r := range key.Runes {
			out, ok := m.machine.KeyPress(r)
			if !ok {
				if r != ' ' {
					m.msg = fmt.Sprintf("No key for %q.", r)
				}
				continue
			}
			m.input = append(m.input, unicode.ToUpper(r))
			m.output = append(m.output, out)
			m.lamp = out
		}
		if m.notes.last != "" {
			m.msg, m.notes.last = m.notes.last, ""
		}
	}
	return m, nil
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString("enigmakit (type to encode, ctrl+r to reset, esc to quit)\n\n")

	b.WriteString("Rotors: ")
	for _, w := range m.machine.Windows() {
		fmt.Fprintf(&b, "[%c] ", w)
	}
	b.WriteString("\n\n")

	for _, row := range m.lampRows() {
		b.WriteString(strings.Repeat(" ", (len(lampRows[0])-len(row))*3/2))
		for _, l := range row {
			if l == m.lamp {
				fmt.Fprintf(&b, "(%c)", l)
			} else {
				fmt.Fprintf(&b, " %c ", l)
			}
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "\nIn:  %s\nOut: %s\n", groups(m.input), groups(m.output))
	if m.msg != "" {
		fmt.Fprintf(&b, "\n%s\n", m.msg)
	}
	return b.String()
}

func (m Model) lampRows() []string {
	if m.machine.Alphabet().String() == enigma.StandardAlphabet {
		return lampRows
	}
	return []string{m.machine.Alphabet().String()}
}

// groups splits text into blocks of five, as messages were written down.
func groups(text []rune) string {
	var b strings.Builder
	for i, r := range text {
		if i > 0 && i%5 == 0 {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Run starts the TUI on the machine described by the config.
func Run(appCtx app.Context) error {
	m, err := app.BuildMachine(appCtx.Config.Machine, appCtx.Inventory, appCtx.Models, appCtx.Logger)
	if err != nil {
		return err
	}
	start := enigma.Letters(m.Windows())
	_, err = tea.NewProgram(New(m, start)).Run()
	return err
}

package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/protviz/protviz/pkg/errors"
)

// accessionModel is the bubbletea model for the accession prompt shown when
// plot is invoked without an argument.
type accessionModel struct {
	input     string
	err       string
	confirmed bool
	quit      bool
}

func (m accessionModel) Init() tea.Cmd {
	return nil
}

func (m accessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "ctrl+c", "esc":
		m.quit = true
		return m, tea.Quit
	case "enter":
		acc := strings.ToUpper(strings.TrimSpace(m.input))
		if err := errors.ValidateAccession(acc); err != nil {
			m.err = err.Error()
			return m, nil
		}
		m.input = acc
		m.confirmed = true
		return m, tea.Quit
	case "backspace":
		if len(m.input) > 0 {
			m.input = m.input[:len(m.input)-1]
			m.err = ""
		}
	default:
		if key.Type == tea.KeyRunes {
			m.input += string(key.Runes)
			m.err = ""
		}
	}
	return m, nil
}

func (m accessionModel) View() string {
	var b strings.Builder
	b.WriteString(StyleTitle.Render("Protein accession"))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("e.g. P69905  ·  ⏎ confirm  ·  esc quit"))
	b.WriteString("\n\n")
	b.WriteString("> " + StyleValue.Render(m.input) + StyleHighlight.Render("▌"))
	if m.err != "" {
		b.WriteString("\n" + StyleWarning.Render(m.err))
	}
	b.WriteString("\n")
	return b.String()
}

// promptAccession asks for a UniProt accession interactively.
func promptAccession() (string, error) {
	final, err := tea.NewProgram(accessionModel{}).Run()
	if err != nil {
		return "", fmt.Errorf("prompt: %w", err)
	}
	m := final.(accessionModel)
	if !m.confirmed {
		return "", fmt.Errorf("no accession entered")
	}
	return m.input, nil
}

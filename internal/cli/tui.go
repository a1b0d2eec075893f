package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/thumbstudio/pkg/style"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// PresetListModel - Interactive preset selection
// =============================================================================

// PresetListModel is the bubbletea model for interactive preset selection.
type PresetListModel struct {
	Presets  []style.Preset
	Cursor   int
	Selected *style.Preset
}

// NewPresetListModel creates a new preset list model.
func NewPresetListModel(presets []style.Preset) PresetListModel {
	return PresetListModel{Presets: presets}
}

func (m PresetListModel) Init() tea.Cmd {
	return nil
}

func (m PresetListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
			}
		case "down", "j":
			if m.Cursor < len(m.Presets)-1 {
				m.Cursor++
			}
		case "home", "g":
			m.Cursor = 0
		case "end", "G":
			m.Cursor = max(0, len(m.Presets)-1)
		case "enter":
			if len(m.Presets) == 0 {
				return m, tea.Quit
			}
			p := m.Presets[m.Cursor]
			m.Selected = &p
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m PresetListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Preset"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")
	b.WriteString(renderPresetTable(m.Presets, m.Cursor))
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Presets))))
	b.WriteString("\n")

	return b.String()
}

// runPresetPicker shows the picker and returns the chosen preset, or nil if
// the user quit without choosing.
func runPresetPicker() (*style.Preset, error) {
	final, err := tea.NewProgram(NewPresetListModel(style.Presets())).Run()
	if err != nil {
		return nil, fmt.Errorf("preset picker: %w", err)
	}
	return final.(PresetListModel).Selected, nil
}

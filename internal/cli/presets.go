package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/thumbstudio/pkg/style"
)

// presetsCommand creates the command that lists the bundled presets.
func (c *CLI) presetsCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "presets",
		Short: "List the bundled style presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			presets := style.Presets()
			if asJSON {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(presets)
			}
			fmt.Println(renderPresetTable(presets, -1))
			printNextStep("Apply one", "thumbstudio render --preset <id>")
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print presets and their patches as JSON")
	return cmd
}

// renderPresetTable formats presets as a table. The row at cursor is
// highlighted; pass -1 for none.
func renderPresetTable(presets []style.Preset, cursor int) string {
	rows := make([][]string, len(presets))
	for i, p := range presets {
		marker := "  "
		if i == cursor {
			marker = "▸ "
		}
		rows[i] = []string{marker, p.Icon + " " + p.Name, string(p.ID), presetSummary(p.Patch)}
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Preset", "ID", "Sets").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if row == cursor {
				return listSelectedStyle
			}
			if col == 3 {
				return listDimStyle
			}
			return listNormalStyle
		}).
		Render()
}

// presetSummary lists the fields a preset patch sets with their values.
func presetSummary(p style.Patch) string {
	data, err := json.Marshal(p)
	if err != nil {
		return strings.Join(p.Fields(), ", ")
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return strings.Join(p.Fields(), ", ")
	}
	fields := p.Fields()
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, fmt.Sprintf("%s=%v", f, m[f]))
	}
	return strings.Join(parts, " ")
}

package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"image/color"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/thumbstudio/pkg/layers"
)

// layersCommand creates the command that prints the resolved layer stack.
func (c *CLI) layersCommand() *cobra.Command {
	var opts renderOpts
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "layers",
		Short: "Print the layer stack for a style",
		Long: `Print the layer stack, bottom to top, that a render with the same flags
would paint. Nothing is rasterized or written.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			popts, err := opts.pipelineOptions(cmd)
			if err != nil {
				return err
			}
			popts.Logger = loggerFromContext(cmd.Context())

			runner, err := c.newRunner(true)
			if err != nil {
				return err
			}
			surf, err := runner.Compose(cmd.Context(), popts)
			if err != nil {
				return err
			}

			if asJSON {
				data, err := json.Marshal(surf.Stack)
				if err != nil {
					return fmt.Errorf("encode stack: %w", err)
				}
				var buf bytes.Buffer
				if err := json.Indent(&buf, data, "", "  "); err != nil {
					return err
				}
				buf.WriteByte('\n')
				_, err = buf.WriteTo(os.Stdout)
				return err
			}

			fmt.Println(renderStackTable(surf.Stack))
			if h, err := surf.Stack.Hash(); err == nil {
				printKeyValue("Stack hash", h[:16])
			}
			printKeyValue("Surface", fmt.Sprintf("%g × %g", surf.Width, surf.Height))
			return nil
		},
	}

	addStyleFlags(cmd, &opts)
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the canonical JSON encoding")

	return cmd
}

// renderStackTable formats a stack as a table, one row per layer.
func renderStackTable(s layers.Stack) string {
	rows := make([][]string, len(s))
	for i, l := range s {
		rows[i] = []string{
			fmt.Sprintf("%d", l.Slot()),
			string(l.Kind()),
			string(l.Blend()),
			fmt.Sprintf("%.2f", l.Opacity()),
			describeLayer(l),
		}
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Z", "Layer", "Blend", "Opacity", "Details").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			switch col {
			case 1:
				return lipgloss.NewStyle().Foreground(colorCyan)
			case 4:
				return lipgloss.NewStyle().Foreground(colorGray)
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		}).
		Render()
}

// describeLayer summarizes the fields that make a layer look the way it does.
func describeLayer(l layers.Layer) string {
	switch l := l.(type) {
	case layers.Background:
		return joinOps(l.Filter, l.Transform)
	case layers.Ghost:
		return fmt.Sprintf("side %s; %s", l.Side, joinOps(l.Filter, l.Transform))
	case layers.Placeholder:
		return fmt.Sprintf("%s → %s, pattern %.2f", hexColor(l.From), hexColor(l.To), l.PatternOpacity)
	case layers.Gradient:
		return fmt.Sprintf("%gdeg %s → %s", l.Angle, hexColor(l.From), hexColor(l.To))
	case layers.LightLeak:
		return fmt.Sprintf("%s %.0f%%×%.0f%% %s, fade %.0f%%", l.Corner, l.BoxW*100, l.BoxH*100, hexColor(l.Color), l.FadeAt*100)
	case layers.Dim:
		return hexColor(l.Color)
	case layers.Vignette:
		return fmt.Sprintf("clear to %.0f%%, black at %.0f%%", l.Inner*100, l.Outer*100)
	case layers.Grain:
		return fmt.Sprintf("tile %gpx", l.TileSize)
	case layers.Scanlines:
		return fmt.Sprintf("%gpx of every %gpx, %s", l.Line, l.Period, hexColor(l.Color))
	case layers.CinemaBars:
		return fmt.Sprintf("2 × %.0f%% height", l.Fraction*100)
	case layers.Content:
		parts := []string{fmt.Sprintf("%q %gpx", l.Title, l.TitleSize)}
		if l.Badge != nil {
			parts = append(parts, "badge "+l.Badge.Label)
		}
		if l.Subtitle != "" {
			parts = append(parts, fmt.Sprintf("sub %q", l.Subtitle))
		}
		parts = append(parts, "align "+string(l.Align))
		if n := len(l.Paint.Shadows); n > 0 {
			parts = append(parts, fmt.Sprintf("%d shadows", n))
		}
		if l.Paint.Stroke != nil {
			parts = append(parts, "stroke")
		}
		return strings.Join(parts, ", ")
	case layers.Reflection:
		return fmt.Sprintf("%gdeg sheen", l.Angle)
	}
	return ""
}

func joinOps(f layers.Filter, t layers.Transform) string {
	var parts []string
	for _, op := range f {
		parts = append(parts, op.String())
	}
	for _, op := range t {
		parts = append(parts, op.String())
	}
	return strings.Join(parts, " ")
}

func hexColor(c color.NRGBA) string {
	if c.A == 0xff {
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}

package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/thumbstudio/pkg/buildinfo"
)

// RootCommand creates the root cobra command with all subcommands registered.
// The CLI's logger is attached to the command context before any subcommand
// runs; --verbose lowers it to debug level first.
func (c *CLI) RootCommand() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:          appName,
		Short:        "Thumbstudio composes styled video thumbnails",
		Long:         `Thumbstudio builds a still thumbnail from a background photo, color grading, decorative overlays and styled text, and exports it as a 1024×576 PNG.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if verbose {
				c.SetLogLevel(LogDebug)
			}
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	// Register all subcommands
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.layersCommand())
	root.AddCommand(c.presetsCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/thumbstudio/pkg/errors"
	"github.com/matzehuels/thumbstudio/pkg/pipeline"
	"github.com/matzehuels/thumbstudio/pkg/style"
)

// renderOpts holds the command-line flags shared by render and layers.
type renderOpts struct {
	stylePath    string  // TOML style file
	imagePath    string  // background image
	preset       string  // preset applied after the style file
	pickPreset   bool    // choose the preset interactively
	displayWidth float64 // on-screen width the surface is laid out at
	outDir       string  // export directory
	noCache      bool    // bypass the render cache

	// Per-field overrides, applied last and only when set on the command line.
	title    string
	subtitle string
	badge    string
	align    string
}

// addStyleFlags registers the flags that resolve a style.
func addStyleFlags(cmd *cobra.Command, opts *renderOpts) {
	cmd.Flags().StringVarP(&opts.stylePath, "style", "s", "", "TOML style file")
	cmd.Flags().StringVarP(&opts.imagePath, "image", "i", "", "background image (png, jpg, gif, bmp, tiff)")
	cmd.Flags().StringVarP(&opts.preset, "preset", "p", "", "preset applied after the style file")
	cmd.Flags().BoolVar(&opts.pickPreset, "pick-preset", false, "choose the preset interactively")
	cmd.Flags().Float64Var(&opts.displayWidth, "display-width", pipeline.DefaultDisplayWidth, "on-screen width in pixels the layout is computed at")
	cmd.Flags().StringVar(&opts.title, "title", "", "title text")
	cmd.Flags().StringVar(&opts.subtitle, "subtitle", "", "subtitle text (empty hides it)")
	cmd.Flags().StringVar(&opts.badge, "badge", "", "badge label: LIVE, 4K, PRO, NEW, HOT, 🔥 (empty hides it)")
	cmd.Flags().StringVar(&opts.align, "align", "", "text alignment: left, center, right")

	_ = cmd.RegisterFlagCompletionFunc("preset", completePresets)
	_ = cmd.RegisterFlagCompletionFunc("align", cobra.FixedCompletions(
		[]string{string(style.AlignLeft), string(style.AlignCenter), string(style.AlignRight)},
		cobra.ShellCompDirectiveNoFileComp))
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a thumbnail to a 1024×576 PNG",
		Long: `Render a thumbnail to a 1024×576 PNG.

The style is built from the defaults, then the style file, then the preset,
then any per-field flags. Without --image a neutral placeholder is used as
the background.`,
		Example: `  thumbstudio render --image bg.jpg --preset cinematic --title "Launch Day"
  thumbstudio render --style launch.toml --out exports
  thumbstudio render --image bg.jpg --pick-preset`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			popts, err := opts.pipelineOptions(cmd)
			if err != nil {
				return err
			}
			return c.runRender(cmd.Context(), popts)
		},
	}

	addStyleFlags(cmd, &opts)
	cmd.Flags().StringVarP(&opts.outDir, "out", "o", pipeline.DefaultOutDir, "output directory")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the render cache")

	return cmd
}

// pipelineOptions turns parsed flags into pipeline options. Overrides are
// only patched in for flags the user actually set.
func (o *renderOpts) pipelineOptions(cmd *cobra.Command) (pipeline.Options, error) {
	preset := style.PresetID(o.preset)
	if o.pickPreset {
		picked, err := runPresetPicker()
		if err != nil {
			return pipeline.Options{}, err
		}
		if picked == nil {
			return pipeline.Options{}, errors.New(errors.ErrCodeInvalidInput, "no preset selected")
		}
		preset = picked.ID
	}

	var patch style.Patch
	flags := cmd.Flags()
	if flags.Changed("title") {
		patch.Title = style.Ptr(o.title)
	}
	if flags.Changed("subtitle") {
		patch.Subtitle = style.Ptr(o.subtitle)
	}
	if flags.Changed("badge") {
		patch.Badge = style.Ptr(style.Badge(o.badge))
	}
	if flags.Changed("align") {
		patch.Align = style.Ptr(style.Align(o.align))
	}

	return pipeline.Options{
		StylePath:    o.stylePath,
		ImagePath:    o.imagePath,
		Preset:       preset,
		Patch:        patch,
		DisplayWidth: o.displayWidth,
		OutDir:       o.outDir,
		NoCache:      o.noCache,
	}, nil
}

// runRender executes the pipeline with a spinner and prints the result.
func (c *CLI) runRender(ctx context.Context, opts pipeline.Options) error {
	logger := loggerFromContext(ctx)
	opts.Logger = logger

	runner, err := c.newRunner(opts.NoCache)
	if err != nil {
		return fmt.Errorf("open cache: %w", err)
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, "Rendering thumbnail...")
	spinner.Start()
	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError(errors.UserMessage(err))
		return err
	}
	spinner.StopWithSuccess("Exported " + result.Export.Name)

	printFile(result.Export.Path)
	printRenderStats(result)
	return nil
}

// completePresets completes preset IDs for --preset.
func completePresets(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	presets := style.Presets()
	out := make([]string, len(presets))
	for i, p := range presets {
		out[i] = string(p.ID) + "\t" + p.Name
	}
	return out, cobra.ShellCompDirectiveNoFileComp
}

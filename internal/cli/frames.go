package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/docreel/docreel/pkg/cloud"
	"github.com/docreel/docreel/pkg/pipeline"
	"github.com/docreel/docreel/pkg/snapshot"
)

// framesCommand creates the frames command for rendering the time-lapse.
func (c *CLI) framesCommand() *cobra.Command {
	var paths pathFlags
	var (
		noCache bool
		refresh bool
	)

	cmd := &cobra.Command{
		Use:   "frames",
		Short: "Render one time-lapse frame per snapshot",
		Long: `Render one time-lapse frame per snapshot.

Each frame combines the snapshot's preview mosaic, a header with dates and
counters, a statistics chart, and a word cloud. Word positions carry over
between frames so the cloud evolves smoothly instead of reshuffling: by
default every frame is laid out against the newest snapshot (--reference
final), so words grow into their final place.

Frames are numbered 000.png, 001.png, ... oldest first, ready for video
encoding. Word-cloud layouts are cached locally; pass --no-cache to
disable the cache or --refresh to recompute everything.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, opts, err := paths.load(cmd)
			if err != nil {
				return err
			}
			if err := applyFrameFlags(cmd, &opts, cfg); err != nil {
				return err
			}
			opts.Refresh = refresh
			return c.runFrames(cmd.Context(), opts, noCache)
		},
	}

	paths.register(cmd)
	cmd.Flags().String("reference", "", "continuity reference: final (default), previous")
	cmd.Flags().String("scale-mode", "", "font scaling law: log (default), linear")
	cmd.Flags().Int("max-words", 0, "words per cloud")
	cmd.Flags().Int("cloud-width", 0, "word-cloud canvas width")
	cmd.Flags().Int("cloud-height", 0, "word-cloud canvas height")
	cmd.Flags().Int("width", 0, "frame width")
	cmd.Flags().Int("height", 0, "frame height")
	cmd.Flags().String("font", "", "font file path or system font name")
	cmd.Flags().Float64("font-size", 0, "base font size")
	cmd.Flags().Bool("log-chart", false, "logarithmic chart y-axis")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the layout cache")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "recompute cached layouts")

	return cmd
}

// applyFrameFlags layers the frame flags over the config values and resolves
// the font setting into a file path.
func applyFrameFlags(cmd *cobra.Command, opts *pipeline.Options, cfg *Config) error {
	flags := cmd.Flags()
	if flags.Changed("reference") {
		opts.Reference, _ = flags.GetString("reference")
	}
	if flags.Changed("scale-mode") {
		mode, _ := flags.GetString("scale-mode")
		opts.ScaleMode = cloud.Mode(mode)
	}
	if flags.Changed("max-words") {
		opts.MaxWords, _ = flags.GetInt("max-words")
	}
	if flags.Changed("cloud-width") {
		opts.CloudWidth, _ = flags.GetInt("cloud-width")
	}
	if flags.Changed("cloud-height") {
		opts.CloudHeight, _ = flags.GetInt("cloud-height")
	}
	if flags.Changed("width") {
		opts.FrameWidth, _ = flags.GetInt("width")
	}
	if flags.Changed("height") {
		opts.FrameHeight, _ = flags.GetInt("height")
	}
	if flags.Changed("font-size") {
		opts.FontSize, _ = flags.GetFloat64("font-size")
	}
	if flags.Changed("log-chart") {
		opts.LogChart, _ = flags.GetBool("log-chart")
	}

	font := cfg.Frame.Font
	if flags.Changed("font") {
		font, _ = flags.GetString("font")
	}
	path, err := resolveFont(font)
	if err != nil {
		return err
	}
	opts.FontPath = path
	return nil
}

// runFrames loads the manifest and renders the full frame sequence.
func (c *CLI) runFrames(ctx context.Context, opts pipeline.Options, noCache bool) error {
	opts.Logger = c.Logger
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}

	snapshots, err := snapshot.Load(opts.ManifestPath, opts.StatsDir)
	if err != nil {
		return fmt.Errorf("load manifest %s: %w", opts.ManifestPath, err)
	}

	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %d frames...", len(snapshots)))
	spinner.Start()

	if err := runner.RenderFrames(ctx, snapshots, opts); err != nil {
		spinner.StopWithError("Frame rendering failed")
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	printSuccess("Rendered %d frames", len(snapshots))
	printFile(opts.FramesDir)
	printNewline()
	printNextStep("Encode", fmt.Sprintf("ffmpeg -framerate 2 -i %s/%%03d.png timelapse.mp4", opts.FramesDir))
	return nil
}

package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/docreel/docreel/pkg/pipeline"
	"github.com/docreel/docreel/pkg/snapshot"
)

// pathFlags are the config and location flags shared by collate and frames.
type pathFlags struct {
	config   string
	manifest string
	stats    string
	pages    string
	previews string
	frames   string
}

// register binds the shared flags to cmd.
func (f *pathFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.config, "config", "c", DefaultConfigFile, "config file")
	cmd.Flags().StringVar(&f.manifest, "manifest", "", "snapshot manifest file")
	cmd.Flags().StringVar(&f.stats, "stats", "", "per-snapshot stats directory")
	cmd.Flags().StringVar(&f.pages, "pages", "", "per-snapshot page image directory")
	cmd.Flags().StringVar(&f.previews, "previews", "", "preview output directory")
	cmd.Flags().StringVar(&f.frames, "frames", "", "frame output directory")
}

// load reads the config file and layers the path flags on top.
func (f *pathFlags) load(cmd *cobra.Command) (*Config, pipeline.Options, error) {
	cfg, err := LoadConfig(f.config, cmd.Flags().Changed("config"))
	if err != nil {
		return nil, pipeline.Options{}, err
	}
	opts := cfg.Options()
	if f.manifest != "" {
		opts.ManifestPath = f.manifest
	}
	if f.stats != "" {
		opts.StatsDir = f.stats
	}
	if f.pages != "" {
		opts.PagesDir = f.pages
	}
	if f.previews != "" {
		opts.PreviewsDir = f.previews
	}
	if f.frames != "" {
		opts.FramesDir = f.frames
	}
	return cfg, opts, nil
}

// collateCommand creates the collate command for building preview mosaics.
func (c *CLI) collateCommand() *cobra.Command {
	var paths pathFlags
	var refresh bool

	cmd := &cobra.Command{
		Use:   "collate [id...]",
		Short: "Pack page images into one preview mosaic per snapshot",
		Long: `Pack page images into one preview mosaic per snapshot.

For every snapshot in the manifest (or the ids given as arguments), the
collate command lays the snapshot's page images out on a row-major grid
and writes a single preview image. With no explicit --rows/--cols the grid
shape grows with the page count so the mosaic keeps roughly page-like
proportions.

Previews that already exist are reused; pass --refresh to rebuild them.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, opts, err := paths.load(cmd)
			if err != nil {
				return err
			}
			applyCollateFlags(cmd, &opts, cfg)
			opts.Refresh = refresh
			return c.runCollate(cmd.Context(), args, opts)
		},
	}

	paths.register(cmd)
	cmd.Flags().Int("rows", 0, "grid rows (0 with --cols 0 means auto)")
	cmd.Flags().Int("cols", 0, "grid columns")
	cmd.Flags().Int("border-width", 0, "border around each page in pixels")
	cmd.Flags().String("border-color", "", "border color as #rrggbb")
	cmd.Flags().String("background", "", "fill color for unused grid cells")
	cmd.Flags().StringP("format", "f", "", "preview format: png (default), jpeg")
	cmd.Flags().Int("quality", 0, "JPEG quality (1-100)")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "rebuild previews that already exist")

	return cmd
}

// applyCollateFlags layers the collate flags over the config values.
// Only flags the user actually set override the file.
func applyCollateFlags(cmd *cobra.Command, opts *pipeline.Options, cfg *Config) {
	flags := cmd.Flags()
	if flags.Changed("rows") {
		opts.Rows, _ = flags.GetInt("rows")
	}
	if flags.Changed("cols") {
		opts.Cols, _ = flags.GetInt("cols")
	}
	if flags.Changed("border-width") {
		opts.BorderWidth, _ = flags.GetInt("border-width")
	}
	if flags.Changed("border-color") {
		opts.BorderColor, _ = flags.GetString("border-color")
	}
	if flags.Changed("background") {
		opts.Background, _ = flags.GetString("background")
	}
	if flags.Changed("format") {
		opts.PreviewFormat, _ = flags.GetString("format")
	}
	if flags.Changed("quality") {
		opts.Quality, _ = flags.GetInt("quality")
	}
}

// runCollate loads the manifest and collates previews for the selected snapshots.
func (c *CLI) runCollate(ctx context.Context, ids []string, opts pipeline.Options) error {
	opts.Logger = c.Logger
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}
	if opts.PreviewsDir == "" {
		return fmt.Errorf("previews directory is required (--previews or config)")
	}

	snapshots, err := snapshot.Load(opts.ManifestPath, opts.StatsDir)
	if err != nil {
		return fmt.Errorf("load manifest %s: %w", opts.ManifestPath, err)
	}
	snapshots, err = selectSnapshots(snapshots, ids)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(true)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	// Explicit ids get per-snapshot output; the full manifest runs behind
	// a spinner and logs failures without stopping.
	if len(ids) > 0 {
		for _, s := range snapshots {
			res, err := runner.CollateSnapshot(ctx, s.ID, opts)
			if err != nil {
				printError("%s: %v", s.ID, err)
				continue
			}
			printInfo("%s", shortID(s.ID))
			printMosaicStats(res.Pages, res.Shape.Rows, res.Shape.Cols, res.Skipped)
		}
		return ctx.Err()
	}

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Collating %d snapshots...", len(snapshots)))
	spinner.Start()

	if err := runner.CollateAll(ctx, snapshots, opts); err != nil {
		spinner.StopWithError("Collate failed")
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	printSuccess("Collated %d snapshots", len(snapshots))
	printFile(opts.PreviewsDir)
	printNewline()
	printNextStep("Render frames", "docreel frames")
	return nil
}

// selectSnapshots filters the manifest down to the requested ids.
// With no ids, every snapshot is selected.
func selectSnapshots(snapshots []snapshot.Snapshot, ids []string) ([]snapshot.Snapshot, error) {
	if len(ids) == 0 {
		return snapshots, nil
	}
	byID := make(map[string]snapshot.Snapshot, len(snapshots))
	for _, s := range snapshots {
		byID[s.ID] = s
	}
	selected := make([]snapshot.Snapshot, 0, len(ids))
	for _, id := range ids {
		s, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("snapshot %q not in manifest", id)
		}
		selected = append(selected, s)
	}
	return selected, nil
}

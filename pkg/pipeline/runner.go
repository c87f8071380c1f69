package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/docreel/docreel/pkg/cache"
	"github.com/docreel/docreel/pkg/cloud"
	"github.com/docreel/docreel/pkg/errors"
	"github.com/docreel/docreel/pkg/frame"
	"github.com/docreel/docreel/pkg/mosaic"
	"github.com/docreel/docreel/pkg/snapshot"
)

// Runner executes pipeline stages with caching.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store stage results. A failed snapshot aborts only that snapshot; the
// batch methods log the failure and move on, except for configuration-level
// failures that would fail every snapshot the same way.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (layout caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// CollateResult describes one snapshot's preview generation.
type CollateResult struct {
	Path    string       // output file; empty when the snapshot has no pages
	Shape   mosaic.Shape // grid used, zero when skipped or empty
	Pages   int
	Skipped bool // an existing preview was reused
}

// PreviewPath returns where a snapshot's preview lives. The format default
// is applied here too, so the path is stable whether or not the options
// have been validated yet.
func (r *Runner) PreviewPath(opts Options, id string) string {
	format := opts.PreviewFormat
	if format == "" {
		format = FormatPNG
	}
	return filepath.Join(opts.PreviewsDir, id+"."+format)
}

// CollateSnapshot builds the page-preview mosaic for one snapshot. An
// existing preview is reused as-is (skip-if-exists, no content check)
// unless opts.Refresh is set. A snapshot with zero pages produces no
// preview and no error.
func (r *Runner) CollateSnapshot(ctx context.Context, id string, opts Options) (*CollateResult, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path := r.PreviewPath(opts, id)
	if !opts.Refresh {
		if _, err := os.Stat(path); err == nil {
			return &CollateResult{Path: path, Skipped: true}, nil
		}
	}

	tiles, err := mosaic.LoadTiles(filepath.Join(opts.PagesDir, id))
	if err != nil {
		return nil, attachSnapshot(err, id)
	}
	if len(tiles) == 0 {
		r.Logger.Warn("snapshot has no pages", "snapshot", id)
		return &CollateResult{}, nil
	}

	shape := mosaic.Shape{Rows: opts.Rows, Cols: opts.Cols}
	if opts.AutoShape() {
		shape, err = mosaic.SelectShape(len(tiles))
		if err != nil {
			return nil, attachSnapshot(err, id)
		}
	}

	// Colors were validated with the options.
	borderColor, _ := parseHexColor(opts.BorderColor)
	background, _ := parseHexColor(opts.Background)

	canvas, err := mosaic.Composite(tiles, shape.Rows, shape.Cols, mosaic.Options{
		BorderWidth: opts.BorderWidth,
		BorderColor: borderColor,
		Background:  background,
	})
	if err != nil {
		return nil, attachSnapshot(err, id)
	}

	if err := os.MkdirAll(opts.PreviewsDir, 0o755); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "create previews directory")
	}
	if err := writeImage(path, canvas, opts); err != nil {
		return nil, attachSnapshot(err, id)
	}

	return &CollateResult{Path: path, Shape: shape, Pages: len(tiles)}, nil
}

// CollateAll builds previews for every snapshot, oldest to newest. A failed
// snapshot is logged and skipped; GRID_SHAPE_UNREACHABLE aborts the whole
// run since it is a configuration problem that every snapshot would hit.
func (r *Runner) CollateAll(ctx context.Context, snapshots []snapshot.Snapshot, opts Options) error {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}

	start := time.Now()
	var done, skipped, failed int
	for _, s := range snapshots {
		res, err := r.CollateSnapshot(ctx, s.ID, opts)
		if err != nil {
			if errors.Is(err, errors.ErrCodeGridShapeUnreachable) {
				return err
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			r.Logger.Error("collate failed", "snapshot", s.ID, "err", err)
			failed++
			continue
		}
		if res.Skipped {
			skipped++
			continue
		}
		done++
		if res.Path != "" {
			r.Logger.Info("collated pages",
				"snapshot", s.ID,
				"pages", res.Pages,
				"grid", fmt.Sprintf("%dx%d", res.Shape.Rows, res.Shape.Cols))
		}
	}
	r.Logger.Info("collate finished",
		"done", done, "skipped", skipped, "failed", failed,
		"duration", time.Since(start))
	return nil
}

// RenderFrames renders the full frame sequence, oldest to newest. Frames
// are named by zero-padded sequence index. The word-cloud reference policy
// comes from opts.Reference: every frame anchored to the final snapshot's
// layout, or each frame chained to its predecessor.
//
// A failed snapshot is logged and its frame skipped; the sequence keeps its
// numbering so a fixed snapshot can be re-rendered into the same slot.
func (r *Runner) RenderFrames(ctx context.Context, snapshots []snapshot.Snapshot, opts Options) error {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}
	if len(snapshots) == 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "no snapshots to render")
	}
	if opts.FramesDir == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "frames directory is required")
	}
	if err := os.MkdirAll(opts.FramesDir, 0o755); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "create frames directory")
	}

	composer := &frame.Composer{
		Width:    opts.FrameWidth,
		Height:   opts.FrameHeight,
		FontPath: opts.FontPath,
		FontSize: opts.FontSize,
		LogChart: opts.LogChart,
	}
	if err := composer.Init(); err != nil {
		return err
	}

	series := snapshot.BuildSeries(snapshots)
	messages := opts.Messages.Annotate(snapshots)
	first := snapshots[0]

	// Reference layout for continuity transfer.
	refSnapshot := snapshots[len(snapshots)-1]
	if opts.Reference == ReferencePrevious {
		refSnapshot = snapshots[0]
	}
	refLayout, _, err := r.layoutFor(ctx, refSnapshot, opts)
	if err != nil {
		return attachSnapshot(err, refSnapshot.ID)
	}
	refCount := totalWordCount(refSnapshot.Frequencies)

	start := time.Now()
	var done, failed int
	for i, s := range snapshots {
		if err := ctx.Err(); err != nil {
			return err
		}

		framePath := filepath.Join(opts.FramesDir, fmt.Sprintf("%03d.png", i))
		scaled, err := r.renderFrame(ctx, framePath, s, series.Prefix(i+1), messages[i], first, refLayout, refCount, composer, opts)
		if err != nil {
			if errors.Is(err, errors.ErrCodeGridShapeUnreachable) {
				return err
			}
			r.Logger.Error("frame failed", "snapshot", s.ID, "frame", i, "err", err)
			failed++
			continue
		}
		done++
		r.Logger.Info("rendered frame", "snapshot", s.ID, "frame", i)

		if opts.Reference == ReferencePrevious {
			refLayout = scaled
			refCount = totalWordCount(s.Frequencies)
		}
	}

	r.Logger.Info("frames finished",
		"done", done, "failed", failed, "duration", time.Since(start))
	return nil
}

// renderFrame produces one frame image and returns the scaled cloud layout
// so the caller can chain it as the next reference.
func (r *Runner) renderFrame(
	ctx context.Context,
	path string,
	s snapshot.Snapshot,
	series snapshot.Series,
	message string,
	first snapshot.Snapshot,
	refLayout cloud.Layout,
	refCount int,
	composer *frame.Composer,
	opts Options,
) (cloud.Layout, error) {
	target, hit, err := r.layoutFor(ctx, s, opts)
	if err != nil {
		return nil, err
	}
	if hit {
		r.Logger.Debug("layout cache hit", "snapshot", s.ID)
	}

	scaled, err := cloud.Scale(target, refLayout, totalWordCount(s.Frequencies), refCount, opts.ScaleMode)
	if err != nil {
		return nil, err
	}

	cloudImg, err := cloud.Render(scaled, opts.CloudWidth, opts.CloudHeight, cloud.RenderOptions{
		FontPath: opts.FontPath,
	})
	if err != nil {
		return nil, err
	}

	preview, err := r.loadPreview(opts, s.ID)
	if err != nil {
		return nil, err
	}
	pages, err := countPages(filepath.Join(opts.PagesDir, s.ID))
	if err != nil {
		return nil, err
	}

	img, err := composer.Compose(preview, series, cloudImg, frame.HeaderInfo{
		ID:      s.ID,
		Date:    s.Time(),
		Elapsed: time.Duration(s.Timestamp-first.Timestamp) * time.Second,
		Pages:   pages,
		Stats:   s.Stats,
		Message: message,
	})
	if err != nil {
		return nil, err
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "create frame %s", path)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode frame %s", path)
	}
	return scaled, nil
}

// layoutFor returns the snapshot's generated (un-scaled) layout, from cache
// when possible. Generation uses the font-free measurer so layouts are
// identical across machines and cacheable by frequency hash alone.
func (r *Runner) layoutFor(ctx context.Context, s snapshot.Snapshot, opts Options) (cloud.Layout, bool, error) {
	vocab, err := json.Marshal(s.Frequencies)
	if err != nil {
		return nil, false, errors.Wrap(errors.ErrCodeInternal, err, "hash frequencies for %s", s.ID)
	}
	key := r.Keyer.LayoutKey(s.ID, cache.Hash(vocab), opts.LayoutKeyOpts())

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			var cached cloud.Layout
			if err := json.Unmarshal(data, &cached); err == nil {
				return cached, true, nil
			}
			// Fall through and regenerate on a corrupt entry.
		}
	}

	layout := cloud.Generate(s.Frequencies, cloud.GenerateOptions{
		Width:    opts.CloudWidth,
		Height:   opts.CloudHeight,
		MaxWords: opts.MaxWords,
	})

	if data, err := json.Marshal(layout); err == nil {
		_ = r.Cache.Set(ctx, key, data, cache.TTLLayout)
	}
	return layout, false, nil
}

// loadPreview reads the persisted preview for a snapshot. A missing file is
// not an error: zero-page snapshots legitimately have none.
func (r *Runner) loadPreview(opts Options, id string) (image.Image, error) {
	f, err := os.Open(r.PreviewPath(opts, id))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrap(errors.ErrCodeMissingSourceAsset, err, "preview for %s", id)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeMissingSourceAsset, err, "preview for %s", id)
	}
	return img, nil
}

// countPages counts the page images for a snapshot without decoding them,
// using the same page filter the collate stage loads with.
func countPages(dir string) (int, error) {
	names, err := mosaic.PageFiles(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, errors.Wrap(errors.ErrCodeMissingSourceAsset, err, "page directory %s", dir)
	}
	return len(names), nil
}

func writeImage(path string, img image.Image, opts Options) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "create %s", path)
	}
	defer f.Close()

	switch opts.PreviewFormat {
	case FormatJPEG:
		err = jpeg.Encode(f, img, &jpeg.Options{Quality: opts.Quality})
	default:
		err = png.Encode(f, img)
	}
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode %s", path)
	}
	return nil
}

// totalWordCount sums a frequency table. Tables may hold raw counts or
// normalized weights; scaling only needs the totals' ratio.
func totalWordCount(freqs map[string]float64) int {
	total := 0.0
	for _, v := range freqs {
		total += v
	}
	return int(total)
}

// attachSnapshot makes sure a snapshot-scoped failure names its snapshot,
// preserving the original code so callers can still match on it.
func attachSnapshot(err error, id string) error {
	if strings.Contains(err.Error(), id) {
		return err
	}
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	return errors.Wrap(code, err, "snapshot %s", id)
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// Package pipeline provides the core composition pipeline for docreel.
//
// This package implements the collate → layout → compose pipeline that the
// CLI drives. Centralizing it keeps preview generation, word-cloud
// continuity and frame composition consistent no matter which command
// triggers them.
//
// # Architecture
//
// The pipeline consists of two stages:
//
//  1. Collate: pack each snapshot's page images into one preview mosaic
//  2. Frames: render one frame per snapshot (preview + header + chart +
//     word cloud), chaining word-cloud layouts oldest to newest
//
// Each stage can be run independently; frames reuse previews that already
// exist on disk.
//
// # Usage
//
// Create a Runner and execute a stage:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    ManifestPath: "history/manifest.json",
//	    StatsDir:     "history/stats",
//	    PagesDir:     "history/pages",
//	    PreviewsDir:  "out/previews",
//	    FramesDir:    "out/frames",
//	}
//	if err := runner.CollateAll(ctx, snapshots, opts); err != nil {
//	    log.Fatal(err)
//	}
//	err = runner.RenderFrames(ctx, snapshots, opts)
package pipeline

import (
	"fmt"
	"image/color"
	"io"

	"github.com/charmbracelet/log"

	"github.com/docreel/docreel/pkg/cache"
	"github.com/docreel/docreel/pkg/cloud"
	"github.com/docreel/docreel/pkg/errors"
	"github.com/docreel/docreel/pkg/frame"
	"github.com/docreel/docreel/pkg/snapshot"
)

// =============================================================================
// Default Values - Single Source of Truth for the CLI
// =============================================================================

const (
	// DefaultBorderWidth is the border around each page tile in pixels.
	DefaultBorderWidth = 1

	// DefaultBorderColor wraps each page tile.
	DefaultBorderColor = "#000000"

	// DefaultBackground fills grid cells beyond the last page.
	DefaultBackground = "#c8c8c8"

	// DefaultQuality is the JPEG quality for persisted previews. Previews
	// are intermediate artifacts scaled far down in the frame, so the
	// historical quality is aggressive.
	DefaultQuality = 10

	// DefaultCloudWidth and DefaultCloudHeight are the word-cloud canvas
	// dimensions before the cloud is fitted into its frame panel.
	DefaultCloudWidth  = 580
	DefaultCloudHeight = 300

	// DefaultMaxWords caps the words per cloud.
	DefaultMaxWords = 30
)

// DefaultScaleMode is the font-size scaling law for cloud continuity.
const DefaultScaleMode = cloud.ModeLog

// Reference policies: which layout anchors continuity transfer.
const (
	// ReferenceFinal anchors every frame to the newest snapshot's layout,
	// so words sit where they will end up and grow into place.
	ReferenceFinal = "final"

	// ReferencePrevious chains each frame to its predecessor.
	ReferencePrevious = "previous"
)

// Preview output formats.
const (
	FormatPNG  = "png"
	FormatJPEG = "jpeg"
)

// ValidReferences is the set of supported reference policies.
var ValidReferences = map[string]bool{
	ReferenceFinal:    true,
	ReferencePrevious: true,
}

// ValidScaleModes is the set of scale modes the pipeline accepts. The
// logistic mode exists as a name but is rejected by the cloud package.
var ValidScaleModes = map[cloud.Mode]bool{
	cloud.ModeLinear: true,
	cloud.ModeLog:    true,
}

// ValidFormats is the set of supported preview formats.
var ValidFormats = map[string]bool{
	FormatPNG:  true,
	FormatJPEG: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the composition pipeline.
type Options struct {
	// Input locations
	ManifestPath string `json:"manifest,omitempty"`
	StatsDir     string `json:"stats_dir,omitempty"`
	PagesDir     string `json:"pages_dir,omitempty"` // one subdirectory of page PNGs per snapshot id

	// Output locations
	PreviewsDir string `json:"previews_dir,omitempty"`
	FramesDir   string `json:"frames_dir,omitempty"`

	// Collate options
	Rows          int    `json:"rows,omitempty"` // 0 with Cols 0 means auto shape
	Cols          int    `json:"cols,omitempty"`
	BorderWidth   int    `json:"border_width,omitempty"`
	BorderColor   string `json:"border_color,omitempty"`
	Background    string `json:"background,omitempty"`
	PreviewFormat string `json:"preview_format,omitempty"`
	Quality       int    `json:"quality,omitempty"` // JPEG only

	// Cloud options
	CloudWidth  int        `json:"cloud_width,omitempty"`
	CloudHeight int        `json:"cloud_height,omitempty"`
	MaxWords    int        `json:"max_words,omitempty"`
	ScaleMode   cloud.Mode `json:"scale_mode,omitempty"`
	Reference   string     `json:"reference,omitempty"`

	// Frame options
	FrameWidth  int     `json:"frame_width,omitempty"`
	FrameHeight int     `json:"frame_height,omitempty"`
	FontPath    string  `json:"font_path,omitempty"`
	FontSize    float64 `json:"font_size,omitempty"`
	LogChart    bool    `json:"log_chart,omitempty"`

	// Refresh ignores existing previews and cached layouts.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Messages snapshot.Messages `json:"-"`
	Logger   *log.Logger       `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// ValidateAndSetDefaults checks required fields and applies defaults.
// This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.ManifestPath == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "manifest path is required")
	}
	if o.StatsDir == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "stats directory is required")
	}
	if o.PagesDir == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "pages directory is required")
	}
	if (o.Rows == 0) != (o.Cols == 0) {
		return errors.New(errors.ErrCodeInvalidConfig, "rows and cols must be set together (or both zero for auto)")
	}
	if o.Rows < 0 || o.Cols < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "rows and cols must be non-negative")
	}

	o.setCollateDefaults()
	o.setCloudDefaults()
	o.setFrameDefaults()

	if !ValidFormats[o.PreviewFormat] {
		return errors.New(errors.ErrCodeInvalidConfig, "invalid preview format %q (must be png or jpeg)", o.PreviewFormat)
	}
	if !ValidScaleModes[o.ScaleMode] {
		return errors.New(errors.ErrCodeInvalidConfig, "invalid scale mode %q (must be linear or log)", o.ScaleMode)
	}
	if !ValidReferences[o.Reference] {
		return errors.New(errors.ErrCodeInvalidConfig, "invalid reference policy %q (must be final or previous)", o.Reference)
	}
	if _, err := parseHexColor(o.BorderColor); err != nil {
		return err
	}
	if _, err := parseHexColor(o.Background); err != nil {
		return err
	}

	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

func (o *Options) setCollateDefaults() {
	if o.BorderWidth == 0 {
		o.BorderWidth = DefaultBorderWidth
	}
	if o.BorderColor == "" {
		o.BorderColor = DefaultBorderColor
	}
	if o.Background == "" {
		o.Background = DefaultBackground
	}
	if o.PreviewFormat == "" {
		o.PreviewFormat = FormatPNG
	}
	if o.Quality == 0 {
		o.Quality = DefaultQuality
	}
}

func (o *Options) setCloudDefaults() {
	if o.CloudWidth == 0 {
		o.CloudWidth = DefaultCloudWidth
	}
	if o.CloudHeight == 0 {
		o.CloudHeight = DefaultCloudHeight
	}
	if o.MaxWords == 0 {
		o.MaxWords = DefaultMaxWords
	}
	if o.ScaleMode == "" {
		o.ScaleMode = DefaultScaleMode
	}
	if o.Reference == "" {
		o.Reference = ReferenceFinal
	}
}

func (o *Options) setFrameDefaults() {
	if o.FrameWidth == 0 {
		o.FrameWidth = frame.Width
	}
	if o.FrameHeight == 0 {
		o.FrameHeight = frame.Height
	}
}

// AutoShape reports whether the grid shape is chosen per snapshot.
func (o *Options) AutoShape() bool {
	return o.Rows == 0 && o.Cols == 0
}

// LayoutKeyOpts returns cache key options for word-cloud layouts.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		Width:    o.CloudWidth,
		Height:   o.CloudHeight,
		MaxWords: o.MaxWords,
	}
}

// parseHexColor parses "#rrggbb" (or "#rgb") into an opaque RGBA.
func parseHexColor(s string) (color.RGBA, error) {
	c := color.RGBA{A: 255}
	var err error
	switch len(s) {
	case 7:
		_, err = fmt.Sscanf(s, "#%02x%02x%02x", &c.R, &c.G, &c.B)
	case 4:
		_, err = fmt.Sscanf(s, "#%1x%1x%1x", &c.R, &c.G, &c.B)
		c.R *= 17
		c.G *= 17
		c.B *= 17
	default:
		err = fmt.Errorf("length %d", len(s))
	}
	if err != nil {
		return color.RGBA{}, errors.New(errors.ErrCodeInvalidConfig, "invalid hex color %q", s)
	}
	return c, nil
}

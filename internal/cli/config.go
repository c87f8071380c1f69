package cli

import (
	"os"

	"github.com/BurntSushi/toml"
	findfont "github.com/flopp/go-findfont"

	"github.com/docreel/docreel/pkg/cloud"
	"github.com/docreel/docreel/pkg/errors"
	"github.com/docreel/docreel/pkg/pipeline"
	"github.com/docreel/docreel/pkg/snapshot"
)

// DefaultConfigFile is the config file looked up in the working directory
// when --config is not given.
const DefaultConfigFile = "docreel.toml"

// Config is the on-disk project configuration. Flags override anything
// set here; the [messages] table maps snapshot ids to header messages.
type Config struct {
	Manifest string `toml:"manifest"`
	Stats    string `toml:"stats"`
	Pages    string `toml:"pages"`
	Previews string `toml:"previews"`
	Frames   string `toml:"frames"`

	Collate CollateConfig `toml:"collate"`
	Cloud   CloudConfig   `toml:"cloud"`
	Frame   FrameConfig   `toml:"frame"`

	Messages map[string]string `toml:"messages"`
}

// CollateConfig configures the preview mosaic stage.
type CollateConfig struct {
	Rows        int    `toml:"rows"`
	Cols        int    `toml:"cols"`
	BorderWidth int    `toml:"border_width"`
	BorderColor string `toml:"border_color"`
	Background  string `toml:"background"`
	Format      string `toml:"format"`
	Quality     int    `toml:"quality"`
}

// CloudConfig configures word-cloud generation and continuity.
type CloudConfig struct {
	Width     int    `toml:"width"`
	Height    int    `toml:"height"`
	MaxWords  int    `toml:"max_words"`
	ScaleMode string `toml:"scale_mode"`
	Reference string `toml:"reference"`
}

// FrameConfig configures the composed output frames.
type FrameConfig struct {
	Width    int     `toml:"width"`
	Height   int     `toml:"height"`
	Font     string  `toml:"font"` // font file path, or a name resolved via the system font directories
	FontSize float64 `toml:"font_size"`
	LogChart bool    `toml:"log_chart"`
}

// LoadConfig reads a TOML config file. A missing file is only an error
// when the path was given explicitly.
func LoadConfig(path string, explicit bool) (*Config, error) {
	cfg := &Config{}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg, nil
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "config file %s", path)
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config file %s", path)
	}
	return cfg, nil
}

// Options converts the config into pipeline options. Validation happens
// later in the pipeline, after flags have been layered on top.
func (c *Config) Options() pipeline.Options {
	return pipeline.Options{
		ManifestPath:  c.Manifest,
		StatsDir:      c.Stats,
		PagesDir:      c.Pages,
		PreviewsDir:   c.Previews,
		FramesDir:     c.Frames,
		Rows:          c.Collate.Rows,
		Cols:          c.Collate.Cols,
		BorderWidth:   c.Collate.BorderWidth,
		BorderColor:   c.Collate.BorderColor,
		Background:    c.Collate.Background,
		PreviewFormat: c.Collate.Format,
		Quality:       c.Collate.Quality,
		CloudWidth:    c.Cloud.Width,
		CloudHeight:   c.Cloud.Height,
		MaxWords:      c.Cloud.MaxWords,
		ScaleMode:     cloud.Mode(c.Cloud.ScaleMode),
		Reference:     c.Cloud.Reference,
		FrameWidth:    c.Frame.Width,
		FrameHeight:   c.Frame.Height,
		FontSize:      c.Frame.FontSize,
		LogChart:      c.Frame.LogChart,
		Messages:      snapshot.Messages(c.Messages),
	}
}

// defaultFonts are tried in order when no font is configured.
var defaultFonts = []string{"DejaVuSans.ttf", "Arial.ttf", "LiberationSans-Regular.ttf"}

// resolveFont turns a font setting into a file path. An existing path is
// used as-is; anything else is treated as a font name and searched for in
// the system font directories. With no font configured, well-known fonts
// are tried; if none is installed the path stays empty and frames render
// without text.
func resolveFont(font string) (string, error) {
	if font == "" {
		for _, name := range defaultFonts {
			if path, err := findfont.Find(name); err == nil {
				return path, nil
			}
		}
		return "", nil
	}
	if _, err := os.Stat(font); err == nil {
		return font, nil
	}
	path, err := findfont.Find(font)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeMissingSourceAsset, err, "font %q not found", font)
	}
	return path, nil
}

package cloud

import (
	"image"
	"math"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"

	"github.com/docreel/docreel/pkg/errors"
)

// RenderOptions control layout rasterization.
type RenderOptions struct {
	// Background is a hex color; empty means white.
	Background string

	// FontPath is a TTF/OTF file used for all words. Empty renders the
	// background only, which keeps headless environments working.
	FontPath string
}

// Render rasterizes a layout onto a width×height canvas. Each word is drawn
// at its layout position in its layout color; words with Orientation 90 are
// rotated a quarter turn and read bottom-to-top.
func Render(layout Layout, width, height int, opts RenderOptions) (image.Image, error) {
	dc := gg.NewContext(width, height)
	defer dc.Close()

	bg := gg.White
	if opts.Background != "" {
		bg = gg.Hex(opts.Background)
	}
	dc.ClearWithColor(bg)

	var source *text.FontSource
	if opts.FontPath != "" {
		var err error
		source, err = text.NewFontSourceFromFile(opts.FontPath)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeMissingSourceAsset, err, "font %s", opts.FontPath)
		}
	}

	for _, w := range layout {
		if source != nil {
			dc.SetFont(source.Face(w.FontSize))
		}
		dc.SetHexColor(w.Color)

		if w.Orientation == 90 {
			// The box height of a rotated word is the text's advance width.
			tw, _ := dc.MeasureString(w.Text)
			dc.Push()
			dc.RotateAbout(-math.Pi/2, w.X, w.Y+tw)
			dc.DrawStringAnchored(w.Text, w.X, w.Y+tw, 0, 0)
			dc.Pop()
			continue
		}
		dc.DrawStringAnchored(w.Text, w.X, w.Y, 0, 0)
	}
	return dc.Image(), nil
}

// FaceMeasurer is a Measurer backed by a real font, so generation boxes
// match what Render draws.
type FaceMeasurer struct {
	source *text.FontSource
}

// NewFaceMeasurer loads a font file for measurement.
func NewFaceMeasurer(fontPath string) (*FaceMeasurer, error) {
	source, err := text.NewFontSourceFromFile(fontPath)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeMissingSourceAsset, err, "font %s", fontPath)
	}
	return &FaceMeasurer{source: source}, nil
}

// Measure returns the pixel extent of text at fontSize.
func (m *FaceMeasurer) Measure(s string, fontSize float64) (w, h float64) {
	return text.Measure(s, m.source.Face(fontSize))
}

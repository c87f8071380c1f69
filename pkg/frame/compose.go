package frame

import (
	"image"

	"github.com/gogpu/gg"
	ggtext "github.com/gogpu/gg/text"
	xdraw "golang.org/x/image/draw"

	"github.com/docreel/docreel/pkg/errors"
	"github.com/docreel/docreel/pkg/snapshot"
)

// Composer renders complete frames. The zero value composes at the default
// size with no text; set FontPath and call Init to enable text rendering.
type Composer struct {
	Width    int  // 0 means Width constant
	Height   int  // 0 means Height constant
	FontPath string
	FontSize float64 // 0 means 20
	LogChart bool

	panels  Panels
	source  *ggtext.FontSource
	inited  bool
}

// Init resolves the panel layout and loads the font, if any. Compose calls
// it lazily; calling it up front surfaces font problems early.
func (c *Composer) Init() error {
	if c.inited {
		return nil
	}
	if c.Width <= 0 {
		c.Width = Width
	}
	if c.Height <= 0 {
		c.Height = Height
	}
	c.panels = DefaultPanels(c.Width, c.Height)
	if c.FontPath != "" {
		source, err := ggtext.NewFontSourceFromFile(c.FontPath)
		if err != nil {
			return errors.Wrap(errors.ErrCodeMissingSourceAsset, err, "font %s", c.FontPath)
		}
		c.source = source
	}
	c.inited = true
	return nil
}

func (c *Composer) fontSize() float64 {
	if c.FontSize <= 0 {
		return 20
	}
	return c.FontSize
}

// Panels returns the resolved panel layout.
func (c *Composer) Panels() (Panels, error) {
	if err := c.Init(); err != nil {
		return Panels{}, err
	}
	return c.panels, nil
}

// Compose renders one frame. preview and cloudImg may be nil: a snapshot
// with zero pages has no mosaic, and headless runs may skip the cloud. The
// series prefix must end at the snapshot the header describes.
func (c *Composer) Compose(preview image.Image, series snapshot.Series, cloudImg image.Image, info HeaderInfo) (image.Image, error) {
	if err := c.Init(); err != nil {
		return nil, err
	}

	dc := gg.NewContext(c.Width, c.Height)
	defer dc.Close()
	dc.ClearWithColor(gg.White)

	if preview != nil {
		drawFitted(dc, preview, c.panels.Preview)
	}
	if cloudImg != nil {
		drawFitted(dc, cloudImg, c.panels.Cloud)
	}
	c.drawChart(dc, c.panels.Stats, series)
	c.drawHeader(dc, c.panels.Header, info)

	return dc.Image(), nil
}

// drawFitted scales src to fit inside r preserving aspect ratio and draws
// it centered (letterboxed against the frame background).
func drawFitted(dc *gg.Context, src image.Image, r Rect) {
	sb := src.Bounds()
	if sb.Dx() == 0 || sb.Dy() == 0 || r.W <= 0 || r.H <= 0 {
		return
	}

	scale := float64(r.W) / float64(sb.Dx())
	if s := float64(r.H) / float64(sb.Dy()); s < scale {
		scale = s
	}
	w := int(float64(sb.Dx()) * scale)
	h := int(float64(sb.Dy()) * scale)
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}

	scaled := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.CatmullRom.Scale(scaled, scaled.Bounds(), src, sb, xdraw.Src, nil)

	x := float64(r.X) + float64(r.W-w)/2
	y := float64(r.Y) + float64(r.H-h)/2
	dc.DrawImage(gg.ImageBufFromImage(scaled), x, y)
}

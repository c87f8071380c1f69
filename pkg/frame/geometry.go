package frame

// Default frame dimensions, 16:9.
const (
	Width  = 1920
	Height = 1080
)

// Rect is a panel region in frame pixels.
type Rect struct {
	X, Y, W, H int
}

// Panels are the four fixed regions of a frame.
type Panels struct {
	Preview Rect // left: page mosaic
	Header  Rect // right top: id, date, stats, message
	Stats   Rect // right middle: running chart
	Cloud   Rect // right bottom: word cloud
}

// Panel fractions of the frame, top-left origin. Derived from the
// historical layout: 1% outer margin, preview takes 65% of the width, the
// right column stacks header, chart and cloud with 1% buffers.
var panelFractions = struct {
	preview, header, stats, cloud [4]float64
}{
	preview: [4]float64{0.01, 0.00, 0.65, 0.99},
	header:  [4]float64{0.67, 0.01, 0.32, 0.20},
	stats:   [4]float64{0.72, 0.22, 0.27, 0.35},
	cloud:   [4]float64{0.67, 0.63, 0.32, 0.30},
}

func scaleRect(f [4]float64, w, h int) Rect {
	return Rect{
		X: int(f[0] * float64(w)),
		Y: int(f[1] * float64(h)),
		W: int(f[2] * float64(w)),
		H: int(f[3] * float64(h)),
	}
}

// DefaultPanels returns the panel layout for a w×h frame.
func DefaultPanels(w, h int) Panels {
	return Panels{
		Preview: scaleRect(panelFractions.preview, w, h),
		Header:  scaleRect(panelFractions.header, w, h),
		Stats:   scaleRect(panelFractions.stats, w, h),
		Cloud:   scaleRect(panelFractions.cloud, w, h),
	}
}

func (r Rect) overlaps(o Rect) bool {
	return r.X < o.X+o.W && o.X < r.X+r.W && r.Y < o.Y+o.H && o.Y < r.Y+r.H
}

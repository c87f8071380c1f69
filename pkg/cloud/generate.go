package cloud

import (
	"hash/fnv"
	"math"
	"sort"
	"unicode/utf8"
)

// Measurer reports the pixel extent of text at a font size. The renderer
// backs this with a real font face; tests and headless runs use Estimate.
type Measurer interface {
	Measure(text string, fontSize float64) (w, h float64)
}

// Estimate is a font-free Measurer using average glyph proportions. Good
// enough for layout: boxes only need to be consistent, not exact.
type Estimate struct{}

func (Estimate) Measure(text string, fontSize float64) (w, h float64) {
	n := float64(utf8.RuneCountInString(text))
	return 0.6 * fontSize * n, 1.2 * fontSize
}

// DefaultPalette approximates the gnuplot colormap historically used for
// word clouds, sampled dark to bright.
var DefaultPalette = []string{
	"#1a0c96", "#6c09a4", "#a01d84", "#c93e4c",
	"#e7691c", "#f99d00", "#ffd000", "#fff67e",
}

// GenerateOptions control layout generation.
type GenerateOptions struct {
	Width    int
	Height   int
	MaxWords int      // 0 means the default of 30
	MaxFont  float64  // 0 means Height / 4
	MinFont  float64  // 0 means 4
	Palette  []string // nil means DefaultPalette
	Measurer Measurer // nil means Estimate{}
}

const defaultMaxWords = 30

func (o GenerateOptions) normalized() GenerateOptions {
	if o.MaxWords <= 0 {
		o.MaxWords = defaultMaxWords
	}
	if o.MaxFont <= 0 {
		o.MaxFont = float64(o.Height) / 4
	}
	if o.MinFont <= 0 {
		o.MinFont = 4
	}
	if len(o.Palette) == 0 {
		o.Palette = DefaultPalette
	}
	if o.Measurer == nil {
		o.Measurer = Estimate{}
	}
	return o
}

// Generate builds a layout from a word-frequency table. The result is
// deterministic: words are ranked by frequency with alphabetical
// tie-breaking, sized proportionally to relative frequency, and placed
// largest-first along an archimedean spiral from the canvas center, skipping
// positions that overlap already placed words or leave the canvas. A word
// with no free position left is dropped.
//
// Orientation and color come from a hash of the word text, so a word keeps
// them across regenerations even as its rank shifts.
func Generate(freqs map[string]float64, opts GenerateOptions) Layout {
	opts = opts.normalized()
	if len(freqs) == 0 || opts.Width <= 0 || opts.Height <= 0 {
		return nil
	}

	type ranked struct {
		text string
		freq float64
	}
	words := make([]ranked, 0, len(freqs))
	maxFreq := 0.0
	for text, f := range freqs {
		if f <= 0 {
			continue
		}
		words = append(words, ranked{text, f})
		if f > maxFreq {
			maxFreq = f
		}
	}
	if len(words) == 0 {
		return nil
	}
	sort.Slice(words, func(i, j int) bool {
		if words[i].freq != words[j].freq {
			return words[i].freq > words[j].freq
		}
		return words[i].text < words[j].text
	})
	if len(words) > opts.MaxWords {
		words = words[:opts.MaxWords]
	}

	var placed []box
	layout := make(Layout, 0, len(words))
	for _, wr := range words {
		rel := wr.freq / maxFreq
		size := opts.MaxFont * rel
		if size < opts.MinFont {
			size = opts.MinFont
		}

		orientation := 0
		if wordHash(wr.text)%10 == 0 {
			orientation = 90
		}

		w, h := opts.Measurer.Measure(wr.text, size)
		if orientation == 90 {
			w, h = h, w
		}

		b, ok := placeOnSpiral(w, h, opts.Width, opts.Height, placed)
		if !ok {
			continue
		}
		placed = append(placed, b)

		layout = append(layout, Word{
			Text:        wr.text,
			Aux:         rel,
			FontSize:    size,
			X:           b.x,
			Y:           b.y,
			Orientation: orientation,
			Color:       opts.Palette[int(wordHash(wr.text))%len(opts.Palette)],
		})
	}
	return layout
}

type box struct {
	x, y, w, h float64
}

func (b box) intersects(o box) bool {
	return b.x < o.x+o.w && o.x < b.x+b.w && b.y < o.y+o.h && o.y < b.y+b.h
}

// spiral step granularity: small enough that adjacent candidates nearly
// touch, large enough to keep placement cheap.
const (
	spiralSteps = 4000
	spiralTurns = 14
)

// placeOnSpiral walks an archimedean spiral out from the canvas center and
// returns the first bounding box that fits inside the canvas without
// touching an already placed box. The word's box is centered on the spiral
// point; the returned box coordinates are its top-left corner.
func placeOnSpiral(w, h float64, width, height int, placed []box) (box, bool) {
	cx, cy := float64(width)/2, float64(height)/2
	maxR := math.Hypot(cx, cy)

	for i := 0; i < spiralSteps; i++ {
		t := float64(i) / spiralSteps
		angle := t * spiralTurns * 2 * math.Pi
		r := t * maxR
		b := box{
			x: cx + r*math.Cos(angle) - w/2,
			y: cy + r*math.Sin(angle) - h/2,
			w: w,
			h: h,
		}
		if b.x < 0 || b.y < 0 || b.x+b.w > float64(width) || b.y+b.h > float64(height) {
			continue
		}
		clear := true
		for _, p := range placed {
			if b.intersects(p) {
				clear = false
				break
			}
		}
		if clear {
			return b, true
		}
	}
	return box{}, false
}

func wordHash(s string) uint32 {
	h := fnv.New32a()
	h.Write([]byte(s))
	return h.Sum32()
}

package frame

import (
	"image"
	"image/color"
	"os"
	"testing"
	"time"

	"github.com/docreel/docreel/pkg/snapshot"
)

func findTestFont() string {
	candidates := []string{
		// Windows
		"C:\\Windows\\Fonts\\arial.ttf",
		// macOS
		"/Library/Fonts/Arial.ttf",
		"/System/Library/Fonts/Supplemental/Arial.ttf",
		"/System/Library/Fonts/Monaco.ttf",
		// Linux
		"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
		"/usr/share/fonts/TTF/DejaVuSans.ttf",
		"/usr/share/fonts/liberation/LiberationSans-Regular.ttf",
	}
	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

func TestDefaultPanels(t *testing.T) {
	p := DefaultPanels(Width, Height)

	rects := map[string]Rect{
		"preview": p.Preview,
		"header":  p.Header,
		"stats":   p.Stats,
		"cloud":   p.Cloud,
	}
	for name, r := range rects {
		if r.W <= 0 || r.H <= 0 {
			t.Errorf("%s has empty extent: %+v", name, r)
		}
		if r.X < 0 || r.Y < 0 || r.X+r.W > Width || r.Y+r.H > Height {
			t.Errorf("%s leaves the frame: %+v", name, r)
		}
	}

	// The four panels never overlap.
	names := []string{"preview", "header", "stats", "cloud"}
	for i, a := range names {
		for _, b := range names[i+1:] {
			if rects[a].overlaps(rects[b]) {
				t.Errorf("%s overlaps %s: %+v vs %+v", a, b, rects[a], rects[b])
			}
		}
	}

	// Preview dominates the left side.
	if p.Preview.W < Width/2 {
		t.Errorf("preview width = %d, want most of the frame", p.Preview.W)
	}
}

func testSeries() snapshot.Series {
	return snapshot.BuildSeries([]snapshot.Snapshot{
		{ID: "a", Timestamp: 1531090905, Stats: snapshot.Stats{WordCount: 120, UniqueWordCount: 60, FigureCount: 2}},
		{ID: "b", Timestamp: 1531090905 + 5*86400, Stats: snapshot.Stats{WordCount: 900, UniqueWordCount: 300, FigureCount: 6, EquationCount: 4, TableCount: 1}},
		{ID: "c", Timestamp: 1531090905 + 20*86400, Stats: snapshot.Stats{WordCount: 4200, UniqueWordCount: 800, FigureCount: 14, EquationCount: 20, TableCount: 3}},
	})
}

func solidImage(w, h int, c color.RGBA) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func TestComposeDimensions(t *testing.T) {
	c := &Composer{LogChart: true}
	preview := solidImage(410, 408, color.RGBA{180, 40, 40, 255})
	cloudImg := solidImage(580, 300, color.RGBA{40, 40, 180, 255})

	img, err := c.Compose(preview, testSeries(), cloudImg, HeaderInfo{
		ID:      "abc123",
		Date:    time.Unix(1531090905, 0).UTC(),
		Elapsed: 20 * 24 * time.Hour,
		Pages:   17,
		Stats:   snapshot.Stats{WordCount: 4200},
		Message: "Sent to committee",
	})
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	if img.Bounds().Dx() != Width || img.Bounds().Dy() != Height {
		t.Errorf("frame = %dx%d, want %dx%d", img.Bounds().Dx(), img.Bounds().Dy(), Width, Height)
	}

	// The preview lands inside its panel, letterboxed and centered.
	p := DefaultPanels(Width, Height)
	cx := p.Preview.X + p.Preview.W/2
	cy := p.Preview.Y + p.Preview.H/2
	r, _, b, _ := img.At(cx, cy).RGBA()
	if r < 0x9000 || b > 0x6000 {
		t.Errorf("preview panel center = %v, want the reddish preview image", img.At(cx, cy))
	}

	// Outside every panel the frame is white.
	r, g, b, _ := img.At(Width-2, Height-2).RGBA()
	if r != 0xffff || g != 0xffff || b != 0xffff {
		t.Errorf("frame corner = %v, want white", img.At(Width-2, Height-2))
	}
}

func TestComposeZeroPages(t *testing.T) {
	// A snapshot with no pages composes a frame without a preview.
	c := &Composer{}
	img, err := c.Compose(nil, testSeries(), nil, HeaderInfo{ID: "x", Pages: 0})
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	if img.Bounds().Dx() != Width {
		t.Errorf("frame width = %d, want %d", img.Bounds().Dx(), Width)
	}
}

func TestComposeEmptySeries(t *testing.T) {
	c := &Composer{}
	if _, err := c.Compose(nil, nil, nil, HeaderInfo{}); err != nil {
		t.Fatalf("Compose with empty series: %v", err)
	}
}

func TestComposeWithFont(t *testing.T) {
	fontPath := findTestFont()
	if fontPath == "" {
		t.Skip("No system font available")
	}

	c := &Composer{FontPath: fontPath, LogChart: true}
	img, err := c.Compose(nil, testSeries(), nil, HeaderInfo{
		ID:      "abc123",
		Date:    time.Unix(1531090905, 0).UTC(),
		Elapsed: 20*24*time.Hour + 3*time.Hour,
		Pages:   17,
		Stats:   snapshot.Stats{WordCount: 4200, UniqueWordCount: 800},
		Message: "A status message long enough to wrap across several lines in the header panel",
	})
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}

	// Header panel contains drawn text pixels.
	p := DefaultPanels(Width, Height)
	nonWhite := 0
	for y := p.Header.Y; y < p.Header.Y+p.Header.H; y++ {
		for x := p.Header.X; x < p.Header.X+p.Header.W; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			if r != 0xffff || g != 0xffff || b != 0xffff {
				nonWhite++
			}
		}
	}
	if nonWhite == 0 {
		t.Error("header panel is blank with a font configured")
	}
}

func TestComposeBadFont(t *testing.T) {
	c := &Composer{FontPath: "/nonexistent/font.ttf"}
	if _, err := c.Compose(nil, testSeries(), nil, HeaderInfo{}); err == nil {
		t.Error("expected an error for a missing font file")
	}
}

func TestFormatElapsed(t *testing.T) {
	cases := []struct {
		d    time.Duration
		want string
	}{
		{0, "0 days, 0:00:00"},
		{90 * time.Second, "0 days, 0:01:30"},
		{26*time.Hour + 5*time.Minute, "1 days, 2:05:00"},
		{253*24*time.Hour + 13*time.Hour + 59*time.Minute + 59*time.Second, "253 days, 13:59:59"},
	}
	for _, tc := range cases {
		if got := formatElapsed(tc.d); got != tc.want {
			t.Errorf("formatElapsed(%v) = %q, want %q", tc.d, got, tc.want)
		}
	}
}

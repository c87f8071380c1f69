package cloud

import (
	"math"
	"os"
	"reflect"
	"testing"

	"github.com/docreel/docreel/pkg/errors"
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

func TestTransferNoFlags(t *testing.T) {
	reference := Layout{
		{Text: "a", FontSize: 10, X: 1, Y: 1, Color: "#ff0000"},
	}
	target := Layout{
		{Text: "a", Aux: 0.5, FontSize: 8, X: 9, Y: 9, Orientation: 90, Color: "#00ff00"},
		{Text: "c", Aux: 0.2, FontSize: 3, X: 5, Y: 5, Color: "#000000"},
	}

	got := Transfer(reference, target, Attrs{})
	if !reflect.DeepEqual(got, target) {
		t.Errorf("no flags should return target unchanged:\ngot  %+v\nwant %+v", got, target)
	}
}

func TestTransferPositionAndColor(t *testing.T) {
	reference := Layout{
		{Text: "a", FontSize: 10, X: 1, Y: 1, Color: "#ff0000"},
		{Text: "b", FontSize: 5, X: 2, Y: 2, Color: "#0000ff"},
	}
	target := Layout{
		{Text: "a", FontSize: 8, X: 9, Y: 9, Color: "#00ff00"},
		{Text: "c", FontSize: 3, X: 5, Y: 5, Color: "#000000"},
	}

	got := Transfer(reference, target, Attrs{Position: true, Color: true})

	// Matched word: position and color from reference, font size untouched.
	if got[0].X != 1 || got[0].Y != 1 {
		t.Errorf("a position = (%v,%v), want (1,1)", got[0].X, got[0].Y)
	}
	if got[0].Color != "#ff0000" {
		t.Errorf("a color = %q, want #ff0000", got[0].Color)
	}
	if got[0].FontSize != 8 {
		t.Errorf("a font size = %v, want 8 (flag off)", got[0].FontSize)
	}

	// Unmatched word with flags on: documented defaults.
	if got[1].X != 0 || got[1].Y != 0 {
		t.Errorf("c position = (%v,%v), want (0,0)", got[1].X, got[1].Y)
	}
	if got[1].Color != "" {
		t.Errorf("c color = %q, want empty default", got[1].Color)
	}
	if got[1].FontSize != 3 {
		t.Errorf("c font size = %v, want 3 (flag off)", got[1].FontSize)
	}

	// Order and count preserved; b is not injected.
	if len(got) != 2 || got[0].Text != "a" || got[1].Text != "c" {
		t.Errorf("entry order changed: %+v", got.Words())
	}

	// Inputs are not mutated.
	if target[0].X != 9 || reference[0].X != 1 {
		t.Error("Transfer mutated an input layout")
	}
}

func TestScaleSelfIdentity(t *testing.T) {
	layout := Layout{
		{Text: "a", FontSize: 10, X: 1, Y: 2, Color: "#ff0000"},
		{Text: "b", FontSize: 5, X: 3, Y: 4, Color: "#0000ff"},
	}

	got, err := Scale(layout, layout, 500, 500, ModeLog)
	if err != nil {
		t.Fatalf("Scale: %v", err)
	}
	for i := range layout {
		if math.Abs(got[i].FontSize-layout[i].FontSize) > 1e-9 {
			t.Errorf("%s font size = %v, want %v", got[i].Text, got[i].FontSize, layout[i].FontSize)
		}
	}
}

func TestScaleLog(t *testing.T) {
	reference := Layout{{Text: "a", FontSize: 10}}
	target := Layout{
		{Text: "a", FontSize: 99},
		{Text: "new", FontSize: 42},
	}

	got, err := Scale(target, reference, 100, 10000, ModeLog)
	if err != nil {
		t.Fatalf("Scale: %v", err)
	}
	// log10(100)/log10(10000) = 0.5
	if math.Abs(got[0].FontSize-5) > 1e-9 {
		t.Errorf("a font size = %v, want 5", got[0].FontSize)
	}
	// New word scales from the default base of 1.
	if math.Abs(got[1].FontSize-0.5) > 1e-9 {
		t.Errorf("new font size = %v, want 0.5", got[1].FontSize)
	}
}

func TestScaleLinear(t *testing.T) {
	reference := Layout{{Text: "a", FontSize: 8}}
	target := Layout{{Text: "a", FontSize: 1}}

	got, err := Scale(target, reference, 300, 600, ModeLinear)
	if err != nil {
		t.Fatalf("Scale: %v", err)
	}
	if math.Abs(got[0].FontSize-4) > 1e-9 {
		t.Errorf("font size = %v, want 4", got[0].FontSize)
	}
}

func TestScaleErrors(t *testing.T) {
	layout := Layout{{Text: "a", FontSize: 1}}

	_, err := Scale(layout, layout, 1, 500, ModeLog)
	if !errors.Is(err, errors.ErrCodeInvalidScalingDomain) {
		t.Errorf("target count 1: got %v, want INVALID_SCALING_DOMAIN", err)
	}
	_, err = Scale(layout, layout, 500, 1, ModeLog)
	if !errors.Is(err, errors.ErrCodeInvalidScalingDomain) {
		t.Errorf("reference count 1: got %v, want INVALID_SCALING_DOMAIN", err)
	}
	_, err = Scale(layout, layout, 500, 500, ModeLogistic)
	if !errors.Is(err, errors.ErrCodeUnsupportedScaleMode) {
		t.Errorf("logistic: got %v, want UNSUPPORTED_SCALE_MODE", err)
	}
	_, err = Scale(layout, layout, 500, 500, Mode("quadratic"))
	if !errors.Is(err, errors.ErrCodeUnsupportedScaleMode) {
		t.Errorf("unknown mode: got %v, want UNSUPPORTED_SCALE_MODE", err)
	}
}

func TestGenerateDeterministic(t *testing.T) {
	freqs := map[string]float64{
		"thesis": 40, "model": 25, "data": 25, "result": 10,
		"method": 8, "figure": 5, "chapter": 3,
	}
	opts := GenerateOptions{Width: 580, Height: 300}

	a := Generate(freqs, opts)
	b := Generate(freqs, opts)
	if !reflect.DeepEqual(a, b) {
		t.Error("Generate is not deterministic for identical inputs")
	}
	if len(a) == 0 {
		t.Fatal("Generate returned an empty layout")
	}

	// Highest frequency first; equal frequencies tie-break alphabetically.
	if a[0].Text != "thesis" {
		t.Errorf("first word = %q, want thesis", a[0].Text)
	}
	if a[1].Text != "data" || a[2].Text != "model" {
		t.Errorf("tie-break order = %q, %q, want data, model", a[1].Text, a[2].Text)
	}
}

func TestGeneratePlacement(t *testing.T) {
	freqs := map[string]float64{
		"alpha": 30, "beta": 20, "gamma": 15, "delta": 10, "epsilon": 5,
	}
	width, height := 400, 240
	layout := Generate(freqs, GenerateOptions{Width: width, Height: height})

	m := Estimate{}
	boxes := make([]box, 0, len(layout))
	for _, w := range layout {
		bw, bh := m.Measure(w.Text, w.FontSize)
		if w.Orientation == 90 {
			bw, bh = bh, bw
		}
		b := box{x: w.X, y: w.Y, w: bw, h: bh}
		if b.x < 0 || b.y < 0 || b.x+b.w > float64(width) || b.y+b.h > float64(height) {
			t.Errorf("%q box %+v leaves the canvas", w.Text, b)
		}
		for _, p := range boxes {
			if b.intersects(p) {
				t.Errorf("%q box %+v overlaps %+v", w.Text, b, p)
			}
		}
		boxes = append(boxes, b)
	}
}

func TestGenerateCapsWords(t *testing.T) {
	freqs := make(map[string]float64)
	for i := 0; i < 60; i++ {
		freqs[string(rune('a'+i%26))+string(rune('a'+i/26))] = float64(60 - i)
	}
	layout := Generate(freqs, GenerateOptions{Width: 2000, Height: 2000, MaxWords: 30})
	if len(layout) > 30 {
		t.Errorf("layout has %d words, want at most 30", len(layout))
	}
}

func TestGenerateEmpty(t *testing.T) {
	if got := Generate(nil, GenerateOptions{Width: 100, Height: 100}); got != nil {
		t.Errorf("nil frequencies: got %+v, want nil", got)
	}
	if got := Generate(map[string]float64{"a": 0}, GenerateOptions{Width: 100, Height: 100}); got != nil {
		t.Errorf("zero frequencies: got %+v, want nil", got)
	}
}

func TestRenderBackgroundOnly(t *testing.T) {
	// No font: words are skipped, background still renders.
	layout := Layout{{Text: "a", FontSize: 20, X: 10, Y: 10, Color: "#ff0000"}}
	img, err := Render(layout, 64, 48, RenderOptions{})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	b := img.Bounds()
	if b.Dx() != 64 || b.Dy() != 48 {
		t.Errorf("image = %dx%d, want 64x48", b.Dx(), b.Dy())
	}
	r, g, bl, _ := img.At(1, 1).RGBA()
	if r != 0xffff || g != 0xffff || bl != 0xffff {
		t.Errorf("background pixel = %v, want white", img.At(1, 1))
	}
}

func TestRenderDrawsWords(t *testing.T) {
	fontPath := findTestFont()
	if fontPath == "" {
		t.Skip("No system font available")
	}

	layout := Generate(map[string]float64{"hello": 10, "world": 5},
		GenerateOptions{Width: 200, Height: 120})
	img, err := Render(layout, 200, 120, RenderOptions{FontPath: fontPath})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	nonWhite := 0
	for y := 0; y < 120; y++ {
		for x := 0; x < 200; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			if r != 0xffff || g != 0xffff || b != 0xffff {
				nonWhite++
			}
		}
	}
	if nonWhite == 0 {
		t.Error("no pixels drawn for a non-empty layout")
	}
}

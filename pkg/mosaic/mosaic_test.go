package mosaic

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/docreel/docreel/pkg/errors"
)

func solidTile(name string, w, h int, c color.RGBA) Tile {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return Tile{Name: name, Image: img}
}

func TestCompositeFullGrid(t *testing.T) {
	// rows*cols == len(tiles): exact fit, no padding cells.
	tiles := make([]Tile, 6)
	for i := range tiles {
		tiles[i] = solidTile("p", 10, 20, color.RGBA{uint8(i * 40), 0, 0, 255})
	}

	canvas, err := Composite(tiles, 2, 3, DefaultOptions())
	if err != nil {
		t.Fatalf("Composite: %v", err)
	}
	// Bordered cell is 12x22.
	if got, want := canvas.Bounds().Dx(), 3*12; got != want {
		t.Errorf("width = %d, want %d", got, want)
	}
	if got, want := canvas.Bounds().Dy(), 2*22; got != want {
		t.Errorf("height = %d, want %d", got, want)
	}
}

func TestCompositeScenario(t *testing.T) {
	// 17 tiles of 80x100 in a 4x5 grid with black 1px border and white
	// background: 3 filler cells, canvas 5*82 wide and 4*102 tall.
	white := color.RGBA{255, 255, 255, 255}
	opts := Options{
		BorderWidth: 1,
		BorderColor: color.RGBA{0, 0, 0, 255},
		Background:  white,
	}

	red := color.RGBA{200, 30, 30, 255}
	tiles := make([]Tile, 17)
	for i := range tiles {
		tiles[i] = solidTile("p", 80, 100, red)
	}

	canvas, err := Composite(tiles, 4, 5, opts)
	if err != nil {
		t.Fatalf("Composite: %v", err)
	}
	if canvas.Bounds().Dx() != 5*82 || canvas.Bounds().Dy() != 4*102 {
		t.Fatalf("canvas = %dx%d, want %dx%d",
			canvas.Bounds().Dx(), canvas.Bounds().Dy(), 5*82, 4*102)
	}

	// First cell: border pixel at the corner, tile pixel inside.
	if got := canvas.RGBAAt(0, 0); got != opts.BorderColor {
		t.Errorf("corner pixel = %v, want border color", got)
	}
	if got := canvas.RGBAAt(1, 1); got != red {
		t.Errorf("tile pixel = %v, want %v", got, red)
	}

	// Last 3 cells of the bottom row are solid background.
	for cell := 17; cell < 20; cell++ {
		r, c := cell/5, cell%5
		for _, p := range []image.Point{
			{c * 82, r * 102},
			{c*82 + 41, r*102 + 51},
			{c*82 + 81, r*102 + 101},
		} {
			if got := canvas.RGBAAt(p.X, p.Y); got != white {
				t.Errorf("filler cell %d pixel %v = %v, want white", cell, p, got)
			}
		}
	}
}

func TestCompositeErrors(t *testing.T) {
	_, err := Composite(nil, 3, 3, DefaultOptions())
	if !errors.Is(err, errors.ErrCodeEmptyTileSet) {
		t.Errorf("empty set: got %v, want EMPTY_TILE_SET", err)
	}

	tiles := make([]Tile, 5)
	for i := range tiles {
		tiles[i] = solidTile("p", 4, 4, color.RGBA{A: 255})
	}
	_, err = Composite(tiles, 2, 2, DefaultOptions())
	if !errors.Is(err, errors.ErrCodeInsufficientGridCapacity) {
		t.Errorf("overfull grid: got %v, want INSUFFICIENT_GRID_CAPACITY", err)
	}
}

func TestSelectShape(t *testing.T) {
	// The base shape is 3x2; the first increment lands before the first
	// check, so small counts all get 4x2.
	for _, count := range []int{0, 1, 5, 8} {
		shape, err := SelectShape(count)
		if err != nil {
			t.Fatalf("SelectShape(%d): %v", count, err)
		}
		if shape != (Shape{Rows: 4, Cols: 2}) {
			t.Errorf("SelectShape(%d) = %+v, want {4 2}", count, shape)
		}
	}

	// Growth alternates rows then cols: 4x2, 4x3, 5x3, 5x4, ...
	shape, err := SelectShape(17)
	if err != nil {
		t.Fatal(err)
	}
	if shape != (Shape{Rows: 5, Cols: 4}) {
		t.Errorf("SelectShape(17) = %+v, want {5 4}", shape)
	}

	// Capacity covers the count and never shrinks as the count grows.
	// The shape itself is a heuristic: spare capacity is expected and fine.
	prev := 0
	for count := 1; count <= 120; count++ {
		shape, err := SelectShape(count)
		if err != nil {
			t.Fatalf("SelectShape(%d): %v", count, err)
		}
		if shape.Capacity() < count {
			t.Errorf("SelectShape(%d) capacity %d < count", count, shape.Capacity())
		}
		if shape.Capacity() < prev {
			t.Errorf("SelectShape(%d) capacity %d shrank from %d", count, shape.Capacity(), prev)
		}
		prev = shape.Capacity()
	}
}

func TestSelectShapeUnreachable(t *testing.T) {
	// 100 growth steps max out at 53x52 = 2756 cells.
	if _, err := SelectShape(2756); err != nil {
		t.Errorf("SelectShape(2756): %v", err)
	}
	_, err := SelectShape(2757)
	if !errors.Is(err, errors.ErrCodeGridShapeUnreachable) {
		t.Errorf("got %v, want GRID_SHAPE_UNREACHABLE", err)
	}
}

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, image.NewRGBA(image.Rect(0, 0, w, h))); err != nil {
		t.Fatal(err)
	}
}

func TestLoadTiles(t *testing.T) {
	dir := t.TempDir()
	// Written out of order; stems sort 001 < 002 < 010.
	writePNG(t, filepath.Join(dir, "010.png"), 8, 12)
	writePNG(t, filepath.Join(dir, "001.png"), 8, 12)
	writePNG(t, filepath.Join(dir, "002.png"), 8, 12)
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	tiles, err := LoadTiles(dir)
	if err != nil {
		t.Fatalf("LoadTiles: %v", err)
	}
	if len(tiles) != 3 {
		t.Fatalf("got %d tiles, want 3", len(tiles))
	}
	for i, want := range []string{"001", "002", "010"} {
		if tiles[i].Name != want {
			t.Errorf("tiles[%d].Name = %q, want %q", i, tiles[i].Name, want)
		}
	}
}

func TestPageFiles(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "010.png"), 4, 4)
	writePNG(t, filepath.Join(dir, "001.png"), 4, 4)
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(filepath.Join(dir, "sub.png"), 0o755); err != nil {
		t.Fatal(err)
	}

	names, err := PageFiles(dir)
	if err != nil {
		t.Fatalf("PageFiles: %v", err)
	}
	if len(names) != 2 || names[0] != "001.png" || names[1] != "010.png" {
		t.Errorf("names = %v, want sorted pages only", names)
	}

	// A missing directory surfaces the raw not-exist error, so callers
	// counting pages can treat it as zero.
	_, err = PageFiles(filepath.Join(dir, "nope"))
	if !os.IsNotExist(err) {
		t.Errorf("got %v, want not-exist", err)
	}
}

func TestLoadTilesMismatch(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "001.png"), 8, 12)
	writePNG(t, filepath.Join(dir, "002.png"), 9, 12)

	_, err := LoadTiles(dir)
	if !errors.Is(err, errors.ErrCodeInvalidTile) {
		t.Errorf("got %v, want INVALID_TILE", err)
	}
}

func TestLoadTilesMissingDir(t *testing.T) {
	_, err := LoadTiles(filepath.Join(t.TempDir(), "nope"))
	if !errors.Is(err, errors.ErrCodeMissingSourceAsset) {
		t.Errorf("got %v, want MISSING_SOURCE_ASSET", err)
	}
}

func TestLoadTilesEmptyDir(t *testing.T) {
	tiles, err := LoadTiles(t.TempDir())
	if err != nil {
		t.Fatalf("LoadTiles: %v", err)
	}
	if len(tiles) != 0 {
		t.Errorf("got %d tiles, want 0", len(tiles))
	}
}

package mosaic

import (
	"image"
	"image/draw"
	_ "image/png" // page tiles are PNG
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/docreel/docreel/pkg/errors"
)

// Tile is one rasterized page image.
type Tile struct {
	Name  string // filename stem, used for ordering
	Image *image.RGBA
}

// LoadTiles reads every .png in dir and returns the tiles sorted
// lexicographically by filename stem, which yields deterministic
// left-to-right, top-to-bottom page order on the canvas. A snapshot with no
// page images yields an empty slice, not an error; callers decide whether
// that is acceptable.
//
// All tiles must share the dimensions of the first one. A mismatched tile
// means the rasterization step produced inconsistent output and fails with
// INVALID_TILE.
func LoadTiles(dir string) ([]Tile, error) {
	names, err := PageFiles(dir)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeMissingSourceAsset, err, "page directory %s", dir)
	}

	tiles := make([]Tile, 0, len(names))
	var want image.Rectangle
	for _, name := range names {
		img, err := loadImage(filepath.Join(dir, name))
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidTile, err, "page %s", name)
		}
		if len(tiles) == 0 {
			want = img.Bounds()
		} else if img.Bounds().Dx() != want.Dx() || img.Bounds().Dy() != want.Dy() {
			return nil, errors.New(errors.ErrCodeInvalidTile,
				"page %s is %dx%d, expected %dx%d",
				name, img.Bounds().Dx(), img.Bounds().Dy(), want.Dx(), want.Dy())
		}
		tiles = append(tiles, Tile{Name: strings.TrimSuffix(name, ".png"), Image: img})
	}
	return tiles, nil
}

// PageFiles lists the page image filenames in dir, sorted by stem. It is
// the single definition of what counts as a page, shared by tile loading
// and page counting. The ReadDir error is returned unwrapped so callers
// can distinguish a missing directory from other failures.
func PageFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".png") {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Slice(names, func(i, j int) bool {
		return strings.TrimSuffix(names[i], ".png") < strings.TrimSuffix(names[j], ".png")
	})
	return names, nil
}

func loadImage(path string) (*image.RGBA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, err
	}
	return toRGBA(img), nil
}

// toRGBA normalizes a decoded image to RGBA with a zero-origin bounds.
func toRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Bounds().Min == (image.Point{}) {
		return rgba
	}
	b := img.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Bounds(), img, b.Min, draw.Src)
	return out
}

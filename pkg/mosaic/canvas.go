package mosaic

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/docreel/docreel/pkg/errors"
)

// Options control canvas composition.
type Options struct {
	// BorderWidth is the border around each tile in pixels. Zero means the
	// default of 1; a borderless canvas is not part of the contract.
	BorderWidth int

	// BorderColor fills the border ring around each tile.
	BorderColor color.RGBA

	// Background fills grid cells beyond the last tile.
	Background color.RGBA
}

// DefaultOptions match the historical output: 1px black border, light gray
// filler cells.
func DefaultOptions() Options {
	return Options{
		BorderWidth: 1,
		BorderColor: color.RGBA{0, 0, 0, 255},
		Background:  color.RGBA{200, 200, 200, 255},
	}
}

func (o Options) borderWidth() int {
	if o.BorderWidth <= 0 {
		return 1
	}
	return o.BorderWidth
}

// Composite packs tiles into a rows×cols grid and returns the composed
// canvas. Tiles fill cells in row-major order; remaining cells are solid
// Background rectangles the size of a bordered tile. Tile pixels are copied
// unchanged.
func Composite(tiles []Tile, rows, cols int, opts Options) (*image.RGBA, error) {
	if len(tiles) == 0 {
		return nil, errors.New(errors.ErrCodeEmptyTileSet, "no tiles to composite")
	}
	if rows*cols < len(tiles) {
		return nil, errors.New(errors.ErrCodeInsufficientGridCapacity,
			"grid %dx%d holds %d tiles, need %d", rows, cols, rows*cols, len(tiles))
	}

	bw := opts.borderWidth()
	tileW := tiles[0].Image.Bounds().Dx()
	tileH := tiles[0].Image.Bounds().Dy()
	cellW := tileW + 2*bw
	cellH := tileH + 2*bw

	canvas := image.NewRGBA(image.Rect(0, 0, cols*cellW, rows*cellH))

	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			idx := r*cols + c
			cell := image.Rect(c*cellW, r*cellH, (c+1)*cellW, (r+1)*cellH)
			if idx >= len(tiles) {
				draw.Draw(canvas, cell, image.NewUniform(opts.Background), image.Point{}, draw.Src)
				continue
			}
			// Border ring first, then the tile over its center.
			draw.Draw(canvas, cell, image.NewUniform(opts.BorderColor), image.Point{}, draw.Src)
			inner := image.Rect(cell.Min.X+bw, cell.Min.Y+bw, cell.Max.X-bw, cell.Max.Y-bw)
			draw.Draw(canvas, inner, tiles[idx].Image, image.Point{}, draw.Src)
		}
	}
	return canvas, nil
}

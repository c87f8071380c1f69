package mosaic

import (
	"github.com/docreel/docreel/pkg/errors"
)

// Physical constants behind the base grid shape: how many A4 pages fit into
// the preview panel's pixel budget, floor-divided per axis.
const (
	pageWidthMM  = 210
	pageHeightMM = 297

	budgetWidth  = 780
	budgetHeight = 668

	maxGrowthSteps = 100
)

// Shape is a grid of Rows × Cols cells.
type Shape struct {
	Rows int
	Cols int
}

// Capacity returns the number of tiles the shape can hold.
func (s Shape) Capacity() int {
	return s.Rows * s.Cols
}

// SelectShape picks a grid shape for tileCount tiles. It starts from the
// base shape implied by the physical constants, then alternately adds a row
// and a column until the grid holds every tile. The first increment happens
// before the first capacity check, so the minimum returned shape is one row
// larger than the base.
//
// This is a heuristic anchored to page proportions, not a minimal-area
// search; it can and does return shapes with spare capacity.
func SelectShape(tileCount int) (Shape, error) {
	rows := budgetWidth / pageWidthMM
	cols := budgetHeight / pageHeightMM

	for i := 0; i < maxGrowthSteps; i++ {
		if i%2 == 0 {
			rows++
		} else {
			cols++
		}
		if rows*cols >= tileCount {
			return Shape{Rows: rows, Cols: cols}, nil
		}
	}
	return Shape{}, errors.New(errors.ErrCodeGridShapeUnreachable,
		"no grid shape for %d tiles within %d growth steps", tileCount, maxGrowthSteps)
}

package frame

import (
	"fmt"
	"time"

	"github.com/gogpu/gg"

	"github.com/docreel/docreel/pkg/snapshot"
)

// HeaderInfo is everything the header panel displays for one snapshot.
type HeaderInfo struct {
	ID      string
	Date    time.Time
	Elapsed time.Duration // since the first snapshot
	Pages   int
	Stats   snapshot.Stats
	Message string
}

// Header line positions as fractions of panel height, measured from the
// panel bottom, and the three text columns.
const (
	line1 = 0.88 // snapshot id
	line2 = 0.76 // date left, elapsed right
	line4 = 0.60 // status message (wraps downward)
	line5 = 0.28 // words / unique / pages
	line6 = 0.12 // figures / equations / tables

	col1 = 0.05
	col2 = 0.50
	col3 = 0.95
)

const messageWrapFraction = 0.9

// formatElapsed renders a duration as "N days, H:MM:SS".
func formatElapsed(d time.Duration) string {
	days := int(d.Hours()) / 24
	rem := d - time.Duration(days)*24*time.Hour
	h := int(rem.Hours())
	m := int(rem.Minutes()) % 60
	s := int(rem.Seconds()) % 60
	return fmt.Sprintf("%d days, %d:%02d:%02d", days, h, m, s)
}

// drawHeader renders the header panel. Each cell is anchored to its column:
// left column left-aligned, center centered, right right-aligned.
func (c *Composer) drawHeader(dc *gg.Context, r Rect, info HeaderInfo) {
	if c.source == nil {
		return
	}
	dc.SetFont(c.source.Face(c.fontSize()))

	x := func(col float64) float64 { return float64(r.X) + col*float64(r.W) }
	y := func(line float64) float64 { return float64(r.Y) + (1-line)*float64(r.H) }

	dc.SetHexColor(colorText)
	dc.DrawStringAnchored(info.ID, x(col2), y(line1), 0.5, 0.5)
	dc.DrawStringAnchored(info.Date.Format("2006-01-02 15:04:05"), x(col1), y(line2), 0, 0.5)
	dc.DrawStringAnchored(formatElapsed(info.Elapsed), x(col3), y(line2), 1, 0.5)

	dc.SetHexColor(colorWords)
	dc.DrawStringAnchored(fmt.Sprintf("Words: %d", info.Stats.WordCount), x(col1), y(line5), 0, 0.5)
	dc.SetHexColor(colorUnique)
	dc.DrawStringAnchored(fmt.Sprintf("Unique words: %d", info.Stats.UniqueWordCount), x(col2), y(line5), 0.5, 0.5)
	dc.SetHexColor(colorText)
	dc.DrawStringAnchored(fmt.Sprintf("Pages: %d", info.Pages), x(col3), y(line5), 1, 0.5)

	dc.SetHexColor(colorFigures)
	dc.DrawStringAnchored(fmt.Sprintf("Figures: %d", info.Stats.FigureCount), x(col1), y(line6), 0, 0.5)
	dc.SetHexColor(colorEquations)
	dc.DrawStringAnchored(fmt.Sprintf("Equations: %d", info.Stats.EquationCount), x(col2), y(line6), 0.5, 0.5)
	dc.SetHexColor(colorTables)
	dc.DrawStringAnchored(fmt.Sprintf("Tables: %d", info.Stats.TableCount), x(col3), y(line6), 1, 0.5)

	if info.Message != "" {
		dc.SetHexColor(colorWords)
		dc.DrawStringWrapped(info.Message, x(col2), y(line4), 0.5, 0,
			messageWrapFraction*float64(r.W), 1.3, gg.AlignCenter)
	}
}

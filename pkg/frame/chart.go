package frame

import (
	"math"

	"github.com/gogpu/gg"

	"github.com/docreel/docreel/pkg/snapshot"
)

// One chart series: how to read its value and what color it plots in.
type chartSeries struct {
	label string
	color string
	value func(snapshot.Stats) int
}

var chartSeriesDefs = []chartSeries{
	{"Words", colorWords, func(s snapshot.Stats) int { return s.WordCount }},
	{"UWords", colorUnique, func(s snapshot.Stats) int { return s.UniqueWordCount }},
	{"Figs", colorFigures, func(s snapshot.Stats) int { return s.FigureCount }},
	{"Eqs", colorEquations, func(s snapshot.Stats) int { return s.EquationCount }},
	{"Table", colorTables, func(s snapshot.Stats) int { return s.TableCount }},
}

const (
	chartInset      = 34.0 // room for axis labels
	chartLineWidth  = 2.0
	chartMarkerSize = 3.5
)

// drawChart renders the running statistics chart: one line-plus-marker
// series per statistic against elapsed days. With LogScale the vertical
// axis is log10; zero counts clamp to 1 so early snapshots still plot.
func (c *Composer) drawChart(dc *gg.Context, r Rect, series snapshot.Series) {
	if len(series) == 0 {
		return
	}

	px := float64(r.X) + chartInset
	py := float64(r.Y)
	pw := float64(r.W) - chartInset
	ph := float64(r.H) - chartInset

	// Axis frame.
	dc.SetHexColor(colorText)
	dc.SetLineWidth(1)
	dc.DrawLine(px, py, px, py+ph)
	dc.DrawLine(px, py+ph, px+pw, py+ph)
	dc.Stroke()

	maxDays := series[len(series)-1].Days
	maxVal := 1.0
	for _, s := range series {
		for _, def := range chartSeriesDefs {
			if v := float64(def.value(s.Stats)); v > maxVal {
				maxVal = v
			}
		}
	}

	toX := func(days float64) float64 {
		if maxDays == 0 {
			return px + pw/2
		}
		return px + days/maxDays*pw
	}
	toY := func(v float64) float64 {
		if c.LogChart {
			if v < 1 {
				v = 1
			}
			return py + ph - math.Log10(v)/math.Log10(maxVal)*ph
		}
		return py + ph - v/maxVal*ph
	}
	if c.LogChart && maxVal <= 1 {
		toY = func(float64) float64 { return py + ph }
	}

	for _, def := range chartSeriesDefs {
		dc.SetHexColor(def.color)
		dc.SetLineWidth(chartLineWidth)
		for i := 1; i < len(series); i++ {
			dc.DrawLine(
				toX(series[i-1].Days), toY(float64(def.value(series[i-1].Stats))),
				toX(series[i].Days), toY(float64(def.value(series[i].Stats))),
			)
		}
		dc.Stroke()
		for _, s := range series {
			dc.DrawCircle(toX(s.Days), toY(float64(def.value(s.Stats))), chartMarkerSize)
		}
		dc.Fill()
	}

	if c.source != nil {
		dc.SetFont(c.source.Face(c.fontSize() * 0.8))
		dc.SetHexColor(colorText)
		dc.DrawStringAnchored("Days", px+pw/2, py+ph+chartInset/2, 0.5, 0.5)
		dc.Push()
		dc.RotateAbout(-math.Pi/2, px-chartInset/2, py+ph/2)
		dc.DrawStringAnchored("count", px-chartInset/2, py+ph/2, 0.5, 0.5)
		dc.Pop()
	}
}

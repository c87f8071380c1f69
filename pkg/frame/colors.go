package frame

// Per-statistic colors, shared between the chart lines and the matching
// header counts so the reader can connect them at a glance.
const (
	colorWords     = "#1f77b4"
	colorUnique    = "#ff7f0e"
	colorFigures   = "#2ca02c"
	colorTables    = "#d62728"
	colorEquations = "#9467bd"
	colorText      = "#000000"
)

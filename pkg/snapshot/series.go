package snapshot

// Sample is one point in the statistics time series: elapsed days since the
// first snapshot, plus the counts at that point.
type Sample struct {
	Days  float64
	Stats Stats
}

// Series is the full statistics history, ordered oldest to newest.
type Series []Sample

// BuildSeries converts an ordered snapshot list into a series. Elapsed days
// are measured from the first snapshot, so the series always starts at 0.
func BuildSeries(snapshots []Snapshot) Series {
	if len(snapshots) == 0 {
		return nil
	}
	first := snapshots[0]
	series := make(Series, len(snapshots))
	for i, s := range snapshots {
		series[i] = Sample{Days: s.DaysSince(first), Stats: s.Stats}
	}
	return series
}

// Prefix returns the first n samples. The chart for frame i shows only the
// history up to and including snapshot i.
func (s Series) Prefix(n int) Series {
	if n > len(s) {
		n = len(s)
	}
	if n < 0 {
		n = 0
	}
	return s[:n]
}

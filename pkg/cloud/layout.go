package cloud

// Word is one placement record in a layout.
type Word struct {
	Text        string  `json:"text"`
	Aux         float64 `json:"aux"` // normalized frequency at generation time
	FontSize    float64 `json:"font_size"`
	X           float64 `json:"x"` // top-left corner of the bounding box
	Y           float64 `json:"y"`
	Orientation int     `json:"orientation"` // degrees, 0 or 90
	Color       string  `json:"color"`       // hex, e.g. "#1f77b4"
}

// Layout is an ordered list of word placements. Order reflects placement
// order at generation time (largest words first), not alphabetical order.
type Layout []Word

// index returns a lookup table from word text to its entry.
// One entry per distinct word per layout.
func (l Layout) index() map[string]Word {
	m := make(map[string]Word, len(l))
	for _, w := range l {
		m[w.Text] = w
	}
	return m
}

// Words returns the texts in layout order.
func (l Layout) Words() []string {
	out := make([]string, len(l))
	for i, w := range l {
		out[i] = w.Text
	}
	return out
}

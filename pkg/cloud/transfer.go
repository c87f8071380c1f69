package cloud

// Attrs selects which attributes Transfer copies from the reference layout.
// Unset attributes keep the target's own values unconditionally.
type Attrs struct {
	FontSize    bool
	Position    bool
	Orientation bool
	Color       bool
	Aux         bool
}

// Transfer copies the flagged attributes from reference onto target, matched
// by exact word text. A flagged attribute whose word is absent from the
// reference gets a zero default: 0 for font size, orientation and aux,
// (0,0) for position, "" for color. Matching is case-sensitive; differently
// cased forms of a word are distinct.
//
// The returned layout has target's entry count and order. Neither input is
// mutated, and words present only in reference are never injected.
func Transfer(reference, target Layout, attrs Attrs) Layout {
	ref := reference.index()

	out := make(Layout, len(target))
	for i, w := range target {
		// A missing word yields the zero Word, which carries exactly the
		// documented defaults for every attribute.
		r := ref[w.Text]
		if attrs.FontSize {
			w.FontSize = r.FontSize
		}
		if attrs.Position {
			w.X, w.Y = r.X, r.Y
		}
		if attrs.Orientation {
			w.Orientation = r.Orientation
		}
		if attrs.Color {
			w.Color = r.Color
		}
		if attrs.Aux {
			w.Aux = r.Aux
		}
		out[i] = w
	}
	return out
}

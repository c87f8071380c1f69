// Package cloud generates and evolves word-cloud layouts.
//
// A layout is an ordered list of word placements: text, font size, position,
// orientation, and color. Generation is deterministic for a given frequency
// table and option set, which makes layouts cacheable by input hash.
//
// The interesting part is continuity across frames. A naive per-frame
// generation re-randomizes placement and makes the animation jitter. Instead,
// each frame's fresh layout is run through Transfer, which copies selected
// visual attributes from a reference layout (the previous frame or a fixed
// global baseline) for every word the two layouts share, and through Scale,
// which recomputes font sizes against the reference using a total-word-count
// ratio. Words keep their place and color as the document grows; only their
// sizes breathe.
package cloud

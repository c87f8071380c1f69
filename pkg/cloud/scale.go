package cloud

import (
	"math"

	"github.com/docreel/docreel/pkg/errors"
)

// Mode selects the font-size scaling law.
type Mode string

const (
	// ModeLinear scales by the raw total-word-count ratio.
	ModeLinear Mode = "linear"

	// ModeLog scales by the ratio of log10 total word counts. This is the
	// default: document growth is roughly exponential early on, and the
	// linear ratio makes early frames unreadably small.
	ModeLog Mode = "log"

	// ModeLogistic is reserved. The scaling law was never worked out in the
	// original tooling; requesting it is an error, not an approximation.
	ModeLogistic Mode = "logistic"
)

// Scale rescales every font size in target against reference, after first
// transferring position, orientation, aux and color (everything except font
// size) from reference. The per-word base size is the reference layout's
// size for that word, or 1 when the word is new.
//
// targetCount and referenceCount are the total word counts of the documents
// behind each layout. ModeLog requires both to be > 1.
//
// The returned layout has target's entry count and order; only font sizes
// differ from the Transfer result.
func Scale(target, reference Layout, targetCount, referenceCount int, mode Mode) (Layout, error) {
	switch mode {
	case ModeLinear:
		if referenceCount == 0 {
			return nil, errors.New(errors.ErrCodeInvalidScalingDomain,
				"linear scaling requires a nonzero reference count")
		}
	case ModeLog:
		if targetCount <= 1 || referenceCount <= 1 {
			return nil, errors.New(errors.ErrCodeInvalidScalingDomain,
				"log scaling requires counts > 1, got target=%d reference=%d",
				targetCount, referenceCount)
		}
	case ModeLogistic:
		return nil, errors.New(errors.ErrCodeUnsupportedScaleMode, "logistic scaling is not implemented")
	default:
		return nil, errors.New(errors.ErrCodeUnsupportedScaleMode, "unknown scale mode %q", mode)
	}

	out := Transfer(reference, target, Attrs{
		Position:    true,
		Orientation: true,
		Color:       true,
		Aux:         true,
	})

	ref := reference.index()
	for i := range out {
		base := 1.0
		if r, ok := ref[out[i].Text]; ok {
			base = r.FontSize
		}
		switch mode {
		case ModeLinear:
			out[i].FontSize = base * float64(targetCount) / float64(referenceCount)
		case ModeLog:
			out[i].FontSize = base * math.Log10(float64(targetCount)) / math.Log10(float64(referenceCount))
		}
	}
	return out, nil
}

package cache

// Keyer generates cache keys for pipeline artifacts.
// Keys incorporate every input that affects the artifact, so that a
// configuration change never serves a stale entry.
type Keyer interface {
	// LayoutKey generates a key for a generated word-cloud layout.
	// vocabHash is the hash of the snapshot's word-frequency table.
	LayoutKey(snapshotID, vocabHash string, opts LayoutKeyOpts) string
}

// LayoutKeyOpts are the generation parameters that shape a layout.
type LayoutKeyOpts struct {
	Width    int
	Height   int
	MaxWords int
}

// DefaultKeyer is the standard key generator.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// LayoutKey generates a key for a word-cloud layout.
func (k *DefaultKeyer) LayoutKey(snapshotID, vocabHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", snapshotID, vocabHash, opts)
}

// Ensure DefaultKeyer implements Keyer.
var _ Keyer = (*DefaultKeyer)(nil)

package snapshot

// Messages maps snapshot IDs to status messages shown in the frame header.
// The table comes from the config file; most snapshots have no entry.
type Messages map[string]string

// Annotate resolves the message for every snapshot in order. Snapshots
// without an entry carry the most recent earlier message forward; snapshots
// before the first entry get an empty message.
func (m Messages) Annotate(snapshots []Snapshot) []string {
	out := make([]string, len(snapshots))
	current := ""
	for i, s := range snapshots {
		if msg, ok := m[s.ID]; ok {
			current = msg
		}
		out[i] = current
	}
	return out
}

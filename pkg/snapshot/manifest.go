package snapshot

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"

	"github.com/docreel/docreel/pkg/errors"
)

// LoadManifest reads the snapshot manifest, a JSON array of snapshot
// records. The returned list is ordered oldest to newest regardless of the
// order on disk; downstream stages depend on that ordering.
func LoadManifest(path string) ([]Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeMissingSourceAsset, err, "snapshot manifest %s", path)
	}

	var snapshots []Snapshot
	if err := json.Unmarshal(data, &snapshots); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "snapshot manifest %s", path)
	}
	if len(snapshots) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "snapshot manifest %s is empty", path)
	}

	sort.SliceStable(snapshots, func(i, j int) bool {
		return snapshots[i].Timestamp < snapshots[j].Timestamp
	})
	return snapshots, nil
}

// statsRecord is the on-disk shape of a per-snapshot stats file.
type statsRecord struct {
	Stats       Stats              `json:"stats"`
	Frequencies map[string]float64 `json:"frequencies"`
}

// LoadStats reads the stats record for one snapshot from statsDir.
// The record lives at statsDir/<id>.json.
func LoadStats(statsDir, id string) (Stats, map[string]float64, error) {
	path := filepath.Join(statsDir, id+".json")
	data, err := os.ReadFile(path)
	if err != nil {
		return Stats{}, nil, errors.Wrap(errors.ErrCodeMissingSourceAsset, err, "stats for %s", id)
	}

	var rec statsRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return Stats{}, nil, errors.Wrap(errors.ErrCodeMissingSourceAsset, err, "stats for %s", id)
	}
	return rec.Stats, rec.Frequencies, nil
}

// Load reads the manifest and hydrates every snapshot with its stats
// record. A snapshot without a stats record fails the whole load; partial
// histories produce misleading charts.
func Load(manifestPath, statsDir string) ([]Snapshot, error) {
	snapshots, err := LoadManifest(manifestPath)
	if err != nil {
		return nil, err
	}
	for i := range snapshots {
		stats, freqs, err := LoadStats(statsDir, snapshots[i].ID)
		if err != nil {
			return nil, err
		}
		snapshots[i].Stats = stats
		snapshots[i].Frequencies = freqs
	}
	return snapshots, nil
}

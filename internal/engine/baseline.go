package engine

import (
	"encoding/json"
	"os"
	"sort"

	"github.com/xab-mack/authsurface/internal/model"
)

// A baseline is a set of known unguarded-write fingerprints. Runs with a
// baseline only surface findings not already in it, so existing debt does not
// drown out new regressions.

// FilterBaseline removes findings whose fingerprint is in the baseline file.
// An empty path passes everything through.
func FilterBaseline(path string, findings []model.Finding) ([]model.Finding, error) {
	if path == "" {
		return findings, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var fps []string
	if err := json.Unmarshal(data, &fps); err != nil {
		return nil, err
	}
	known := make(map[string]bool, len(fps))
	for _, fp := range fps {
		known[fp] = true
	}
	var out []model.Finding
	for _, f := range findings {
		if f.Fingerprint != "" && known[f.Fingerprint] {
			continue
		}
		out = append(out, f)
	}
	return out, nil
}

// WriteBaseline records the fingerprints of the given findings, sorted for
// stable diffs.
func WriteBaseline(path string, findings []model.Finding) error {
	seen := map[string]bool{}
	var fps []string
	for _, f := range findings {
		if f.Fingerprint != "" && !seen[f.Fingerprint] {
			seen[f.Fingerprint] = true
			fps = append(fps, f.Fingerprint)
		}
	}
	sort.Strings(fps)
	data, err := json.MarshalIndent(fps, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Package baseline persists the results of a recorded run so later runs can
// be compared against them.
package baseline

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"readygo/pkg/benchmark"
)

// Baseline is the stored set of results from a recorded run.
type Baseline struct {
	Results []benchmark.Result `json:"benchmark_results"`
}

// Load reads the baseline at path. A missing or empty file yields an empty
// baseline.
func Load(path string) (*Baseline, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Baseline{}, nil
		}
		return nil, err
	}
	if len(data) == 0 {
		return &Baseline{}, nil
	}

	var b Baseline
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("failed to unmarshal baseline %s: %w", path, err)
	}
	return &b, nil
}

// Save overwrites path with the baseline. The file is replaced atomically so
// an interrupted save leaves the previous baseline intact.
func (b *Baseline) Save(path string) error {
	data, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal baseline: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".readygo-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// Lookup returns the stored result whose name matches case-insensitively, or
// nil.
func (b *Baseline) Lookup(name string) *benchmark.Result {
	if b == nil {
		return nil
	}
	for i := range b.Results {
		if strings.EqualFold(b.Results[i].Name, name) {
			r := b.Results[i]
			return &r
		}
	}
	return nil
}

// Replace discards the stored results in favour of results.
func (b *Baseline) Replace(results []benchmark.Result) {
	b.Results = append([]benchmark.Result(nil), results...)
}

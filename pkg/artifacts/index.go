package artifacts

import (
	"fmt"
	"os"
	"sort"
	"time"

	"gopkg.in/yaml.v3"
)

// BatchInfo represents metadata about one batch in the index.
type BatchInfo struct {
	BatchID        string    `yaml:"batch_id"`
	Created        time.Time `yaml:"created"`
	InputCount     int       `yaml:"input_count"`
	Optimized      int       `yaml:"optimized"`
	Skipped        int       `yaml:"skipped"`
	Failed         int       `yaml:"failed"`
	SourcesPreview []string  `yaml:"sources_preview,omitempty"` // First 3 sources
}

// BatchIndex represents the index.yaml file at the results root.
type BatchIndex struct {
	Batches []BatchInfo `yaml:"batches"`
}

// UpdateBatchIndex adds or updates a batch entry in the index, keeping
// newest batches first. Timestamp-first batch IDs make the sort
// chronological.
func (m *Manager) UpdateBatchIndex(info BatchInfo) error {
	indexPath := m.IndexPath()

	var index BatchIndex
	data, err := os.ReadFile(indexPath)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to read batch index: %w", err)
	}
	if err == nil {
		if err := yaml.Unmarshal(data, &index); err != nil {
			return fmt.Errorf("failed to parse batch index: %w", err)
		}
	}

	found := false
	for i, b := range index.Batches {
		if b.BatchID == info.BatchID {
			index.Batches[i] = info
			found = true
			break
		}
	}
	if !found {
		index.Batches = append(index.Batches, info)
	}

	sort.Slice(index.Batches, func(i, j int) bool {
		return index.Batches[i].BatchID > index.Batches[j].BatchID // Newest first
	})

	output, err := yaml.Marshal(&index)
	if err != nil {
		return fmt.Errorf("failed to marshal batch index: %w", err)
	}

	if err := os.WriteFile(indexPath, output, 0644); err != nil {
		return fmt.Errorf("failed to write batch index: %w", err)
	}

	return nil
}

// SourcesPreview returns the first n sources from a list for index entries.
func SourcesPreview(sources []string, n int) []string {
	if len(sources) <= n {
		return sources
	}
	return sources[:n]
}

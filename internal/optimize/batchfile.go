package optimize

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// BatchInput is one entry in a batch inputs file. Only Path is required;
// URL, Title, and Query are per-input metadata for scoring and reporting.
type BatchInput struct {
	Path  string `yaml:"path"`
	URL   string `yaml:"url,omitempty"`
	Title string `yaml:"title,omitempty"`
	Query string `yaml:"query,omitempty"`
}

// BatchFile is the parsed inputs file for a batch invocation.
type BatchFile struct {
	Inputs []BatchInput `yaml:"inputs"`
}

// LoadBatchFile reads and validates a batch inputs file.
func LoadBatchFile(path string) (*BatchFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read batch file: %w", err)
	}

	var bf BatchFile
	if err := yaml.Unmarshal(data, &bf); err != nil {
		return nil, fmt.Errorf("failed to parse batch file %s: %w", path, err)
	}

	if len(bf.Inputs) == 0 {
		return nil, fmt.Errorf("batch file %s lists no inputs", path)
	}
	for i, in := range bf.Inputs {
		if in.Path == "" {
			return nil, fmt.Errorf("batch file %s: input %d has no path", path, i+1)
		}
	}

	return &bf, nil
}

// Jobs converts the batch entries into pipeline jobs.
func (bf *BatchFile) Jobs() []Job {
	jobs := make([]Job, len(bf.Inputs))
	for i, in := range bf.Inputs {
		jobs[i] = Job{
			Source: in.Path,
			URL:    in.URL,
			Title:  in.Title,
			Query:  in.Query,
		}
	}
	return jobs
}

// Sources returns the input paths, for batch IDs and previews.
func (bf *BatchFile) Sources() []string {
	sources := make([]string, len(bf.Inputs))
	for i, in := range bf.Inputs {
		sources[i] = in.Path
	}
	return sources
}

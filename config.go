package sortbench

import (
	"fmt"
	"io"
	"runtime"

	"github.com/lanrat/sortbench/gen"
	"gopkg.in/yaml.v3"
)

// Config holds configuration settings for a benchmark run
type Config struct {
	ItemCount          int             `yaml:"item_count"`            // number of elements in each generated sample
	ElementType        gen.ElementType `yaml:"element_type"`          // numeric or string elements
	SampleCount        int             `yaml:"sample_count"`          // number of samples, each one run by every selected algorithm
	Algorithms         []string        `yaml:"algorithms"`            // IDs of the algorithms to run, empty for all
	WorkerCount        int             `yaml:"worker_count"`          // maximum number of concurrent jobs when RunAsWorker is set
	RunAsWorker        bool            `yaml:"run_as_worker"`         // run jobs on worker goroutines instead of in-process
	Descending         bool            `yaml:"descending"`            // sort in descending order
	BucketCount        int             `yaml:"bucket_count"`          // buckets used by bucket sort, 0 to size by input
	Seed               int64           `yaml:"seed"`                  // random seed, 0 for a time based seed
	Verify             bool            `yaml:"verify"`                // check every output is sorted
	ResultChanBuffSize int             `yaml:"result_chan_buff_size"` // buffer size for passing job results to the recorder
}

// DefaultConfig returns the default configuration options used if none provided
func DefaultConfig() *Config {
	return &Config{
		ItemCount:          1000,
		ElementType:        gen.Numeric,
		SampleCount:        1,
		WorkerCount:        1,
		ResultChanBuffSize: 16,
	}
}

// mergeConfig takes a provided config and returns a copy with any values not
// set replaced by the defaults. WorkerCount is clamped to the number of CPUs.
func mergeConfig(c *Config) *Config {
	d := DefaultConfig()
	if c == nil {
		return d
	}
	m := *c
	if m.ItemCount <= 0 {
		m.ItemCount = d.ItemCount
	}
	if m.ElementType == "" {
		m.ElementType = d.ElementType
	}
	if m.SampleCount <= 0 {
		m.SampleCount = d.SampleCount
	}
	if m.WorkerCount <= 0 {
		m.WorkerCount = d.WorkerCount
	}
	if n := runtime.NumCPU(); m.WorkerCount > n {
		m.WorkerCount = n
	}
	if m.ResultChanBuffSize < 0 {
		m.ResultChanBuffSize = d.ResultChanBuffSize
	}
	if m.BucketCount < 0 {
		m.BucketCount = 0
	}
	return &m
}

// Validate checks the fields that have no usable default
func (c *Config) Validate() error {
	if _, err := gen.ParseElementType(string(c.ElementType)); err != nil {
		return NewConfigError("ElementType", c.ElementType, "must be numeric or string", err)
	}
	registry := DefaultRegistry()
	seen := make(map[string]bool, len(c.Algorithms))
	for _, id := range c.Algorithms {
		info, ok := registry.Lookup(id)
		if !ok {
			return NewConfigError("Algorithms", id, fmt.Sprintf("unknown algorithm, expected one of %v", registry.IDs()), nil)
		}
		if seen[id] {
			return NewConfigError("Algorithms", id, "duplicate algorithm", nil)
		}
		seen[id] = true
		if info.NumericOnly && c.ElementType == gen.String {
			return NewConfigError("Algorithms", id, "requires numeric elements",
				NewUnsupportedElementTypeError(id, string(c.ElementType)))
		}
	}
	return nil
}

// LoadConfig reads a YAML encoded Config from r. Fields absent from the
// document keep their default values; unknown fields are an error.
func LoadConfig(r io.Reader) (*Config, error) {
	c := DefaultConfig()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && err != io.EOF {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	return c, nil
}

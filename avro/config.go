package avro

import (
	"fmt"
	"os"

	"github.com/alecthomas/units"
	"gopkg.in/yaml.v3"
)

// Config is the tunable surface of this package: everything about record
// shape comes from the writer/expected schemas instead, so there's
// deliberately little here.
type Config struct {
	// MaxScratchBuffer bounds how large a []byte reuse hint
	// ByteBufferReader and Utf8BytesReader will hand to the decoder; a
	// larger one is discarded and a fresh buffer allocated instead, guarding
	// against one abnormally large value inflating every subsequent record's
	// memory footprint. Fixed and UUID readers do not consult it.
	MaxScratchBuffer units.Base2Bytes `yaml:"max_scratch_buffer"`

	// PlanCacheSize is the number of resolved Plans PlanCache holds at
	// once.
	PlanCacheSize int `yaml:"plan_cache_size"`
}

// DefaultConfig returns the Config this package uses when a caller builds
// none of its own.
func DefaultConfig() Config {
	return Config{
		MaxScratchBuffer: 1 * units.MiB,
		PlanCacheSize:    256,
	}
}

// LoadConfig reads and parses a YAML config file at path, filling in
// DefaultConfig for anything the file leaves unset. max_scratch_buffer is
// a size string with a unit suffix, such as "4MiB".
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("avro: reading config %s: %w", path, err)
	}
	var raw struct {
		MaxScratchBuffer string `yaml:"max_scratch_buffer"`
		PlanCacheSize    *int   `yaml:"plan_cache_size"`
	}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return Config{}, fmt.Errorf("avro: parsing config %s: %w", path, err)
	}
	if raw.PlanCacheSize != nil {
		cfg.PlanCacheSize = *raw.PlanCacheSize
	}
	if raw.MaxScratchBuffer != "" {
		size, err := units.ParseBase2Bytes(raw.MaxScratchBuffer)
		if err != nil {
			return Config{}, fmt.Errorf("avro: parsing config %s: max_scratch_buffer: %w", path, err)
		}
		cfg.MaxScratchBuffer = size
	}
	return cfg, nil
}

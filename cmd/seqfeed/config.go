package main

import (
	"os"

	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
)

// fileConfig mirrors pattern.Params' flag-settable fields, loaded
// optionally from a TOML file via --config. Flags still win over
// whatever a config file sets; fileConfig only supplies the layer
// between built-in defaults and explicit flags.
type fileConfig struct {
	Format       string `toml:"format"`
	Phred64      bool   `toml:"phred64"`
	Solexa64     bool   `toml:"solexa64"`
	IntQuals     bool   `toml:"int_quals"`
	Trim5        int    `toml:"trim5"`
	Trim3        int    `toml:"trim3"`
	SampleLen    int    `toml:"sample_len"`
	SampleFreq   int    `toml:"sample_freq"`
	Skip         int    `toml:"skip"`
	Threads      int    `toml:"threads"`
	MaxBuf       int    `toml:"max_buf"`
	FixName      bool   `toml:"fix_name"`
	RevCompMate2 bool   `toml:"rev_comp_mate2"`
	FileParallel bool   `toml:"file_parallel"`
}

func loadFileConfig(path string) (*fileConfig, error) {
	cfg := &fileConfig{}
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading config file")
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrap(err, "parsing config file")
	}
	return cfg, nil
}

// Package factory builds a compose.Composer from a plain description
// of input files: singles, an interleaved-paired list, or a mate1/
// mate2 pair of equal-length file lists, plus the format and params
// that apply to all of them.
package factory

import (
	"github.com/pkg/errors"

	"github.com/shenwei356/seqfeed/compose"
	"github.com/shenwei356/seqfeed/pattern"
	"github.com/shenwei356/seqfeed/source"
)

// Config describes one factory invocation's worth of input files.
// Exactly one of {Singles/Interleaved, Mate1+Mate2, VectorEntries}
// is expected to be non-empty; Mate1/Mate2 take precedence over
// Singles/Interleaved if both are supplied, matching the common CLI
// convention that -1/-2 override positional/-U arguments.
type Config struct {
	Format pattern.Format
	Params pattern.Params

	Singles     []string
	Interleaved []string
	Mate1       []string
	Mate2       []string

	VectorEntries []string

	// FileParallel builds one Source per file (enabling file-level
	// concurrency) instead of a single Source iterating every file in
	// sequence. Only meaningful for the Singles/Interleaved/Mate1/Mate2
	// cases.
	FileParallel bool

	// Warner receives every constructed source's diagnostics. Defaults
	// to a no-op if left nil.
	Warner source.Warner
}

// Build constructs the Composer described by cfg.
func Build(cfg Config) (compose.Composer, error) {
	if cfg.Format == pattern.FormatVector {
		src := source.NewVector(cfg.VectorEntries, cfg.Params)
		applyWarner(src, cfg.Warner)
		return compose.NewSolo([]*source.Source{src})
	}

	if len(cfg.Mate1) > 0 || len(cfg.Mate2) > 0 {
		if len(cfg.Mate1) != len(cfg.Mate2) {
			return nil, errors.Errorf(
				"mate1/mate2 file lists must have equal length, got %d and %d", len(cfg.Mate1), len(cfg.Mate2))
		}
		srcsA, err := buildSources(cfg.Format, cfg.Mate1, cfg.Params, cfg.FileParallel, cfg.Warner)
		if err != nil {
			return nil, errors.Wrap(err, "building mate-1 sources")
		}
		srcsB, err := buildSources(cfg.Format, cfg.Mate2, cfg.Params, cfg.FileParallel, cfg.Warner)
		if err != nil {
			return nil, errors.Wrap(err, "building mate-2 sources")
		}
		return compose.NewDual(srcsA, srcsB)
	}

	files := append(append([]string{}, cfg.Singles...), cfg.Interleaved...)
	if len(files) == 0 {
		return nil, errors.New("no input files given")
	}
	format := cfg.Format
	if len(cfg.Interleaved) > 0 {
		format = pattern.FormatFastqInterleaved
	}
	srcs, err := buildSources(format, files, cfg.Params, cfg.FileParallel, cfg.Warner)
	if err != nil {
		return nil, errors.Wrap(err, "building sources")
	}
	return compose.NewSolo(srcs)
}

// buildSources constructs either one Source per file (fileParallel)
// or a single Source iterating every file in order.
func buildSources(format pattern.Format, files []string, p pattern.Params, fileParallel bool, warner source.Warner) ([]*source.Source, error) {
	if !fileParallel {
		src, err := source.New(format, files, p)
		if err != nil {
			return nil, err
		}
		applyWarner(src, warner)
		return []*source.Source{src}, nil
	}
	srcs := make([]*source.Source, 0, len(files))
	for _, f := range files {
		src, err := source.New(format, []string{f}, p)
		if err != nil {
			return nil, err
		}
		applyWarner(src, warner)
		srcs = append(srcs, src)
	}
	return srcs, nil
}

func applyWarner(src *source.Source, w source.Warner) {
	if w != nil {
		src.Warn = w
	}
}

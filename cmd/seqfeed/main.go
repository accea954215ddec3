// Command seqfeed exercises the read-ingestion pipeline end to end:
// it parses a set of input files with the configured format and
// either counts records (verifying the rdid concurrency invariant
// along the way) or reports length/quality statistics.
package main

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/shenwei356/seqfeed/internal/discovery"
	"github.com/shenwei356/seqfeed/internal/logging"
	"github.com/shenwei356/seqfeed/pattern"
)

var (
	flagConfig       string
	flagFormat       string
	flagMate1        []string
	flagMate2        []string
	flagInterleaved  []string
	flagPhred64      bool
	flagSolexa64     bool
	flagIntQuals     bool
	flagTrim5        int
	flagTrim3        int
	flagSampleLen    int
	flagSampleFreq   int
	flagSkip         int
	flagThreads      int
	flagMaxBuf       int
	flagFixName      bool
	flagRevCompMate2 bool
	flagFileParallel bool
	flagNoColor      bool
	flagLogLevel     string
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "seqfeed",
		Short: "Parse and inspect sequencing-read input files",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return logging.Init(flagLogLevel, flagNoColor)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&flagConfig, "config", "", "optional TOML config file")
	pf.StringVar(&flagFormat, "format", "", "input format: fasta, fastq, fastq-interleaved, tab5, tab6, qseq, raw, fasta-continuous")
	pf.StringSliceVarP(&flagMate1, "mate1", "1", nil, "mate-1 input files (paired with --mate2)")
	pf.StringSliceVarP(&flagMate2, "mate2", "2", nil, "mate-2 input files (paired with --mate1)")
	pf.StringSliceVarP(&flagInterleaved, "interleaved", "U", nil, "interleaved or unpaired input files")
	pf.BoolVar(&flagPhred64, "phred64", false, "qualities are Phred-64 encoded")
	pf.BoolVar(&flagSolexa64, "solexa64", false, "qualities are Solexa-64 encoded")
	pf.BoolVar(&flagIntQuals, "int-quals", false, "qualities are whitespace-separated integers")
	pf.IntVar(&flagTrim5, "trim5", 0, "hard-trim this many bases from the 5' end")
	pf.IntVar(&flagTrim3, "trim3", 0, "hard-trim this many bases from the 3' end")
	pf.IntVar(&flagSampleLen, "sample-len", 0, "FASTA-continuous window length (max 1024)")
	pf.IntVar(&flagSampleFreq, "sample-freq", 0, "FASTA-continuous sampling stride")
	pf.IntVar(&flagSkip, "skip", 0, "number of records to discard at the start of input")
	pf.IntVar(&flagThreads, "threads", 1, "number of worker goroutines")
	pf.IntVar(&flagMaxBuf, "max-buf", 0, "records per per-thread batch")
	pf.BoolVar(&flagFixName, "fix-name", false, `strip trailing "/1" or "/2" from read names`)
	pf.BoolVar(&flagRevCompMate2, "rev-comp-mate2", false, "reverse-complement mate 2 of every pair")
	pf.BoolVar(&flagFileParallel, "file-parallel", false, "parse each input file with its own source")
	pf.BoolVar(&flagNoColor, "no-color", false, "disable colorized log output")
	pf.StringVar(&flagLogLevel, "log-level", "info", "log level: debug, info, warning, error, critical")

	root.AddCommand(newCountCmd())
	root.AddCommand(newStatsCmd())
	return root
}

// resolveParams merges defaults, an optional config file, and
// explicit flags (flags win) into a pattern.Params and the factory
// input-file description that share its precedence rules.
func resolveParams(cmd *cobra.Command, positional []string) (pattern.Params, buildInputs, error) {
	fc, err := loadFileConfig(flagConfig)
	if err != nil {
		return pattern.Params{}, buildInputs{}, err
	}

	p := pattern.DefaultParams()
	applyFileConfig(&p, fc)

	flags := cmd.Flags()
	if flags.Changed("format") || fc.Format == "" {
		if flagFormat != "" {
			f, err := parseFormat(flagFormat)
			if err != nil {
				return pattern.Params{}, buildInputs{}, err
			}
			p.Format = f
		}
	}
	if flags.Changed("phred64") {
		p.Phred64 = flagPhred64
	}
	if flags.Changed("solexa64") {
		p.Solexa64 = flagSolexa64
	}
	if flags.Changed("int-quals") {
		p.IntQuals = flagIntQuals
	}
	if flags.Changed("trim5") {
		p.Trim5 = flagTrim5
	}
	if flags.Changed("trim3") {
		p.Trim3 = flagTrim3
	}
	if flags.Changed("sample-len") {
		p.SampleLen = flagSampleLen
	}
	if flags.Changed("sample-freq") {
		p.SampleFreq = flagSampleFreq
	}
	if flags.Changed("skip") {
		p.Skip = flagSkip
	}
	if flags.Changed("threads") {
		p.NThreads = flagThreads
	}
	if flags.Changed("max-buf") {
		p.MaxBuf = flagMaxBuf
	}
	if flags.Changed("fix-name") {
		p.FixName = flagFixName
	}
	if p.MaxBuf <= 0 {
		p.MaxBuf = pattern.DefaultParams().MaxBuf
	}

	if err := p.Validate(); err != nil {
		return pattern.Params{}, buildInputs{}, errors.Wrap(err, "invalid parameters")
	}

	singles, err := discovery.ExpandPaths(append(append([]string{}, positional...), flagInterleaved...))
	if err != nil {
		return pattern.Params{}, buildInputs{}, err
	}
	mate1, err := discovery.ExpandPaths(flagMate1)
	if err != nil {
		return pattern.Params{}, buildInputs{}, err
	}
	mate2, err := discovery.ExpandPaths(flagMate2)
	if err != nil {
		return pattern.Params{}, buildInputs{}, err
	}

	fileParallel := fc.FileParallel
	if flags.Changed("file-parallel") {
		fileParallel = flagFileParallel
	}
	revCompMate2 := fc.RevCompMate2
	if flags.Changed("rev-comp-mate2") {
		revCompMate2 = flagRevCompMate2
	}
	inputs := buildInputs{
		singles:      singles,
		mate1:        mate1,
		mate2:        mate2,
		fileParallel: fileParallel,
		revCompMate2: revCompMate2,
	}
	return p, inputs, nil
}

// buildInputs is the factory-facing half of resolveParams' merged
// configuration: which files play which role, independent of the
// quality/trim/format parameters that live in pattern.Params.
type buildInputs struct {
	singles      []string
	mate1        []string
	mate2        []string
	fileParallel bool
	revCompMate2 bool
}

func applyFileConfig(p *pattern.Params, fc *fileConfig) {
	if fc.Format != "" {
		if f, err := parseFormat(fc.Format); err == nil {
			p.Format = f
		}
	}
	p.Phred64 = fc.Phred64
	p.Solexa64 = fc.Solexa64
	p.IntQuals = fc.IntQuals
	if fc.Trim5 > 0 {
		p.Trim5 = fc.Trim5
	}
	if fc.Trim3 > 0 {
		p.Trim3 = fc.Trim3
	}
	if fc.SampleLen > 0 {
		p.SampleLen = fc.SampleLen
	}
	if fc.SampleFreq > 0 {
		p.SampleFreq = fc.SampleFreq
	}
	if fc.Skip > 0 {
		p.Skip = fc.Skip
	}
	if fc.Threads > 0 {
		p.NThreads = fc.Threads
	}
	if fc.MaxBuf > 0 {
		p.MaxBuf = fc.MaxBuf
	}
	p.FixName = fc.FixName
}

func parseFormat(s string) (pattern.Format, error) {
	switch s {
	case "fasta":
		return pattern.FormatFasta, nil
	case "fastq":
		return pattern.FormatFastq, nil
	case "fastq-interleaved":
		return pattern.FormatFastqInterleaved, nil
	case "tab5":
		return pattern.FormatTab5, nil
	case "tab6":
		return pattern.FormatTab6, nil
	case "qseq":
		return pattern.FormatQseq, nil
	case "raw":
		return pattern.FormatRaw, nil
	case "fasta-continuous":
		return pattern.FormatFastaContinuous, nil
	default:
		return 0, errors.Errorf("unknown format %q", s)
	}
}

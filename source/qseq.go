package source

import (
	"bytes"
	"strconv"

	"github.com/shenwei356/seqfeed/bioquality"
	"github.com/shenwei356/seqfeed/read"
)

// lightParseQseq captures one raw Qseq line per record; identical
// line-boundary handling to Tab.
func (s *Source) lightParseQseq(buf *read.Buffer, which Mate, start int) (done bool, count int, err error) {
	return s.lightParseTab(buf, which, start)
}

// parseQseq decodes Illumina's 11-column Qseq format: machine, run,
// lane, tile, x, y, index, mate-in-pair, sequence ('.' for N),
// quality, filter (0=failed, 1=passed). The synthesized name is
// "machine:run:lane:tile:x:y". Quality is Phred-64 by convention.
func (s *Source) parseQseq(r *read.Record) bool {
	raw := bytes.TrimRight(bytes.TrimRight(r.RawBuf, "\n"), "\r")
	fields := bytes.Split(raw, []byte("\t"))
	if len(fields) != 11 {
		return false
	}
	machine, run, lane, tile, x, y := fields[0], fields[1], fields[2], fields[3], fields[4], fields[5]
	seqField, qualField, filterField := fields[8], fields[9], fields[10]

	r.Name = r.Name[:0]
	r.Name = append(r.Name, machine...)
	r.Name = append(r.Name, ':')
	r.Name = append(r.Name, run...)
	r.Name = append(r.Name, ':')
	r.Name = append(r.Name, lane...)
	r.Name = append(r.Name, ':')
	r.Name = append(r.Name, tile...)
	r.Name = append(r.Name, ':')
	r.Name = append(r.Name, x...)
	r.Name = append(r.Name, ':')
	r.Name = append(r.Name, y...)

	r.Seq = append(r.Seq[:0], seqField...)
	for i, c := range r.Seq {
		if c == '.' {
			r.Seq[i] = 'N'
		}
	}
	if len(r.Seq) == 0 {
		return false
	}
	r.Qual = append(r.Qual[:0], qualField...)
	if len(r.Qual) != len(r.Seq) {
		return false
	}

	if s.Params.IntQuals {
		converted, err := bioquality.ParseIntQuals(r.Qual)
		if err != nil {
			return false
		}
		r.Qual = append(r.Qual[:0], converted...)
	} else if s.Params.Solexa64 {
		if err := bioquality.NormalizeSolexa64(r.Qual); err != nil {
			return false
		}
	} else {
		// Qseq defaults to Phred-64 regardless of the global Phred64
		// flag, matching Illumina pipeline convention.
		if err := bioquality.NormalizePhred64(r.Qual); err != nil {
			return false
		}
	}
	if _, err := bioquality.ValidateAndFixBases(r.Seq); err != nil {
		return false
	}

	filter, err := strconv.Atoi(string(bytes.TrimSpace(filterField)))
	if err != nil {
		return false
	}
	r.Filtered = filter == 0
	return true
}

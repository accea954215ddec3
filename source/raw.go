package source

import (
	"bytes"
	"strconv"

	"github.com/shenwei356/seqfeed/bioquality"
	"github.com/shenwei356/seqfeed/read"
)

// rawState tracks nothing beyond readiness; Raw has no per-file
// framing state, kept as a struct for symmetry with the other
// formats and to leave room for future per-file counters.
type rawState struct {
	first bool
}

// lightParseRaw captures one sequence-only line per record.
func (s *Source) lightParseRaw(buf *read.Buffer, which Mate, start int) (done bool, count int, err error) {
	return s.lightParseTab(buf, which, start)
}

// parseRaw decodes a Raw record: the line is the sequence verbatim,
// the name is synthesized as the record's decimal rdid, and quality
// is synthesized as all-'I'.
func (s *Source) parseRaw(r *read.Record, rdid uint64) bool {
	line := bytes.TrimRight(bytes.TrimRight(r.RawBuf, "\n"), "\r")
	if len(line) == 0 {
		return false
	}
	r.Seq = append(r.Seq[:0], line...)
	if _, err := bioquality.ValidateAndFixBases(r.Seq); err != nil {
		return false
	}
	r.Name = append(r.Name[:0], strconv.FormatUint(rdid, 10)...)
	r.Qual = append(r.Qual[:0], bioquality.SynthesizeQuality(len(r.Seq))...)
	return true
}

package source

import (
	"strconv"
	"strings"

	"github.com/shenwei356/seqfeed/bioquality"
	"github.com/shenwei356/seqfeed/read"
)

// vectorState is NewVector's cursor over its in-memory entries.
type vectorState struct {
	entries []string
	cur     int
}

// nextBatchVector fills buf with raw (undecoded) entries, one per
// slot, advancing the shared cursor under the source lock. Decoding
// happens later in parseVectorRecord, outside the lock, mirroring the
// light/full split used by the file-backed formats.
func (s *Source) nextBatchVector(buf *read.Buffer) (done bool, count int, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	capacity := buf.Cap()
	for count < capacity && s.vec.cur < len(s.vec.entries) {
		entry := s.vec.entries[s.vec.cur]
		ra, rb := &buf.A[count], &buf.B[count]
		ra.Reset()
		rb.Reset()
		ra.RawBuf = append(ra.RawBuf, entry...)
		s.vec.cur++
		count++
	}
	s.readCnt += uint64(count)
	return s.vec.cur >= len(s.vec.entries), count, nil
}

// parseVectorRecord decodes one comma-separated vector entry: "seq"
// (single mate, synthesized name/quality), "name,seq,qual" (single
// mate, explicit), or "seq1,seq2" (paired, synthesized names/quality).
func (s *Source) parseVectorRecord(ra, rb *read.Record, rdid uint64) bool {
	raw := string(ra.RawBuf)
	if raw == "" {
		return false
	}
	parts := strings.Split(raw, ",")

	rb.Reset()
	switch len(parts) {
	case 1:
		ra.Seq = append(ra.Seq[:0], parts[0]...)
		ra.Name = append(ra.Name[:0], strconv.FormatUint(rdid, 10)...)
		ra.Qual = append(ra.Qual[:0], bioquality.SynthesizeQuality(len(ra.Seq))...)
	case 2:
		ra.Seq = append(ra.Seq[:0], parts[0]...)
		ra.Name = append(ra.Name[:0], strconv.FormatUint(rdid, 10)...)
		ra.Qual = append(ra.Qual[:0], bioquality.SynthesizeQuality(len(ra.Seq))...)
		rb.Seq = append(rb.Seq[:0], parts[1]...)
		rb.Name = append(rb.Name[:0], strconv.FormatUint(rdid, 10)...)
		rb.Qual = append(rb.Qual[:0], bioquality.SynthesizeQuality(len(rb.Seq))...)
	case 3:
		ra.Name = append(ra.Name[:0], parts[0]...)
		ra.Seq = append(ra.Seq[:0], parts[1]...)
		ra.Qual = append(ra.Qual[:0], parts[2]...)
		if len(ra.Qual) != len(ra.Seq) {
			return false
		}
	default:
		return false
	}

	for _, r := range []*read.Record{ra, rb} {
		if len(r.Seq) == 0 {
			continue
		}
		if _, err := bioquality.ValidateAndFixBases(r.Seq); err != nil {
			return false
		}
		applyTrim(r, s.Params.Trim5, s.Params.Trim3)
		if s.Params.FixName {
			fixMateName(r)
		}
		r.Rdid = rdid
		r.Parsed = true
	}
	return true
}

package source

import (
	"strconv"

	"github.com/shenwei356/seqfeed/bioquality"
	"github.com/shenwei356/seqfeed/read"
)

// fastaContState is the shared mutable sliding-window state for
// FASTA-continuous sampling: a circular buffer of the last L bases
// read, a global base counter, and the counter's value where the
// current record began. Unlike the other formats, this one's light-parse
// phase does the actual windowing work under the source
// lock, since the window itself is shared mutable state that can't be
// decoded independently per slot.
type fastaContState struct {
	ring     []byte
	ringPos  int
	filled   int
	eat      int
	cur      int
	last     int
	recName  []byte
	recStart int
}

func (fc *fastaContState) resetForNextFile() {
	fc.ringPos = 0
	fc.filled = 0
	fc.eat = 0
	fc.cur = 0
	fc.last = 0
	fc.recStart = 0
	fc.recName = fc.recName[:0]
}

// lightParseFastaContinuous scans raw FASTA bytes, maintaining the
// circular window, and emits one record each time the window is full,
// unpolluted by a record boundary (eat == 0), and the stride count
// divides evenly. Each emitted record already carries its decoded
// sequence and synthesized name in Seq/Name; parseFastaContinuous only
// needs to synthesize quality and validate the bases.
func (s *Source) lightParseFastaContinuous(buf *read.Buffer, which Mate, start int) (done bool, count int, err error) {
	dst := destSlice(buf, which)
	fc := &s.fc
	L := s.Params.SampleLen
	freq := s.Params.SampleFreq
	if L <= 0 {
		L = 1024
	}
	if freq <= 0 {
		freq = 1
	}
	if len(fc.ring) != L {
		fc.ring = make([]byte, L)
	}

	i := start
	for i < len(dst) {
		c := s.reader.GetByte()
		if c == -1 {
			return true, count, nil
		}
		if c == '>' {
			fc.recName = fc.recName[:0]
			for {
				c2 := s.reader.GetByte()
				if c2 == -1 || c2 == '\n' {
					break
				}
				if c2 != '\r' {
					fc.recName = append(fc.recName, byte(c2))
				}
			}
			fc.recStart = fc.cur
			fc.last = fc.cur
			fc.eat = L - 1
			fc.filled = 0
			continue
		}
		if c == '\n' || c == '\r' {
			continue
		}
		base := byte(c)
		if !isACGT(base) {
			// A non-nucleotide character invalidates the window; force
			// a full refill before the next emission. It still occupies
			// a position in the record, so it is counted in cur.
			fc.eat = L - 1
			fc.filled = 0
			fc.cur++
			continue
		}
		fc.ring[fc.ringPos] = base
		fc.ringPos = (fc.ringPos + 1) % L
		if fc.filled < L {
			fc.filled++
		}
		fc.cur++
		if fc.eat > 0 {
			fc.eat--
			continue
		}
		if fc.filled == L {
			// offset is the window's start position relative to the
			// record's first base; last is fixed at the record's base
			// offset (set only when a new record begins), not touched
			// per emission, so successive offsets are absolute window
			// starts rather than deltas between emissions.
			offset := fc.cur - L - fc.last
			if offset%freq == 0 {
				rec := &dst[i]
				rec.Reset()
				rec.Seq = rec.Seq[:0]
				for k := 0; k < L; k++ {
					rec.Seq = append(rec.Seq, fc.ring[(fc.ringPos+k)%L])
				}
				rec.Name = append(rec.Name[:0], fc.recName...)
				rec.Name = append(rec.Name, '_')
				rec.Name = append(rec.Name, []byte(strconv.Itoa(offset))...)
				rec.RawBuf = append(rec.RawBuf[:0], 1) // mark non-empty; already decoded
				i++
				count++
			}
		}
	}
	return false, count, nil
}

// isACGT reports whether b is an unambiguous DNA base (case
// insensitive). Any other character, including IUPAC ambiguity codes,
// invalidates the sliding window: a continuous sample is only useful
// for exact matching, which ambiguous bases can't support.
func isACGT(b byte) bool {
	switch b {
	case 'A', 'C', 'G', 'T', 'a', 'c', 'g', 't':
		return true
	default:
		return false
	}
}

// parseFastaContinuous finishes a window record that lightParse
// already decoded: validate bases and synthesize quality.
func (s *Source) parseFastaContinuous(r *read.Record) bool {
	if len(r.Seq) == 0 {
		return false
	}
	if _, err := bioquality.ValidateAndFixBases(r.Seq); err != nil {
		return false
	}
	r.Qual = append(r.Qual[:0], bioquality.SynthesizeQuality(len(r.Seq))...)
	return true
}

package source

import (
	"bytes"

	"github.com/shenwei356/seqfeed/bioquality"
	"github.com/shenwei356/seqfeed/read"
)

// lightParseTab captures one raw tab-delimited line per record. Both
// tab5 (name, seq1, qual1[, seq2, qual2]) and tab6 (name1, seq1,
// qual1, name2, seq2, qual2) share the same line-boundary rule; the
// field count is only disambiguated at full-parse time.
func (s *Source) lightParseTab(buf *read.Buffer, which Mate, start int) (done bool, count int, err error) {
	dst := destSlice(buf, which)
	i := start
	for i < len(dst) {
		line, sawNL, eof := s.readLine()
		if eof && len(line) == 0 {
			return true, count, nil
		}
		rec := &dst[i]
		rec.Reset()
		if sawNL {
			line = line[:len(line)-1]
		}
		rec.RawBuf = append(rec.RawBuf, line...)
		i++
		count++
		if eof {
			return true, count, nil
		}
	}
	return false, count, nil
}

// parseTab splits one tab-delimited line into ra and rb directly,
// bypassing parseOne's single-record dispatch since a single raw line
// encodes up to two mates. The 3-field form (collapsed, single mate)
// leaves rb unpopulated.
func (s *Source) parseTab(ra, rb *read.Record, rdid uint64) bool {
	raw := append([]byte(nil), bytes.TrimRight(bytes.TrimRight(ra.RawBuf, "\n"), "\r")...)
	fields := bytes.Split(raw, []byte("\t"))

	ra.Reset()
	rb.Reset()
	// Keep the line as ra's raw bytes (and rb's, for the paired forms) so
	// Empty() still tells which mates this line populated.
	ra.RawBuf = append(ra.RawBuf, raw...)

	var hasB bool
	ok := false
	switch len(fields) {
	case 3:
		ok = fillTabMate(ra, fields[0], fields[1], fields[2])
	case 5:
		ok = fillTabMate(ra, fields[0], fields[1], fields[2])
		ok = fillTabMate(rb, fields[0], fields[3], fields[4]) && ok
		hasB = true
	case 6:
		ok = fillTabMate(ra, fields[0], fields[1], fields[2])
		ok = fillTabMate(rb, fields[3], fields[4], fields[5]) && ok
		hasB = true
	default:
		return false
	}
	if hasB {
		rb.RawBuf = append(rb.RawBuf, raw...)
	}
	if !ok {
		return false
	}

	mates := []*read.Record{ra}
	if hasB {
		mates = append(mates, rb)
	}
	for _, r := range mates {
		if err := s.normalizeQuality(r.Qual); err != nil {
			return false
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

func fillTabMate(r *read.Record, name, seq, qual []byte) bool {
	if len(seq) == 0 || len(seq) != len(qual) {
		return false
	}
	r.Name = append(r.Name[:0], name...)
	r.Seq = append(r.Seq[:0], seq...)
	r.Qual = append(r.Qual[:0], qual...)
	return true
}

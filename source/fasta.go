package source

import (
	"bytes"

	"github.com/shenwei356/seqfeed/bioquality"
	"github.com/shenwei356/seqfeed/read"
)

// fastaState is the light-parser's per-file cursor: a stray non-'>'
// leading byte should warn only once per file.
type fastaState struct {
	beforeRecord  bool
	warnedGarbage bool
}

// lightParseFasta implements the FASTA record-boundary state machine:
// before_record (scan for '>'), in_name (to end of line), in_sequence
// (non-whitespace bytes up to the next '>' at column 0, or EOF).
func (s *Source) lightParseFasta(buf *read.Buffer, which Mate, start int) (done bool, count int, err error) {
	dst := destSlice(buf, which)
	i := start
	for i < len(dst) {
		c := s.reader.GetByte()
		if c == -1 {
			return true, count, nil
		}
		if c != '>' {
			if !s.fasta.warnedGarbage {
				s.Warn.Warnf("wrong FASTA format: expected '>' at start of record")
				s.fasta.warnedGarbage = true
			}
			continue
		}

		rec := &dst[i]
		rec.Reset()
		rec.RawBuf = append(rec.RawBuf, '>')

		atLineStart := false
		for {
			c := s.reader.GetByte()
			if c == -1 {
				break
			}
			if atLineStart && c == '>' {
				s.reader.UngetByte(c)
				break
			}
			rec.RawBuf = append(rec.RawBuf, byte(c))
			atLineStart = c == '\n'
		}
		i++
		count++
	}
	return false, count, nil
}

// parseFasta decodes a raw FASTA record into name/sequence, and
// synthesizes an all-'I' quality string.
func (s *Source) parseFasta(r *read.Record) bool {
	raw := r.RawBuf
	if len(raw) == 0 || raw[0] != '>' {
		return false
	}
	nl := bytes.IndexByte(raw, '\n')
	var nameLine, seqBlob []byte
	if nl < 0 {
		nameLine = raw[1:]
	} else {
		nameLine = raw[1:nl]
		seqBlob = raw[nl+1:]
	}
	r.Name = append(r.Name[:0], bytes.TrimRight(nameLine, "\r")...)

	r.Seq = r.Seq[:0]
	for _, line := range bytes.Split(seqBlob, []byte("\n")) {
		r.Seq = append(r.Seq, bytes.TrimSpace(line)...)
	}
	if len(r.Seq) == 0 {
		return false
	}
	if _, err := bioquality.ValidateAndFixBases(r.Seq); err != nil {
		return false
	}
	r.Qual = append(r.Qual[:0], bioquality.SynthesizeQuality(len(r.Seq))...)
	return true
}

// destSlice returns the mate-selected destination vector of a buffer.
func destSlice(buf *read.Buffer, which Mate) []read.Record {
	if which == MateA {
		return buf.A
	}
	return buf.B
}

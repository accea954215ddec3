package source

import (
	"bytes"

	"github.com/shenwei356/seqfeed/bioquality"
	"github.com/shenwei356/seqfeed/read"
)

type fastqState struct {
	first         bool
	warnedFraming bool
}

// readLine reads bytes up to and including the next '\n', or until
// EOF. sawNL reports whether a newline terminated the line; eof
// reports that GetByte returned -1 before any byte was read.
func (s *Source) readLine() (line []byte, sawNL bool, eof bool) {
	c := s.reader.GetByte()
	if c == -1 {
		return nil, false, true
	}
	for {
		line = append(line, byte(c))
		if c == '\n' {
			return line, true, false
		}
		c = s.reader.GetByte()
		if c == -1 {
			return line, false, false
		}
	}
}

// readFastqRecordRaw captures the raw bytes of one four-line FASTQ
// record into rec. ok is false either because the stream cleanly ended
// before any new record started (eof=true, no warning warranted) or
// because framing was malformed (eof may or may not also be true).
func (s *Source) readFastqRecordRaw(rec *read.Record) (ok bool, eof bool) {
	rec.Reset()
	for i := 0; i < 4; i++ {
		line, _, lineEOF := s.readLine()
		if lineEOF && len(line) == 0 {
			if i == 0 {
				return false, true
			}
			return false, true // truncated final record
		}
		if i == 0 && (len(line) == 0 || line[0] != '@') {
			return false, lineEOF
		}
		rec.RawBuf = append(rec.RawBuf, line...)
		if lineEOF {
			// Missing lines after this one; treat as malformed/done.
			if i < 3 {
				return false, true
			}
		}
	}
	return true, false
}

// lightParseFastq captures a four-line record delineated by newline
// count, tolerating a missing trailing newline on the last record.
// When interleaved, two consecutive records land in slots A and B of
// the same buffer position.
func (s *Source) lightParseFastq(buf *read.Buffer, which Mate, start int, interleaved bool) (done bool, count int, err error) {
	if !interleaved {
		dst := destSlice(buf, which)
		i := start
		for i < len(dst) {
			ok, eof := s.readFastqRecordRaw(&dst[i])
			if !ok {
				if eof {
					return true, count, nil
				}
				if !s.fastq.warnedFraming {
					s.Warn.Warnf("malformed FASTQ record framing")
					s.fastq.warnedFraming = true
				}
				continue
			}
			i++
			count++
		}
		return false, count, nil
	}

	i := start
	for i < len(buf.A) {
		okA, eofA := s.readFastqRecordRaw(&buf.A[i])
		if !okA {
			if eofA {
				return true, count, nil
			}
			if !s.fastq.warnedFraming {
				s.Warn.Warnf("malformed FASTQ record framing")
				s.fastq.warnedFraming = true
			}
			continue
		}
		okB, eofB := s.readFastqRecordRaw(&buf.B[i])
		if !okB {
			buf.A[i].Reset()
			if eofB {
				if !s.fastq.warnedFraming {
					s.Warn.Warnf("unpaired final FASTQ record dropped (interleaved input)")
					s.fastq.warnedFraming = true
				}
				return true, count, nil
			}
			if !s.fastq.warnedFraming {
				s.Warn.Warnf("malformed FASTQ record framing (unpaired mate 2)")
				s.fastq.warnedFraming = true
			}
			continue
		}
		i++
		count++
	}
	return false, count, nil
}

// parseFastq decodes one FASTQ record's raw bytes: @name, sequence,
// '+'-line, quality. Quality length must equal sequence length.
func (s *Source) parseFastq(r *read.Record) bool {
	lines := bytes.SplitN(r.RawBuf, []byte("\n"), 4)
	if len(lines) < 4 {
		return false
	}
	nameLine := lines[0]
	seqLine := bytes.TrimRight(lines[1], "\r")
	qualLine := bytes.TrimRight(bytes.SplitN(lines[3], []byte("\n"), 2)[0], "\r")

	if len(nameLine) == 0 || nameLine[0] != '@' {
		return false
	}
	r.Name = append(r.Name[:0], bytes.TrimRight(nameLine[1:], "\r")...)
	r.Seq = append(r.Seq[:0], seqLine...)
	r.Qual = append(r.Qual[:0], qualLine...)

	if len(r.Seq) == 0 {
		return false
	}
	if len(r.Qual) != len(r.Seq) {
		return false
	}
	if err := s.normalizeQuality(r.Qual); err != nil {
		return false
	}
	if _, err := bioquality.ValidateAndFixBases(r.Seq); err != nil {
		return false
	}
	return true
}

// normalizeQuality applies the configured quality scale, converting
// r's quality bytes to Phred-33 in place.
func (s *Source) normalizeQuality(q []byte) error {
	switch {
	case s.Params.IntQuals:
		converted, err := bioquality.ParseIntQuals(q)
		if err != nil {
			return err
		}
		copy(q, converted)
		return nil
	case s.Params.Phred64:
		return bioquality.NormalizePhred64(q)
	case s.Params.Solexa64:
		return bioquality.NormalizeSolexa64(q)
	default:
		for _, c := range q {
			if c < bioquality.PhredOffset33 || c > 126 {
				return &bioquality.ErrBadQualityChar{Scale: "phred33", Char: c}
			}
		}
		return nil
	}
}

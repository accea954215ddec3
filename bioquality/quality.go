// Package bioquality implements the quality-score decoding rules shared
// by every format parser: Phred-33 (the wire format all records are
// normalized to), Phred-64, Solexa-64, and whitespace-separated integer
// qualities. It also hosts IUPAC base validation, delegated to
// github.com/shenwei356/bio/seq's bioinformatics-alphabet types; only
// the replacement of rejected bytes with 'N' uses a local IUPAC table.
package bioquality

import (
	"bytes"
	"fmt"
	"math"
	"strconv"
	"sync"

	"github.com/shenwei356/bio/seq"
)

// seqValidateMu serializes every access to seq.ValidateSeq, a
// package-level global in github.com/shenwei356/bio/seq. Full-parse
// runs outside any per-source lock and concurrently across worker
// goroutines, so toggling that global around seq.NewSeq without a
// lock of our own would be a data race: one goroutine's defer-restore
// could flip validation off while another goroutine's NewSeq call is
// still in flight.
var seqValidateMu sync.Mutex

// PhredOffset33 is the ASCII offset for the Phred-33 (Sanger) scale,
// the normalized form every record's Qual field is stored in.
const PhredOffset33 = 33

// phredOffset64 is the ASCII offset for the Phred-64 (Illumina 1.3-1.7)
// scale.
const phredOffset64 = 64

// FilledQualityChar is emitted for formats that carry no real quality
// information (FASTA, Raw, FASTA-continuous): Phred 40, i.e. 'I'.
const FilledQualityChar = byte(40 + PhredOffset33)

// SynthesizeQuality returns a Phred-33 quality string of all 'I'
// (Phred 40), the filler value used for formats with no real quality
// track.
func SynthesizeQuality(n int) []byte {
	q := make([]byte, n)
	for i := range q {
		q[i] = FilledQualityChar
	}
	return q
}

// ErrBadQualityChar is returned when a quality byte falls outside the
// valid range for the selected scale.
type ErrBadQualityChar struct {
	Scale string
	Char  byte
}

func (e *ErrBadQualityChar) Error() string {
	return fmt.Sprintf("quality character %q out of range for %s scale", e.Char, e.Scale)
}

// NormalizePhred64 converts a Phred-64-encoded quality string in place
// to Phred-33, returning an error if any character falls outside the
// representable range.
func NormalizePhred64(q []byte) error {
	for i, c := range q {
		if int(c)-phredOffset64 < 0 {
			return &ErrBadQualityChar{Scale: "phred64", Char: c}
		}
		q[i] = c - (phredOffset64 - PhredOffset33)
	}
	return nil
}

// solexaToPhred converts one Solexa quality value to a Phred quality
// value using the standard logistic conversion.
func solexaToPhred(sq float64) float64 {
	return 10 * math.Log10(1+math.Pow(10, sq/10))
}

// NormalizeSolexa64 converts a Solexa-64-encoded quality string in
// place to Phred-33.
func NormalizeSolexa64(q []byte) error {
	for i, c := range q {
		sq := float64(int(c) - phredOffset64)
		pq := solexaToPhred(sq)
		v := int(math.Round(pq)) + PhredOffset33
		if v < PhredOffset33 || v > 126 {
			return &ErrBadQualityChar{Scale: "solexa64", Char: c}
		}
		q[i] = byte(v)
	}
	return nil
}

// ParseIntQuals parses a whitespace-separated list of integer quality
// values and re-emits them as a Phred-33 string, clamping each value
// to [0, 93] (the printable Phred-33 range).
func ParseIntQuals(field []byte) ([]byte, error) {
	toks := bytes.Fields(field)
	out := make([]byte, 0, len(toks))
	for _, tok := range toks {
		v, err := strconv.Atoi(string(tok))
		if err != nil {
			return nil, fmt.Errorf("bad integer quality %q: %w", tok, err)
		}
		if v < 0 {
			v = 0
		}
		if v > 93 {
			v = 93
		}
		out = append(out, byte(v+PhredOffset33))
	}
	return out, nil
}

// ValidateAndFixBases checks seq against the IUPAC nucleotide alphabet
// via github.com/shenwei356/bio/seq. Any byte that alphabet rejects is
// replaced with 'N' in place and warned is set true: the record still
// parses, just with a warning recorded for the caller to surface. seq
// is validated (and possibly mutated) in place; the returned error is
// non-nil if seq is empty or is still rejected after the replacement.
func ValidateAndFixBases(bases []byte) (warned bool, err error) {
	if len(bases) == 0 {
		return false, fmt.Errorf("empty sequence")
	}

	seqValidateMu.Lock()
	defer seqValidateMu.Unlock()

	prevValidate := seq.ValidateSeq
	seq.ValidateSeq = true
	defer func() { seq.ValidateSeq = prevValidate }()

	if _, err := seq.NewSeq(seq.DNAredundant, bases); err == nil {
		return false, nil
	}
	for i, b := range bases {
		if !isIUPACBase(b) {
			bases[i] = 'N'
			warned = true
		}
	}
	// Re-validate; a sequence that is still rejected (e.g. all gap
	// characters) is reported as unparseable by the caller rather than
	// papered over further.
	if _, err := seq.NewSeq(seq.DNAredundant, bases); err != nil {
		return warned, err
	}
	return warned, nil
}

// isIUPACBase reports whether b is one of the 15 IUPAC nucleotide
// codes (N included) or 'U', in upper or lower case, or the gap
// character '-'.
func isIUPACBase(b byte) bool {
	switch b {
	case 'A', 'C', 'G', 'T', 'U', 'N',
		'R', 'Y', 'S', 'W', 'K', 'M', 'B', 'D', 'H', 'V',
		'a', 'c', 'g', 't', 'u', 'n',
		'r', 'y', 's', 'w', 'k', 'm', 'b', 'd', 'h', 'v',
		'-':
		return true
	default:
		return false
	}
}

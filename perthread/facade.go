// Package perthread implements the per-thread read-pair facade: the
// narrow interface a worker goroutine actually calls in its hot loop,
// hiding the underlying composer/batch machinery behind a single
// NextReadPair call.
package perthread

import (
	"github.com/shenwei356/seqfeed/compose"
	"github.com/shenwei356/seqfeed/read"
)

// Facade owns exactly one Buffer for the lifetime of a worker
// goroutine and refills it from a shared Composer whenever its cursor
// runs out. It is not safe for concurrent use by more than one
// goroutine — that exclusivity is the point: each worker gets its own
// Facade over the same Composer.
type Facade struct {
	composer     compose.Composer
	buf          *read.Buffer
	composerDone bool // the composer has reported no more batches exist
	revCompMate2 bool
}

// New constructs a per-thread facade with the given batch capacity.
// When revCompMate2 is set, mate 2 of every pair is
// reverse-complemented before being handed to the caller, the
// convention most paired-end aligners expect for FR-orientation
// libraries.
func New(composer compose.Composer, capacity int, revCompMate2 bool) *Facade {
	return &Facade{
		composer:     composer,
		buf:          read.NewBuffer(capacity),
		revCompMate2: revCompMate2,
	}
}

// NextReadPair dispenses the next read pair, refilling the underlying
// buffer from the composer as needed. ok is false once both the
// current batch and the composer itself are exhausted; err is non-nil
// only on a genuine I/O or format failure.
func (f *Facade) NextReadPair() (ra, rb *read.Record, ok bool, err error) {
	for f.buf.Exhausted() {
		if f.composerDone {
			return nil, nil, false, nil
		}
		done, err := f.composer.NextBatch(f.buf)
		if err != nil {
			return nil, nil, false, err
		}
		f.composerDone = done
		if f.buf.Filled() == 0 {
			return nil, nil, false, nil
		}
	}

	ra = f.buf.ReadA()
	rb = f.buf.ReadB()
	if f.revCompMate2 && !rb.Empty() {
		reverseComplement(rb)
	}
	f.buf.Next()
	return ra, rb, true, nil
}

// Close releases the underlying composer's resources. Only the last
// facade sharing a composer should call this in practice; composers
// are themselves safe to Close from multiple goroutines.
func (f *Facade) Close() error {
	return f.composer.Close()
}

var complement = [256]byte{}

func init() {
	for i := 0; i < 256; i++ {
		complement[i] = 'N'
	}
	pairs := map[byte]byte{
		'A': 'T', 'T': 'A', 'C': 'G', 'G': 'C', 'U': 'A', 'N': 'N',
		'R': 'Y', 'Y': 'R', 'S': 'S', 'W': 'W', 'K': 'M', 'M': 'K',
		'B': 'V', 'V': 'B', 'D': 'H', 'H': 'D',
	}
	for upper, comp := range pairs {
		complement[upper] = comp
		complement[upper+('a'-'A')] = comp + ('a' - 'A')
	}
	complement['-'] = '-'
}

// reverseComplement reverse-complements r's sequence in place and
// reverses its quality string to match.
func reverseComplement(r *read.Record) {
	n := len(r.Seq)
	for i, j := 0, n-1; i < j; i, j = i+1, j-1 {
		r.Seq[i], r.Seq[j] = complement[r.Seq[j]], complement[r.Seq[i]]
	}
	if n%2 == 1 {
		mid := n / 2
		r.Seq[mid] = complement[r.Seq[mid]]
	}
	for i, j := 0, len(r.Qual)-1; i < j; i, j = i+1, j-1 {
		r.Qual[i], r.Qual[j] = r.Qual[j], r.Qual[i]
	}
}

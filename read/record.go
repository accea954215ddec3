// Package read defines the read record and the per-thread batch buffer
// that the composer fills and the per-thread facade drains.
package read

// Record is one sequencing read. It owns its byte buffers and is reset
// (not freed) between batches so that steady-state operation performs no
// allocation beyond the occasional grow of a buffer to fit a longer
// record than previously seen.
type Record struct {
	// RawBuf holds exactly the bytes captured for this record during
	// light-parse. It is the hand-off channel between the light-parse
	// (inside the source's lock) and the full-parse (outside any lock).
	RawBuf []byte

	Name []byte // parsed read name
	Seq  []byte // parsed sequence of bases
	Qual []byte // parsed quality string, normalized to Phred-33

	Rdid uint64 // 64-bit monotonic read identifier

	Parsed   bool // true once full-parse has populated Name/Seq/Qual
	Filtered bool // true when the source format marks this read as filtered (e.g. Qseq filter=0)
}

// Reset clears a record's fields for reuse while retaining the capacity
// of its backing byte slices.
func (r *Record) Reset() {
	r.RawBuf = r.RawBuf[:0]
	r.Name = r.Name[:0]
	r.Seq = r.Seq[:0]
	r.Qual = r.Qual[:0]
	r.Rdid = 0
	r.Parsed = false
	r.Filtered = false
}

// Empty reports whether this record has not been light-parsed into
// (i.e. its raw buffer is empty). Source.Parse and the per-thread
// facade use this to skip a mate slot a batch left unfilled, such as
// mate 2 of unpaired input.
func (r *Record) Empty() bool {
	return len(r.RawBuf) == 0
}

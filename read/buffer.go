package read

// Buffer is a per-thread, fixed-capacity batch of read-pair records:
// two parallel vectors, A (mate 1) and B (mate 2), plus a cursor into
// both. It is the Go rendering of PerThreadReadBuf; a per-thread facade
// owns exactly one Buffer for the lifetime of its worker goroutine and
// never shares it.
//
// Invariant: after a successful batch load, positions [0, Filled) in
// both A and B are populated; B is either all-empty records (unpaired
// input) or populated in lock-step with A.
type Buffer struct {
	A, B []Record // parallel mate-1 / mate-2 vectors, len == capacity

	cur      int    // cursor into A/B
	filled   int    // number of valid positions loaded by the last batch
	rdidBase uint64 // read id of the record at cursor 0
}

// NewBuffer allocates a buffer with the given per-batch capacity.
func NewBuffer(capacity int) *Buffer {
	b := &Buffer{
		A: make([]Record, capacity),
		B: make([]Record, capacity),
	}
	b.Reset()
	return b
}

// Cap returns the buffer's fixed record capacity.
func (b *Buffer) Cap() int { return len(b.A) }

// Reset clears all records and sets both the cursor and the filled
// count to zero, so Exhausted reports true until Init is called again.
func (b *Buffer) Reset() {
	for i := range b.A {
		b.A[i].Reset()
		b.B[i].Reset()
	}
	b.cur = 0
	b.filled = 0
	b.rdidBase = 0
}

// Init must be called right after a fresh batch has been loaded into
// A/B[0:filled). It rewinds the cursor to the first record.
func (b *Buffer) Init(filled int, rdidBase uint64) {
	b.cur = 0
	b.filled = filled
	b.rdidBase = rdidBase
}

// Cur returns the index of the record currently addressed by ReadA()/ReadB().
func (b *Buffer) Cur() int { return b.cur }

// A/B-at-cursor accessors.
func (b *Buffer) ReadA() *Record { return &b.A[b.cur] }
func (b *Buffer) ReadB() *Record { return &b.B[b.cur] }

// Filled returns how many record positions the last batch populated.
func (b *Buffer) Filled() int { return b.filled }

// Next advances the cursor by one. The caller must check Exhausted
// first; advancing past Filled is a programmer error.
func (b *Buffer) Next() { b.cur++ }

// Exhausted reports true once no record is left to dispense: the
// cursor has reached or passed Filled, so no filled slot is under it.
//
// Comparing against the buffer's fixed capacity rather than the number
// of records the batch actually filled would drop the final record of
// a partially filled batch, so Filled is tracked explicitly and
// Exhausted reports true exactly when the cursor has consumed all of
// it.
func (b *Buffer) Exhausted() bool {
	return b.cur >= b.filled
}

// Rdid returns the read identifier of the record currently under the
// cursor.
func (b *Buffer) Rdid() uint64 {
	return b.rdidBase + uint64(b.cur)
}

// Package checksum verifies the read-id concurrency invariant — that
// the multiset of rdids emitted across however many worker goroutines
// equals {0, ..., N-1} — without needing to collect and sort every id.
// It XOR-folds a per-id hash from zeebo/wyhash, so the result is
// insensitive to the order ids arrive in, which is exactly what's
// needed to check this property without serializing goroutines
// against each other just to compare.
package checksum

import (
	"encoding/binary"

	"github.com/zeebo/wyhash"
)

// Accumulator folds rdids into an order-independent checksum.
type Accumulator struct {
	acc uint64
	n   uint64
}

// New returns an empty accumulator.
func New() *Accumulator { return &Accumulator{} }

// Add folds one rdid into the accumulator. Accumulator has no internal
// lock: concurrent use is safe only if the caller serializes access
// itself.
func (a *Accumulator) Add(rdid uint64) {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], rdid)
	a.acc ^= wyhash.Hash(buf[:], 0)
	a.n++
}

// Sum returns the current checksum.
func (a *Accumulator) Sum() uint64 { return a.acc }

// Count returns the number of ids folded in so far.
func (a *Accumulator) Count() uint64 { return a.n }

// Merge folds another accumulator's state into a, as if every id
// added to other had been added to a directly. Valid because XOR-fold
// is commutative and associative: merging two disjoint accumulators'
// sums is exactly the checksum of their union.
func (a *Accumulator) Merge(other *Accumulator) {
	a.acc ^= other.acc
	a.n += other.n
}

// Expected returns the checksum of the canonical {0, ..., n-1} set,
// for comparison against an Accumulator fed all rdids a run produced.
func Expected(n uint64) uint64 {
	a := New()
	for i := uint64(0); i < n; i++ {
		a.Add(i)
	}
	return a.Sum()
}

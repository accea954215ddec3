// Package compose implements the pattern composers that own the
// authoritative, globally increasing read-id counter: Solo, a single
// rotating list of self-synchronizing sources, and Dual, two parallel
// source lists advanced in lock-step for paired-end file pairs.
//
// A composer's NextBatch is the only place a buffer's rdid_base is
// assigned; Source.NextBatch itself never touches it, so rdid
// allocation stays centralized even though file rotation and
// skip-handling are decided per source.
package compose

import (
	"fmt"
	"sync"

	"github.com/pkg/errors"

	"github.com/shenwei356/seqfeed/read"
	"github.com/shenwei356/seqfeed/source"
)

// Composer hands out read-pair batches to worker goroutines, assigning
// each batch a contiguous, gap-free range of read ids.
type Composer interface {
	NextBatch(buf *read.Buffer) (done bool, err error)
	Reset() error
	Close() error
}

// Solo composes a single list of sources, read in order; each source
// may itself cover many files (the common case) or exactly one (when
// the factory's FileParallel option splits work across sources for
// concurrency).
type Solo struct {
	mu      sync.Mutex
	sources []*source.Source
	cur     int
	rdid    uint64
}

// NewSolo constructs a Solo composer over sources, consumed in list
// order.
func NewSolo(sources []*source.Source) (*Solo, error) {
	if len(sources) == 0 {
		return nil, errors.New("solo composer requires at least one source")
	}
	return &Solo{sources: sources}, nil
}

// NextBatch fills buf from the current source, rotating to the next
// one in the list once the current source's file list is exhausted.
// Full-parse decoding runs after the source's lock has been released.
func (c *Solo) NextBatch(buf *read.Buffer) (done bool, err error) {
	src, count, base, err := c.nextLightParsed(buf)
	if err != nil {
		return false, err
	}
	if src == nil {
		buf.Init(0, base)
		return true, nil
	}

	buf.Init(count, base)
	for i := 0; i < count; i++ {
		src.Parse(&buf.A[i], &buf.B[i], base+uint64(i))
	}
	return false, nil
}

func (c *Solo) nextLightParsed(buf *read.Buffer) (src *source.Source, count int, base uint64, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for {
		if c.cur >= len(c.sources) {
			return nil, 0, c.rdid, nil
		}
		cand := c.sources[c.cur]
		d, n, perr := cand.NextBatch(buf, source.MateA)
		if perr != nil {
			return nil, 0, 0, perr
		}
		if n > 0 {
			base = c.rdid
			c.rdid += uint64(n)
			if d {
				c.cur++
			}
			return cand, n, base, nil
		}
		if d {
			c.cur++
			continue
		}
		return nil, 0, c.rdid, nil
	}
}

// Reset rewinds every source and the rdid counter to the beginning.
func (c *Solo) Reset() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cur = 0
	c.rdid = 0
	for _, s := range c.sources {
		if err := s.Reset(); err != nil {
			return err
		}
	}
	return nil
}

// Close releases every source's open file handle.
func (c *Solo) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	var firstErr error
	for _, s := range c.sources {
		if err := s.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// Dual composes two parallel source lists — mate 1 and mate 2 — of
// equal length, advancing list position N on both sides together
// under one lock that spans both sources' NextBatch calls. This
// prevents one mate's file rotation from ever running ahead of the
// other's.
type Dual struct {
	mu       sync.Mutex
	sourcesA []*source.Source
	sourcesB []*source.Source
	cur      int
	rdid     uint64
}

// NewDual constructs a Dual composer. a and b must have equal length:
// sourcesA[i] and sourcesB[i] are read in lock-step as one mate pair.
func NewDual(a, b []*source.Source) (*Dual, error) {
	if len(a) == 0 || len(b) == 0 {
		return nil, errors.New("dual composer requires at least one source pair")
	}
	if len(a) != len(b) {
		return nil, errors.Errorf("mate1/mate2 source lists must have equal length, got %d and %d", len(a), len(b))
	}
	return &Dual{sourcesA: a, sourcesB: b}, nil
}

// NextBatch fills buf.A from the current mate-1 source and buf.B from
// the matching mate-2 source, verifying both sides produced the same
// record count and reached end-of-file at the same time. A mismatch
// in either is reported as a desync error rather than silently
// dropping or misaligning a mate. done is true once no mate pair is
// left to read, including on the call that delivers the final batch.
func (c *Dual) NextBatch(buf *read.Buffer) (done bool, err error) {
	srcA, srcB, count, base, err := c.nextLightParsed(buf)
	if err != nil {
		return false, err
	}
	if srcA == nil {
		buf.Init(0, base)
		return true, nil
	}

	buf.Init(count, base)
	var scratch read.Record
	for i := 0; i < count; i++ {
		scratch.Reset()
		srcA.Parse(&buf.A[i], &scratch, base+uint64(i))
		scratch.Reset()
		srcB.Parse(&buf.B[i], &scratch, base+uint64(i))
	}
	c.mu.Lock()
	done = c.cur >= len(c.sourcesA)
	c.mu.Unlock()
	return done, nil
}

func (c *Dual) nextLightParsed(buf *read.Buffer) (srcA, srcB *source.Source, count int, base uint64, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for {
		if c.cur >= len(c.sourcesA) {
			return nil, nil, 0, c.rdid, nil
		}
		candA := c.sourcesA[c.cur]
		candB := c.sourcesB[c.cur]

		doneA, nA, errA := candA.NextBatch(buf, source.MateA)
		if errA != nil {
			return nil, nil, 0, 0, errA
		}
		doneB, nB, errB := candB.NextBatch(buf, source.MateB)
		if errB != nil {
			return nil, nil, 0, 0, errB
		}

		if nA != nB {
			return nil, nil, 0, 0, fmt.Errorf(
				"mate pair %d desynchronized: mate-1 produced %d records, mate-2 produced %d", c.cur, nA, nB)
		}
		if nA > 0 {
			if doneA != doneB {
				return nil, nil, 0, 0, fmt.Errorf(
					"mate pair %d desynchronized: mate-1 done=%v, mate-2 done=%v after a non-empty batch", c.cur, doneA, doneB)
			}
			base = c.rdid
			c.rdid += uint64(nA)
			if doneA {
				c.cur++
			}
			return candA, candB, nA, base, nil
		}
		if doneA != doneB {
			return nil, nil, 0, 0, fmt.Errorf(
				"mate pair %d desynchronized: one file ended before the other", c.cur)
		}
		if doneA {
			c.cur++
			continue
		}
		return nil, nil, 0, c.rdid, nil
	}
}

// Reset rewinds every source and the rdid counter to the beginning.
func (c *Dual) Reset() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cur = 0
	c.rdid = 0
	for i := range c.sourcesA {
		if err := c.sourcesA[i].Reset(); err != nil {
			return err
		}
		if err := c.sourcesB[i].Reset(); err != nil {
			return err
		}
	}
	return nil
}

// Close releases every source's open file handle.
func (c *Dual) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	var firstErr error
	for i := range c.sourcesA {
		if err := c.sourcesA[i].Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		if err := c.sourcesB[i].Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

var _ Composer = (*Solo)(nil)
var _ Composer = (*Dual)(nil)

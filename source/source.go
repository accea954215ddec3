// Package source implements the format-specific, file-rotating pattern
// sources: a light-parse phase that runs inside the source's lock and
// captures only the raw bytes of a record, and a full-parse phase that
// runs outside any lock and decodes those bytes into
// name/sequence/quality.
//
// Source is a single struct tagged by pattern.Format rather than an
// interface with one implementation per format, since there are few
// variants and branch-predictable dispatch wins over indirect calls on
// this hot path; lightParseFile and parseOne dispatch with a switch on
// the format tag instead of a vtable call.
package source

import (
	"fmt"
	"sync"

	"github.com/pkg/errors"

	"github.com/shenwei356/seqfeed/filestream"
	"github.com/shenwei356/seqfeed/pattern"
	"github.com/shenwei356/seqfeed/read"
)

// Mate selects which side of a per-thread buffer a light-parse call
// should populate.
type Mate int

const (
	MateA Mate = iota
	MateB
)

// Warner receives once-per-file diagnostics: files that cannot be
// opened, light-parse framing errors ("wrong format"), and an unpaired
// final record in interleaved FASTQ. Full-parse problems (wrong quality
// length, out-of-range quality characters, non-IUPAC bases replaced
// with 'N') are not reported through it; they only show up as a
// record with Parsed == false or a rewritten base. Left as an interface so
// the CLI layer can wire it to the logging package without this
// package depending on it.
type Warner interface {
	Warnf(format string, args ...interface{})
}

type noopWarner struct{}

func (noopWarner) Warnf(string, ...interface{}) {}

// Source is a synchronized, format-tagged source of read records,
// either backed by a rotating list of input files or by an in-memory
// vector of strings.
type Source struct {
	Format pattern.Format
	Params pattern.Params
	Warn   Warner

	// File-backed state (unused by FormatVector).
	Files      []string
	fileCur    int
	reader     *filestream.Reader
	isOpen     bool
	errPrinted []bool

	mu sync.Mutex

	skipRemaining int
	skipReady     bool // true once the initial skip has been consumed

	readCnt uint64 // records light-parsed by this source so far

	// Per-format light-parse state.
	fasta      fastaState
	fastq      fastqState
	raw        rawState
	fc         fastaContState
	vec        vectorState
	tabSix     bool // true for tab6, false for tab5
}

// New constructs a file-backed source for the given format and file
// list.
func New(format pattern.Format, files []string, p pattern.Params) (*Source, error) {
	if format == pattern.FormatVector {
		return nil, errors.New("use NewVector for in-memory sources")
	}
	if len(files) == 0 {
		return nil, errors.New("source requires at least one input file")
	}
	s := &Source{
		Format:     format,
		Params:     p,
		Warn:       noopWarner{},
		Files:      files,
		errPrinted: make([]bool, len(files)),
		tabSix:     format == pattern.FormatTab6,
	}
	s.resetSkip()
	s.resetForNextFile()
	return s, nil
}

// NewVector constructs an in-memory source over pre-supplied strings,
// the Go rendering of VectorPatternSource. Each string is one of:
// "seq", "name,seq,qual", or "seq1,seq2" (paired, synthesized quality).
// The exact tokenization is deliberately permissive since this source
// exists mainly for tests and library callers who already have reads
// in memory.
func NewVector(entries []string, p pattern.Params) *Source {
	s := &Source{
		Format: pattern.FormatVector,
		Params: p,
		Warn:   noopWarner{},
	}
	s.vec.entries = entries
	s.resetSkip()
	s.vec.cur = s.skipRemaining
	return s
}

func (s *Source) resetSkip() {
	s.skipRemaining = s.Params.Skip
	s.skipReady = false
}

func (s *Source) resetForNextFile() {
	switch s.Format {
	case pattern.FormatFasta:
		s.fasta = fastaState{beforeRecord: true}
	case pattern.FormatFastq, pattern.FormatFastqInterleaved:
		s.fastq = fastqState{first: true}
	case pattern.FormatRaw:
		s.raw = rawState{first: true}
	case pattern.FormatFastaContinuous:
		s.fc.resetForNextFile()
	}
}

// ReadCount returns the number of records light-parsed by this source
// so far.
func (s *Source) ReadCount() uint64 {
	return s.readCnt
}

// Reset rewinds the source to its very first batch. Only the master
// thread should call this, between phases.
func (s *Source) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.isOpen {
		s.reader.Close()
		s.isOpen = false
	}
	s.fileCur = 0
	s.readCnt = 0
	s.resetSkip()
	if s.Format == pattern.FormatVector {
		s.vec.cur = s.Params.Skip
		return nil
	}
	s.resetForNextFile()
	return nil
}

// Close releases any open file handle.
func (s *Source) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.isOpen {
		err := s.reader.Close()
		s.isOpen = false
		return err
	}
	return nil
}

// openNextFile opens the next file in the list. Returns done=true if
// the file list is exhausted.
func (s *Source) openNextFile() (done bool, err error) {
	if s.fileCur >= len(s.Files) {
		return true, nil
	}
	path := s.Files[s.fileCur]
	r, err := filestream.Open(path)
	if err != nil {
		if !s.errPrinted[s.fileCur] {
			s.Warn.Warnf("could not open %s: %v", path, err)
			s.errPrinted[s.fileCur] = true
		}
		s.fileCur++
		return s.openNextFile()
	}
	s.reader = r
	s.isOpen = true
	s.resetForNextFile()
	return false, nil
}

func (s *Source) closeCurrentFile() {
	if s.isOpen {
		s.reader.Close()
		s.isOpen = false
	}
	s.fileCur++
}

// NextBatch fills buf starting at slot 0 with light-parsed records for
// the given mate side, rotating through the source's file list as
// needed. done reports that this source's file list is now fully
// exhausted; count records may still have been delivered in the same
// call that reports done.
func (s *Source) NextBatch(buf *read.Buffer, which Mate) (done bool, count int, err error) {
	if s.Format == pattern.FormatVector {
		return s.nextBatchVector(buf)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.consumeSkip(which); err != nil {
		return false, 0, err
	}

	capacity := buf.Cap()
	for count < capacity {
		if !s.isOpen {
			d, err := s.openNextFile()
			if err != nil {
				return false, count, err
			}
			if d {
				return true, count, nil
			}
		}

		fileDone, n, perr := s.lightParseFile(buf, which, count)
		if perr != nil {
			path := s.Files[s.fileCur]
			if !s.errPrinted[s.fileCur] {
				s.Warn.Warnf("format error in %s: %v", path, perr)
				s.errPrinted[s.fileCur] = true
			}
		}
		count += n
		s.readCnt += uint64(n)

		if fileDone {
			s.closeCurrentFile()
			if s.fileCur >= len(s.Files) {
				return true, count, nil
			}
			continue
		}
		if n == 0 {
			// Made no progress and the file isn't reporting done;
			// avoid spinning forever on a pathological empty stream.
			break
		}
	}
	return false, count, nil
}

// consumeSkip discards the first Skip records on the very first call
// after construction or Reset.
func (s *Source) consumeSkip(which Mate) error {
	if s.skipReady || s.skipRemaining <= 0 {
		s.skipReady = true
		return nil
	}
	scratch := read.NewBuffer(1)
	for s.skipRemaining > 0 {
		if !s.isOpen {
			d, err := s.openNextFile()
			if err != nil {
				return err
			}
			if d {
				break
			}
		}
		fileDone, count, _ := s.lightParseFile(scratch, which, 0)
		s.readCnt += uint64(count)
		if count > 0 {
			s.skipRemaining--
		}
		if fileDone {
			s.closeCurrentFile()
			if s.fileCur >= len(s.Files) {
				break
			}
		}
		if count == 0 && !fileDone {
			break
		}
	}
	s.skipReady = true
	return nil
}

// lightParseFile dispatches to the format-specific light-parse
// routine, writing into buf starting at index start.
func (s *Source) lightParseFile(buf *read.Buffer, which Mate, start int) (done bool, count int, err error) {
	switch s.Format {
	case pattern.FormatFasta:
		return s.lightParseFasta(buf, which, start)
	case pattern.FormatFastq:
		return s.lightParseFastq(buf, which, start, false)
	case pattern.FormatFastqInterleaved:
		return s.lightParseFastq(buf, which, start, true)
	case pattern.FormatTab5, pattern.FormatTab6:
		return s.lightParseTab(buf, which, start)
	case pattern.FormatQseq:
		return s.lightParseQseq(buf, which, start)
	case pattern.FormatRaw:
		return s.lightParseRaw(buf, which, start)
	case pattern.FormatFastaContinuous:
		return s.lightParseFastaContinuous(buf, which, start)
	default:
		return true, 0, fmt.Errorf("unsupported format %v", s.Format)
	}
}

// Parse performs the full-parse phase, outside any lock: decode raw
// bytes into name/sequence/quality, apply trimming and quality
// normalization. It returns false if either mate's record fails to
// parse, but always attempts both.
func (s *Source) Parse(ra, rb *read.Record, rdid uint64) bool {
	switch s.Format {
	case pattern.FormatTab5, pattern.FormatTab6:
		return s.parseTab(ra, rb, rdid)
	case pattern.FormatVector:
		return s.parseVectorRecord(ra, rb, rdid)
	default:
		ok := true
		if !ra.Empty() {
			if !s.parseOne(ra, rdid) {
				ok = false
			}
		}
		if !rb.Empty() {
			if !s.parseOne(rb, rdid) {
				ok = false
			}
		}
		return ok
	}
}

// parseOne dispatches the single-record full-parse to the
// format-specific decoder, then applies the trimming and name-fixup
// steps that are common to every format.
func (s *Source) parseOne(r *read.Record, rdid uint64) bool {
	var ok bool
	switch s.Format {
	case pattern.FormatFasta:
		ok = s.parseFasta(r)
	case pattern.FormatFastq, pattern.FormatFastqInterleaved:
		ok = s.parseFastq(r)
	case pattern.FormatQseq:
		ok = s.parseQseq(r)
	case pattern.FormatRaw:
		ok = s.parseRaw(r, rdid)
	case pattern.FormatFastaContinuous:
		ok = s.parseFastaContinuous(r)
	default:
		ok = false
	}
	if !ok {
		r.Parsed = false
		return false
	}
	applyTrim(r, s.Params.Trim5, s.Params.Trim3)
	if s.Params.FixName {
		fixMateName(r)
	}
	r.Rdid = rdid
	r.Parsed = true
	return true
}

// applyTrim hard-clips trim5 bases/qualities from the name-proximal
// (5') end and trim3 from the far (3') end.
func applyTrim(r *read.Record, trim5, trim3 int) {
	n := len(r.Seq)
	lo := trim5
	hi := n - trim3
	if lo > n {
		lo = n
	}
	if hi < lo {
		hi = lo
	}
	r.Seq = r.Seq[lo:hi]
	if len(r.Qual) >= hi {
		r.Qual = r.Qual[lo:hi]
	}
}

// fixMateName strips a trailing "/1" or "/2" from a read name so pair
// identity is reflected only by mate slot.
func fixMateName(r *read.Record) {
	n := len(r.Name)
	if n >= 2 && r.Name[n-2] == '/' && (r.Name[n-1] == '1' || r.Name[n-1] == '2') {
		r.Name = r.Name[:n-2]
	}
}

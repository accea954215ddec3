// Package filestream provides a uniform byte source over either a plain
// or gzip-compressed file, with a one-byte pushback, using
// klauspost/pgzip as a drop-in replacement for compress/gzip.
package filestream

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/pgzip"
	"github.com/pkg/errors"
)

const bufSize = 64 * 1024

// Reader is a uniform byte stream over one open file. The caller is
// responsible for its own mutual exclusion; Reader itself does no
// locking, mirroring the C++ FileBuf's reliance on the getc_unlocked
// variant under the assumption that the source already holds a lock.
type Reader struct {
	file   *os.File
	gz     *pgzip.Reader
	br     *bufio.Reader
	pushed int  // pushed-back byte; meaningful only while hasPB is set
	hasPB  bool // whether pushed is valid
}

// Open opens path, transparently wrapping it in a gzip reader when
// IsGzipped reports true for it.
func Open(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open input file")
	}
	gzipped, err := IsGzipped(path)
	if err != nil {
		f.Close()
		return nil, errors.Wrap(err, "stat input file")
	}
	r := &Reader{file: f}
	if gzipped {
		gz, err := pgzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, errors.Wrap(err, "open gzip stream")
		}
		r.gz = gz
		r.br = bufio.NewReaderSize(gz, bufSize)
	} else {
		r.br = bufio.NewReaderSize(f, bufSize)
	}
	return r, nil
}

// IsGzipped reports whether path should be treated as gzip-compressed:
// true when it is a FIFO, when its extension is "gz" or "Z", or when it
// has no extension at all. The extension is checked first, so a path
// with one of those suffixes is reported without touching the
// filesystem; only other paths are stat'ed for the FIFO check.
func IsGzipped(path string) (bool, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" || ext == "gz" || ext == "Z" {
		return true, nil
	}
	fi, err := os.Stat(path)
	if err != nil {
		return false, err
	}
	return fi.Mode()&os.ModeNamedPipe != 0, nil
}

// GetByte returns the next byte, or -1 at EOF.
func (r *Reader) GetByte() int {
	if r.hasPB {
		r.hasPB = false
		b := r.pushed
		return b
	}
	b, err := r.br.ReadByte()
	if err != nil {
		return -1
	}
	return int(b)
}

// UngetByte pushes exactly one byte back into the stream. It is
// guaranteed to succeed once between any two GetByte calls.
func (r *Reader) UngetByte(b int) {
	r.pushed = b
	r.hasPB = true
}

// Close releases the underlying file (and gzip stream, if any).
func (r *Reader) Close() error {
	var err error
	if r.gz != nil {
		err = r.gz.Close()
	}
	if cerr := r.file.Close(); err == nil {
		err = cerr
	}
	return err
}

var _ io.Closer = (*Reader)(nil)

package filestream

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/pgzip"
)

func TestGetByteUngetByte(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "plain.txt")
	if err := os.WriteFile(path, []byte("AB"), 0o644); err != nil {
		t.Fatal(err)
	}
	r, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()

	if c := r.GetByte(); c != 'A' {
		t.Fatalf("got %d want 'A'", c)
	}
	r.UngetByte('A')
	if c := r.GetByte(); c != 'A' {
		t.Fatalf("after unget, got %d want 'A'", c)
	}
	if c := r.GetByte(); c != 'B' {
		t.Fatalf("got %d want 'B'", c)
	}
	if c := r.GetByte(); c != -1 {
		t.Fatalf("got %d want -1 at EOF", c)
	}
}

func TestIsGzippedBySuffix(t *testing.T) {
	dir := t.TempDir()
	gz, err := IsGzipped(filepath.Join(dir, "reads.fastq.gz"))
	if err != nil {
		t.Fatal(err)
	}
	if !gz {
		t.Fatalf(".gz file should be detected as gzipped")
	}
}

func TestIsGzippedNoExtension(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "reads")
	os.WriteFile(path, []byte("x"), 0o644)
	gz, err := IsGzipped(path)
	if err != nil {
		t.Fatal(err)
	}
	if !gz {
		t.Fatalf("extensionless file should be detected as gzipped")
	}
}

func TestIsGzippedPlainExtension(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "reads.fastq")
	os.WriteFile(path, []byte("x"), 0o644)
	gz, err := IsGzipped(path)
	if err != nil {
		t.Fatal(err)
	}
	if gz {
		t.Fatalf(".fastq file should not be detected as gzipped")
	}
}

func TestOpenGzippedFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "reads.fastq.gz")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	gw := pgzip.NewWriter(f)
	gw.Write([]byte("hello"))
	gw.Close()
	f.Close()

	r, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()
	for _, want := range []byte("hello") {
		if c := r.GetByte(); c != int(want) {
			t.Fatalf("got %d want %d", c, want)
		}
	}
	if c := r.GetByte(); c != -1 {
		t.Fatalf("expected EOF, got %d", c)
	}
}

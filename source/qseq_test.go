package source

import (
	"testing"

	"github.com/shenwei356/seqfeed/pattern"
	"github.com/shenwei356/seqfeed/read"
)

func TestQseqFilterFlag(t *testing.T) {
	// machine run lane tile x y index mate seq qual filter
	content := "M1\t1\t2\t3\t100\t200\t0\t1\tAC.T\thhhh\t0\n"
	path := writeTemp(t, "a.qseq", content)
	s, err := New(pattern.FormatQseq, []string{path}, pattern.DefaultParams())
	if err != nil {
		t.Fatal(err)
	}
	buf := read.NewBuffer(4)
	_, count, err := s.NextBatch(buf, MateA)
	if err != nil {
		t.Fatal(err)
	}
	if count != 1 {
		t.Fatalf("got count %d", count)
	}
	rec := buf.A[0]
	if !s.parseOne(&rec, 0) {
		t.Fatalf("expected parseOne to succeed")
	}
	if string(rec.Name) != "M1:1:2:3:100:200" {
		t.Fatalf("got name %q", rec.Name)
	}
	if string(rec.Seq) != "ACNT" {
		t.Fatalf("got seq %q, want dot replaced with N", rec.Seq)
	}
	if string(rec.Qual) != "IIII" {
		t.Fatalf("got qual %q want IIII (phred64 decode of 'h')", rec.Qual)
	}
	if !rec.Filtered {
		t.Fatalf("expected filter=0 to mark the record Filtered")
	}
}

func TestQseqFilterPassed(t *testing.T) {
	content := "M1\t1\t2\t3\t100\t200\t0\t1\tACGT\thhhh\t1\n"
	path := writeTemp(t, "a.qseq", content)
	s, err := New(pattern.FormatQseq, []string{path}, pattern.DefaultParams())
	if err != nil {
		t.Fatal(err)
	}
	buf := read.NewBuffer(4)
	_, _, err = s.NextBatch(buf, MateA)
	if err != nil {
		t.Fatal(err)
	}
	rec := buf.A[0]
	if !s.parseOne(&rec, 0) {
		t.Fatalf("expected parseOne to succeed")
	}
	if rec.Filtered {
		t.Fatalf("expected filter=1 to leave Filtered false")
	}
}

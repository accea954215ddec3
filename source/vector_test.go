package source

import (
	"testing"

	"github.com/shenwei356/seqfeed/pattern"
	"github.com/shenwei356/seqfeed/read"
)

func TestVectorSingleMate(t *testing.T) {
	s := NewVector([]string{"ACGTACGT", "name1,TTTT,IIII"}, pattern.DefaultParams())
	buf := read.NewBuffer(4)
	done, count, err := s.NextBatch(buf, MateA)
	if err != nil {
		t.Fatal(err)
	}
	if count != 2 || !done {
		t.Fatalf("got count=%d done=%v", count, done)
	}
	r0, r1 := buf.A[0], buf.A[1]
	if !s.Parse(&r0, &buf.B[0], 0) {
		t.Fatalf("expected entry 0 to parse")
	}
	if string(r0.Seq) != "ACGTACGT" || string(r0.Name) != "0" {
		t.Fatalf("got seq=%q name=%q", r0.Seq, r0.Name)
	}
	if !s.Parse(&r1, &buf.B[1], 1) {
		t.Fatalf("expected entry 1 to parse")
	}
	if string(r1.Name) != "name1" || string(r1.Qual) != "IIII" {
		t.Fatalf("got name=%q qual=%q", r1.Name, r1.Qual)
	}
}

func TestVectorPairedEntry(t *testing.T) {
	s := NewVector([]string{"ACGT,TGCA"}, pattern.DefaultParams())
	buf := read.NewBuffer(4)
	_, count, err := s.NextBatch(buf, MateA)
	if err != nil {
		t.Fatal(err)
	}
	if count != 1 {
		t.Fatalf("got count %d", count)
	}
	ra, rb := buf.A[0], buf.B[0]
	if !s.Parse(&ra, &rb, 0) {
		t.Fatalf("expected Parse to succeed")
	}
	if string(ra.Seq) != "ACGT" || string(rb.Seq) != "TGCA" {
		t.Fatalf("got seqs %q / %q", ra.Seq, rb.Seq)
	}
}

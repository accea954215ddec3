package source

import (
	"testing"

	"github.com/shenwei356/seqfeed/pattern"
	"github.com/shenwei356/seqfeed/read"
)

func TestTab6Paired(t *testing.T) {
	content := "r1\tACGT\tIIII\tr2\tTGCA\tIIII\n"
	path := writeTemp(t, "a.tab6", content)
	s, err := New(pattern.FormatTab6, []string{path}, pattern.DefaultParams())
	if err != nil {
		t.Fatal(err)
	}
	buf := read.NewBuffer(4)
	done, count, err := s.NextBatch(buf, MateA)
	if err != nil {
		t.Fatal(err)
	}
	if count != 1 || !done {
		t.Fatalf("got count=%d done=%v", count, done)
	}
	ra, rb := buf.A[0], buf.B[0]
	if !s.Parse(&ra, &rb, 7) {
		t.Fatalf("expected Parse to succeed")
	}
	if string(ra.Name) != "r1" || string(rb.Name) != "r2" {
		t.Fatalf("got names %q / %q", ra.Name, rb.Name)
	}
	if string(ra.Seq) != "ACGT" || string(rb.Seq) != "TGCA" {
		t.Fatalf("got seqs %q / %q", ra.Seq, rb.Seq)
	}
	if ra.Rdid != 7 || rb.Rdid != 7 {
		t.Fatalf("expected both mates to carry the pair's rdid")
	}
}

func TestTab5CollapsedSingleMate(t *testing.T) {
	content := "r1\tACGT\tIIII\n"
	path := writeTemp(t, "a.tab5", content)
	s, err := New(pattern.FormatTab5, []string{path}, pattern.DefaultParams())
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
	ra, rb := buf.A[0], buf.B[0]
	if !s.Parse(&ra, &rb, 0) {
		t.Fatalf("expected Parse to succeed")
	}
	if !rb.Empty() {
		t.Fatalf("expected unpaired mate 2 to stay empty")
	}
}

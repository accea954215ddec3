package perthread

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shenwei356/seqfeed/compose"
	"github.com/shenwei356/seqfeed/pattern"
	"github.com/shenwei356/seqfeed/source"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestNextReadPairDispensesAllThenStops(t *testing.T) {
	path := writeTemp(t, "a.fasta", ">r1\nACGT\n>r2\nTTTT\n")
	src, err := source.New(pattern.FormatFasta, []string{path}, pattern.DefaultParams())
	if err != nil {
		t.Fatal(err)
	}
	c, err := compose.NewSolo([]*source.Source{src})
	if err != nil {
		t.Fatal(err)
	}
	f := New(c, 1, false)

	ra, _, ok, err := f.NextReadPair()
	if err != nil || !ok {
		t.Fatalf("got ok=%v err=%v", ok, err)
	}
	if string(ra.Seq) != "ACGT" {
		t.Fatalf("got seq %q", ra.Seq)
	}

	ra, _, ok, err = f.NextReadPair()
	if err != nil || !ok {
		t.Fatalf("got ok=%v err=%v", ok, err)
	}
	if string(ra.Seq) != "TTTT" {
		t.Fatalf("got seq %q", ra.Seq)
	}

	_, _, ok, err = f.NextReadPair()
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Fatalf("expected no third read pair")
	}
}

func TestReverseComplementMate2(t *testing.T) {
	path1 := writeTemp(t, "a_1.fasta", ">r1\nACGT\n")
	path2 := writeTemp(t, "a_2.fasta", ">r1\nACGT\n")
	s1, _ := source.New(pattern.FormatFasta, []string{path1}, pattern.DefaultParams())
	s2, _ := source.New(pattern.FormatFasta, []string{path2}, pattern.DefaultParams())
	c, err := compose.NewDual([]*source.Source{s1}, []*source.Source{s2})
	if err != nil {
		t.Fatal(err)
	}
	f := New(c, 1, true)

	ra, rb, ok, err := f.NextReadPair()
	if err != nil || !ok {
		t.Fatalf("got ok=%v err=%v", ok, err)
	}
	if string(ra.Seq) != "ACGT" {
		t.Fatalf("expected mate 1 untouched, got %q", ra.Seq)
	}
	if string(rb.Seq) != "ACGT" {
		t.Fatalf("got mate 2 seq %q, want ACGT reverse-complemented to itself", rb.Seq)
	}
}

package compose

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shenwei356/seqfeed/pattern"
	"github.com/shenwei356/seqfeed/read"
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

func TestSoloAssignsGapFreeRdids(t *testing.T) {
	content := ">r1\nACGT\n>r2\nACGT\n>r3\nACGT\n"
	path := writeTemp(t, "a.fasta", content)
	src, err := source.New(pattern.FormatFasta, []string{path}, pattern.DefaultParams())
	if err != nil {
		t.Fatal(err)
	}
	c, err := NewSolo([]*source.Source{src})
	if err != nil {
		t.Fatal(err)
	}
	buf := read.NewBuffer(2)

	done, err := c.NextBatch(buf)
	if err != nil {
		t.Fatal(err)
	}
	if done || buf.Filled() != 2 {
		t.Fatalf("got done=%v filled=%d", done, buf.Filled())
	}
	if buf.A[0].Rdid != 0 || buf.A[1].Rdid != 1 {
		t.Fatalf("got rdids %d, %d", buf.A[0].Rdid, buf.A[1].Rdid)
	}

	done, err = c.NextBatch(buf)
	if err != nil {
		t.Fatal(err)
	}
	if !done && buf.Filled() != 1 {
		t.Fatalf("got done=%v filled=%d", done, buf.Filled())
	}
	if buf.A[0].Rdid != 2 {
		t.Fatalf("got rdid %d, want 2", buf.A[0].Rdid)
	}
}

func TestDualPairsMatesInLockStep(t *testing.T) {
	path1 := writeTemp(t, "a_1.fasta", ">r1\nACGT\n>r2\nTTTT\n")
	path2 := writeTemp(t, "a_2.fasta", ">r1\nGGGG\n>r2\nCCCC\n")
	s1, err := source.New(pattern.FormatFasta, []string{path1}, pattern.DefaultParams())
	if err != nil {
		t.Fatal(err)
	}
	s2, err := source.New(pattern.FormatFasta, []string{path2}, pattern.DefaultParams())
	if err != nil {
		t.Fatal(err)
	}
	c, err := NewDual([]*source.Source{s1}, []*source.Source{s2})
	if err != nil {
		t.Fatal(err)
	}
	buf := read.NewBuffer(4)
	done, err := c.NextBatch(buf)
	if err != nil {
		t.Fatal(err)
	}
	if !done || buf.Filled() != 2 {
		t.Fatalf("got done=%v filled=%d", done, buf.Filled())
	}
	if string(buf.A[0].Seq) != "ACGT" || string(buf.B[0].Seq) != "GGGG" {
		t.Fatalf("got mate1=%q mate2=%q", buf.A[0].Seq, buf.B[0].Seq)
	}
	if buf.A[0].Rdid != buf.B[0].Rdid {
		t.Fatalf("expected both mates of a pair to share an rdid")
	}
}

func TestDualDetectsDesync(t *testing.T) {
	path1 := writeTemp(t, "a_1.fasta", ">r1\nACGT\n>r2\nTTTT\n")
	path2 := writeTemp(t, "a_2.fasta", ">r1\nGGGG\n")
	s1, err := source.New(pattern.FormatFasta, []string{path1}, pattern.DefaultParams())
	if err != nil {
		t.Fatal(err)
	}
	s2, err := source.New(pattern.FormatFasta, []string{path2}, pattern.DefaultParams())
	if err != nil {
		t.Fatal(err)
	}
	c, err := NewDual([]*source.Source{s1}, []*source.Source{s2})
	if err != nil {
		t.Fatal(err)
	}
	buf := read.NewBuffer(4)
	if _, err := c.NextBatch(buf); err == nil {
		t.Fatalf("expected a desync error when mate files have unequal record counts")
	}
}

func TestNewDualRejectsMismatchedListLengths(t *testing.T) {
	path := writeTemp(t, "a.fasta", ">r1\nACGT\n")
	s, err := source.New(pattern.FormatFasta, []string{path}, pattern.DefaultParams())
	if err != nil {
		t.Fatal(err)
	}
	if _, err := NewDual([]*source.Source{s}, []*source.Source{s, s}); err == nil {
		t.Fatalf("expected an error for mismatched mate1/mate2 list lengths")
	}
}

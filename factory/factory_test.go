package factory

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shenwei356/seqfeed/pattern"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestBuildSoloFromSingles(t *testing.T) {
	path := writeTemp(t, "a.fasta", ">r1\nACGT\n")
	c, err := Build(Config{
		Format:  pattern.FormatFasta,
		Params:  pattern.DefaultParams(),
		Singles: []string{path},
	})
	if err != nil {
		t.Fatal(err)
	}
	if c == nil {
		t.Fatalf("expected a composer")
	}
}

func TestBuildDualFromMatePair(t *testing.T) {
	p1 := writeTemp(t, "a_1.fasta", ">r1\nACGT\n")
	p2 := writeTemp(t, "a_2.fasta", ">r1\nTTTT\n")
	c, err := Build(Config{
		Format: pattern.FormatFasta,
		Params: pattern.DefaultParams(),
		Mate1:  []string{p1},
		Mate2:  []string{p2},
	})
	if err != nil {
		t.Fatal(err)
	}
	if c == nil {
		t.Fatalf("expected a composer")
	}
}

func TestBuildRejectsMismatchedMateLists(t *testing.T) {
	p1 := writeTemp(t, "a_1.fasta", ">r1\nACGT\n")
	p2a := writeTemp(t, "a_2.fasta", ">r1\nTTTT\n")
	p2b := writeTemp(t, "b_2.fasta", ">r1\nTTTT\n")
	_, err := Build(Config{
		Format: pattern.FormatFasta,
		Params: pattern.DefaultParams(),
		Mate1:  []string{p1},
		Mate2:  []string{p2a, p2b},
	})
	if err == nil {
		t.Fatalf("expected an error for mismatched mate list lengths")
	}
}

func TestBuildRejectsNoInput(t *testing.T) {
	_, err := Build(Config{Format: pattern.FormatFasta, Params: pattern.DefaultParams()})
	if err == nil {
		t.Fatalf("expected an error when no input files are given")
	}
}

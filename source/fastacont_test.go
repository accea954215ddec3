package source

import (
	"testing"

	"github.com/shenwei356/seqfeed/pattern"
	"github.com/shenwei356/seqfeed/read"
)

func TestFastaContinuousWindowSampling(t *testing.T) {
	// A single 8-base record sampled with a 3-base window every 2 bases.
	content := ">chr1\nACGTACGT\n"
	path := writeTemp(t, "a.fasta", content)
	p := pattern.DefaultParams()
	p.Format = pattern.FormatFastaContinuous
	p.SampleLen = 3
	p.SampleFreq = 2
	s, err := New(pattern.FormatFastaContinuous, []string{path}, p)
	if err != nil {
		t.Fatal(err)
	}
	buf := read.NewBuffer(16)
	_, count, err := s.NextBatch(buf, MateA)
	if err != nil {
		t.Fatal(err)
	}
	wantNames := []string{"chr1_0", "chr1_2", "chr1_4"}
	wantSeqs := []string{"ACG", "GTA", "ACG"}
	if count != len(wantSeqs) {
		t.Fatalf("got %d sampled windows, want %d", count, len(wantSeqs))
	}
	for i := 0; i < count; i++ {
		rec := buf.A[i]
		if !s.parseOne(&rec, uint64(i)) {
			t.Fatalf("expected window %d to parse", i)
		}
		if string(rec.Name) != wantNames[i] {
			t.Fatalf("window %d: got name %q want %q", i, rec.Name, wantNames[i])
		}
		if string(rec.Seq) != wantSeqs[i] {
			t.Fatalf("window %d: got seq %q want %q", i, rec.Seq, wantSeqs[i])
		}
	}
}

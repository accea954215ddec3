package bioquality

import "testing"

func TestNormalizePhred64(t *testing.T) {
	q := []byte("hhhh") // 0x68 - 31 = 0x49 = 'I'
	if err := NormalizePhred64(q); err != nil {
		t.Fatal(err)
	}
	if string(q) != "IIII" {
		t.Fatalf("got %q, want IIII", q)
	}
}

func TestNormalizePhred64OutOfRange(t *testing.T) {
	q := []byte{10} // way below phredOffset64
	if err := NormalizePhred64(q); err == nil {
		t.Fatalf("expected error for out-of-range phred64 byte")
	}
}

func TestParseIntQuals(t *testing.T) {
	out, err := ParseIntQuals([]byte("0 40 93 100 -5"))
	if err != nil {
		t.Fatal(err)
	}
	want := []byte{33, 73, 126, 126, 33}
	if string(out) != string(want) {
		t.Fatalf("got %v want %v", out, want)
	}
}

func TestSynthesizeQuality(t *testing.T) {
	q := SynthesizeQuality(4)
	if string(q) != "IIII" {
		t.Fatalf("got %q want IIII", q)
	}
}

func TestValidateAndFixBasesReplacesNonIUPAC(t *testing.T) {
	bases := []byte("ACGTXACGT")
	warned, err := ValidateAndFixBases(bases)
	if err != nil {
		t.Fatal(err)
	}
	if !warned {
		t.Fatalf("expected a warning for the invalid base")
	}
	if string(bases) != "ACGTNACGT" {
		t.Fatalf("got %q", bases)
	}
}

func TestValidateAndFixBasesCleanSeq(t *testing.T) {
	bases := []byte("ACGTACGT")
	warned, err := ValidateAndFixBases(bases)
	if err != nil {
		t.Fatal(err)
	}
	if warned {
		t.Fatalf("clean sequence should not warn")
	}
}

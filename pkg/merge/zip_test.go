// 8 Oct 2026

package merge_test

import (
	"errors"
	"testing"

	. "github.com/andrew-torda/allele_merge/pkg/merge"
	"github.com/andrew-torda/allele_merge/pkg/msa"
)

func ops(tmpl Template) []Op {
	r := make([]Op, len(tmpl))
	for i, ins := range tmpl {
		r[i] = ins.Op
	}
	return r
}

func sameOps(a, b []Op) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// TestZipThree is the little three segment case. The coding GGG is
// segment 1 of the genomic data and has to start at 6 in merged
// coordinates.
func TestZipThree(t *testing.T) {
	gen := []msa.Segment{
		{Marker: msa.Marker{Idx: -1, Pos: -1, Len: 7}, Text: "AAACCC"},
		{Marker: msa.Marker{Idx: 0, Pos: 6, Len: 4}, Text: "GGG"},
		{Marker: msa.Marker{Idx: 1, Pos: 10, Len: 4}, Text: "TTT"},
	}
	nuc := []msa.Segment{{Marker: msa.Marker{Idx: -1, Pos: -1, Len: 4}, Text: "GGG"}}
	tmpl, err := ZipAlign(gen, nuc)
	if err != nil {
		t.Fatal(err)
	}
	if want := []Op{Fill, Merge, Fill}; !sameOps(ops(tmpl), want) {
		t.Fatalf("got ops %v wanted %v", ops(tmpl), want)
	}
	m := tmpl[1]
	if m.Genomic.Start() != 6 || m.Coding.Start() != 6 {
		t.Errorf("merge starts at %d (genomic) %d (coding), wanted 6",
			m.Genomic.Start(), m.Coding.Start())
	}
	if m.Genomic.Marker != gen[1].Marker || m.Coding.Marker != nuc[0].Marker {
		t.Error("merge instruction has the wrong markers")
	}
}

// TestZipOffsets checks that every region starts where the one before
// it finished, in merged coordinates.
func TestZipOffsets(t *testing.T) {
	for _, set := range []struct {
		name     string
		gen, nuc []msa.Token
	}{
		{"plain", refGen, refNuc},
		{"gappy", gappyGen, gappyNuc},
	} {
		tmpl, err := ZipAlign(msa.Bounded(set.gen), msa.Bounded(set.nuc))
		if err != nil {
			t.Fatal(set.name, err)
		}
		next := set.gen[0].Pos - 1
		for i, ins := range tmpl {
			if ins.Genomic.Start() != next {
				t.Errorf("%s instruction %d starts at %d, wanted %d", set.name, i, ins.Genomic.Start(), next)
			}
			if ins.Op == Fill {
				next += ins.Genomic.Marker.Len
				continue
			}
			if ins.Coding.Start() != next {
				t.Errorf("%s coding region %d starts at %d, wanted %d", set.name, i, ins.Coding.Start(), next)
			}
			next += ins.Coding.Marker.Len
		}
	}
}

func TestZipGappy(t *testing.T) {
	tmpl, err := ZipAlign(msa.Bounded(gappyGen), msa.Bounded(gappyNuc))
	if err != nil {
		t.Fatal(err)
	}
	if want := []Op{Fill, Merge, Fill}; !sameOps(ops(tmpl), want) {
		t.Fatalf("got ops %v wanted %v", ops(tmpl), want)
	}
	if off := tmpl[2].Genomic.Offset; off != 1 {
		t.Errorf("last intron should move by 1, got %d", off)
	}
}

// TestZipOneChar has a coding exon differing by one base. It must never
// be merged, so we run out of genomic segments.
func TestZipOneChar(t *testing.T) {
	nuc := msa.Bounded([]msa.Token{msa.NewStart(0), msa.NewSequence(0, "GGC"), msa.NewEnd(3)})
	tmpl, err := ZipAlign(msa.Bounded(refGen), nuc)
	if !errors.Is(err, ErrCodingOverrun) {
		t.Fatalf("wanted coding overrun, got %v", err)
	}
	if tmpl != nil {
		t.Error("should not get a template on failure")
	}
}

func TestZipEmpty(t *testing.T) {
	if _, err := ZipAlign(nil, msa.Bounded(refNuc)); !errors.Is(err, ErrEmptyGenomic) {
		t.Errorf("wanted empty genomic error, got %v", err)
	}
	tmpl, err := ZipAlign(msa.Bounded(refGen), nil)
	if err != nil {
		t.Fatal(err)
	}
	for _, ins := range tmpl {
		if ins.Op != Fill {
			t.Fatal("no coding data should give only fills")
		}
	}
}

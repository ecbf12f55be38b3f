package merge

import (
	"fmt"

	"github.com/andrew-torda/allele_merge/pkg/msa"
)

// ZipAlign builds the template from the reference allele's genomic and
// coding segments.
// We walk along both lists. The genomic segment at the head is either
// one of the exons, in which case its text is exactly the text of the
// coding segment at the head of the other list, or it is an intron or
// UTR, which is only in the genomic list. Positions are no help here.
// The two alignments have their own coordinates, so text is the key.
// next is where the next region starts in merged coordinates.
func ZipAlign(gen, nuc []msa.Segment) (Template, error) {
	if len(gen) == 0 {
		return nil, ErrEmptyGenomic
	}
	tmpl := make(Template, 0, len(gen))
	next := gen[0].Marker.Pos
	fill := func(g msa.Segment) {
		r := Region[string]{Marker: g.Marker, Offset: next - g.Marker.Pos, Payload: g.Text}
		tmpl = append(tmpl, Instr[string]{Op: Fill, Genomic: r})
		next += g.Marker.Len
	}
	for len(nuc) > 0 {
		if len(gen) == 0 {
			return nil, fmt.Errorf("%w: %d coding segments left, next one at %d",
				ErrCodingOverrun, len(nuc), nuc[0].Marker.Pos)
		}
		g, n := gen[0], nuc[0]
		gen = gen[1:]
		if g.Text != n.Text {
			fill(g)
			continue
		}
		tmpl = append(tmpl, Instr[string]{
			Op:      Merge,
			Genomic: Region[string]{Marker: g.Marker, Offset: next - g.Marker.Pos, Payload: g.Text},
			Coding:  Region[string]{Marker: n.Marker, Offset: next - n.Marker.Pos, Payload: n.Text},
		})
		next += n.Marker.Len
		nuc = nuc[1:]
	}
	for _, g := range gen {
		fill(g)
	}
	return tmpl, nil
}

package merge

import "github.com/andrew-torda/allele_merge/pkg/msa"

// boundary is the merged boundary token for a region. The sentinel
// region has none.
func boundary(r Region[[]msa.Token]) []msa.Token {
	if r.Marker.IsBeforeStart() {
		return nil
	}
	return []msa.Token{msa.NewBoundary(r.Marker.Idx, r.Start())}
}

// AlignReference flattens the reference's own replayed instructions into
// the new reference alignment. Coding regions lose their Start and End.
// The merged sequence starts and stops where the genomic one does.
func AlignReference(c Concrete) []msa.Token {
	var out []msa.Token
	for _, ins := range c {
		out = append(out, boundary(ins.Genomic)...)
		switch ins.Op {
		case Fill:
			out = append(out, msa.Shift(ins.Genomic.Payload, ins.Genomic.Offset)...)
		case Merge:
			toks := msa.Strip(ins.Coding.Payload, msa.Start, msa.End)
			out = append(out, msa.Shift(toks, ins.Coding.Offset)...)
		}
	}
	return out
}

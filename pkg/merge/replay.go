package merge

import (
	"fmt"

	"github.com/andrew-torda/allele_merge/pkg/msa"
)

// Replay cuts an allele's genomic and coding token sequences at the
// boundaries the template knows about. Each template region ends at a
// boundary token in the allele's own coordinates, region.End() -
// region.Offset. That token is dropped. The renderers put a new one back
// in merged coordinates. Fill regions take from gen, Merge regions from
// both.
// Tokens left over after the last instruction mean the allele does not
// fit the template.
func Replay(tmpl Template, gen, nuc []msa.Token) (Concrete, error) {
	return replay(tmpl, gen, nuc, false)
}

// ReplayPartial is Replay for alleles we know to be shorter or longer
// than the template. Missing boundaries take the rest of the tokens and
// leftovers are ignored.
func ReplayPartial(tmpl Template, gen, nuc []msa.Token) (Concrete, error) {
	return replay(tmpl, gen, nuc, true)
}

func replay(tmpl Template, gen, nuc []msa.Token, partial bool) (Concrete, error) {
	if len(tmpl) == 0 || tmpl[0].Op != Fill || !tmpl[0].Genomic.Marker.IsBeforeStart() {
		return nil, ErrBadTemplate
	}
	lastNuc := -1
	for i, ins := range tmpl {
		if ins.Op == Merge {
			lastNuc = i
		}
	}
	var err error
	out := make(Concrete, len(tmpl))
	for i, ins := range tmpl {
		out[i].Op = ins.Op
		last := partial || i == len(tmpl)-1
		if out[i].Genomic, gen, err = cut(ins.Genomic, gen, last, partial); err != nil {
			return nil, fmt.Errorf("genomic: %w", err)
		}
		if ins.Op == Fill {
			continue
		}
		last = partial || i == lastNuc
		if out[i].Coding, nuc, err = cut(ins.Coding, nuc, last, partial); err != nil {
			return nil, fmt.Errorf("coding: %w", err)
		}
	}
	if partial {
		return out, nil
	}
	if len(gen) != 0 {
		return nil, fmt.Errorf("%w: %d genomic tokens left, starting with %v",
			ErrLengthMismatch, len(gen), gen[0])
	}
	if len(nuc) != 0 {
		return nil, fmt.Errorf("%w: %d coding tokens left, starting with %v",
			ErrLengthMismatch, len(nuc), nuc[0])
	}
	return out, nil
}

// cut takes the tokens up to the boundary closing region r. If r is the
// last region to read from this stream, there may be no boundary and we
// take the lot. Unless partial, the lot must still fit in the region,
// without further boundaries and without running past its end.
func cut(r Region[string], toks []msa.Token, last, partial bool) (Region[[]msa.Token], []msa.Token, error) {
	at := r.splitPos()
	c := Region[[]msa.Token]{Marker: r.Marker, Offset: r.Offset}
	for i, t := range toks {
		if t.Kind == msa.Boundary && t.Pos == at {
			c.Payload = toks[:i:i]
			return c, toks[i+1:], nil
		}
	}
	if !last {
		return c, toks, fmt.Errorf("%w: no boundary at %d after segment %d",
			ErrLengthMismatch, at, r.Marker.Idx)
	}
	if !partial {
		if i := msa.Index(toks, msa.Boundary); i >= 0 {
			return c, toks, fmt.Errorf("%w: %v after the last segment %d",
				ErrLengthMismatch, toks[i], r.Marker.Idx)
		}
		if n := len(toks); n > 0 && toks[n-1].Next() > at {
			return c, toks, fmt.Errorf("%w: last segment %d runs to %d, template stops at %d",
				ErrLengthMismatch, r.Marker.Idx, toks[n-1].Next(), at)
		}
	}
	c.Payload = toks
	return c, nil, nil
}

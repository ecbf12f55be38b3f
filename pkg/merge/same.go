// 7 Oct 2026

package merge

import (
	"fmt"

	"github.com/andrew-torda/allele_merge/pkg/msa"
)

// sameState is carried from one instruction to the next by AlignSame.
// Each step returns a new state. Nothing else is remembered.
type sameState struct {
	out       []msa.Token
	inCoding  bool // we have seen the allele's coding Start, but not its End
	open      bool // out has a Start without a matching End
	needStart bool // we closed out because coding data was missing
}

// emit appends tokens and keeps track of Start and End.
func (s sameState) emit(toks ...msa.Token) sameState {
	for _, t := range toks {
		switch t.Kind {
		case msa.Start:
			s.open, s.needStart = true, false
		case msa.End:
			s.open = false
		}
	}
	s.out = append(s.out, toks...)
	return s
}

// closeAt ends the output at pos, if it was running.
func (s sameState) closeAt(pos int) sameState {
	if !s.open {
		return s
	}
	s = s.emit(msa.NewEnd(pos))
	s.needStart = true
	return s
}

// reopen writes toks. If the output is closed, a Start goes in front of
// the first piece of sequence.
func (s sameState) reopen(toks []msa.Token) sameState {
	if !s.open {
		if i := msa.Index(toks, msa.Sequence); i >= 0 {
			s = s.emit(toks[:i]...)
			s = s.emit(msa.NewStart(toks[i].Pos))
			toks = toks[i:]
		}
	}
	return s.emit(toks...)
}

// fill copies a genomic region. A running output does not get a second
// Start. A closed one gets a Start before any sequence, even if the
// allele's own Start was in an exon that had no coding data.
func (s sameState) fill(r Region[[]msa.Token]) sameState {
	s = s.emit(boundary(r)...)
	toks := msa.Shift(r.Payload, r.Offset)
	if s.open {
		toks = msa.Strip(toks, msa.Start)
	}
	if !s.open && msa.Index(toks, msa.Start) < 0 {
		return s.reopen(toks)
	}
	return s.emit(toks...)
}

// finish ends an output still running after the last instruction. This
// happens when the genomic End was in an exon and so got replaced by
// coding data. The End goes straight after the last sequence, leaving
// trailing gaps and boundaries outside.
func (s sameState) finish() sameState {
	if !s.open || len(s.out) == 0 {
		return s
	}
	i := len(s.out)
	for i > 0 && s.out[i-1].Kind != msa.Sequence {
		i--
	}
	if i == 0 {
		i = len(s.out)
	}
	out := make([]msa.Token, 0, len(s.out)+1)
	out = append(out, s.out[:i]...)
	out = append(out, msa.NewEnd(s.out[i-1].Next()))
	s.out = append(out, s.out[i:]...)
	s.open = false
	return s
}

// merge puts the allele's coding data in place of a genomic exon. The
// region is as long as the coding segment, which need not be the length
// of the genomic one if the two alignments put gaps in different places.
// Before we have seen the coding Start, only gaps may come before it.
// A region with nothing but gaps has no coding data. We end the output
// at the boundary and start again in the next genomic region. If the
// Start is late, the output is also ended before the boundary and the
// Start is kept.
func (s sameState) merge(ins Instr[[]msa.Token]) (sameState, error) {
	gen, end := ins.Genomic, ins.Coding.End()
	toks := msa.Shift(ins.Coding.Payload, ins.Coding.Offset)
	if s.inCoding {
		return s.emit(boundary(gen)...).tail(toks, end)
	}
	i := msa.FirstNonGap(toks)
	if i == len(toks) {
		return s.closeAt(gen.Start()).emit(boundary(gen)...).emit(toks...), nil
	}
	if toks[i].Kind != msa.Start {
		return s, fmt.Errorf("%w: found %v", ErrGapExpected, toks[i])
	}
	if toks[i].Pos != gen.Start()+1 {
		s = s.closeAt(gen.Start())
	}
	s = s.emit(boundary(gen)...).emit(toks[:i]...)
	if !s.open {
		s = s.emit(toks[i])
	}
	s.inCoding = true
	return s.tail(toks[i+1:], end)
}

// tail handles coding tokens after the Start, looking for the End.
// An End right on the next boundary with nothing after it just means the
// exon is finished. The genomic data carries on, so the End is dropped.
// An End followed by gaps means the rest is missing, so it is kept.
// If gaps after an End lead to another Start, the End stays and we
// carry on from the new Start. A Sequence straight after an End is an
// error.
func (s sameState) tail(toks []msa.Token, end int) (sameState, error) {
	j := msa.Index(toks, msa.End)
	if j < 0 {
		return s.reopen(toks), nil
	}
	s = s.reopen(toks[:j])
	s.inCoding = false
	e, rest := toks[j], toks[j+1:]
	if len(rest) == 0 && e.Pos == end {
		return s, nil
	}
	k := msa.FirstNonGap(rest)
	if k < len(rest) && rest[k].Kind != msa.Start {
		return s, fmt.Errorf("%w: %v after %v", ErrTrailingContent, rest[k], e)
	}
	s = s.emit(e).emit(rest[:k]...)
	s.needStart = true
	if k == len(rest) {
		return s, nil
	}
	s = s.emit(rest[k])
	s.inCoding = true
	return s.tail(rest[k+1:], end)
}

// AlignSame flattens an allele's replayed instructions, like
// AlignReference, but copes with coding data which is missing for whole
// exons or stops early. Run on the reference's own instructions, it must
// give what AlignReference gives.
func AlignSame(c Concrete) ([]msa.Token, error) {
	var s sameState
	var err error
	for _, ins := range c {
		if ins.Op == Fill {
			s = s.fill(ins.Genomic)
			continue
		}
		if s, err = s.merge(ins); err != nil {
			return nil, fmt.Errorf("segment %d: %w", ins.Genomic.Marker.Idx, err)
		}
	}
	return s.finish().out, nil
}

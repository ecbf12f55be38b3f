package msa

import "strings"

// Marker describes one boundary. Len is filled in as we scan. It counts
// the columns from the boundary up to, but not including, the next
// boundary, so it is the length of the segment plus one.
type Marker struct {
	Idx int // segment index, -1 before the first boundary
	Pos int
	Len int
}

// BeforeStart is the marker for everything before the first real
// boundary. Its position is set from the first token we see.
var BeforeStart = Marker{Idx: -1, Pos: -1}

// IsBeforeStart is true for the sentinel marker.
func (m Marker) IsBeforeStart() bool { return m.Idx == BeforeStart.Idx }

// Segment is a marker and the characters found up to the next boundary.
type Segment struct {
	Marker Marker
	Text   string
}

// Bounded cuts a token sequence at its boundaries. With n boundary
// tokens, we return n+1 segments, the first one with the BeforeStart
// marker. The sentinel goes one column before the first token, so an
// allele starting with Start(s) gets a sentinel at s - 1. If gaps come
// before the Start, the sentinel still goes before the first gap, not
// before the Start. That way Pos + Len of every marker is the position
// of the boundary that follows.
// End tokens carry nothing and are dropped. Gaps add to the length, but
// not to the text.
// Nothing here checks positions. Bad input gives silly lengths and that
// is left to PositionsAlign.
// An empty input gives no segments at all.
func Bounded(toks []Token) []Segment {
	if len(toks) == 0 {
		return nil
	}
	var segs []Segment
	var b strings.Builder
	cur := BeforeStart
	cur.Pos = toks[0].Pos - 1
	cur.Len = 1
	for _, t := range toks {
		switch t.Kind {
		case Boundary:
			segs = append(segs, Segment{Marker: cur, Text: b.String()})
			b.Reset()
			cur = Marker{Idx: t.Idx, Pos: t.Pos, Len: 1}
		case Gap:
			cur.Len += t.Len
		case Sequence:
			cur.Len += len(t.Seq)
			b.WriteString(t.Seq)
		}
	}
	return append(segs, Segment{Marker: cur, Text: b.String()})
}

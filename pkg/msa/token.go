// 3 Oct 2026

// Package msa holds the tokens an aligned allele is made of, and the
// two operations everything else leans on. Bounded cuts a token sequence
// into segments at its exon/intron boundaries. PositionsAlign checks
// that the coordinates of a token sequence run without holes or overlaps.
//
// Coordinates. Genomic, coding and merged alignments all use plain
// integer column numbers. A boundary takes up one column (the "|" in the
// alignment files), Start and End take up none, gaps and sequence take
// up their length.
package msa

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind says what sort of token we have.
type Kind byte

const (
	Boundary Kind = iota // exon/intron border
	Start                // the allele's sequence starts here
	End                  // and stops here
	Gap                  // missing or unknown data
	Sequence             // real characters
)

var kindNames = [...]string{"Boundary", "Start", "End", "Gap", "Sequence"}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// Token is one element of an aligned allele. Which fields mean anything
// depends on Kind.
//	Boundary  Idx, Pos   (Idx is the segment that follows)
//	Start     Pos
//	End       Pos
//	Gap       Pos, Len
//	Sequence  Pos, Seq
// Tokens are small values and are never changed in place.
type Token struct {
	Kind Kind
	Pos  int    // position, or first position for gaps and sequence
	Idx  int    // segment index of a boundary
	Len  int    // length of a gap
	Seq  string // characters of a sequence
}

// NewBoundary, NewStart and friends save typing out struct literals.
func NewBoundary(idx, pos int) Token { return Token{Kind: Boundary, Idx: idx, Pos: pos} }
func NewStart(pos int) Token { return Token{Kind: Start, Pos: pos} }
func NewEnd(pos int) Token { return Token{Kind: End, Pos: pos} }
func NewGap(pos, length int) Token { return Token{Kind: Gap, Pos: pos, Len: length} }
func NewSequence(pos int, s string) Token { return Token{Kind: Sequence, Pos: pos, Seq: s} }

// Width is the number of columns a token occupies.
func (t Token) Width() int {
	switch t.Kind {
	case Boundary:
		return 1
	case Gap:
		return t.Len
	case Sequence:
		return len(t.Seq)
	}
	return 0
}

// Next is the position the following token must start at.
func (t Token) Next() int { return t.Pos + t.Width() }

// Shift returns the token moved by d columns.
func (t Token) Shift(d int) Token {
	t.Pos += d
	return t
}

// String gives something short and readable for error messages.
func (t Token) String() string {
	switch t.Kind {
	case Boundary:
		return fmt.Sprintf("Boundary{idx: %d, pos: %d}", t.Idx, t.Pos)
	case Start:
		return fmt.Sprintf("Start(%d)", t.Pos)
	case End:
		return fmt.Sprintf("End(%d)", t.Pos)
	case Gap:
		return fmt.Sprintf("Gap{start: %d, length: %d}", t.Pos, t.Len)
	case Sequence:
		return fmt.Sprintf("Sequence{start: %d, %q}", t.Pos, trimStr(t.Seq, 20))
	}
	return t.Kind.String()
}

// trimStr cuts long sequences down for printing
func trimStr(s string, n int) string {
	if len(s) > n {
		return s[:n] + "..."
	}
	return s
}

// Shift moves a whole slice. It always makes a new slice.
func Shift(toks []Token, d int) []Token {
	r := make([]Token, len(toks))
	for i, t := range toks {
		r[i] = t.Shift(d)
	}
	return r
}

// Strip returns the tokens with any of the given kinds removed.
func Strip(toks []Token, kinds ...Kind) []Token {
	r := make([]Token, 0, len(toks))
outer:
	for _, t := range toks {
		for _, k := range kinds {
			if t.Kind == k {
				continue outer
			}
		}
		r = append(r, t)
	}
	return r
}

// Index returns the index of the first token of kind k, or -1.
func Index(toks []Token, k Kind) int {
	for i, t := range toks {
		if t.Kind == k {
			return i
		}
	}
	return -1
}

// FirstNonGap returns the index of the first token which is not a gap,
// or len(toks) if there is none.
func FirstNonGap(toks []Token) int {
	for i, t := range toks {
		if t.Kind != Gap {
			return i
		}
	}
	return len(toks)
}

// Text concatenates the characters of all sequence tokens.
func Text(toks []Token) string {
	var b strings.Builder
	for _, t := range toks {
		if t.Kind == Sequence {
			b.WriteString(t.Seq)
		}
	}
	return b.String()
}

// Allele is one named, aligned sequence.
type Allele struct {
	Name   string
	Tokens []Token
}

// Alignment is what we get from one alignment file: every allele of a
// gene, aligned against the named reference. Genomic and coding files
// for the same gene should agree on Reference and Date.
type Alignment struct {
	Reference string
	Date      string
	Alleles   []Allele
}

// Find returns the allele with the given name.
func (a *Alignment) Find(name string) (Allele, bool) {
	for _, al := range a.Alleles {
		if al.Name == name {
			return al, true
		}
	}
	return Allele{}, false
}

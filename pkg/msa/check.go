// 3 Oct 2026

package msa

import (
	"errors"
	"fmt"
)

var (
	ErrEmpty      = errors.New("empty token sequence")
	ErrBadFirst   = errors.New("bad first token")
	ErrMisaligned = errors.New("positions are not aligned")
)

// PositionError says which token was in the wrong place and where we
// wanted it to be. errors.Is(err, ErrMisaligned) is true for it.
type PositionError struct {
	Tok  Token // the offending token
	Ndx  int   // its index in the sequence
	Want int   // expected position
}

func (e *PositionError) Error() string {
	return fmt.Sprintf("%v: %v at index %d, expected position %d",
		ErrMisaligned, e.Tok, e.Ndx, e.Want)
}

func (e *PositionError) Is(target error) bool { return target == ErrMisaligned }

// PositionsAlign walks a token sequence and checks that each token starts
// where the previous one stopped. The first token sets the position and
// must be a Boundary, Start or Gap. We return the position after the
// last token.
func PositionsAlign(toks []Token) (int, error) {
	if len(toks) == 0 {
		return 0, ErrEmpty
	}
	switch toks[0].Kind {
	case Boundary, Start, Gap:
	default:
		return 0, fmt.Errorf("%w: cannot start with %v", ErrBadFirst, toks[0])
	}
	p := toks[0].Pos
	for i, t := range toks {
		if t.Pos != p {
			return p, &PositionError{Tok: t, Ndx: i, Want: p}
		}
		p = t.Next()
	}
	return p, nil
}

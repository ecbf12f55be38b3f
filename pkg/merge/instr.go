// 5 Oct 2026

// Package merge splices coding (exon only) alignments into genomic
// alignments.
//
// The work is done in three steps. ZipAlign looks at the reference
// allele's genomic and coding segments and writes a template, a list of
// instructions saying which genomic segments are copied as they are and
// which are replaced by coding data. Replay cuts any allele's token
// sequences at the template's boundaries. Finally, AlignReference or
// AlignSame turn the replayed instructions back into one token sequence
// in merged coordinates.
package merge

import (
	"errors"

	"github.com/andrew-torda/allele_merge/pkg/msa"
)

var (
	ErrEmptyGenomic    = errors.New("empty genomic alignment")
	ErrCodingOverrun   = errors.New("coding data extends past the genomic data")
	ErrLengthMismatch  = errors.New("template and allele lengths do not match")
	ErrBadTemplate     = errors.New("template does not start with the before-start fill")
	ErrTrailingContent = errors.New("malformed content after end")
	ErrGapExpected     = errors.New("non-gap content before start")
)

// Region is a segment moved into merged coordinates. For a template the
// payload is the segment's text, after a replay it is the allele's own
// tokens for the segment, without the closing boundary.
type Region[P any] struct {
	Marker  msa.Marker
	Offset  int // add this to get merged coordinates
	Payload P
}

// Start is the merged position of the region's boundary.
func (r Region[P]) Start() int { return r.Marker.Pos + r.Offset }

// End is the merged position of the next boundary.
func (r Region[P]) End() int { return r.Start() + r.Marker.Len }

// splitPos is where the next boundary sits in the region's own
// coordinates.
func (r Region[P]) splitPos() int { return r.End() - r.Offset }

// Op says what an instruction does.
type Op byte

const (
	Fill  Op = iota // copy the genomic segment
	Merge           // put the coding segment in place of the genomic one
)

func (o Op) String() string {
	if o == Fill {
		return "FillFromGenomic"
	}
	return "MergeCodingIntoGenomic"
}

// Instr is one step of a template. Coding is only used by Merge. Even
// then, the genomic region's marker is what we use for the boundary.
type Instr[P any] struct {
	Op      Op
	Genomic Region[P]
	Coding  Region[P]
}

// Template is built once from the reference and reused for every allele.
type Template = []Instr[string]

// Concrete is a template replayed against one allele.
type Concrete = []Instr[[]msa.Token]

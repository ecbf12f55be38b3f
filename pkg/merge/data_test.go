package merge_test

import . "github.com/andrew-torda/allele_merge/pkg/msa"

// The reference, five segments. Exons are segments 1 and 3.
//	AAA | GGG | TTTT | CC | A
var refGen = []Token{
	NewStart(0), NewSequence(0, "AAA"),
	NewBoundary(0, 3), NewSequence(4, "GGG"),
	NewBoundary(1, 7), NewSequence(8, "TTTT"),
	NewBoundary(2, 12), NewSequence(13, "CC"),
	NewBoundary(3, 15), NewSequence(16, "A"),
	NewEnd(17),
}

//	GGG | CC
var refNuc = []Token{
	NewStart(0), NewSequence(0, "GGG"),
	NewBoundary(0, 3), NewSequence(4, "CC"),
	NewEnd(6),
}

// altGen differs from the reference in the introns
var altGen = []Token{
	NewStart(0), NewSequence(0, "AAT"),
	NewBoundary(0, 3), NewSequence(4, "GGG"),
	NewBoundary(1, 7), NewSequence(8, "TTAT"),
	NewBoundary(2, 12), NewSequence(13, "CC"),
	NewBoundary(3, 15), NewSequence(16, "A"),
	NewEnd(17),
}

// altNuc has nothing for the first exon
var altNuc = []Token{
	NewGap(0, 3),
	NewBoundary(0, 3), NewStart(4), NewSequence(4, "CA"),
	NewEnd(6),
}

// nucOnly is an allele without genomic data
var nucOnly = []Token{
	NewStart(0), NewSequence(0, "GGA"),
	NewBoundary(0, 3), NewSequence(4, "CC"),
	NewEnd(6),
}

// brokenNuc has sequence after its End
var brokenNuc = []Token{
	NewStart(0), NewSequence(0, "GGG"),
	NewBoundary(0, 3), NewSequence(4, "C"),
	NewEnd(5), NewSequence(5, "C"),
}

// gappyGen and gappyNuc have the same exon text, but the coding
// alignment has a gap column the genomic one does not.
var gappyGen = []Token{
	NewStart(0), NewSequence(0, "AA"),
	NewBoundary(0, 2), NewSequence(3, "GGG"),
	NewBoundary(1, 6), NewSequence(7, "TT"),
	NewEnd(9),
}

var gappyNuc = []Token{
	NewStart(0), NewSequence(0, "GG"), NewGap(2, 1), NewSequence(3, "G"),
	NewEnd(4),
}

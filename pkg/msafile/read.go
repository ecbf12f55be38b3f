// 11 Oct 2026

// Package msafile reads and writes token files. These are what the
// alignment parser gives us, one token per line, with each allele
// introduced by ">" as in fasta format.
//
//	# reference: A*01:01:01:01
//	# date: 2023-04-01
//	>A*01:01:01:01
//	S 0
//	Q 0 ACGT
//	B 0 4
//	G 5 3
//	E 8
//
// S is Start, E End, B a boundary (segment index, then position), G a
// gap (position and length) and Q a piece of sequence.
package msafile

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/edsrzf/mmap-go"

	"github.com/andrew-torda/allele_merge/pkg/msa"
	"github.com/andrew-torda/allele_merge/pkg/msa/common"
)

const (
	cmmtChar   = '#'
	alleleChar = '>'
	maxLine    = 16 * 1024 * 1024 // a whole gene on one line is possible
)

var (
	ErrNoAllele = errors.New("token before the first allele name")
	ErrBadToken = errors.New("bad token")
)

// ParseError remembers the line number and the line we were trying to
// read.
type ParseError struct {
	N    int    // line number
	Line string // the line that provoked the error
	Err  error
}

const maxMsgLen = 70

func (e *ParseError) Error() string {
	l := e.Line
	if len(l) > maxMsgLen {
		l = l[:maxMsgLen]
	}
	return fmt.Sprintf("line %d: %v\nLine starting with\n%s", e.N, e.Err, l)
}

func (e *ParseError) Unwrap() error { return e.Err }

// header picks the reference name and date out of comment lines.
// Anything else after a comment character is ignored.
func header(line string, a *msa.Alignment) {
	key, val, ok := strings.Cut(strings.TrimLeft(line, "# "), ":")
	if !ok {
		return
	}
	val = strings.TrimSpace(val)
	switch strings.ToLower(strings.TrimSpace(key)) {
	case "reference":
		a.Reference = val
	case "date":
		a.Date = val
	}
}

// atoi converts the fields after the token letter.
func atoi(f []string) ([]int, error) {
	r := make([]int, len(f))
	for i, s := range f {
		n, err := strconv.Atoi(s)
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not a number", ErrBadToken, s)
		}
		r[i] = n
	}
	return r, nil
}

// nFields is how many fields each type of line has, counting the letter.
var nFields = map[string]int{"S": 2, "E": 2, "B": 3, "G": 3, "Q": 3}

// parseToken turns one line into a token.
func parseToken(line string) (msa.Token, error) {
	f := strings.Fields(line)
	if f[0] == "Q" && len(f) == 2 { // empty sequence
		f = append(f, "")
	}
	n, ok := nFields[f[0]]
	if !ok {
		return msa.Token{}, fmt.Errorf("%w: unknown type %q", ErrBadToken, f[0])
	}
	if len(f) != n {
		return msa.Token{}, fmt.Errorf("%w: %s wants %d fields, got %d", ErrBadToken, f[0], n, len(f))
	}
	if f[0] == "Q" {
		pos, err := atoi(f[1:2])
		if err != nil {
			return msa.Token{}, err
		}
		return msa.NewSequence(pos[0], f[2]), nil
	}
	v, err := atoi(f[1:])
	if err != nil {
		return msa.Token{}, err
	}
	switch f[0] {
	case "S":
		return msa.NewStart(v[0]), nil
	case "E":
		return msa.NewEnd(v[0]), nil
	case "B":
		return msa.NewBoundary(v[0], v[1]), nil
	}
	if v[1] < 0 {
		return msa.Token{}, fmt.Errorf("%w: negative gap length %d", ErrBadToken, v[1])
	}
	return msa.NewGap(v[0], v[1]), nil
}

// Read parses a token file from any reader.
func Read(r io.Reader) (msa.Alignment, error) {
	var a msa.Alignment
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLine)
	cur := -1 // index of the allele being read
	for n := 1; sc.Scan(); n++ {
		line := strings.TrimSpace(sc.Text())
		switch {
		case line == "":
		case line[0] == cmmtChar:
			header(line, &a)
		case line[0] == alleleChar:
			name := strings.TrimSpace(line[1:])
			a.Alleles = append(a.Alleles, msa.Allele{Name: name})
			cur = len(a.Alleles) - 1
		case cur < 0:
			return a, &ParseError{N: n, Line: line, Err: ErrNoAllele}
		default:
			t, err := parseToken(line)
			if err != nil {
				return a, &ParseError{N: n, Line: line, Err: err}
			}
			a.Alleles[cur].Tokens = append(a.Alleles[cur].Tokens, t)
		}
	}
	return a, sc.Err()
}

// ReadFile maps a token file into memory and reads it. An empty name or
// "-" means standard input.
func ReadFile(fname string) (msa.Alignment, error) {
	if common.IsStdio(fname) {
		return Read(os.Stdin)
	}
	fp, err := os.Open(fname)
	if err != nil {
		return msa.Alignment{}, err
	}
	defer fp.Close()
	fi, err := fp.Stat()
	if err != nil {
		return msa.Alignment{}, err
	}
	if fi.Size() == 0 { // cannot map zero bytes
		return msa.Alignment{}, nil
	}
	mm, err := mmap.Map(fp, mmap.RDONLY, 0)
	if err != nil {
		return msa.Alignment{}, fmt.Errorf("mapping %s: %w", fname, err)
	}
	defer mm.Unmap()
	a, err := Read(bytes.NewReader(mm))
	if err != nil {
		return a, fmt.Errorf("%s: %w", fname, err)
	}
	return a, nil
}

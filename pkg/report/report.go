// 13 Oct 2026

// Package report says how much of each segment of a merged gene every
// allele actually has sequence for, and keeps running totals for a whole
// run.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/andrew-torda/matrix"
	"github.com/dustin/go-humanize"

	"github.com/andrew-torda/allele_merge/pkg/merge"
	"github.com/andrew-torda/allele_merge/pkg/msa"
	"github.com/andrew-torda/allele_merge/pkg/msa/common"
)

// Coverage has one row per allele and one column per segment of the
// merged reference. Each entry is the fraction of the segment's columns
// covered by sequence.
type Coverage struct {
	Alleles  []string
	Segments []msa.Segment
	Frac     *matrix.FMatrix2d
}

// overlap is the number of columns [a0,a1) and [b0,b1) have in common.
func overlap(a0, a1, b0, b1 int) int {
	lo, hi := max(a0, b0), min(a1, b1)
	if hi < lo {
		return 0
	}
	return hi - lo
}

// fill does one row. The boundary column of each segment does not count.
func fill(row []float32, segs []msa.Segment, toks []msa.Token) {
	for _, t := range toks {
		if t.Kind != msa.Sequence {
			continue
		}
		for i, s := range segs {
			row[i] += float32(overlap(t.Pos, t.Next(), s.Marker.Pos+1, s.Marker.Pos+s.Marker.Len))
		}
	}
	for i, s := range segs {
		if n := s.Marker.Len - 1; n > 0 {
			row[i] /= float32(n)
		}
	}
}

// New works out coverage for the reference and every allele that merged.
func New(out *merge.Output) *Coverage {
	a := out.Alignment()
	c := &Coverage{Segments: msa.Bounded(out.Tokens)}
	c.Frac = matrix.NewFMatrix2d(len(a.Alleles), len(c.Segments))
	for i, al := range a.Alleles {
		c.Alleles = append(c.Alleles, al.Name)
		fill(c.Frac.Mat[i], c.Segments, al.Tokens)
	}
	return c
}

// Write puts out the table as CSV with a header line.
func (c *Coverage) Write(w io.Writer) error {
	cw := csv.NewWriter(w)
	hdr := []string{"allele"}
	for i := range c.Segments {
		hdr = append(hdr, "seg"+strconv.Itoa(i))
	}
	cw.Write(hdr)
	for i, name := range c.Alleles {
		rec := []string{name}
		for _, f := range c.Frac.Mat[i] {
			rec = append(rec, strconv.FormatFloat(float64(f), 'f', 3, 32))
		}
		cw.Write(rec)
	}
	cw.Flush()
	return cw.Error()
}

// WriteFile is Write to a named file, or standard output.
func (c *Coverage) WriteFile(fname string) error {
	if common.IsStdio(fname) {
		return c.Write(os.Stdout)
	}
	fp, err := os.Create(fname)
	if err != nil {
		return fmt.Errorf("creating report file: %w", err)
	}
	if err := c.Write(fp); err != nil {
		fp.Close()
		return err
	}
	return fp.Close()
}

// Stats are totals over all the genes of a run.
type Stats struct {
	Genes   int
	Merged  int    // alleles, not counting references
	Failed  int
	Columns int    // width of the merged alignments
	Bytes   uint64 // output written
}

// Add counts one gene.
func (s *Stats) Add(out *merge.Output) {
	s.Genes++
	nfail := out.Failed()
	s.Failed += nfail
	s.Merged += len(out.Results) - nfail
	if len(out.Tokens) > 0 {
		if end, err := msa.PositionsAlign(out.Tokens); err == nil {
			s.Columns += end - out.Tokens[0].Pos
		}
	}
}

// Summary is one line for the end of a run.
func (s Stats) Summary() string {
	return fmt.Sprintf("%s genes, %s alleles merged, %s failed, %s columns, %s written",
		humanize.Comma(int64(s.Genes)), humanize.Comma(int64(s.Merged)),
		humanize.Comma(int64(s.Failed)), humanize.Comma(int64(s.Columns)),
		humanize.Bytes(s.Bytes))
}

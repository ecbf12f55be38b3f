// 15 Oct 2026

// Package poscheck runs the position checker over every allele of some
// token files. It is for finding out which alleles upset the merge,
// before running it.
package poscheck

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/andrew-torda/allele_merge/pkg/msa"
	"github.com/andrew-torda/allele_merge/pkg/msa/common"
	"github.com/andrew-torda/allele_merge/pkg/msafile"
)

var ErrFailed = errors.New("alleles with bad positions")

// CmdFlag is literally command line flags after parsing
type CmdFlag struct {
	Quiet bool // only write out the alleles that fail
}

// check writes one line per allele: file, allele, number of segments and
// either the last position or what was wrong. It returns the number of
// bad alleles.
func check(w io.Writer, flags *CmdFlag, fname string, a msa.Alignment) int {
	nbad := 0
	for _, al := range a.Alleles {
		nseg := len(msa.Bounded(al.Tokens))
		end, err := msa.PositionsAlign(al.Tokens)
		if err != nil {
			nbad++
			fmt.Fprintf(w, "%s\t%s\t%d\t%v\n", fname, al.Name, nseg, err)
			continue
		}
		if !flags.Quiet {
			fmt.Fprintf(w, "%s\t%s\t%d\tok %d\n", fname, al.Name, nseg, end)
		}
	}
	return nbad
}

// Mymain checks each file in turn. A file that cannot be read stops
// everything.
func Mymain(flags *CmdFlag, infiles []string, outfile string) (err error) {
	var w io.Writer = os.Stdout
	if !common.IsStdio(outfile) {
		fp, e := os.Create(outfile)
		if e != nil {
			return fmt.Errorf("creating output file: %w", e)
		}
		defer func() {
			if e := fp.Close(); err == nil {
				err = e
			}
		}()
		w = fp
	}
	bw := bufio.NewWriter(w)
	nbad := 0
	for _, fname := range infiles {
		a, err := msafile.ReadFile(fname)
		if err != nil {
			bw.Flush()
			return err
		}
		nbad += check(bw, flags, fname, a)
	}
	if err := bw.Flush(); err != nil {
		return err
	}
	if nbad > 0 {
		return fmt.Errorf("%w: %d", ErrFailed, nbad)
	}
	return nil
}

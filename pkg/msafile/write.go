package msafile

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/andrew-torda/allele_merge/pkg/msa"
	"github.com/andrew-torda/allele_merge/pkg/msa/common"
)

// writeToken writes one token in the form parseToken reads.
func writeToken(w io.Writer, t msa.Token) {
	switch t.Kind {
	case msa.Start:
		fmt.Fprintln(w, "S", t.Pos)
	case msa.End:
		fmt.Fprintln(w, "E", t.Pos)
	case msa.Boundary:
		fmt.Fprintln(w, "B", t.Idx, t.Pos)
	case msa.Gap:
		fmt.Fprintln(w, "G", t.Pos, t.Len)
	case msa.Sequence:
		fmt.Fprintln(w, "Q", t.Pos, t.Seq)
	}
}

// Write writes an alignment in token file format.
func Write(w io.Writer, a msa.Alignment) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%c reference: %s\n", cmmtChar, a.Reference)
	fmt.Fprintf(bw, "%c date: %s\n", cmmtChar, a.Date)
	for _, al := range a.Alleles {
		fmt.Fprintf(bw, "%c%s\n", alleleChar, al.Name)
		for _, t := range al.Tokens {
			writeToken(bw, t)
		}
	}
	return bw.Flush()
}

// WriteFile writes to the named file, or standard output if the name
// is empty or "-".
func WriteFile(fname string, a msa.Alignment) error {
	if common.IsStdio(fname) {
		return Write(os.Stdout, a)
	}
	fp, err := os.Create(fname)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	if err := Write(fp, a); err != nil {
		fp.Close()
		return fmt.Errorf("writing %s: %w", fname, err)
	}
	return fp.Close()
}

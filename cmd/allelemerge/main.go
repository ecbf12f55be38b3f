// 14 Oct 2026

package main

import (
	"flag"
	"fmt"
	"os"
	"path"

	"github.com/andrew-torda/allele_merge/pkg/allelemerge"
	. "github.com/andrew-torda/allele_merge/pkg/msa/common"
)

// usage
func usage() int {
	name := path.Base(os.Args[0])
	fmt.Fprintln(os.Stderr, "usage:", name, "[opts] -g genomic.tok -n coding.tok")
	fmt.Fprintln(os.Stderr, "      ", name, "[opts] -c genes.yaml")
	flag.PrintDefaults()
	return ExitUsageError
}

func main() {
	var flags allelemerge.CmdFlag
	var outfile string
	flag.StringVar(&flags.Config, "c", "", "yaml file with genes to merge")
	flag.StringVar(&flags.Genomic, "g", "", "genomic token file")
	flag.StringVar(&flags.Coding, "n", "", "coding token file")
	flag.StringVar(&flags.Name, "name", "", "gene name, default from genomic file name")
	flag.StringVar(&outfile, "o", "", "output file name, default stdout")
	flag.StringVar(&flags.Report, "r", "", "coverage report (csv)")
	flag.IntVar(&flags.Threads, "t", 0, "alleles merged at once, default one per CPU")
	flag.BoolVar(&flags.Strict, "strict", false, "fail if any allele fails")
	flag.BoolVar(&flags.Partial, "partial", false, "accept leftover tokens after replay")
	flag.IntVar(&flags.Verbosity, "v", 1, "verbosity, 0, 1 or 2")
	flag.Parse()

	if flags.Config == "" && (flags.Genomic == "" || flags.Coding == "") {
		os.Exit(usage())
	}
	if flag.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "unexpected arguments:", flag.Args())
		os.Exit(usage())
	}
	if err := allelemerge.Mymain(&flags, outfile); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(ExitFailure)
	}
	os.Exit(ExitSuccess)
}

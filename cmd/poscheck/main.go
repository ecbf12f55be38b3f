// 15 Oct 2026

package main

import (
	"flag"
	"fmt"
	"os"
	"path"

	. "github.com/andrew-torda/allele_merge/pkg/msa/common"
	"github.com/andrew-torda/allele_merge/pkg/poscheck"
)

// usage
func usage() int {
	fmt.Fprintln(os.Stderr, "usage:", path.Base(os.Args[0]), "[opts] file.tok [file.tok...]")
	flag.PrintDefaults()
	return ExitUsageError
}

func main() {
	var flags poscheck.CmdFlag
	var outfile string
	flag.BoolVar(&flags.Quiet, "q", false, "only print failures")
	flag.StringVar(&outfile, "o", "", "output file name, default stdout")
	flag.Parse()
	if flag.NArg() == 0 {
		os.Exit(usage())
	}
	if err := poscheck.Mymain(&flags, flag.Args(), outfile); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(ExitFailure)
	}
	os.Exit(ExitSuccess)
}

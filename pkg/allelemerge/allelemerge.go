// 14 Oct 2026

// Package allelemerge is the guts of the allelemerge command. It reads
// the genomic and coding token files for each gene, merges them and
// writes the result.
package allelemerge

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	log "github.com/sirupsen/logrus"

	"github.com/andrew-torda/allele_merge/pkg/merge"
	"github.com/andrew-torda/allele_merge/pkg/msa/common"
	"github.com/andrew-torda/allele_merge/pkg/msafile"
	"github.com/andrew-torda/allele_merge/pkg/nearest"
	"github.com/andrew-torda/allele_merge/pkg/report"
)

var ErrAllelesFailed = errors.New("alleles failed to merge")

// CmdFlag is literally command line flags after parsing
type CmdFlag struct {
	Config    string    // yaml file with a list of genes
	Genomic   string    // genomic token file for a single gene
	Coding    string    // coding token file to go with it
	Name      string    // gene name, taken from Genomic if empty
	Report    string    // coverage report, not written if empty
	Threads   int       // alleles merged at once, 0 for one per CPU
	Strict    bool      // any failed allele makes the run fail
	Partial   bool      // allow tokens left over after replay
	Verbosity int       // 0 warnings, 1 info, 2 debug
	LogTo     io.Writer // nil means stderr
}

// newLogger gives us a text logger at the level set by the verbosity.
func newLogger(flags *CmdFlag) *log.Logger {
	l := log.New()
	if flags.LogTo != nil {
		l.SetOutput(flags.LogTo)
	}
	l.SetFormatter(&log.TextFormatter{DisableTimestamp: flags.LogTo != nil})
	switch {
	case flags.Verbosity <= 0:
		l.SetLevel(log.WarnLevel)
	case flags.Verbosity == 1:
		l.SetLevel(log.InfoLevel)
	default:
		l.SetLevel(log.DebugLevel)
	}
	return l
}

// resolver indexes the genomic alleles so coding-only alleles can find
// a donor.
func resolver(glog *log.Entry, gen []string) *nearest.Resolver {
	res, err := nearest.New(gen)
	if err != nil {
		glog.Warnf("allele names: %v", err)
	}
	glog.Debugf("%d genomic keys for donors", res.Len())
	return res
}

// fileSize is zero for standard output or anything we cannot stat.
func fileSize(fname string) uint64 {
	if common.IsStdio(fname) {
		return 0
	}
	fi, err := os.Stat(fname)
	if err != nil {
		return 0
	}
	return uint64(fi.Size())
}

// runGene reads, merges and writes one gene.
func runGene(ctx context.Context, cfg *Config, g GeneFiles, glog *log.Entry, stats *report.Stats) error {
	gen, err := msafile.ReadFile(g.Genomic)
	if err != nil {
		return err
	}
	nuc, err := msafile.ReadFile(g.Coding)
	if err != nil {
		return err
	}
	glog.Debugf("%d genomic, %d coding alleles", len(gen.Alleles), len(nuc.Alleles))
	names := make([]string, len(gen.Alleles))
	for i, a := range gen.Alleles {
		names[i] = a.Name
	}
	opts := merge.Options{Threads: cfg.Threads, Partial: cfg.Partial}
	out, err := merge.Gene(ctx, gen, nuc, resolver(glog, names), opts)
	if err != nil {
		return err
	}
	for _, r := range out.Results {
		alog := glog.WithField("allele", r.Allele)
		if r.Donor != "" {
			alog = alog.WithField("donor", r.Donor)
		}
		if r.Err != nil {
			alog.Warn(r.Err)
		} else {
			alog.Debug("merged")
		}
	}
	if err := msafile.WriteFile(g.Output, out.Alignment()); err != nil {
		return err
	}
	if g.Report != "" {
		if err := report.New(out).WriteFile(g.Report); err != nil {
			return err
		}
	}
	stats.Add(out)
	stats.Bytes += fileSize(g.Output)
	glog.Infof("%d alleles, %d failed", len(out.Results), out.Failed())
	return nil
}

// Mymain merges every gene. A gene that cannot be done is logged and we
// go on to the next one. The errors are returned together at the end.
// Alleles which fail are only an error if flags.Strict is set.
func Mymain(flags *CmdFlag, outfile string) error {
	logger := newLogger(flags)
	cfg, err := setup(flags, outfile)
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var stats report.Stats
	var errs []error
	for _, g := range cfg.Genes {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		glog := logger.WithField("gene", g.Name)
		if err := runGene(ctx, cfg, g, glog, &stats); err != nil {
			glog.Error(err)
			errs = append(errs, fmt.Errorf("gene %s: %w", g.Name, err))
		}
	}
	logger.Info(stats.Summary())
	if cfg.Strict && stats.Failed > 0 {
		errs = append(errs, fmt.Errorf("%w: %d", ErrAllelesFailed, stats.Failed))
	}
	return errors.Join(errs...)
}

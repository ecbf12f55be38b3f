package allelemerge_test

import (
	"bytes"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	. "github.com/andrew-torda/allele_merge/pkg/allelemerge"
	"github.com/andrew-torda/allele_merge/pkg/msa"
	"github.com/andrew-torda/allele_merge/pkg/msa/common"
	"github.com/andrew-torda/allele_merge/pkg/msafile"
)

const hdr = "# reference: A*01:01:01:01\n# date: 2023-04-01\n"

// Five segments, exons are 1 and 3.
const genFile = hdr + `>A*01:01:01:01
S 0
Q 0 AAA
B 0 3
Q 4 GGG
B 1 7
Q 8 TTTT
B 2 12
Q 13 CC
B 3 15
Q 16 A
E 17
>A*01:01:01:02
S 0
Q 0 AAT
B 0 3
Q 4 GGG
B 1 7
Q 8 TTAT
B 2 12
Q 13 CC
B 3 15
Q 16 A
E 17
`

// A*01:02 has to borrow introns, A*02:01 has nobody to borrow from.
const nucFile = hdr + `>A*01:01:01:01
S 0
Q 0 GGG
B 0 3
Q 4 CC
E 6
>A*01:01:01:02
G 0 3
B 0 3
S 4
Q 4 CA
E 6
>A*01:02
S 0
Q 0 GGA
B 0 3
Q 4 CC
E 6
>A*02:01
S 0
Q 0 GGA
B 0 3
Q 4 CC
E 6
`

// tmpFiles writes the test inputs and returns a function to clean up.
func tmpFiles(t *testing.T) (gen, nuc string, cleanup func()) {
	t.Helper()
	var err error
	if gen, err = common.WrtTemp(genFile); err != nil {
		t.Fatal(err)
	}
	if nuc, err = common.WrtTemp(nucFile); err != nil {
		t.Fatal(err)
	}
	return gen, nuc, func() {
		os.Remove(gen)
		os.Remove(nuc)
	}
}

func TestMymain(t *testing.T) {
	gen, nuc, cleanup := tmpFiles(t)
	defer cleanup()
	outfile, rptfile := gen+".out", gen+".csv"
	defer os.Remove(outfile)
	defer os.Remove(rptfile)
	var logbuf bytes.Buffer
	flags := CmdFlag{Genomic: gen, Coding: nuc, Name: "A", Report: rptfile,
		Threads: 2, Verbosity: 2, LogTo: &logbuf}
	if err := Mymain(&flags, outfile); err != nil {
		t.Fatal(err)
	}
	a, err := msafile.ReadFile(outfile)
	if err != nil {
		t.Fatal(err)
	}
	var names []string
	for _, al := range a.Alleles {
		names = append(names, al.Name)
	}
	wantNames := []string{"A*01:01:01:01", "A*01:01:01:02", "A*01:02"}
	if diff := cmp.Diff(wantNames, names); diff != "" {
		t.Fatalf("alleles (-want +got):\n%s", diff)
	}
	want := []msa.Token{
		msa.NewStart(0), msa.NewSequence(0, "AAA"),
		msa.NewBoundary(0, 3), msa.NewSequence(4, "GGA"),
		msa.NewBoundary(1, 7), msa.NewSequence(8, "TTTT"),
		msa.NewBoundary(2, 12), msa.NewSequence(13, "CC"),
		msa.NewBoundary(3, 15), msa.NewSequence(16, "A"),
		msa.NewEnd(17),
	}
	if diff := cmp.Diff(want, a.Alleles[2].Tokens); diff != "" {
		t.Fatalf("allele with donor (-want +got):\n%s", diff)
	}

	logs := logbuf.String()
	for _, s := range []string{"level=warning", "A*02:01", "donor=", "gene=A", "1 failed"} {
		if !strings.Contains(logs, s) {
			t.Errorf("log is missing %q:\n%s", s, logs)
		}
	}

	rpt, err := os.ReadFile(rptfile)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(rpt)), "\n")
	if lines[0] != "allele,seg0,seg1,seg2,seg3,seg4" || len(lines) != 4 {
		t.Fatalf("report:\n%s", rpt)
	}
}

func TestMymainStrict(t *testing.T) {
	gen, nuc, cleanup := tmpFiles(t)
	defer cleanup()
	outfile := gen + ".out"
	defer os.Remove(outfile)
	flags := CmdFlag{Genomic: gen, Coding: nuc, Strict: true, LogTo: &bytes.Buffer{}}
	if err := Mymain(&flags, outfile); !errors.Is(err, ErrAllelesFailed) {
		t.Fatalf("got %v, want %v", err, ErrAllelesFailed)
	}
}

// TestMymainBadGene has one gene that cannot be read. The other one
// still has to be written.
func TestMymainBadGene(t *testing.T) {
	gen, nuc, cleanup := tmpFiles(t)
	defer cleanup()
	outfile := gen + ".out"
	defer os.Remove(outfile)
	cfgText := "genes:\n" +
		"  - name: B\n    genomic: " + gen + "_not_there\n    coding: " + nuc + "\n    output: " + gen + ".B\n" +
		"  - name: A\n    genomic: " + gen + "\n    coding: " + nuc + "\n    output: " + outfile + "\n"
	cfgFile, err := common.WrtTemp(cfgText)
	if err != nil {
		t.Fatal(err)
	}
	defer os.Remove(cfgFile)
	var logbuf bytes.Buffer
	err = Mymain(&CmdFlag{Config: cfgFile, LogTo: &logbuf}, "")
	if err == nil || !strings.Contains(err.Error(), "gene B") {
		t.Fatalf("missing file gave %v", err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("%v should wrap os.ErrNotExist", err)
	}
	if _, err := os.Stat(outfile); err != nil {
		t.Fatal("good gene not written:", err)
	}
	if !strings.Contains(logbuf.String(), "level=error") {
		t.Errorf("no error logged:\n%s", logbuf.String())
	}
}

func TestSetup(t *testing.T) {
	cfgText := `threads: 3
strict: true
genes:
  - genomic: dir/HLA-A_gen.tok
    coding: HLA-A_nuc.tok
    output: A.tok
`
	cfgFile, err := common.WrtTemp(cfgText)
	if err != nil {
		t.Fatal(err)
	}
	defer os.Remove(cfgFile)

	cfg, err := Setup(&CmdFlag{Config: cfgFile}, "")
	if err != nil {
		t.Fatal(err)
	}
	want := &Config{Threads: 3, Strict: true, Genes: []GeneFiles{
		{Name: "HLA-A_gen", Genomic: "dir/HLA-A_gen.tok", Coding: "HLA-A_nuc.tok", Output: "A.tok"},
	}}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}

	flags := CmdFlag{Config: cfgFile, Threads: 8, Partial: true, Genomic: "b.tok", Coding: "b_nuc.tok"}
	if cfg, err = Setup(&flags, "b_out.tok"); err != nil {
		t.Fatal(err)
	}
	if cfg.Threads != 8 || !cfg.Partial || !cfg.Strict || len(cfg.Genes) != 2 {
		t.Fatalf("flags not applied: %+v", cfg)
	}
	if g := cfg.Genes[1]; g.Name != "b" || g.Output != "b_out.tok" {
		t.Fatalf("gene from flags: %+v", g)
	}
}

func TestSetupBad(t *testing.T) {
	var tests = []struct {
		cfg string
		err error
	}{
		{"", ErrNoGenes},
		{"threads: 2\n", ErrNoGenes},
		{"genes:\n  - genomic: a.tok\n", ErrMissingFile},
	}
	for i, tt := range tests {
		cfgFile, err := common.WrtTemp(tt.cfg)
		if err != nil {
			t.Fatal(err)
		}
		defer os.Remove(cfgFile)
		if _, err := Setup(&CmdFlag{Config: cfgFile}, ""); !errors.Is(err, tt.err) {
			t.Errorf("case %d got %v, want %v", i, err, tt.err)
		}
	}

	cfgFile, err := common.WrtTemp("genes: []\nthraeds: 2\n")
	if err != nil {
		t.Fatal(err)
	}
	defer os.Remove(cfgFile)
	if _, err := Setup(&CmdFlag{Config: cfgFile}, ""); err == nil {
		t.Error("misspelt key not noticed")
	}
	if _, err := Setup(&CmdFlag{Genomic: "a.tok"}, ""); !errors.Is(err, ErrMissingFile) {
		t.Errorf("missing coding file gave %v", err)
	}
}

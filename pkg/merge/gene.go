// 9 Oct 2026

package merge

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/andrew-torda/allele_merge/pkg/msa"
)

var (
	ErrReferenceMismatch = errors.New("genomic and coding alignments disagree on reference")
	ErrNoReference       = errors.New("reference allele not found")
	ErrRoundTrip         = errors.New("reference does not come back the same")
	ErrNoDonor           = errors.New("no genomic donor for allele")
	ErrNoCoding          = errors.New("allele has no coding alignment")
)

// Resolver finds a genomic donor for alleles which only have coding
// data. Resolve turns an allele name into a key. Nearest returns the
// closest key it has seen for an allele with genomic data.
type Resolver interface {
	Resolve(name string) (string, error)
	Nearest(key string) (string, bool)
}

// Options for Gene.
type Options struct {
	Threads int  // alleles merged at once, 0 means one per CPU
	Partial bool // replay alleles with ReplayPartial
}

// Result is what happened to one allele. If Err is not nil, Tokens is
// nil. Donor is set if the introns came from another allele.
type Result struct {
	Allele string
	Donor  string
	Tokens []msa.Token
	Err    error
}

// Output is the merged alignment for one gene.
type Output struct {
	Reference string
	Date      string
	Template  Template
	Tokens    []msa.Token // the merged reference
	Results   []Result    // every other allele, sorted by name
}

// Failed counts the alleles which did not merge.
func (o *Output) Failed() int {
	n := 0
	for _, r := range o.Results {
		if r.Err != nil {
			n++
		}
	}
	return n
}

// Alignment gives the merged reference and every allele that worked.
func (o *Output) Alignment() msa.Alignment {
	a := msa.Alignment{Reference: o.Reference, Date: o.Date}
	a.Alleles = append(a.Alleles, msa.Allele{Name: o.Reference, Tokens: o.Tokens})
	for _, r := range o.Results {
		if r.Err == nil {
			a.Alleles = append(a.Alleles, msa.Allele{Name: r.Allele, Tokens: r.Tokens})
		}
	}
	return a
}

// BuildReference makes the template from the reference allele and checks
// it. Replaying the template against the reference itself has to give a
// sequence whose positions line up. AlignSame has to agree with
// AlignReference.
func BuildReference(gen, nuc msa.Alignment) (Template, []msa.Token, error) {
	if gen.Reference != nuc.Reference || gen.Date != nuc.Date {
		return nil, nil, fmt.Errorf("%w: genomic %s (%s), coding %s (%s)", ErrReferenceMismatch,
			gen.Reference, gen.Date, nuc.Reference, nuc.Date)
	}
	rgen, ok := gen.Find(gen.Reference)
	if !ok {
		return nil, nil, fmt.Errorf("%w: %s in genomic alignment", ErrNoReference, gen.Reference)
	}
	rnuc, ok := nuc.Find(nuc.Reference)
	if !ok {
		return nil, nil, fmt.Errorf("%w: %s in coding alignment", ErrNoReference, nuc.Reference)
	}
	tmpl, err := ZipAlign(msa.Bounded(rgen.Tokens), msa.Bounded(rnuc.Tokens))
	if err != nil {
		return nil, nil, fmt.Errorf("building template from %s: %w", gen.Reference, err)
	}
	c, err := Replay(tmpl, rgen.Tokens, rnuc.Tokens)
	if err != nil {
		return nil, nil, fmt.Errorf("replaying %s: %w", gen.Reference, err)
	}
	toks := AlignReference(c)
	if _, err := msa.PositionsAlign(toks); err != nil {
		return nil, nil, fmt.Errorf("merged %s: %w", gen.Reference, err)
	}
	same, err := AlignSame(c)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrRoundTrip, err)
	}
	if i := firstDiff(toks, same); i >= 0 {
		return nil, nil, fmt.Errorf("%w: tokens differ at index %d", ErrRoundTrip, i)
	}
	return tmpl, toks, nil
}

// firstDiff returns the first index where two token slices differ or -1.
func firstDiff(a, b []msa.Token) int {
	for i := range a {
		if i >= len(b) || a[i] != b[i] {
			return i
		}
	}
	if len(b) > len(a) {
		return len(a)
	}
	return -1
}

// job is one allele to be merged
type job struct {
	name  string
	donor string
	gen   []msa.Token
	nuc   []msa.Token
	err   error // set if we knew before starting that it will not work
}

// donors maps resolver keys to the genomic alleles that have them.
func donors(gen msa.Alignment, res Resolver) map[string]string {
	m := make(map[string]string)
	if res == nil {
		return m
	}
	for _, a := range gen.Alleles {
		if key, err := res.Resolve(a.Name); err == nil {
			if _, seen := m[key]; !seen {
				m[key] = a.Name
			}
		}
	}
	return m
}

// jobs pairs up the genomic and coding data for every allele, apart from
// the reference.
func jobs(gen, nuc msa.Alignment, res Resolver) []job {
	genOf := make(map[string][]msa.Token, len(gen.Alleles))
	for _, a := range gen.Alleles {
		genOf[a.Name] = a.Tokens
	}
	byKey := donors(gen, res)
	var js []job
	seen := make(map[string]bool)
	for _, a := range nuc.Alleles {
		if a.Name == nuc.Reference || seen[a.Name] {
			continue
		}
		seen[a.Name] = true
		j := job{name: a.Name, nuc: a.Tokens}
		if g, ok := genOf[a.Name]; ok {
			j.gen = g
		} else {
			j.donor, j.gen, j.err = donorFor(a.Name, res, byKey, genOf)
		}
		js = append(js, j)
	}
	for _, a := range gen.Alleles {
		if a.Name == gen.Reference || seen[a.Name] {
			continue
		}
		seen[a.Name] = true
		js = append(js, job{name: a.Name, err: ErrNoCoding})
	}
	sort.Slice(js, func(i, k int) bool { return js[i].name < js[k].name })
	return js
}

func donorFor(name string, res Resolver, byKey map[string]string,
	genOf map[string][]msa.Token) (string, []msa.Token, error) {
	if res == nil {
		return "", nil, ErrNoDonor
	}
	key, err := res.Resolve(name)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrNoDonor, err)
	}
	near, ok := res.Nearest(key)
	if !ok {
		return "", nil, ErrNoDonor
	}
	donor, ok := byKey[near]
	if !ok {
		return "", nil, fmt.Errorf("%w: nearest key %s has no genomic allele", ErrNoDonor, near)
	}
	return donor, genOf[donor], nil
}

// one merges a single allele
func one(tmpl Template, j job, partial bool) Result {
	r := Result{Allele: j.name, Donor: j.donor}
	if j.err != nil {
		r.Err = j.err
		return r
	}
	replay := Replay
	if partial {
		replay = ReplayPartial
	}
	c, err := replay(tmpl, j.gen, j.nuc)
	if err != nil {
		r.Err = err
		return r
	}
	toks, err := AlignSame(c)
	if err != nil {
		r.Err = err
		return r
	}
	if _, err := msa.PositionsAlign(toks); err != nil {
		r.Err = err
		return r
	}
	r.Tokens = toks
	return r
}

// Gene merges every allele of one gene. Problems with the reference are
// returned as an error, since nothing can be done without a template.
// Problems with any other allele go in its Result and the rest carry on.
// Alleles are merged in parallel. They only share the template, which
// nobody writes to.
func Gene(ctx context.Context, gen, nuc msa.Alignment, res Resolver, opts Options) (*Output, error) {
	tmpl, toks, err := BuildReference(gen, nuc)
	if err != nil {
		return nil, err
	}
	js := jobs(gen, nuc, res)
	results := make([]Result, len(js))
	threads := opts.Threads
	if threads < 1 {
		threads = runtime.NumCPU()
	}
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(threads)
	for i := range js {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = one(tmpl, js[i], opts.Partial)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &Output{
		Reference: gen.Reference,
		Date:      gen.Date,
		Template:  tmpl,
		Tokens:    toks,
		Results:   results,
	}, nil
}

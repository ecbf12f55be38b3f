// 12 Oct 2026

// Package nearest finds the closest allele with genomic data for an allele
// that only has coding data. Names look like
//
//	GENE*f1:f2:f3:f4
//
// with one to four numeric fields and possibly an expression letter on the
// end (A*24:02:01:02L). Closeness is the number of leading fields two names
// share.
package nearest

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var ErrBadName = errors.New("bad allele name")

const (
	geneSep   = "*"
	fieldSep  = ":"
	maxFields = 4
	exprChars = "NLSCAQ" // expression suffixes
)

// name is an allele name cut into its parts.
type name struct {
	key    string
	gene   string
	fields []string
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// parse checks a name and removes any expression letter.
func parse(s string) (name, error) {
	s = strings.TrimSpace(s)
	if n := len(s); n > 0 && strings.IndexByte(exprChars, s[n-1]) >= 0 {
		s = s[:n-1]
	}
	gene, rest, ok := strings.Cut(s, geneSep)
	if !ok || gene == "" {
		return name{}, fmt.Errorf("%w: %q has no gene", ErrBadName, s)
	}
	fields := strings.Split(rest, fieldSep)
	if len(fields) > maxFields {
		return name{}, fmt.Errorf("%w: %q has %d fields", ErrBadName, s, len(fields))
	}
	for _, f := range fields {
		if !isDigits(f) {
			return name{}, fmt.Errorf("%w: %q, field %q", ErrBadName, s, f)
		}
	}
	return name{key: s, gene: gene, fields: fields}, nil
}

// shared is the number of leading fields two names have in common.
func shared(a, b name) int {
	if a.gene != b.gene {
		return 0
	}
	n := 0
	for n < len(a.fields) && n < len(b.fields) && a.fields[n] == b.fields[n] {
		n++
	}
	return n
}

// Resolver knows the alleles that have genomic data. It satisfies
// merge.Resolver.
type Resolver struct {
	known []name // sorted by key
}

// New makes a resolver from the names of alleles with genomic data.
// Names which do not parse are returned as errors, but the rest are
// still used, so the resolver is always usable.
func New(names []string) (*Resolver, error) {
	r := &Resolver{}
	var errs []error
	seen := make(map[string]bool)
	for _, s := range names {
		n, err := parse(s)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if !seen[n.key] {
			seen[n.key] = true
			r.known = append(r.known, n)
		}
	}
	sort.Slice(r.known, func(i, j int) bool { return r.known[i].key < r.known[j].key })
	return r, errors.Join(errs...)
}

// Len is the number of known genomic keys.
func (r *Resolver) Len() int { return len(r.known) }

// Resolve turns an allele name into the key we use for comparing.
func (r *Resolver) Resolve(s string) (string, error) {
	n, err := parse(s)
	if err != nil {
		return "", err
	}
	return n.key, nil
}

// Nearest returns the known key which shares the most leading fields with
// key. On a tie, the first in sort order wins. Names from a different gene,
// or that do not even share the first field, are never near.
func (r *Resolver) Nearest(key string) (string, bool) {
	n, err := parse(key)
	if err != nil {
		return "", false
	}
	best, nbest := "", 0
	for _, k := range r.known {
		if s := shared(n, k); s > nbest {
			best, nbest = k.key, s
		}
	}
	return best, nbest > 0
}

// Package rewrite replaces include directives listed in the basics header
// with a single include of that header.
package rewrite

import (
	"fmt"
	"os"
	"strings"

	"applybasics/internal/model"
)

// ReferenceSet is the set of normalized directives eligible for replacement.
// It is built once per run and never modified afterwards.
type ReferenceSet map[string]struct{}

// Contains reports whether token is in the set.
func (s ReferenceSet) Contains(token string) bool {
	_, ok := s[token]
	return ok
}

// Len returns the number of distinct tokens.
func (s ReferenceSet) Len() int {
	return len(s)
}

// NormalizeDirective keeps the part of line before the first comment marker
// and trims surrounding whitespace.
//
//	#include "foo/bar.h" // comment  ->  #include "foo/bar.h"
//
// Leading comments are not special: "// #include "a.h"" normalizes to "".
func NormalizeDirective(line, commentMarker string) string {
	before, _, _ := strings.Cut(line, commentMarker)
	return strings.TrimSpace(before)
}

// LoadReferenceSet collects the normalized directives of cfg.ReferencePath.
func LoadReferenceSet(cfg model.Config) (ReferenceSet, error) {
	file, err := os.Open(cfg.ReferencePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReferenceFile, err)
	}
	defer file.Close()

	set := ReferenceSet{}
	err = model.EachLine(file, func(line string) bool {
		if strings.Contains(line, cfg.DirectiveMarker) {
			set[NormalizeDirective(line, cfg.CommentMarker)] = struct{}{}
		}
		return true
	})
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", ErrReferenceFile, cfg.ReferencePath, err)
	}
	return set, nil
}

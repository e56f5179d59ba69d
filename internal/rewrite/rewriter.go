package rewrite

import (
	"fmt"
	"os"
	"strings"

	"applybasics/internal/model"
)

// Rewriter decides which lines of a target file need replacing and rewrites
// them.
type Rewriter struct {
	marker      string
	comment     string
	replacement string
	refs        ReferenceSet
}

// NewRewriter creates a Rewriter for the given conventions and reference set.
func NewRewriter(cfg model.Config, refs ReferenceSet) *Rewriter {
	return &Rewriter{
		marker:      cfg.DirectiveMarker,
		comment:     cfg.CommentMarker,
		replacement: cfg.ReplacementLine(),
		refs:        refs,
	}
}

// NeedsRewrite reports whether line is a directive whose normalized form is
// in the reference set.
func (r *Rewriter) NeedsRewrite(line string) bool {
	return strings.Contains(line, r.marker) && r.refs.Contains(NormalizeDirective(line, r.comment))
}

// Check scans path and reports whether at least one line needs rewriting.
// It stops at the first such line.
func (r *Rewriter) Check(path string) (bool, error) {
	file, err := os.Open(path)
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrReadTarget, err)
	}
	defer file.Close()

	found := false
	err = model.EachLine(file, func(line string) bool {
		found = r.NeedsRewrite(line)
		return !found
	})
	if err != nil {
		return false, fmt.Errorf("%w: read %s: %w", ErrReadTarget, path, err)
	}
	return found, nil
}

// RewriteLines returns a copy of lines with every matching directive replaced
// and the number of replacements made.
func (r *Rewriter) RewriteLines(lines []string) ([]string, int) {
	out := make([]string, len(lines))
	replaced := 0
	for i, line := range lines {
		if r.NeedsRewrite(line) {
			out[i] = r.replacement
			replaced++
			continue
		}
		out[i] = line
	}
	return out, replaced
}

// Rewrite re-reads path, replaces matching directives and overwrites the
// file. The file is written even if no line matches; callers run Check
// first. It returns the number of replaced lines.
func (r *Rewriter) Rewrite(path string) (int, error) {
	lines, err := model.ReadLines(path)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrReadTarget, err)
	}

	out, replaced := r.RewriteLines(lines)
	if err := model.WriteLines(path, out); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrWriteTarget, err)
	}
	return replaced, nil
}

// Package apply runs the basics rewrite over a list of files, one at a time
// and in the order given.
package apply

import (
	"strings"

	"go.uber.org/zap"

	"applybasics/internal/console"
	"applybasics/internal/model"
	"applybasics/internal/rewrite"
)

// Summary counts what a run did.
type Summary struct {
	Skipped   int
	Checked   int
	Rewritten int
}

// Driver sequences the ignore filter, the check phase and the rewrite phase.
type Driver struct {
	ignore   []string
	rewriter *rewrite.Rewriter
	notes    *console.Notifier
	logger   *zap.Logger
}

// NewDriver creates a Driver. A nil logger discards diagnostics.
func NewDriver(cfg model.Config, rw *rewrite.Rewriter, notes *console.Notifier, logger *zap.Logger) *Driver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Driver{
		ignore:   cfg.IgnorePatterns,
		rewriter: rw,
		notes:    notes,
		logger:   logger,
	}
}

// NormalizePath collapses doubled separators in a single pass, so "a///b"
// becomes "a//b".
func NormalizePath(p string) string {
	return strings.ReplaceAll(p, "//", "/")
}

// Ignored reports whether path contains any ignore pattern.
func (d *Driver) Ignored(path string) bool {
	for _, pattern := range d.ignore {
		if strings.Contains(path, pattern) {
			return true
		}
	}
	return false
}

// Run processes paths in order. The first error stops the run; files handled
// before it keep their changes.
func (d *Driver) Run(paths []string) (Summary, error) {
	var sum Summary
	for _, p := range paths {
		p = NormalizePath(p)
		if d.Ignored(p) {
			d.notes.Skipping(p)
			sum.Skipped++
			continue
		}

		d.notes.Checking(p)
		sum.Checked++
		needsWork, err := d.rewriter.Check(p)
		if err != nil {
			return sum, err
		}
		if !needsWork {
			continue
		}

		d.notes.Processing(p)
		replaced, err := d.rewriter.Rewrite(p)
		if err != nil {
			return sum, err
		}
		sum.Rewritten++
		d.logger.Debug("Rewrote file", zap.String("path", p), zap.Int("replaced", replaced))
	}
	return sum, nil
}

package model

import (
	"fmt"
	"os"
	"path/filepath"
)

// Fixed conventions of the basics rewrite. They are not exposed as flags.
const (
	DirectiveMarker = "#include"
	CommentMarker   = "//"
	CanonicalHeader = "nui/core/basics/basics.h"
)

// IgnorePatterns lists path substrings that are never rewritten: the basics
// headers themselves and vendored libraries.
var IgnorePatterns = []string{
	"nui/core/basics",
	"lib",
}

// Config holds everything a run needs. It is built once at startup and
// passed down by value.
type Config struct {
	ReferencePath   string   // Header whose includes make up the reference set
	DirectiveMarker string   // Substring identifying a directive line (e.g., #include)
	CommentMarker   string   // Trailing comment marker stripped during normalization
	CanonicalHeader string   // Header every matching include is rewritten to
	IgnorePatterns  []string // Paths containing any of these are skipped
}

// DefaultConfig returns the fixed conventions for a program installed at
// executable. The reference header sits one directory above the program's
// own directory.
func DefaultConfig(executable string) Config {
	return Config{
		ReferencePath:   filepath.Join(filepath.Dir(executable), "..", CanonicalHeader),
		DirectiveMarker: DirectiveMarker,
		CommentMarker:   CommentMarker,
		CanonicalHeader: CanonicalHeader,
		IgnorePatterns:  append([]string(nil), IgnorePatterns...),
	}
}

// ResolveConfig locates the running program and builds its Config.
func ResolveConfig() (Config, error) {
	exe, err := os.Executable()
	if err != nil {
		return Config{}, fmt.Errorf("locate executable: %w", err)
	}
	return DefaultConfig(exe), nil
}

// ReplacementLine is the line substituted for every matching directive.
func (c Config) ReplacementLine() string {
	return fmt.Sprintf("%s \"%s\"\n", c.DirectiveMarker, c.CanonicalHeader)
}

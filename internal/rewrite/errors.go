package rewrite

import "errors"

// Error kinds. Each wraps the underlying *fs.PathError, so errors.Is also
// matches fs.ErrNotExist and friends.
var (
	ErrReferenceFile = errors.New("reference file unreadable")
	ErrReadTarget    = errors.New("target file unreadable")
	ErrWriteTarget   = errors.New("target file unwritable")
)

package sheet

import (
	"errors"
	"fmt"
)

// ErrFileFormat matches every load failure caused by the input file itself
var ErrFileFormat = errors.New("unreadable or unsupported file")

// FormatError describes why a file could not be loaded
type FormatError struct {
	Path string
	Err  error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("cannot load %s: %v", e.Path, e.Err)
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is(err, ErrFileFormat) match any FormatError
func (e *FormatError) Is(target error) bool {
	return target == ErrFileFormat
}

func formatError(path string, err error) error {
	return &FormatError{Path: path, Err: err}
}

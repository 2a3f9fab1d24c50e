package document

import (
	"errors"
	"fmt"

	"github.com/tabpad/tabpad-cli/pkg/files"
)

var (
	// ErrNoPath is returned when saving a document that has never been bound
	// to a file and no path was supplied.
	ErrNoPath = errors.New("document has no file path")

	// ErrInvalidEncoding marks file content that is not UTF-8 text.
	ErrInvalidEncoding = files.ErrInvalidEncoding
)

// IOError reports a failed read or write of a document's backing file.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("failed to %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

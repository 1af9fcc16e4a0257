package redfile

import (
	"errors"
	"fmt"
)

var (
	// ErrFormat reports input that is not a well-formed RED1 container.
	ErrFormat = errors.New("redfile: format violation")
	// ErrUnsupported reports a well-formed container using a feature this
	// reader does not decode.
	ErrUnsupported = errors.New("redfile: unsupported feature")

	ErrInvalidMagic    = fmt.Errorf("%w: invalid magic", ErrFormat)
	ErrFooterPointer   = fmt.Errorf("%w: footer pointer out of range", ErrFormat)
	ErrMetadata        = fmt.Errorf("%w: cannot decode file metadata", ErrFormat)
	ErrPageHeader      = fmt.Errorf("%w: cannot decode page header", ErrFormat)
	ErrChunkRange      = fmt.Errorf("%w: column chunk byte range mismatch", ErrFormat)
	ErrCorruptPage     = fmt.Errorf("%w: corrupt page", ErrFormat)
	ErrRowCount        = fmt.Errorf("%w: column value count exceeds row count", ErrFormat)
	ErrUnsupportedType = fmt.Errorf("%w: primitive type", ErrUnsupported)
)

// ChunkError locates a failure inside a column chunk.
type ChunkError struct {
	RowGroup int
	Column   int
	// Offset is the absolute file offset of the walker cursor when the
	// failure was detected.
	Offset int64
	Err    error
}

func (e *ChunkError) Error() string {
	return fmt.Sprintf("row group %d, column %d, offset %d: %v", e.RowGroup, e.Column, e.Offset, e.Err)
}

func (e *ChunkError) Unwrap() error { return e.Err }

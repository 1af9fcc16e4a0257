package redfile

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/kaitai-io/kaitai_struct_go_runtime/kaitai"

	"redfile_reader/kaitai_gen"
)

const (
	// Magic marks both ends of a container.
	Magic = "RED1"

	MagicLen = 4
	// TrailerLen covers the footer pointer and the trailing marker.
	TrailerLen = 4 + MagicLen
	// MinFooterPointer keeps at least one marker's worth of metadata between
	// the pages and the trailer.
	MinFooterPointer = TrailerLen + MagicLen
)

// Container is a validated RED1 file held in memory. Every region handed out
// by the walker is a sub-slice of Data.
type Container struct {
	Data     []byte
	Metadata *FileMetaData

	// MetadataOffset is the footer pointer value: the distance from the end
	// of the file to the start of the metadata block.
	MetadataOffset uint32
	MetadataStart  int64
	MetadataLength int64
}

// Len returns the container size in bytes.
func (c *Container) Len() int64 { return int64(len(c.Data)) }

// LocateContainer validates both magic markers and the footer pointer of
// data, then decodes the FileMetaData block.
func LocateContainer(data []byte, dec MessageDecoder) (*Container, error) {
	if dec == nil {
		dec = NewCompactDecoder()
	}
	if len(data) < MagicLen+TrailerLen {
		return nil, fmt.Errorf("%w: file is %d bytes, need at least %d",
			ErrInvalidMagic, len(data), MagicLen+TrailerLen)
	}

	layout := kaitai_gen.NewRedfile()
	if err := layout.Read(kaitai.NewStream(bytes.NewReader(data)), nil, layout); err != nil {
		var notEqual kaitai.ValidationNotEqualError
		if errors.As(err, &notEqual) {
			return nil, fmt.Errorf("%w: leading marker %q, want %q", ErrInvalidMagic, data[:MagicLen], Magic)
		}
		return nil, fmt.Errorf("%w: reading leading marker: %v", ErrInvalidMagic, err)
	}

	magicEnd, err := layout.MagicEnd()
	if err != nil {
		return nil, fmt.Errorf("%w: reading trailing marker: %v", ErrInvalidMagic, err)
	}
	if string(magicEnd) != Magic {
		return nil, fmt.Errorf("%w: trailing marker %q at offset %d, want %q",
			ErrInvalidMagic, magicEnd, len(data)-MagicLen, Magic)
	}

	footerLen, err := layout.FooterLen()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFooterPointer, err)
	}
	if int64(footerLen) < MinFooterPointer || int64(footerLen) > int64(len(data)-MagicLen) {
		return nil, fmt.Errorf("%w: footer pointer %d for a %d byte file (valid range [%d, %d])",
			ErrFooterPointer, footerLen, len(data), MinFooterPointer, len(data)-MagicLen)
	}

	start, err := layout.MetadataOfs()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFooterPointer, err)
	}
	length, err := layout.MetadataLen()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFooterPointer, err)
	}

	meta, err := decodeFileMetaData(dec, data[start:start+length])
	if err != nil {
		return nil, err
	}

	return &Container{
		Data:           data,
		Metadata:       meta,
		MetadataOffset: footerLen,
		MetadataStart:  start,
		MetadataLength: length,
	}, nil
}

// region returns the bounds-checked view data[start:end].
func (c *Container) region(start, end int64) ([]byte, error) {
	if start < 0 || end < start || end > c.Len() {
		return nil, fmt.Errorf("%w: region [%d, %d) outside a %d byte file", ErrChunkRange, start, end, c.Len())
	}
	return c.Data[start:end:end], nil
}

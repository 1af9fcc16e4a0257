package redfile

import (
	"bytes"
	"fmt"

	"github.com/parquet-go/parquet-go/encoding/thrift"
)

// MessageDecoder decodes the structured records embedded in a container.
//
// Implementations read at most maxLen bytes from buf and report how many
// bytes the record actually occupied. Callers advance their cursor by that
// count only; maxLen is an upper bound, not the record size.
type MessageDecoder interface {
	DecodeFileMetaData(buf []byte, maxLen int) (*FileMetaData, int, error)
	DecodePageHeader(buf []byte, maxLen int) (*PageHeader, int, error)
}

// CompactDecoder is the MessageDecoder for the thrift compact protocol, the
// encoding used by RED1 for both the footer and page headers.
type CompactDecoder struct {
	protocol thrift.CompactProtocol
}

func NewCompactDecoder() *CompactDecoder {
	return &CompactDecoder{}
}

func (d *CompactDecoder) DecodeFileMetaData(buf []byte, maxLen int) (*FileMetaData, int, error) {
	meta := new(FileMetaData)
	n, err := d.decode(buf, maxLen, meta)
	if err != nil {
		return nil, 0, err
	}
	return meta, n, nil
}

func (d *CompactDecoder) DecodePageHeader(buf []byte, maxLen int) (*PageHeader, int, error) {
	header := new(PageHeader)
	n, err := d.decode(buf, maxLen, header)
	if err != nil {
		return nil, 0, err
	}
	return header, n, nil
}

func (d *CompactDecoder) decode(buf []byte, maxLen int, v any) (int, error) {
	if maxLen < 0 {
		return 0, fmt.Errorf("thrift compact: negative length %d", maxLen)
	}
	if maxLen > len(buf) {
		maxLen = len(buf)
	}

	// The compact reader pulls bytes one at a time from a bytes.Reader, so
	// whatever is left unread after Decode was not part of the record.
	r := bytes.NewReader(buf[:maxLen])
	decoder := thrift.NewDecoder(d.protocol.NewReader(r))
	if err := decoder.Decode(v); err != nil {
		return 0, err
	}

	consumed := maxLen - r.Len()
	if consumed <= 0 {
		return 0, fmt.Errorf("thrift compact parse: consumed=%d", consumed)
	}
	return consumed, nil
}

// decodeFileMetaData decodes the footer block located by the container and
// checks the structural fields the walker depends on.
func decodeFileMetaData(dec MessageDecoder, block []byte) (*FileMetaData, error) {
	meta, _, err := dec.DecodeFileMetaData(block, len(block))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMetadata, err)
	}

	for i, rg := range meta.RowGroups {
		for j, col := range rg.Columns {
			if col.MetaData == nil {
				return nil, fmt.Errorf("%w: row group %d column %d has no column metadata", ErrMetadata, i, j)
			}
		}
		if i > 0 && len(rg.Columns) != len(meta.RowGroups[0].Columns) {
			return nil, fmt.Errorf("%w: row group %d has %d columns, row group 0 has %d",
				ErrMetadata, i, len(rg.Columns), len(meta.RowGroups[0].Columns))
		}
	}
	return meta, nil
}

// decodePageHeader decodes one page header starting at buf[0], reading no
// more than maxLen bytes.
func decodePageHeader(dec MessageDecoder, buf []byte, maxLen int) (*PageHeader, int, error) {
	header, n, err := dec.DecodePageHeader(buf, maxLen)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrPageHeader, err)
	}
	if header.CompressedPageSize < 0 {
		return nil, 0, fmt.Errorf("%w: negative compressed_page_size %d", ErrPageHeader, header.CompressedPageSize)
	}
	if header.Type == DataPage && header.DataPageHeader == nil {
		return nil, 0, fmt.Errorf("%w: data page without data_page_header", ErrPageHeader)
	}
	if d := header.DataPageHeader; d != nil && d.NumValues < 0 {
		return nil, 0, fmt.Errorf("%w: negative num_values %d", ErrPageHeader, d.NumValues)
	}
	return header, n, nil
}

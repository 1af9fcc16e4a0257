// Package redfiletest builds RED1 containers for tests.
package redfiletest

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/parquet-go/parquet-go/encoding/thrift"

	"redfile_reader/redfile"
)

// Page is one header plus body in a column chunk's page stream.
type Page struct {
	Header redfile.PageHeader
	Body   []byte
}

// DataPage returns a data page of numValues values with the given encoding.
func DataPage(numValues int, enc redfile.Encoding, body []byte) Page {
	return Page{
		Header: redfile.PageHeader{
			Type:                 redfile.DataPage,
			UncompressedPageSize: int32(len(body)),
			CompressedPageSize:   int32(len(body)),
			DataPageHeader: &redfile.DataPageHeader{
				NumValues: int32(numValues),
				Encoding:  enc,
			},
		},
		Body: body,
	}
}

// PlainPage returns a PLAIN data page whose body is the presence bitmap
// followed by values.
func PlainPage(numValues int, bitmap, values []byte) Page {
	return DataPage(numValues, redfile.Plain, Concat(bitmap, values))
}

// OtherPage returns a page of type t with an opaque body.
func OtherPage(t redfile.PageType, body []byte) Page {
	return Page{
		Header: redfile.PageHeader{
			Type:                 t,
			UncompressedPageSize: int32(len(body)),
			CompressedPageSize:   int32(len(body)),
		},
		Body: body,
	}
}

type Column struct {
	Name  string
	Type  redfile.Type
	Pages []Page
}

type RowGroup struct {
	NumRows int64
	Columns []Column
}

// Build serialises row groups into a complete container: leading magic, the
// page streams, the compact thrift footer, the footer pointer and the
// trailing magic.
func Build(rowGroups ...RowGroup) ([]byte, error) {
	protocol := &thrift.CompactProtocol{}
	buf := []byte(redfile.Magic)

	meta := redfile.FileMetaData{Version: 1, CreatedBy: "redfiletest"}
	meta.Schema = append(meta.Schema, redfile.SchemaElement{Name: "schema"})
	if len(rowGroups) > 0 {
		for _, col := range rowGroups[0].Columns {
			typ := col.Type
			rep := redfile.Optional
			meta.Schema = append(meta.Schema, redfile.SchemaElement{Name: col.Name, Type: &typ, RepetitionType: &rep})
		}
		children := int32(len(rowGroups[0].Columns))
		meta.Schema[0].NumChildren = &children
	}

	for _, rg := range rowGroups {
		group := redfile.RowGroup{NumRows: rg.NumRows}
		meta.NumRows += rg.NumRows

		for _, col := range rg.Columns {
			start := int64(len(buf))
			var numValues int64
			for _, p := range col.Pages {
				header, err := thrift.Marshal(protocol, &p.Header)
				if err != nil {
					return nil, fmt.Errorf("encoding page header: %w", err)
				}
				buf = append(buf, header...)
				buf = append(buf, p.Body...)
				if p.Header.DataPageHeader != nil {
					numValues += int64(p.Header.DataPageHeader.NumValues)
				}
			}
			end := int64(len(buf))

			group.TotalByteSize += end - start
			group.Columns = append(group.Columns, redfile.ColumnChunk{
				FileOffset: end,
				MetaData: &redfile.ColumnMetaData{
					Type:                  col.Type,
					Encodings:             []redfile.Encoding{redfile.Plain},
					PathInSchema:          []string{col.Name},
					Codec:                 redfile.Uncompressed,
					NumValues:             numValues,
					TotalUncompressedSize: end - start,
					TotalCompressedSize:   end - start,
					DataPageOffset:        start,
				},
			})
		}
		meta.RowGroups = append(meta.RowGroups, group)
	}

	return Seal(buf, &meta)
}

// Seal appends the encoded metadata and the trailer to buf.
func Seal(buf []byte, meta *redfile.FileMetaData) ([]byte, error) {
	footer, err := thrift.Marshal(&thrift.CompactProtocol{}, meta)
	if err != nil {
		return nil, fmt.Errorf("encoding file metadata: %w", err)
	}
	buf = append(buf, footer...)
	buf = binary.LittleEndian.AppendUint32(buf, uint32(len(footer)+redfile.TrailerLen))
	return append(buf, redfile.Magic...), nil
}

// MustBuild is like Build but panics on error.
func MustBuild(rowGroups ...RowGroup) []byte {
	b, err := Build(rowGroups...)
	if err != nil {
		panic(err)
	}
	return b
}

// EncodePageHeader returns the compact thrift encoding of h.
func EncodePageHeader(h *redfile.PageHeader) []byte {
	b, err := thrift.Marshal(&thrift.CompactProtocol{}, h)
	if err != nil {
		panic(err)
	}
	return b
}

// Bitmap packs presence flags LSB first.
func Bitmap(present ...bool) []byte {
	b := make([]byte, (len(present)+7)/8)
	for i, p := range present {
		if p {
			b[i/8] |= 1 << (i % 8)
		}
	}
	return b
}

// AllPresent returns the bitmap of n non-null values.
func AllPresent(n int) []byte {
	present := make([]bool, n)
	for i := range present {
		present[i] = true
	}
	return Bitmap(present...)
}

func Booleans(values ...bool) []byte { return Bitmap(values...) }

func Int32s(values ...int32) []byte {
	b := make([]byte, 0, 4*len(values))
	for _, v := range values {
		b = binary.LittleEndian.AppendUint32(b, uint32(v))
	}
	return b
}

func Int64s(values ...int64) []byte {
	b := make([]byte, 0, 8*len(values))
	for _, v := range values {
		b = binary.LittleEndian.AppendUint64(b, uint64(v))
	}
	return b
}

func Floats(values ...float32) []byte {
	b := make([]byte, 0, 4*len(values))
	for _, v := range values {
		b = binary.LittleEndian.AppendUint32(b, math.Float32bits(v))
	}
	return b
}

func Doubles(values ...float64) []byte {
	b := make([]byte, 0, 8*len(values))
	for _, v := range values {
		b = binary.LittleEndian.AppendUint64(b, math.Float64bits(v))
	}
	return b
}

func ByteArrays(values ...string) []byte {
	var b []byte
	for _, v := range values {
		b = binary.LittleEndian.AppendUint32(b, uint32(len(v)))
		b = append(b, v...)
	}
	return b
}

func Concat(parts ...[]byte) []byte {
	var b []byte
	for _, p := range parts {
		b = append(b, p...)
	}
	return b
}

package redfile

import (
	"fmt"
	"strings"
)

// Type is the physical type of the values stored in a column chunk.
type Type int32

const (
	Boolean           Type = 0
	Int32             Type = 1
	Int64             Type = 2
	Int96             Type = 3
	Float             Type = 4
	Double            Type = 5
	ByteArray         Type = 6
	FixedLenByteArray Type = 7
)

func (t Type) String() string {
	switch t {
	case Boolean:
		return "BOOLEAN"
	case Int32:
		return "INT32"
	case Int64:
		return "INT64"
	case Int96:
		return "INT96"
	case Float:
		return "FLOAT"
	case Double:
		return "DOUBLE"
	case ByteArray:
		return "BYTE_ARRAY"
	case FixedLenByteArray:
		return "FIXED_LEN_BYTE_ARRAY"
	default:
		return fmt.Sprintf("Type(%d)", int32(t))
	}
}

type FieldRepetitionType int32

const (
	Required FieldRepetitionType = 0
	Optional FieldRepetitionType = 1
	Repeated FieldRepetitionType = 2
)

func (r FieldRepetitionType) String() string {
	switch r {
	case Required:
		return "REQUIRED"
	case Optional:
		return "OPTIONAL"
	case Repeated:
		return "REPEATED"
	default:
		return fmt.Sprintf("FieldRepetitionType(%d)", int32(r))
	}
}

type Encoding int32

const (
	Plain           Encoding = 0
	GroupVarInt     Encoding = 1
	PlainDictionary Encoding = 2
	RLE             Encoding = 3
	BitPacked       Encoding = 4
)

func (e Encoding) String() string {
	switch e {
	case Plain:
		return "PLAIN"
	case GroupVarInt:
		return "GROUP_VAR_INT"
	case PlainDictionary:
		return "PLAIN_DICTIONARY"
	case RLE:
		return "RLE"
	case BitPacked:
		return "BIT_PACKED"
	default:
		return fmt.Sprintf("Encoding(%d)", int32(e))
	}
}

type CompressionCodec int32

const (
	Uncompressed CompressionCodec = 0
	Snappy       CompressionCodec = 1
	Gzip         CompressionCodec = 2
	Lzo          CompressionCodec = 3
)

func (c CompressionCodec) String() string {
	switch c {
	case Uncompressed:
		return "UNCOMPRESSED"
	case Snappy:
		return "SNAPPY"
	case Gzip:
		return "GZIP"
	case Lzo:
		return "LZO"
	default:
		return fmt.Sprintf("CompressionCodec(%d)", int32(c))
	}
}

type PageType int32

const (
	DataPage       PageType = 0
	IndexPage      PageType = 1
	DictionaryPage PageType = 2
)

func (p PageType) String() string {
	switch p {
	case DataPage:
		return "DATA_PAGE"
	case IndexPage:
		return "INDEX_PAGE"
	case DictionaryPage:
		return "DICTIONARY_PAGE"
	default:
		return fmt.Sprintf("PageType(%d)", int32(p))
	}
}

// FileMetaData is the footer record of a RED1 container. It is decoded once
// from the compact thrift block that precedes the footer pointer.
type FileMetaData struct {
	Version          int32           `thrift:"1,required"`
	Schema           []SchemaElement `thrift:"2,required"`
	NumRows          int64           `thrift:"3,required"`
	RowGroups        []RowGroup      `thrift:"4,required"`
	KeyValueMetadata []KeyValue      `thrift:"5,optional"`
	CreatedBy        string          `thrift:"6,optional"`
}

type SchemaElement struct {
	Type           *Type                `thrift:"1,optional"`
	TypeLength     *int32               `thrift:"2,optional"`
	RepetitionType *FieldRepetitionType `thrift:"3,optional"`
	Name           string               `thrift:"4,required"`
	NumChildren    *int32               `thrift:"5,optional"`
}

type KeyValue struct {
	Key   string `thrift:"1,required"`
	Value string `thrift:"2,optional"`
}

type RowGroup struct {
	Columns       []ColumnChunk `thrift:"1,required"`
	TotalByteSize int64         `thrift:"2,required"`
	NumRows       int64         `thrift:"3,required"`
}

type ColumnChunk struct {
	FilePath string `thrift:"1,optional"`
	// FileOffset is the exclusive end of the chunk's page stream.
	FileOffset int64           `thrift:"2,required"`
	MetaData   *ColumnMetaData `thrift:"3,optional"`
}

type ColumnMetaData struct {
	Type                  Type             `thrift:"1,required"`
	Encodings             []Encoding       `thrift:"2,required"`
	PathInSchema          []string         `thrift:"3,required"`
	Codec                 CompressionCodec `thrift:"4,required"`
	NumValues             int64            `thrift:"5,required"`
	TotalUncompressedSize int64            `thrift:"6,required"`
	TotalCompressedSize   int64            `thrift:"7,required"`
	DataPageOffset        int64            `thrift:"9,required"`
	DictionaryPageOffset  *int64           `thrift:"11,optional"`
}

type PageHeader struct {
	Type                 PageType `thrift:"1,required"`
	UncompressedPageSize int32    `thrift:"2,required"`
	// CompressedPageSize is the number of body bytes following the header.
	// No decompression is applied to it.
	CompressedPageSize int32           `thrift:"3,required"`
	CRC                *int32          `thrift:"4,optional"`
	DataPageHeader     *DataPageHeader `thrift:"5,optional"`
}

type DataPageHeader struct {
	NumValues int32    `thrift:"1,required"`
	Encoding  Encoding `thrift:"2,required"`
}

func (h *PageHeader) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "PageHeader(type=%s, uncompressed_page_size=%d, compressed_page_size=%d",
		h.Type, h.UncompressedPageSize, h.CompressedPageSize)
	if h.CRC != nil {
		fmt.Fprintf(&b, ", crc=%d", *h.CRC)
	}
	if d := h.DataPageHeader; d != nil {
		fmt.Fprintf(&b, ", data_page_header=DataPageHeader(num_values=%d, encoding=%s)", d.NumValues, d.Encoding)
	}
	b.WriteByte(')')
	return b.String()
}

// isPlainDataPage reports whether the page carries values this reader decodes.
func (h *PageHeader) isPlainDataPage() bool {
	return h.Type == DataPage && h.DataPageHeader != nil && h.DataPageHeader.Encoding == Plain
}

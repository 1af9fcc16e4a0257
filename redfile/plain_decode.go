package redfile

import (
	"bytes"
	"fmt"
	"io"

	"github.com/kaitai-io/kaitai_struct_go_runtime/kaitai"
)

// plainValues is the cursor over the values region of a PLAIN data page.
// Only present values occupy space in it.
type plainValues struct {
	data []byte
	io   *kaitai.Stream
}

func newPlainValues(data []byte) *plainValues {
	return &plainValues{data: data, io: kaitai.NewStream(bytes.NewReader(data))}
}

func (v *plainValues) offset() int64 {
	pos, _ := v.io.Pos()
	return pos
}

// plainDecoder reads the next present value from the cursor.
type plainDecoder func(v *plainValues) (Value, error)

// plainDecoderFor selects the decoder for a column's physical type. Every
// Type constant has a case; the ones without a PLAIN decoder here are
// reported as unsupported instead of being skipped.
func plainDecoderFor(t Type) (plainDecoder, error) {
	switch t {
	case Boolean:
		return decodePlainBoolean, nil
	case Int32:
		return decodePlainInt32, nil
	case Int64:
		return decodePlainInt64, nil
	case Float:
		return decodePlainFloat, nil
	case Double:
		return decodePlainDouble, nil
	case ByteArray:
		return decodePlainByteArray, nil
	case Int96, FixedLenByteArray:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedType, t)
	default:
		return nil, fmt.Errorf("%w: unknown type tag %d", ErrUnsupportedType, int32(t))
	}
}

// Booleans are bit-packed LSB first with their own bit counter, independent
// of the presence bitmap.
func decodePlainBoolean(v *plainValues) (Value, error) {
	bit, err := v.io.ReadBitsIntLe(1)
	if err != nil {
		return Value{}, truncatedValue(Boolean, v, err)
	}
	return BooleanValue(bit != 0), nil
}

func decodePlainInt32(v *plainValues) (Value, error) {
	x, err := v.io.ReadS4le()
	if err != nil {
		return Value{}, truncatedValue(Int32, v, err)
	}
	return Int32Value(x), nil
}

func decodePlainInt64(v *plainValues) (Value, error) {
	x, err := v.io.ReadS8le()
	if err != nil {
		return Value{}, truncatedValue(Int64, v, err)
	}
	return Int64Value(x), nil
}

func decodePlainFloat(v *plainValues) (Value, error) {
	x, err := v.io.ReadF4le()
	if err != nil {
		return Value{}, truncatedValue(Float, v, err)
	}
	return FloatValue(x), nil
}

func decodePlainDouble(v *plainValues) (Value, error) {
	x, err := v.io.ReadF8le()
	if err != nil {
		return Value{}, truncatedValue(Double, v, err)
	}
	return DoubleValue(x), nil
}

// decodePlainByteArray reads a u4le length followed by that many bytes. The
// returned value aliases the page.
func decodePlainByteArray(v *plainValues) (Value, error) {
	n, err := v.io.ReadU4le()
	if err != nil {
		return Value{}, truncatedValue(ByteArray, v, err)
	}
	pos, err := v.io.Pos()
	if err != nil {
		return Value{}, err
	}
	if remain := int64(len(v.data)) - pos; int64(n) > remain {
		return Value{}, fmt.Errorf("%w: BYTE_ARRAY length %d at value offset %d exceeds the %d remaining page bytes",
			ErrCorruptPage, n, pos-4, remain)
	}
	end := pos + int64(n)
	if _, err := v.io.Seek(end, io.SeekStart); err != nil {
		return Value{}, err
	}
	return ByteArrayValue(v.data[pos:end:end]), nil
}

func truncatedValue(t Type, v *plainValues, err error) error {
	return fmt.Errorf("%w: reading %s value at value offset %d of %d: %v", ErrCorruptPage, t, v.offset(), len(v.data), err)
}

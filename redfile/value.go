package redfile

import (
	"math"
	"strconv"
)

// Value is one decoded column value, or a null marker.
//
// Scalars are kept in their raw bit representation; BYTE_ARRAY values alias
// the page they were decoded from.
type Value struct {
	kind Type
	null bool
	bits uint64
	ptr  []byte
}

func NullValue(t Type) Value { return Value{kind: t, null: true} }

func BooleanValue(v bool) Value {
	var bits uint64
	if v {
		bits = 1
	}
	return Value{kind: Boolean, bits: bits}
}

func Int32Value(v int32) Value { return Value{kind: Int32, bits: uint64(uint32(v))} }
func Int64Value(v int64) Value { return Value{kind: Int64, bits: uint64(v)} }
func FloatValue(v float32) Value { return Value{kind: Float, bits: uint64(math.Float32bits(v))} }
func DoubleValue(v float64) Value { return Value{kind: Double, bits: math.Float64bits(v)} }
func ByteArrayValue(v []byte) Value { return Value{kind: ByteArray, ptr: v} }

func (v Value) Type() Type { return v.kind }
func (v Value) IsNull() bool { return v.null }
func (v Value) Boolean() bool { return v.bits != 0 }
func (v Value) Int32() int32 { return int32(uint32(v.bits)) }
func (v Value) Int64() int64 { return int64(v.bits) }
func (v Value) Float() float32 { return math.Float32frombits(uint32(v.bits)) }
func (v Value) Double() float64 { return math.Float64frombits(v.bits) }
func (v Value) ByteArray() []byte { return v.ptr }

// String formats the value the way it appears in tabular output. Nulls format
// as the empty string and byte arrays are written verbatim.
func (v Value) String() string {
	if v.null {
		return ""
	}
	switch v.kind {
	case Boolean:
		return strconv.FormatBool(v.Boolean())
	case Int32:
		return strconv.FormatInt(int64(v.Int32()), 10)
	case Int64:
		return strconv.FormatInt(v.Int64(), 10)
	case Float:
		return strconv.FormatFloat(float64(v.Float()), 'g', -1, 32)
	case Double:
		return strconv.FormatFloat(v.Double(), 'g', -1, 64)
	default:
		return string(v.ptr)
	}
}

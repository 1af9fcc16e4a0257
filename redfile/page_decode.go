package redfile

import (
	"fmt"
)

// bitmapLen is the size in bytes of the presence bitmap for numValues values.
func bitmapLen(numValues int) int {
	return (numValues + 7) / 8
}

// isPresent reports whether bit n of the presence bitmap is set. A set bit
// marks a non-null value.
func isPresent(bitmap []byte, n int) bool {
	return bitmap[n/8]&(1<<(n%8)) != 0
}

// DecodePage decodes the body of a PLAIN data page holding numValues values
// of type t. The body starts with a ceil(numValues/8) byte presence bitmap
// followed by the packed present values.
//
// Only the first limit values are returned; a negative limit, or one above
// numValues, returns all of them. Null values are returned as NullValue(t).
func DecodePage(body []byte, numValues int, t Type, limit int) ([]Value, error) {
	decode, err := plainDecoderFor(t)
	if err != nil {
		return nil, err
	}
	if numValues < 0 {
		return nil, fmt.Errorf("%w: negative value count %d", ErrCorruptPage, numValues)
	}

	n := bitmapLen(numValues)
	if n > len(body) {
		return nil, fmt.Errorf("%w: presence bitmap for %d values needs %d bytes, page body has %d",
			ErrCorruptPage, numValues, n, len(body))
	}
	bitmap, values := body[:n], newPlainValues(body[n:])

	if limit < 0 || limit > numValues {
		limit = numValues
	}

	out := make([]Value, limit)
	for i := range out {
		if !isPresent(bitmap, i) {
			out[i] = NullValue(t)
			continue
		}
		v, err := decode(values)
		if err != nil {
			return nil, fmt.Errorf("value %d: %w", i, err)
		}
		out[i] = v
	}
	return out, nil
}

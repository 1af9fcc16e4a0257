package redfile

// PlainValueOffsets decodes values of type t from the PLAIN values region
// data and returns the value cursor after each one.
func PlainValueOffsets(t Type, data []byte, n int) ([]int64, error) {
	decode, err := plainDecoderFor(t)
	if err != nil {
		return nil, err
	}
	values := newPlainValues(data)
	offsets := make([]int64, 0, n)
	for range n {
		if _, err := decode(values); err != nil {
			return offsets, err
		}
		offsets = append(offsets, values.offset())
	}
	return offsets, nil
}

var BitmapLen = bitmapLen

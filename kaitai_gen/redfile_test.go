package kaitai_gen

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"

	"github.com/kaitai-io/kaitai_struct_go_runtime/kaitai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var magic = []byte("RED1")

func container(body, metadata []byte) []byte {
	b := append([]byte{}, magic...)
	b = append(b, body...)
	b = append(b, metadata...)
	b = binary.LittleEndian.AppendUint32(b, uint32(len(metadata)+8))
	return append(b, magic...)
}

func read(data []byte) (*Redfile, error) {
	r := NewRedfile()
	err := r.Read(kaitai.NewStream(bytes.NewReader(data)), nil, r)
	return r, err
}

func TestRedfileInstances(t *testing.T) {
	data := container([]byte{1, 2, 3, 4, 5}, []byte{0x15, 0x02, 0x00})

	r, err := read(data)
	require.NoError(t, err)
	assert.Equal(t, magic, r.Magic)

	n, err := r.LenFile()
	require.NoError(t, err)
	assert.Equal(t, int64(len(data)), n)

	end, err := r.MagicEnd()
	require.NoError(t, err)
	assert.Equal(t, magic, end)

	footerLen, err := r.FooterLen()
	require.NoError(t, err)
	assert.Equal(t, uint32(11), footerLen)

	ofs, err := r.MetadataOfs()
	require.NoError(t, err)
	assert.Equal(t, int64(4+5), ofs)

	length, err := r.MetadataLen()
	require.NoError(t, err)
	assert.Equal(t, int64(3), length)
	assert.Equal(t, []byte{0x15, 0x02, 0x00}, data[ofs:ofs+length])
}

func TestRedfileBadMagic(t *testing.T) {
	data := container(nil, nil)
	data[1] = 'X'

	_, err := read(data)
	var notEqual kaitai.ValidationNotEqualError
	assert.True(t, errors.As(err, &notEqual))
}

func TestRedfileShortStream(t *testing.T) {
	_, err := read([]byte("RE"))
	assert.Error(t, err)
}

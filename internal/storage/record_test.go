package storage

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

// buildRecord assembles a record body (header + column bodies) given
// a serial type per column and its already-encoded bytes. Mirrors
// the byte layout ReadRecord is expected to decode.
func buildRecord(t *testing.T, serialTypes []uint64, bodies [][]byte) []byte {
	t.Helper()

	var header bytes.Buffer
	for _, st := range serialTypes {
		_, err := WriteVarint(&header, st)
		require.NoError(t, err)
	}

	var headerLen bytes.Buffer
	_, err := WriteVarint(&headerLen, uint64(header.Len()+1))
	require.NoError(t, err)

	var out bytes.Buffer
	out.Write(headerLen.Bytes())
	out.Write(header.Bytes())
	for _, b := range bodies {
		out.Write(b)
	}
	return out.Bytes()
}

func TestReadRecord_Integers(t *testing.T) {
	assert := require.New(t)

	data := buildRecord(t,
		[]uint64{1, 2, 4},
		[][]byte{{0x7f}, {0xff, 0xff}, {0x00, 0x00, 0x05, 0x39}},
	)

	record, err := ReadRecord(bytes.NewReader(data))
	assert.NoError(err)
	assert.Len(record.Fields, 3)

	assert.Equal(ColumnInt8, record.Fields[0].Type)
	assert.Equal(int64(127), record.Fields[0].Data)

	assert.Equal(ColumnInt16, record.Fields[1].Type)
	assert.Equal(int64(-1), record.Fields[1].Data)

	assert.Equal(ColumnInt32, record.Fields[2].Type)
	assert.Equal(int64(1337), record.Fields[2].Data)
}

func TestReadRecord_TextAndBlobAndNull(t *testing.T) {
	assert := require.New(t)

	text := "hello"
	blob := []byte{0xDE, 0xAD, 0xBE, 0xEF}

	data := buildRecord(t,
		[]uint64{0, uint64(13 + 2*len(text)), uint64(12 + 2*len(blob))},
		[][]byte{nil, []byte(text), blob},
	)

	record, err := ReadRecord(bytes.NewReader(data))
	assert.NoError(err)
	assert.Len(record.Fields, 3)

	assert.Equal(ColumnNull, record.Fields[0].Type)
	assert.Nil(record.Fields[0].Data)

	assert.Equal(ColumnText, record.Fields[1].Type)
	assert.Equal(text, record.Fields[1].Data)

	assert.Equal(ColumnBlob, record.Fields[2].Type)
	assert.Equal(blob, record.Fields[2].Data)
}

func TestReadRecord_ZeroAndOneConstants(t *testing.T) {
	assert := require.New(t)

	data := buildRecord(t, []uint64{8, 9}, [][]byte{nil, nil})

	record, err := ReadRecord(bytes.NewReader(data))
	assert.NoError(err)
	assert.Equal(ColumnZero, record.Fields[0].Type)
	assert.Equal(ColumnOne, record.Fields[1].Type)
}

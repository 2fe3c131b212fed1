package storage

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
)

// buildLeafPage assembles a minimal leaf table-btree page holding a
// single cell at the end of the page, with its cell pointer as the
// only entry in the pointer array.
func buildLeafPage(pageSize int, cell []byte) []byte {
	data := make([]byte, pageSize)
	data[0] = byte(PageTypeLeaf)
	binary.BigEndian.PutUint16(data[3:5], 1) // NumCells

	cellOffset := pageSize - len(cell)
	binary.BigEndian.PutUint16(data[5:7], uint16(cellOffset)) // CellsOffset
	binary.BigEndian.PutUint16(data[8:10], uint16(cellOffset))
	copy(data[cellOffset:], cell)
	return data
}

func TestFromBytes_LeafPage(t *testing.T) {
	assert := require.New(t)

	cell := buildRecord(t, []uint64{1}, [][]byte{{0x2a}})

	var cellBuf bytes.Buffer
	_, err := WriteVarint(&cellBuf, uint64(len(cell)))
	assert.NoError(err)
	_, err = WriteVarint(&cellBuf, 7) // row id
	assert.NoError(err)
	cellBuf.Write(cell)

	data := buildLeafPage(512, cellBuf.Bytes())

	page, err := FromBytes(2, data)
	assert.NoError(err)
	assert.Equal(PageTypeLeaf, page.Type())
	assert.Equal(1, page.CellCount())

	rowID, record, err := page.ReadRecord(0)
	assert.NoError(err)
	assert.Equal(int64(7), rowID)
	assert.Equal(int64(42), record.Fields[0].Data)
}

func TestFromBytes_InteriorPage(t *testing.T) {
	assert := require.New(t)

	data := make([]byte, 512)
	data[0] = byte(PageTypeInternal)
	binary.BigEndian.PutUint16(data[3:5], 1)
	binary.BigEndian.PutUint32(data[8:12], 99) // right page

	node := InteriorNode{LeftChild: 5, Key: 123}
	cellBytes, err := node.ToBytes()
	assert.NoError(err)

	cellOffset := 512 - len(cellBytes)
	binary.BigEndian.PutUint16(data[5:7], uint16(cellOffset))
	binary.BigEndian.PutUint16(data[12:14], uint16(cellOffset))
	copy(data[cellOffset:], cellBytes)

	page, err := FromBytes(3, data)
	assert.NoError(err)
	assert.Equal(PageTypeInternal, page.Type())
	assert.Equal(99, page.RightPage())

	got, err := page.ReadInteriorNode(0)
	assert.NoError(err)
	assert.Equal(uint32(5), got.LeftChild)
	assert.Equal(uint32(123), got.Key)
}

func TestFromBytes_UnsupportedPageType(t *testing.T) {
	assert := require.New(t)

	data := make([]byte, 512)
	data[0] = 0xFF

	_, err := FromBytes(2, data)
	assert.Error(err)

	var storeErr *Error
	assert.ErrorAs(err, &storeErr)
	assert.Equal(KindUnsupportedPageType, storeErr.Kind)
}

func TestFromBytes_RejectsIndexPageTypes(t *testing.T) {
	assert := require.New(t)

	for _, pageType := range []byte{0x02, 0x0A} {
		data := make([]byte, 512)
		data[0] = pageType

		_, err := FromBytes(2, data)
		assert.Error(err)

		var storeErr *Error
		assert.ErrorAs(err, &storeErr)
		assert.Equal(KindUnsupportedPageType, storeErr.Kind)
	}
}

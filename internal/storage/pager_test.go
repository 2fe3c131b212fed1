package storage

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func buildDatabaseFile(t *testing.T, pageSize int, pages [][]byte) []byte {
	t.Helper()

	header := NewFileHeader(uint16(pageSize))
	header.HeaderPageCount = uint32(len(pages) + 1)

	var buf bytes.Buffer
	_, err := header.WriteTo(&buf)
	require.NoError(t, err)

	page1 := make([]byte, pageSize)
	copy(page1, buf.Bytes())
	page1[100] = byte(PageTypeLeaf)

	var out bytes.Buffer
	out.Write(page1)
	for _, p := range pages {
		padded := make([]byte, pageSize)
		copy(padded, p)
		out.Write(padded)
	}
	return out.Bytes()
}

func TestPager_OpenAndRead(t *testing.T) {
	assert := require.New(t)

	data := buildDatabaseFile(t, 512, nil)

	pager, err := OpenReaderAt(bytes.NewReader(data), int64(len(data)), nil)
	assert.NoError(err)
	assert.Equal(512, pager.PageSize())
	assert.Equal(1, pager.PageCount())

	page, err := pager.Read(1)
	assert.NoError(err)
	assert.Equal(PageTypeLeaf, page.Type())
	assert.Equal(1, page.Number())
}

func TestPager_ReadOutOfBounds(t *testing.T) {
	assert := require.New(t)

	data := buildDatabaseFile(t, 512, nil)
	pager, err := OpenReaderAt(bytes.NewReader(data), int64(len(data)), nil)
	assert.NoError(err)

	_, err = pager.Read(0)
	assert.Error(err)

	_, err = pager.Read(2)
	assert.Error(err)
}

func TestPager_RejectsBadMagic(t *testing.T) {
	assert := require.New(t)

	data := buildDatabaseFile(t, 512, nil)
	data[0] = 'X'

	_, err := OpenReaderAt(bytes.NewReader(data), int64(len(data)), nil)
	assert.Error(err)

	var storeErr *Error
	assert.ErrorAs(err, &storeErr)
	assert.Equal(KindMagic, storeErr.Kind)
}

func TestPager_CachesPages(t *testing.T) {
	assert := require.New(t)

	data := buildDatabaseFile(t, 512, nil)
	pager, err := OpenReaderAt(bytes.NewReader(data), int64(len(data)), nil)
	assert.NoError(err)

	first, err := pager.Read(1)
	assert.NoError(err)
	second, err := pager.Read(1)
	assert.NoError(err)
	assert.Same(first, second)
}

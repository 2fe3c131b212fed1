package demodb

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sqlite-riir/sqlite-riir/internal/storage"
)

func TestBytes_OpensAndListsGreeting(t *testing.T) {
	assert := require.New(t)

	data := Bytes()

	pager, err := storage.OpenReaderAt(bytes.NewReader(data), int64(len(data)), nil)
	assert.NoError(err)
	assert.Equal(pageSize, pager.PageSize())
	assert.Equal(2, pager.PageCount())

	schema, err := storage.ReadSchema(pager)
	assert.NoError(err)
	assert.Equal([]string{"sqlite_schema", "greeting"}, schema.Tables())

	info, ok := schema.Lookup("greeting")
	assert.True(ok)
	assert.Equal(2, info.RootPage)
	assert.Equal("CREATE TABLE greeting(message text)", info.SQL)
}

func TestBytes_GreetingRowReadsBack(t *testing.T) {
	assert := require.New(t)

	data := Bytes()
	pager, err := storage.OpenReaderAt(bytes.NewReader(data), int64(len(data)), nil)
	assert.NoError(err)

	schema, err := storage.ReadSchema(pager)
	assert.NoError(err)
	info, ok := schema.Lookup("greeting")
	assert.True(ok)

	it := storage.NewRowIter(pager, info.RootPage)
	row, err := it.Next()
	assert.NoError(err)
	assert.Equal(int64(1), row.RowID)
	assert.Len(row.Fields, 1)
	assert.Equal("hello from sqlite-riir", row.Fields[0].Data)
}

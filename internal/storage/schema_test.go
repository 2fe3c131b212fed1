package storage

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func encodeSchemaRow(t *testing.T, rowID int64, typeName, name, tableName string, rootPage int64, sql string) []byte {
	t.Helper()

	serials := []uint64{
		uint64(13 + 2*len(typeName)),
		uint64(13 + 2*len(name)),
		uint64(13 + 2*len(tableName)),
		1, // rootpage: int8
		uint64(13 + 2*len(sql)),
	}
	bodies := [][]byte{
		[]byte(typeName),
		[]byte(name),
		[]byte(tableName),
		{byte(rootPage)},
		[]byte(sql),
	}
	record := buildRecord(t, serials, bodies)

	var buf bytes.Buffer
	_, err := WriteVarint(&buf, uint64(len(record)))
	require.NoError(t, err)
	_, err = WriteVarint(&buf, uint64(rowID))
	require.NoError(t, err)
	buf.Write(record)
	return buf.Bytes()
}

func buildSchemaPage(t *testing.T, pageSize int, rows [][]byte) []byte {
	t.Helper()
	return buildLeafPageAt(pageSize, 1, rows)
}

func pagerWithSchema(t *testing.T, pageSize int, rows [][]byte) *Pager {
	t.Helper()

	header := NewFileHeader(uint16(pageSize))
	header.HeaderPageCount = 1

	var headerBuf bytes.Buffer
	_, err := header.WriteTo(&headerBuf)
	require.NoError(t, err)

	page1 := buildSchemaPage(t, pageSize, rows)
	copy(page1, headerBuf.Bytes())

	pager, err := OpenReaderAt(bytes.NewReader(page1), int64(pageSize), nil)
	require.NoError(t, err)
	return pager
}

func TestReadSchema_ListsTables(t *testing.T) {
	assert := require.New(t)

	rows := [][]byte{
		encodeSchemaRow(t, 1, "table", "widgets", "widgets", 2, "CREATE TABLE widgets(id integer)"),
		encodeSchemaRow(t, 2, "table", "gadgets", "gadgets", 3, "CREATE TABLE gadgets(id integer)"),
	}
	pager := pagerWithSchema(t, 512, rows)

	schema, err := ReadSchema(pager)
	assert.NoError(err)
	assert.Equal([]string{"sqlite_schema", "widgets", "gadgets"}, schema.Tables())

	info, ok := schema.Lookup("widgets")
	assert.True(ok)
	assert.Equal(2, info.RootPage)

	info, ok = schema.Lookup("sqlite_schema")
	assert.True(ok)
	assert.Equal(1, info.RootPage)

	_, ok = schema.Lookup("missing")
	assert.False(ok)
}

// TestReadSchema_KeyedOnThirdColumn locks in that table lookups use
// the schema row's third column (tbl_name), not its second (name):
// the two are normally equal, so this gives them different values.
func TestReadSchema_KeyedOnThirdColumn(t *testing.T) {
	assert := require.New(t)

	rows := [][]byte{
		encodeSchemaRow(t, 1, "table", "some_other_name", "widgets", 2, "CREATE TABLE widgets(id integer)"),
	}
	pager := pagerWithSchema(t, 512, rows)

	schema, err := ReadSchema(pager)
	assert.NoError(err)

	info, ok := schema.Lookup("widgets")
	assert.True(ok)
	assert.Equal(2, info.RootPage)

	_, ok = schema.Lookup("some_other_name")
	assert.False(ok)
}

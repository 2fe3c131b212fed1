// Package demodb builds the small, valid format-3 database the shell
// opens when it is given no file path: a single "greeting" table with
// one row, built in memory rather than shipped as a binary fixture.
package demodb

import (
	"bytes"
	"encoding/binary"

	"github.com/sqlite-riir/sqlite-riir/internal/storage"
)

const pageSize = 512

func serialType(data interface{}) (uint64, []byte) {
	switch v := data.(type) {
	case int64:
		return 1, []byte{byte(v)}
	case string:
		return uint64(13 + 2*len(v)), []byte(v)
	default:
		return 0, nil
	}
}

func encodeRecord(values ...interface{}) []byte {
	var header, body bytes.Buffer
	for _, v := range values {
		st, b := serialType(v)
		storage.WriteVarint(&header, st)
		body.Write(b)
	}

	var headerLen bytes.Buffer
	storage.WriteVarint(&headerLen, uint64(header.Len()+1))

	var out bytes.Buffer
	out.Write(headerLen.Bytes())
	out.Write(header.Bytes())
	out.Write(body.Bytes())
	return out.Bytes()
}

func encodeLeafCell(rowID int64, values ...interface{}) []byte {
	record := encodeRecord(values...)

	var buf bytes.Buffer
	storage.WriteVarint(&buf, uint64(len(record)))
	storage.WriteVarint(&buf, uint64(rowID))
	buf.Write(record)
	return buf.Bytes()
}

func writeLeafPage(headerOffset int, cells [][]byte) []byte {
	data := make([]byte, pageSize)
	data[headerOffset] = 0x0D // leaf table btree page
	binary.BigEndian.PutUint16(data[headerOffset+3:headerOffset+5], uint16(len(cells)))

	offset := pageSize
	for i, cell := range cells {
		offset -= len(cell)
		copy(data[offset:], cell)
		binary.BigEndian.PutUint16(data[headerOffset+8+2*i:], uint16(offset))
	}
	binary.BigEndian.PutUint16(data[headerOffset+5:headerOffset+7], uint16(offset))
	return data
}

// Bytes returns the complete contents of the demo database file.
func Bytes() []byte {
	header := storage.NewFileHeader(pageSize)
	header.HeaderPageCount = 2

	var headerBuf bytes.Buffer
	header.WriteTo(&headerBuf)

	page1 := writeLeafPage(100, [][]byte{
		encodeLeafCell(1, "table", "greeting", "greeting", int64(2),
			"CREATE TABLE greeting(message text)"),
	})
	copy(page1, headerBuf.Bytes())

	page2 := writeLeafPage(0, [][]byte{
		encodeLeafCell(1, "hello from sqlite-riir"),
	})

	var out bytes.Buffer
	out.Write(page1)
	out.Write(page2)
	return out.Bytes()
}

package storage

import (
	"bytes"
	"encoding/binary"
	"io"
)

// magic is the 16-byte string every valid database file starts with.
var magic = []byte("SQLite format 3\000")

// FileHeader represents the 100-byte database file header.
type FileHeader struct {
	// PageSize is the size in bytes of every page in the file. A
	// stored value of 0 means 65536.
	PageSize uint32
	// FileChangeCounter increases on every modification. Read-only
	// here; kept for parity with the on-disk layout.
	FileChangeCounter uint32
	// SchemaVersion increases on every schema modification.
	SchemaVersion uint32
	// HeaderPageCount is the page count recorded in the header itself.
	// page_count() prefers the file length; this field is kept only
	// for cross-checking against it.
	HeaderPageCount uint32
	// TextEncoding is 1 (UTF-8), 2 (UTF-16le) or 3 (UTF-16be).
	TextEncoding uint32
}

// NewFileHeader creates a FileHeader for a fresh database, used by
// test fixtures and by the built-in demo database rather than when
// reading real files.
func NewFileHeader(pageSize uint16) FileHeader {
	return FileHeader{
		PageSize:        uint32(pageSize),
		HeaderPageCount: 1,
		TextEncoding:    1,
	}
}

// WriteTo serializes the header to w, used by test fixtures and by
// the built-in demo database.
func (h FileHeader) WriteTo(w io.Writer) (int64, error) {
	data := make([]byte, 100)
	copy(data, magic)

	pageSizeField := uint16(h.PageSize)
	if h.PageSize == 65536 {
		pageSizeField = 0
	}
	binary.BigEndian.PutUint16(data[16:], pageSizeField)

	data[18] = 1
	data[19] = 1
	data[20] = 0
	data[21] = 64
	data[22] = 32
	data[23] = 32

	binary.BigEndian.PutUint32(data[24:], h.FileChangeCounter)
	binary.BigEndian.PutUint32(data[28:], h.HeaderPageCount)
	binary.BigEndian.PutUint32(data[40:], h.SchemaVersion)
	binary.BigEndian.PutUint32(data[44:], 4)
	binary.BigEndian.PutUint32(data[56:], h.TextEncoding)
	binary.BigEndian.PutUint32(data[92:], 3)
	binary.BigEndian.PutUint32(data[96:], 3027002)

	if _, err := w.Write(data); err != nil {
		return 0, err
	}
	return 100, nil
}

// ParseFileHeader validates and decodes the 100-byte database header.
// buf must be exactly 100 bytes.
func ParseFileHeader(buf []byte) (FileHeader, error) {
	if len(buf) != 100 {
		return FileHeader{}, newError(KindTruncated, "file shorter than the 100-byte header", nil)
	}

	if !bytes.Equal(buf[:16], magic) {
		return FileHeader{}, newError(KindMagic, "missing \"SQLite format 3\\0\" magic", nil)
	}

	rawPageSize := binary.BigEndian.Uint16(buf[16:18])
	pageSize := uint32(rawPageSize)
	if rawPageSize == 0 {
		pageSize = 65536
	}
	if pageSize < 512 || pageSize > 65536 || pageSize&(pageSize-1) != 0 {
		return FileHeader{}, newError(KindHeader, "page size is not a power of two in [512, 65536]", nil)
	}

	return FileHeader{
		PageSize:          pageSize,
		FileChangeCounter: binary.BigEndian.Uint32(buf[24:28]),
		HeaderPageCount:   binary.BigEndian.Uint32(buf[28:32]),
		SchemaVersion:     binary.BigEndian.Uint32(buf[40:44]),
		TextEncoding:      binary.BigEndian.Uint32(buf[56:60]),
	}, nil
}

package storage

import (
	"bytes"
	"encoding/binary"
)

// InteriorHeaderLen is the length of an interior btree node header.
const InteriorHeaderLen = 12

// LeafHeaderLen is the length of a btree leaf node header.
const LeafHeaderLen = 8

// PageType identifies the shape of a btree page.
type PageType byte

const (
	// PageTypeInternal is an interior table btree page.
	PageTypeInternal PageType = 0x05

	// PageTypeLeaf is a leaf table btree page.
	PageTypeLeaf PageType = 0x0D

	// PageTypeInternalIndex is an interior index btree page.
	PageTypeInternalIndex PageType = 0x02

	// PageTypeLeafIndex is a leaf index btree page.
	PageTypeLeafIndex PageType = 0x0A
)

func (t PageType) isInternal() bool {
	return t == PageTypeInternal
}

// valid reports whether t is one of the two table btree page types
// this reader decodes. Index btree pages (0x02, 0x0A) are a stated
// non-goal and are rejected here rather than parsed as table pages.
func (t PageType) valid() bool {
	switch t {
	case PageTypeInternal, PageTypeLeaf:
		return true
	default:
		return false
	}
}

// PageHeader contains the fixed fields found at the start of every
// btree page (at offset 100 on page 1, offset 0 elsewhere):
//
//	0      1   Page type.
//	1-2    2   Start of the first freeblock, or 0.
//	3-4    2   Number of cells on the page.
//	5-6    2   Start of the cell content area. 0 means 65536.
//	7      1   Number of fragmented free bytes within the content area.
//	8-11   4   Right-most child pointer (interior pages only).
type PageHeader struct {
	Type                PageType
	FreeBlock           uint16
	NumCells            uint16
	CellsOffset         int
	FragmentedFreeBytes byte
	RightPage           int
}

// MemPage is a decoded view over one page's worth of bytes held by
// the pager. Its field layout only ever grows: this reader never
// mutates a page, so there is no write-path API here.
type MemPage struct {
	header     PageHeader
	pageNumber int
	data       []byte
}

// Number is the 1-based page number this MemPage was read from.
func (p *MemPage) Number() int {
	return p.pageNumber
}

// Type is the page's btree page type.
func (p *MemPage) Type() PageType {
	return p.header.Type
}

// RightPage is the right-most child pointer. Only meaningful for
// interior pages.
func (p *MemPage) RightPage() int {
	return p.header.RightPage
}

// CellCount is the number of cells stored in this page.
func (p *MemPage) CellCount() int {
	return int(p.header.NumCells)
}

// ReadRecord decodes the leaf table-btree cell at cellIndex: its
// varint payload length, varint row id, and record payload.
func (p *MemPage) ReadRecord(cellIndex int) (int64, *Record, error) {
	cellStart, err := p.cellDataOffset(cellIndex)
	if err != nil {
		return 0, nil, err
	}

	reader := bytes.NewReader(p.data[cellStart:])

	payloadLen, _, err := ReadVarint(reader)
	if err != nil {
		return 0, nil, newError(KindTruncated, "reading leaf cell payload length", err)
	}

	rowID, _, err := ReadVarint(reader)
	if err != nil {
		return 0, nil, newError(KindTruncated, "reading leaf cell row id", err)
	}

	payload := make([]byte, payloadLen)
	if n, _ := reader.Read(payload); n != len(payload) {
		return 0, nil, newError(KindTruncated, "reading leaf cell payload", nil)
	}

	record, err := ReadRecord(bytes.NewReader(payload))
	if err != nil {
		return 0, nil, err
	}
	record.Key = int64(rowID)

	return int64(rowID), &record, nil
}

// ReadInteriorNode decodes the interior table-btree cell at
// cellIndex: its left-child pointer and varint key.
func (p *MemPage) ReadInteriorNode(cellIndex int) (*InteriorNode, error) {
	cellStart, err := p.cellDataOffset(cellIndex)
	if err != nil {
		return nil, err
	}
	return ReadInteriorNode(p.data[cellStart:])
}

func (p *MemPage) cellDataOffset(cellIndex int) (int, error) {
	if cellIndex < 0 || cellIndex >= int(p.header.NumCells) {
		return 0, newError(KindBounds, "cell index out of range", nil)
	}

	pointerOffset := cellPointersStart(p.header.Type, p.pageNumber) + 2*cellIndex
	if pointerOffset+2 > len(p.data) {
		return 0, newError(KindBounds, "cell pointer array extends past the page", nil)
	}

	offset := binary.BigEndian.Uint16(p.data[pointerOffset : pointerOffset+2])
	if int(offset) >= len(p.data) {
		return 0, newError(KindBounds, "cell pointer refers outside the page", nil)
	}
	return int(offset), nil
}

func cellPointersStart(pageType PageType, pageNumber int) int {
	if pageType.isInternal() {
		return headerOffset(pageNumber) + InteriorHeaderLen
	}
	return headerOffset(pageNumber) + LeafHeaderLen
}

// headerOffset is 100 for page 1 (which embeds the database header
// in its first 100 bytes) and 0 for every other page.
func headerOffset(pageNumber int) int {
	if pageNumber == 1 {
		return 100
	}
	return 0
}

// FromBytes parses a page's btree header out of a full page-size
// buffer and takes ownership of the slice. data must be the complete,
// unshortened page, including the embedded database header if
// pageNumber is 1.
func FromBytes(pageNumber int, data []byte) (*MemPage, error) {
	offset := headerOffset(pageNumber)
	if offset+LeafHeaderLen > len(data) {
		return nil, newError(KindTruncated, "page shorter than its btree header", nil)
	}

	view := data[offset:]
	header := PageHeader{
		Type:                PageType(view[0]),
		FreeBlock:           binary.BigEndian.Uint16(view[1:3]),
		NumCells:            binary.BigEndian.Uint16(view[3:5]),
		CellsOffset:         int(binary.BigEndian.Uint16(view[5:7])),
		FragmentedFreeBytes: view[7],
	}
	if header.CellsOffset == 0 {
		header.CellsOffset = 65536
	}

	if !header.Type.valid() {
		return nil, newError(KindUnsupportedPageType, "unrecognized btree page type byte", nil)
	}

	if header.Type.isInternal() {
		if offset+InteriorHeaderLen > len(data) {
			return nil, newError(KindTruncated, "interior page shorter than its 12-byte header", nil)
		}
		header.RightPage = int(binary.BigEndian.Uint32(view[8:12]))
	}

	return &MemPage{
		header:     header,
		pageNumber: pageNumber,
		data:       data,
	}, nil
}

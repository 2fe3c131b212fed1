package storage

import (
	"bytes"
	"encoding/binary"
)

// InteriorNode is one cell of an interior table btree page: a child
// page pointer and the largest row id stored under it.
type InteriorNode struct {
	LeftChild uint32
	Key       uint32
}

// ReadInteriorNode parses an interior node from a byte slice.
func ReadInteriorNode(data []byte) (*InteriorNode, error) {
	reader := bytes.NewReader(data)

	var leftChild uint32
	if err := binary.Read(reader, binary.BigEndian, &leftChild); err != nil {
		return nil, newError(KindTruncated, "reading interior cell left-child pointer", err)
	}

	key, _, err := ReadVarint(reader)
	if err != nil {
		return nil, newError(KindTruncated, "reading interior cell key", err)
	}

	return &InteriorNode{LeftChild: leftChild, Key: uint32(key)}, nil
}

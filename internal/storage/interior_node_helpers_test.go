package storage

import (
	"bytes"
	"encoding/binary"
	"io"
)

// ToBytes serializes an interior node for fixture-building; no
// production code path ever writes a page, only reads one.
func (r InteriorNode) ToBytes() ([]byte, error) {
	buf := bytes.Buffer{}
	if err := r.write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (r InteriorNode) write(bs io.ByteWriter) error {
	recordBuffer := bytes.Buffer{}
	if err := binary.Write(&recordBuffer, binary.BigEndian, r.LeftChild); err != nil {
		return err
	}
	WriteVarint(&recordBuffer, uint64(r.Key))

	for _, b := range recordBuffer.Bytes() {
		if err := bs.WriteByte(b); err != nil {
			return err
		}
	}
	return nil
}

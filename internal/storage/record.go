package storage

import (
	"encoding/binary"
	"io"
	"math"
)

// ColumnType is the decoded SQL type a record column's serial type
// code maps to.
type ColumnType int

const (
	ColumnNull ColumnType = iota
	ColumnInt8
	ColumnInt16
	ColumnInt24
	ColumnInt32
	ColumnInt48
	ColumnInt64
	ColumnFloat64
	ColumnZero
	ColumnOne
	ColumnBlob
	ColumnText
)

// Field is a single decoded column value within a Record.
type Field struct {
	Type ColumnType
	// Data holds int64 for every integer variant (including
	// ColumnZero and ColumnOne, as 0 and 1), float64 for
	// ColumnFloat64, []byte for ColumnBlob, string for ColumnText,
	// and nil for ColumnNull.
	Data interface{}
}

// Record is a row's fully decoded column set, keyed by the leaf
// cell's row id.
type Record struct {
	Key    int64
	Fields []*Field
}

// serialTypeWidth returns the number of payload-body bytes a serial
// type code occupies, and the ColumnType it decodes to.
func serialTypeWidth(serialType uint64) (ColumnType, int) {
	switch {
	case serialType == 0:
		return ColumnNull, 0
	case serialType == 1:
		return ColumnInt8, 1
	case serialType == 2:
		return ColumnInt16, 2
	case serialType == 3:
		return ColumnInt24, 3
	case serialType == 4:
		return ColumnInt32, 4
	case serialType == 5:
		return ColumnInt48, 6
	case serialType == 6:
		return ColumnInt64, 8
	case serialType == 7:
		return ColumnFloat64, 8
	case serialType == 8:
		return ColumnZero, 0
	case serialType == 9:
		return ColumnOne, 0
	case serialType >= 12 && serialType%2 == 0:
		return ColumnBlob, int((serialType - 12) / 2)
	case serialType >= 13 && serialType%2 == 1:
		return ColumnText, int((serialType - 13) / 2)
	default:
		// Serial types 10 and 11 are reserved for internal use and
		// never appear in a well-formed database file.
		return ColumnNull, 0
	}
}

func readSignedBigEndian(b []byte) int64 {
	var v int64
	if len(b) > 0 && b[0]&0x80 != 0 {
		v = -1
	}
	for _, byt := range b {
		v = v<<8 | int64(byt)
	}
	return v
}

// ReadRecord decodes a record body (header length, serial type
// codes, then the column values themselves) from r.
func ReadRecord(r io.Reader) (Record, error) {
	br, ok := r.(io.ByteReader)
	if !ok {
		br = bufByteReader{r}
	}

	headerStart := 0
	headerLen, n, err := ReadVarint(br)
	if err != nil {
		return Record{}, newError(KindTruncated, "reading record header length", err)
	}
	headerStart += n

	var widths []int
	var types []ColumnType
	for headerStart < int(headerLen) {
		serialType, n, err := ReadVarint(br)
		if err != nil {
			return Record{}, newError(KindTruncated, "reading record serial type", err)
		}
		headerStart += n

		typ, width := serialTypeWidth(serialType)
		types = append(types, typ)
		widths = append(widths, width)
	}

	fields := make([]*Field, len(types))
	for i, typ := range types {
		width := widths[i]
		var body []byte
		if width > 0 {
			body = make([]byte, width)
			if _, err := io.ReadFull(r, body); err != nil {
				return Record{}, newError(KindTruncated, "reading record column body", err)
			}
		}

		f := &Field{Type: typ}
		switch typ {
		case ColumnNull:
			f.Data = nil
		case ColumnZero:
			f.Data = int64(0)
		case ColumnOne:
			f.Data = int64(1)
		case ColumnInt8, ColumnInt16, ColumnInt24, ColumnInt32, ColumnInt48, ColumnInt64:
			f.Data = readSignedBigEndian(body)
		case ColumnFloat64:
			f.Data = math.Float64frombits(binary.BigEndian.Uint64(body))
		case ColumnBlob:
			f.Data = body
		case ColumnText:
			f.Data = string(body)
		}
		fields[i] = f
	}

	return Record{Fields: fields}, nil
}

// bufByteReader adapts an io.Reader without ReadByte into an
// io.ByteReader by reading a single byte at a time.
type bufByteReader struct {
	io.Reader
}

func (b bufByteReader) ReadByte() (byte, error) {
	var buf [1]byte
	if _, err := io.ReadFull(b.Reader, buf[:]); err != nil {
		return 0, err
	}
	return buf[0], nil
}

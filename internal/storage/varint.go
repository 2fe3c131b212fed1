package storage

import (
	"io"
)

// maxVarintLen is the largest number of bytes a SQLite varint ever
// occupies. The ninth byte, if present, contributes a full 8 bits
// with no continuation bit of its own.
const maxVarintLen = 9

// ReadVarint reads a SQLite-style big-endian variable-length integer.
// Each of the first eight bytes contributes its low 7 bits, most
// significant byte first; the high bit of each of those bytes signals
// whether another byte follows. A ninth byte, if reached, contributes
// all 8 of its bits and always ends the encoding.
func ReadVarint(reader io.ByteReader) (uint64, int, error) {
	var x uint64
	for i := 0; i < maxVarintLen; i++ {
		b, err := reader.ReadByte()
		if err != nil {
			return 0, i, err
		}

		if i == maxVarintLen-1 {
			x = x<<8 | uint64(b)
			return x, i + 1, nil
		}

		x = x<<7 | uint64(b&0x7f)
		if b&0x80 == 0 {
			return x, i + 1, nil
		}
	}

	return x, maxVarintLen, nil
}

// WriteVarint encodes v as a SQLite-style big-endian varint and writes
// it to w, returning the number of bytes written.
func WriteVarint(w io.ByteWriter, v uint64) (int, error) {
	if v < 1<<56 {
		// Collect 7-bit groups least-significant first, then emit
		// most-significant first with a continuation bit on all but
		// the last group.
		var tmp [maxVarintLen - 1]byte
		n := 0
		for {
			tmp[n] = byte(v & 0x7f)
			v >>= 7
			n++
			if v == 0 {
				break
			}
		}

		for i := 0; i < n; i++ {
			b := tmp[n-1-i]
			if i < n-1 {
				b |= 0x80
			}
			if err := w.WriteByte(b); err != nil {
				return i, err
			}
		}
		return n, nil
	}

	// Doesn't fit in eight 7-bit groups: the ninth byte carries the
	// low 8 bits raw and the remaining 56 bits fill the first eight
	// bytes as continuation groups.
	last := byte(v)
	rem := v >> 8
	var buf [maxVarintLen - 1]byte
	for i := len(buf) - 1; i >= 0; i-- {
		buf[i] = byte(rem&0x7f) | 0x80
		rem >>= 7
	}
	for _, b := range buf {
		if err := w.WriteByte(b); err != nil {
			return 0, err
		}
	}
	if err := w.WriteByte(last); err != nil {
		return len(buf), err
	}
	return maxVarintLen, nil
}

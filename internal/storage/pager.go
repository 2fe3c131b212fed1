package storage

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// Pager is a read-only, single-threaded accessor for a SQLite
// format-3 file. It owns the underlying file handle, validates the
// database header on Open, and serves whole pages from an
// unevicted, growth-only cache so that a *MemPage handed to a caller
// stays valid for the pager's entire lifetime.
type Pager struct {
	header    FileHeader
	reader    io.ReaderAt
	closer    io.Closer
	pageCount int
	cache     map[int]*MemPage
	log       *logrus.Logger
}

// Open opens the database file at path, validates its header, and
// derives the page count from the file's length (see PageCount).
func Open(path string, log *logrus.Logger) (*Pager, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, newError(KindIO, "opening database file", err)
	}

	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, newError(KindIO, "statting database file", err)
	}

	pager, err := newPager(file, file, info.Size(), log)
	if err != nil {
		file.Close()
		return nil, err
	}
	return pager, nil
}

// OpenReaderAt builds a Pager over an already-open io.ReaderAt of the
// given size, without taking ownership of a Closer. Used for
// database files held in memory: test fixtures and the shell's
// built-in demo database.
func OpenReaderAt(r io.ReaderAt, size int64, log *logrus.Logger) (*Pager, error) {
	return newPager(r, nil, size, log)
}

func newPager(r io.ReaderAt, closer io.Closer, size int64, log *logrus.Logger) (*Pager, error) {
	if log == nil {
		log = logrus.StandardLogger()
	}

	headerBytes := make([]byte, 100)
	if _, err := r.ReadAt(headerBytes, 0); err != nil {
		return nil, newError(KindTruncated, "reading 100-byte database header", err)
	}

	header, err := ParseFileHeader(headerBytes)
	if err != nil {
		return nil, err
	}

	if size < int64(header.PageSize) {
		return nil, newError(KindTruncated, "file shorter than one page", nil)
	}

	pageCount := int(size / int64(header.PageSize))
	if uint32(pageCount) != header.HeaderPageCount {
		log.WithFields(logrus.Fields{
			"file_length_pages": pageCount,
			"header_page_count": header.HeaderPageCount,
		}).Warn("page count derived from file length disagrees with the header")
	}

	return &Pager{
		header:    header,
		reader:    r,
		closer:    closer,
		pageCount: pageCount,
		cache:     make(map[int]*MemPage),
		log:       log,
	}, nil
}

// Close releases the underlying file handle, if the pager owns one.
func (p *Pager) Close() error {
	if p.closer == nil {
		return nil
	}
	return p.closer.Close()
}

// PageSize is the database's fixed page size in bytes.
func (p *Pager) PageSize() int {
	return int(p.header.PageSize)
}

// PageCount is the number of pages in the file, derived from the
// file's length rather than the header's own (possibly stale) count.
func (p *Pager) PageCount() int {
	return p.pageCount
}

// Header exposes the validated database header.
func (p *Pager) Header() FileHeader {
	return p.header
}

// Read returns the decoded page for the given 1-based page number,
// from cache if already read. The returned *MemPage's backing buffer
// never moves, so pointers into it (row iterators, cursors) stay
// valid for as long as the Pager is open.
func (p *Pager) Read(page int) (*MemPage, error) {
	if page < 1 || page > p.pageCount {
		return nil, newError(KindBounds, fmt.Sprintf("page %d out of range [1, %d]", page, p.pageCount), nil)
	}

	if cached, ok := p.cache[page]; ok {
		return cached, nil
	}

	data := make([]byte, p.header.PageSize)
	offset := int64(page-1) * int64(p.header.PageSize)
	if _, err := p.reader.ReadAt(data, offset); err != nil {
		return nil, newError(KindIO, fmt.Sprintf("reading page %d", page), err)
	}

	mp, err := FromBytes(page, data)
	if err != nil {
		return nil, err
	}

	p.cache[page] = mp
	return mp, nil
}

package parser

import (
	"io"
	"sync"

	lru "github.com/hashicorp/golang-lru"
)

// OffsetReader exposes a volume embedded at a fixed offset inside a
// larger image (e.g. behind a partition table).
type OffsetReader struct {
	Offset int64
	Reader io.ReaderAt
}

func (self *OffsetReader) ReadAt(buf []byte, offset int64) (int, error) {
	return self.Reader.ReadAt(buf, offset+self.Offset)
}

// PagedReader reads whole aligned pages and keeps them in an LRU
// cache. Raw windows devices such as \\.\c: may only be read with
// sector alignment, so all image access goes through here.
type PagedReader struct {
	mu sync.Mutex

	reader   io.ReaderAt
	pagesize int64
	lru      *lru.Cache

	Hits int64
	Miss int64
}

func NewPagedReader(reader io.ReaderAt, pagesize int64, cache_size int) (
	*PagedReader, error) {
	cache, err := lru.New(cache_size)
	if err != nil {
		return nil, err
	}

	return &PagedReader{
		reader:   reader,
		pagesize: pagesize,
		lru:      cache,
	}, nil
}

// ReadAt fills buf from the page cache with the following semantics:
//  1. Reading within the file fills the buffer completely with
//     n = len(buf) and err = nil.
//  2. Reading a range that starts within the file and runs past its
//     end returns a zero padded full buffer with err = nil.
//  3. Reading entirely outside the file returns n = 0 and io.EOF.
func (self *PagedReader) ReadAt(buf []byte, offset int64) (int, error) {
	if offset < 0 {
		return 0, io.EOF
	}

	self.mu.Lock()
	defer self.mu.Unlock()

	buf_idx := 0
	for {
		// How much is left in this page to read?
		to_read := int(self.pagesize - offset%self.pagesize)
		if to_read > len(buf)-buf_idx {
			to_read = len(buf) - buf_idx
		}
		if to_read == 0 {
			return buf_idx, nil
		}

		var page_buf []byte

		page := offset - offset%self.pagesize
		cached_page_buf, pres := self.lru.Get(page)
		if pres {
			self.Hits += 1
			page_buf = cached_page_buf.([]byte)

		} else {
			self.Miss += 1
			DebugPrint("Cache miss for %x (%d cached)\n", page, self.lru.Len())

			page_buf = make([]byte, self.pagesize)
			n, err := self.reader.ReadAt(page_buf, page)
			if err != nil && err != io.EOF {
				return buf_idx, err
			}

			if n == 0 {
				// The whole page is outside the file. If this is the
				// first page the read failed entirely; otherwise pad
				// the rest of the buffer.
				if buf_idx == 0 {
					return 0, io.EOF
				}
				for i := buf_idx; i < len(buf); i++ {
					buf[i] = 0
				}
				return len(buf), nil
			}

			// The tail past EOF stays zero so partial pages read as
			// padded.
			self.lru.Add(page, page_buf)
		}

		page_offset := int(offset % self.pagesize)
		copy(buf[buf_idx:buf_idx+to_read],
			page_buf[page_offset:page_offset+to_read])

		offset += int64(to_read)
		buf_idx += to_read
	}
}

func (self *PagedReader) Flush() {
	self.mu.Lock()
	defer self.mu.Unlock()

	self.lru.Purge()
}

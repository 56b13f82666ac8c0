// Package fast provides unchecked byte cursors used by the canonical epoch
// codec. Reads past the end of the buffer panic; callers recover at the codec
// boundary (see cser.UnmarshalBinaryAdapter).
package fast

// Reader consumes a byte slice front to back.
type Reader struct {
	buf    []byte
	offset int
}

// Writer appends to a byte slice.
type Writer struct {
	buf []byte
}

// NewReader returns a Reader positioned at the start of bb.
func NewReader(bb []byte) *Reader {
	return &Reader{buf: bb}
}

// NewWriter returns a Writer appending to bb. Pass make([]byte, 0, n) to
// preallocate.
func NewWriter(bb []byte) *Writer {
	return &Writer{buf: bb}
}

// WriteByte appends a single byte.
func (b *Writer) WriteByte(v byte) {
	b.buf = append(b.buf, v)
}

// Write appends v.
func (b *Writer) Write(v []byte) {
	b.buf = append(b.buf, v...)
}

// Bytes returns everything written so far.
func (b *Writer) Bytes() []byte {
	return b.buf
}

// Read returns the next n bytes. The result aliases the underlying buffer.
func (b *Reader) Read(n int) []byte {
	res := b.buf[b.offset : b.offset+n]
	b.offset += n
	return res
}

// ReadByte returns the next byte.
func (b *Reader) ReadByte() byte {
	res := b.buf[b.offset]
	b.offset++
	return res
}

// Position is the number of bytes consumed.
func (b *Reader) Position() int {
	return b.offset
}

// Bytes returns the whole underlying buffer, consumed or not.
func (b *Reader) Bytes() []byte {
	return b.buf
}

// Empty reports whether every byte has been consumed.
func (b *Reader) Empty() bool {
	return len(b.buf) == b.offset
}

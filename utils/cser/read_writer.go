// Package cser is the canonical binary serialisation used to persist epochs.
//
// Integers are split across two streams: the payload bytes go to the byte
// stream while the number of bytes used goes to a separate bit stream. Every
// value has exactly one valid encoding; a decoder that meets a non-minimal
// one fails with ErrNonCanonicalEncoding.
package cser

import (
	"errors"
	"math/big"

	"github.com/rony4d/go-reclaim/utils/bits"
	"github.com/rony4d/go-reclaim/utils/fast"
)

var (
	ErrNonCanonicalEncoding = errors.New("non canonical encoding")
	ErrMalformedEncoding    = errors.New("malformed encoding")
	ErrTooLargeAlloc        = errors.New("too large allocation")
)

// MaxAlloc bounds any single decoded byte slice.
const MaxAlloc = 100 * 1024

// Writer feeds the bit and byte streams.
type Writer struct {
	BitsW  *bits.Writer
	BytesW *fast.Writer
}

// Reader consumes the bit and byte streams.
type Reader struct {
	BitsR  *bits.Reader
	BytesR *fast.Reader
}

// NewWriter returns an empty Writer.
func NewWriter() *Writer {
	return &Writer{
		BitsW:  bits.NewWriter(&bits.Array{Bytes: make([]byte, 0, 32)}),
		BytesW: fast.NewWriter(make([]byte, 0, 200)),
	}
}

// writeUint64Compact is a base-128 varint whose final byte carries the high
// bit (stop flag), the inverse of the usual convention.
func writeUint64Compact(w *fast.Writer, v uint64) {
	for {
		chunk := byte(v & 0x7f)
		v >>= 7
		if v == 0 {
			w.WriteByte(chunk | 0x80)
			return
		}
		w.WriteByte(chunk)
	}
}

func readUint64Compact(r *fast.Reader) uint64 {
	var v uint64
	for i := 0; ; i++ {
		chunk := uint64(r.ReadByte())
		stop := chunk&0x80 != 0
		word := chunk & 0x7f
		v |= word << (7 * i)
		if stop {
			if i > 0 && word == 0 {
				panic(ErrNonCanonicalEncoding)
			}
			return v
		}
	}
}

// writeUint64BitCompact writes v little-endian in as few bytes as possible,
// never fewer than minSize, and returns the count.
func writeUint64BitCompact(w *fast.Writer, v uint64, minSize int) (size int) {
	for size < minSize || v != 0 {
		w.WriteByte(byte(v))
		size++
		v >>= 8
	}
	return size
}

func readUint64BitCompact(r *fast.Reader, size int) uint64 {
	var v uint64
	buf := r.Read(size)
	for i, b := range buf {
		v |= uint64(b) << (8 * i)
	}
	if size > 1 && buf[size-1] == 0 {
		panic(ErrNonCanonicalEncoding)
	}
	return v
}

func (w *Writer) writeSized(minSize, sizeBits int, v uint64) {
	size := writeUint64BitCompact(w.BytesW, v, minSize)
	w.BitsW.Write(sizeBits, uint(size-minSize))
}

func (r *Reader) readSized(minSize, sizeBits int) uint64 {
	size := int(r.BitsR.Read(sizeBits)) + minSize
	return readUint64BitCompact(r.BytesR, size)
}

// U8 writes a raw byte.
func (w *Writer) U8(v uint8) { w.BytesW.WriteByte(v) }

// U8 reads a raw byte.
func (r *Reader) U8() uint8 { return r.BytesR.ReadByte() }

// U64 writes 1..8 payload bytes with a 3-bit size.
func (w *Writer) U64(v uint64) { w.writeSized(1, 3, v) }

// U64 reads a value written by Writer.U64.
func (r *Reader) U64() uint64 { return r.readSized(1, 3) }

// U56 is used for lengths: 0..7 payload bytes.
func (w *Writer) U56(v uint64) {
	const max = 1<<(8*7) - 1
	if v > max {
		panic("cser: value too big")
	}
	w.writeSized(0, 3, v)
}

// U56 reads a value written by Writer.U56.
func (r *Reader) U56() uint64 { return r.readSized(0, 3) }

// Bool writes one bit.
func (w *Writer) Bool(v bool) {
	var b uint
	if v {
		b = 1
	}
	w.BitsW.Write(1, b)
}

// Bool reads one bit.
func (r *Reader) Bool() bool { return r.BitsR.Read(1) != 0 }

// FixedBytes writes v without a length prefix.
func (w *Writer) FixedBytes(v []byte) { w.BytesW.Write(v) }

// FixedBytes fills v from the byte stream.
func (r *Reader) FixedBytes(v []byte) { copy(v, r.BytesR.Read(len(v))) }

// SliceBytes writes a length-prefixed byte slice.
func (w *Writer) SliceBytes(v []byte) {
	w.U56(uint64(len(v)))
	w.FixedBytes(v)
}

// SliceBytes reads a length-prefixed slice of at most maxLen bytes.
func (r *Reader) SliceBytes(maxLen int) []byte {
	size := r.U56()
	if size > uint64(maxLen) {
		panic(ErrTooLargeAlloc)
	}
	buf := make([]byte, size)
	r.FixedBytes(buf)
	return buf
}

// String writes s as a length-prefixed UTF-8 byte slice.
func (w *Writer) String(s string) { w.SliceBytes([]byte(s)) }

// String reads a string of at most maxLen bytes.
func (r *Reader) String(maxLen int) string { return string(r.SliceBytes(maxLen)) }

// BigInt writes the magnitude of a non-negative integer. Zero is the empty
// slice; a leading zero byte is non-canonical.
func (w *Writer) BigInt(v *big.Int) {
	if v == nil || v.Sign() == 0 {
		w.SliceBytes(nil)
		return
	}
	w.SliceBytes(v.Bytes())
}

// BigInt reads a value written by Writer.BigInt.
func (r *Reader) BigInt() *big.Int {
	buf := r.SliceBytes(512)
	if len(buf) > 0 && buf[0] == 0 {
		panic(ErrNonCanonicalEncoding)
	}
	return new(big.Int).SetBytes(buf)
}

package cser

import (
	"github.com/rony4d/go-reclaim/utils/bits"
	"github.com/rony4d/go-reclaim/utils/fast"
)

// MarshalBinaryAdapter runs marshalCser against a fresh Writer and packs the
// two streams into one slice:
//
//	[ payload bytes ][ bit stream bytes ][ reversed varint(len(bit stream)) ]
func MarshalBinaryAdapter(marshalCser func(*Writer) error) ([]byte, error) {
	w := NewWriter()
	if err := marshalCser(w); err != nil {
		return nil, err
	}
	return binaryFromCSER(w.BitsW.Array, w.BytesW.Bytes())
}

func binaryFromCSER(bbits *bits.Array, bbytes []byte) ([]byte, error) {
	body := fast.NewWriter(bbytes)
	body.Write(bbits.Bytes)

	size := fast.NewWriter(make([]byte, 0, 4))
	writeUint64Compact(size, uint64(len(bbits.Bytes)))
	body.Write(reversed(size.Bytes()))

	return body.Bytes(), nil
}

func binaryToCSER(raw []byte) (*bits.Array, []byte, error) {
	sizeBuf := reversed(tail(raw, 9))
	sizeR := fast.NewReader(sizeBuf)
	bitsSize := readUint64Compact(sizeR)

	raw = raw[:len(raw)-sizeR.Position()]
	if uint64(len(raw)) < bitsSize {
		return nil, nil, ErrMalformedEncoding
	}
	split := uint64(len(raw)) - bitsSize
	return &bits.Array{Bytes: raw[split:]}, raw[:split], nil
}

// UnmarshalBinaryAdapter splits raw into its streams and runs unmarshalCser.
// Decoding is strict: truncated input, leftover bytes and non-zero padding
// bits are all rejected.
func UnmarshalBinaryAdapter(raw []byte, unmarshalCser func(reader *Reader) error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(error); ok && (e == ErrNonCanonicalEncoding || e == ErrTooLargeAlloc) {
				err = e
				return
			}
			err = ErrMalformedEncoding
		}
	}()

	if len(raw) == 0 {
		return ErrMalformedEncoding
	}

	bbits, bbytes, err := binaryToCSER(raw)
	if err != nil {
		return err
	}

	r := &Reader{
		BitsR:  bits.NewReader(bbits),
		BytesR: fast.NewReader(bbytes),
	}
	if err = unmarshalCser(r); err != nil {
		return err
	}

	if r.BitsR.NonReadBytes() > 1 {
		return ErrNonCanonicalEncoding
	}
	if r.BitsR.Read(r.BitsR.NonReadBits()) != 0 {
		return ErrNonCanonicalEncoding
	}
	if !r.BytesR.Empty() {
		return ErrNonCanonicalEncoding
	}
	return nil
}

func tail(b []byte, n int) []byte {
	if len(b) > n {
		return b[len(b)-n:]
	}
	return b
}

func reversed(b []byte) []byte {
	out := make([]byte, len(b))
	for i, v := range b {
		out[len(b)-1-i] = v
	}
	return out
}

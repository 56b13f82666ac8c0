// Package bits is a little-endian bit stream. The canonical epoch codec keeps
// its length prefixes here so the byte stream holds only payload.
package bits

type (
	// Array holds the packed stream.
	Array struct {
		Bytes []byte
	}

	// Writer packs values of arbitrary bit width into an Array.
	Writer struct {
		*Array
		bitOffset int // next free bit within the last byte
	}

	// Reader unpacks values written by Writer.
	Reader struct {
		*Array
		byteOffset int
		bitOffset  int
	}
)

// NewWriter returns a Writer appending to arr.
func NewWriter(arr *Array) *Writer {
	return &Writer{Array: arr}
}

// NewReader returns a Reader over arr.
func NewReader(arr *Array) *Reader {
	return &Reader{Array: arr}
}

func lowBits(v uint, keep int) uint {
	return v & (uint(0xff) >> (8 - keep))
}

// Write appends the low `bits` bits of v.
func (a *Writer) Write(bits int, v uint) {
	for bits > 0 {
		if a.bitOffset == 0 {
			a.Bytes = append(a.Bytes, 0)
		}
		free := 8 - a.bitOffset
		n := bits
		if n > free {
			n = free
		}
		a.Bytes[len(a.Bytes)-1] |= byte(lowBits(v, n) << a.bitOffset)
		v >>= n
		bits -= n
		a.bitOffset = (a.bitOffset + n) % 8
	}
}

// Read consumes `bits` bits and returns them as an integer.
func (a *Reader) Read(bits int) (v uint) {
	shift := 0
	for bits > 0 {
		free := 8 - a.bitOffset
		n := bits
		if n > free {
			n = free
		}
		chunk := lowBits(uint(a.Bytes[a.byteOffset])>>a.bitOffset, n)
		v |= chunk << shift
		shift += n
		bits -= n
		a.bitOffset += n
		if a.bitOffset == 8 {
			a.bitOffset = 0
			a.byteOffset++
		}
	}
	return v
}

// View returns the next `bits` bits without consuming them.
func (a *Reader) View(bits int) uint {
	cp := *a
	return cp.Read(bits)
}

// NonReadBytes counts bytes not yet fully consumed, including a partially
// read one.
func (a *Reader) NonReadBytes() int {
	return len(a.Bytes) - a.byteOffset
}

// NonReadBits counts the remaining bits.
func (a *Reader) NonReadBits() int {
	return a.NonReadBytes()*8 - a.bitOffset
}

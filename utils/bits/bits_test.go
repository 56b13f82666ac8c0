package bits

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

type word struct {
	bits int
	v    uint
}

func TestWriteReadWords(t *testing.T) {
	words := []word{{1, 1}, {3, 5}, {8, 0xab}, {2, 0}, {7, 0x55}, {3, 7}, {1, 0}}

	arr := &Array{}
	w := NewWriter(arr)
	total := 0
	for _, wd := range words {
		w.Write(wd.bits, wd.v)
		total += wd.bits
	}
	require.Len(t, arr.Bytes, (total+7)/8)

	r := NewReader(arr)
	for i, wd := range words {
		require.Equal(t, wd.v, r.Read(wd.bits), "word %d", i)
	}
	require.Equal(t, len(arr.Bytes)*8-total, r.NonReadBits())
}

func TestRandomWords(t *testing.T) {
	rnd := rand.New(rand.NewSource(42))
	for round := 0; round < 50; round++ {
		words := make([]word, rnd.Intn(40))
		for i := range words {
			words[i].bits = 1 + rnd.Intn(16)
			words[i].v = uint(rnd.Intn(1 << words[i].bits))
		}

		arr := &Array{}
		w := NewWriter(arr)
		for _, wd := range words {
			w.Write(wd.bits, wd.v)
		}
		r := NewReader(arr)
		for _, wd := range words {
			require.Equal(t, wd.v, r.Read(wd.bits))
		}
		require.Less(t, r.NonReadBits(), 8)
	}
}

func TestViewDoesNotAdvance(t *testing.T) {
	arr := &Array{}
	NewWriter(arr).Write(4, 0x9)
	r := NewReader(arr)
	require.Equal(t, uint(0x9), r.View(4))
	require.Equal(t, uint(0x9), r.Read(4))
	require.Equal(t, uint(0), r.Read(0))
	require.Equal(t, 1, r.NonReadBytes())
	require.Equal(t, 4, r.NonReadBits())
}

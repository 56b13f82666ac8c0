package sampler

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rony4d/go-reclaim/inter"
)

const identifier = "531322a6c34e5a71296a5ee07af13f0c27b5b1e50616f816374aff6064daaf55"

func epochWith(id uint64, quorum int64, n int) *inter.Epoch {
	ws := make([]inter.Witness, n)
	for i := range ws {
		ws[i] = inter.Witness{Address: fmt.Sprintf("%040x", i+1), Host: fmt.Sprintf("w%d", i)}
	}
	return &inter.Epoch{
		ID:                               id,
		TimestampStart:                   1,
		TimestampEnd:                     2,
		MinimumWitnessesForClaimCreation: big.NewInt(quorum),
		Witnesses:                        ws,
	}
}

func TestSeed(t *testing.T) {
	e := epochWith(4, 3, 5)
	require.Equal(t, "6162\n3\n0\n4", string(Seed(e, "ab", 0)))
	require.Equal(t, "\n3\n17\n4", string(Seed(e, "", 17)))
}

func TestSelectDeterministic(t *testing.T) {
	require := require.New(t)

	e := epochWith(1, 5, 7)
	first, err := Select(e, identifier, 0)
	require.NoError(err)
	require.Len(first, 5)

	for i := 0; i < 3; i++ {
		again, err := Select(e, identifier, 0)
		require.NoError(err)
		require.Equal(first, again)
	}

	members := map[inter.Witness]bool{}
	for _, w := range e.Witnesses {
		members[w] = true
	}
	for _, w := range first {
		require.True(members[w], "selected witness %v not in epoch", w)
	}
}

func TestSelectMatchesDigestWindows(t *testing.T) {
	e := epochWith(9, 3, 11)
	got, err := Select(e, identifier, 0)
	require.NoError(t, err)

	digest := sha256.Sum256([]byte(fmt.Sprintf("%x\n3\n0\n9", identifier)))
	for i := 0; i < 3; i++ {
		word := binary.LittleEndian.Uint32(digest[4*i:])
		require.Equal(t, e.Witnesses[word%11], got[i], "selection %d", i)
	}
}

func TestSelectGoldenIndices(t *testing.T) {
	tests := []struct {
		epoch  uint64
		quorum int64
		n      int
		want   []int
	}{
		// sha256("353331...3535\n3\n0\n9") = b818be81...
		{epoch: 9, quorum: 3, n: 11, want: []int{4, 8, 3}},
		// sha256("353331...3535\n10\n0\n1") = 8b3a7431..., wraps after 8 words
		{epoch: 1, quorum: 10, n: 7, want: []int{1, 3, 4, 3, 5, 6, 6, 2, 1, 3}},
	}
	for _, tt := range tests {
		e := epochWith(tt.epoch, tt.quorum, tt.n)
		got, err := Select(e, identifier, 0)
		require.NoError(t, err)

		want := make([]inter.Witness, len(tt.want))
		for i, idx := range tt.want {
			want[i] = e.Witnesses[idx]
		}
		require.Equal(t, want, got, "epoch %d quorum %d of %d", tt.epoch, tt.quorum, tt.n)
	}
}

func TestSelectWrapsDigest(t *testing.T) {
	// The digest has eight 4-byte words, so selection i and i+8 read the same word.
	e := epochWith(2, 20, 13)
	got, err := Select(e, identifier, 0)
	require.NoError(t, err)
	require.Len(t, got, 20)
	for i := 0; i+8 < len(got); i++ {
		require.Equal(t, got[i], got[i+8])
	}
}

func TestSelectWithReplacement(t *testing.T) {
	e := epochWith(1, 4, 1)
	got, err := Select(e, identifier, 0)
	require.NoError(t, err)
	require.Len(t, got, 4)
	for _, w := range got {
		require.Equal(t, e.Witnesses[0], w)
	}
}

func TestSelectInputsChangeOutput(t *testing.T) {
	e := epochWith(1, 8, 1000)
	base, err := Select(e, identifier, 0)
	require.NoError(t, err)

	other, err := Select(epochWith(2, 8, 1000), identifier, 0)
	require.NoError(t, err)
	require.NotEqual(t, base, other, "epoch id feeds the seed")

	other, err = Select(e, identifier, 1)
	require.NoError(t, err)
	require.NotEqual(t, base, other, "timestamp feeds the seed")
}

func TestSelectErrors(t *testing.T) {
	_, err := Select(epochWith(1, 1, 0), identifier, 0)
	require.ErrorIs(t, err, ErrEmptyWitnessSet)

	e := epochWith(1, 1, 3)
	e.MinimumWitnessesForClaimCreation = new(big.Int).Lsh(big.NewInt(1), 100)
	_, err = Select(e, identifier, 0)
	require.ErrorIs(t, err, ErrQuorumTooLarge)

	e.MinimumWitnessesForClaimCreation = nil
	_, err = Select(e, identifier, 0)
	require.ErrorIs(t, err, ErrQuorumTooLarge)
}

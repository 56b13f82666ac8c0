package pebblestore

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rony4d/go-reclaim/inter"
	"github.com/rony4d/go-reclaim/registry"
)

func TestStore(t *testing.T) {
	require := require.New(t)

	s, err := Open(t.TempDir())
	require.NoError(err)
	defer s.Close()

	ok, err := s.Has([]byte("k"))
	require.NoError(err)
	require.False(ok)

	_, err = s.Get([]byte("k"))
	require.ErrorIs(err, ErrNotFound)

	require.NoError(s.Put([]byte("k"), []byte("v")))
	ok, err = s.Has([]byte("k"))
	require.NoError(err)
	require.True(ok)

	v, err := s.Get([]byte("k"))
	require.NoError(err)
	require.Equal([]byte("v"), v)

	require.NoError(s.Delete([]byte("k")))
	ok, err = s.Has([]byte("k"))
	require.NoError(err)
	require.False(ok)
}

func TestRegistryPersistsAcrossRestart(t *testing.T) {
	require := require.New(t)
	dir := t.TempDir()
	const owner = "e4c20c9f558160ec08106de300326f7e9c73fb7f"

	s, err := Open(dir)
	require.NoError(err)
	r, err := registry.Open(s, nil)
	require.NoError(err)
	require.NoError(r.Init(owner))
	_, err = r.AddEpoch(owner, big.NewInt(1), 1000, 2000, []inter.Witness{
		{Address: "244897572368eadf65bfbc5aec98d8e5443a9072", Host: "http://localhost:3030"},
	})
	require.NoError(err)
	require.NoError(r.Close())

	s, err = Open(dir)
	require.NoError(err)
	r, err = registry.Open(s, nil)
	require.NoError(err)
	defer r.Close()

	require.Equal(owner, r.Owner())
	require.Equal(uint64(1), r.CurrentEpoch())
	e, err := r.GetEpoch(1)
	require.NoError(err)
	require.Equal("http://localhost:3030", e.Witnesses[0].Host)
}

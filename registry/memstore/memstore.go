// Package memstore is the in-memory registry backend, used by tests and by
// throwaway verifier instances.
package memstore

import (
	"github.com/ethereum/go-ethereum/ethdb/memorydb"
)

// New returns an empty in-memory store.
func New() *memorydb.Database {
	return memorydb.New()
}

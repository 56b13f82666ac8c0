package registry

import (
	"io"

	"github.com/ethereum/go-ethereum/ethdb"
)

// Store is the key-value backend owned by the host. The registry only needs
// point reads and writes; any ethdb.KeyValueStore satisfies it.
type Store interface {
	ethdb.KeyValueReader
	ethdb.KeyValueWriter
	io.Closer
}

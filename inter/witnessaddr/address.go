// Package witnessaddr parses and renders witness account addresses.
//
// Witnesses are registered with bare lowercase hex (no 0x), while recovered
// signers are rendered with the 0x prefix. Keeping both forms in one place
// stops the two from drifting apart.
package witnessaddr

import (
	"encoding/hex"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"

	"github.com/rony4d/go-reclaim/protocol"
)

// ErrInvalidAddress is returned for anything that is not 20 hex-encoded bytes.
var ErrInvalidAddress = errors.New("invalid witness address")

// Address is a 20-byte account address.
type Address common.Address

// FromString parses hex with or without the 0x prefix, in any letter case.
func FromString(s string) (Address, error) {
	raw := protocol.TrimHexPrefix(s)
	if len(raw) != 2*protocol.AddressLength {
		return Address{}, errors.Wrapf(ErrInvalidAddress, "%q: want %d hex chars, got %d", s, 2*protocol.AddressLength, len(raw))
	}
	b, err := hex.DecodeString(raw)
	if err != nil {
		return Address{}, errors.Wrapf(ErrInvalidAddress, "%q: %v", s, err)
	}
	var a Address
	copy(a[:], b)
	return a, nil
}

// Normalize returns the canonical registry form of s: lowercase, no prefix.
func Normalize(s string) (string, error) {
	a, err := FromString(s)
	if err != nil {
		return "", err
	}
	return a.Bare(), nil
}

// Bare is lowercase hex without prefix.
func (a Address) Bare() string {
	return hex.EncodeToString(a[:])
}

// String is lowercase hex with the 0x prefix. Unlike common.Address.Hex it
// never applies the EIP-55 checksum casing.
func (a Address) String() string {
	return protocol.HexPrefix + a.Bare()
}

// Prefixed renders an already-bare address the way recovered signers are
// rendered.
func Prefixed(bare string) string {
	return protocol.HexPrefix + bare
}

// MarshalText implements encoding.TextMarshaler.
func (a Address) MarshalText() ([]byte, error) {
	return []byte(a.Bare()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Address) UnmarshalText(input []byte) error {
	res, err := FromString(string(input))
	if err != nil {
		return err
	}
	*a = res
	return nil
}

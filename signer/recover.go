// Package signer recovers witness addresses from Ethereum personal-sign
// signatures over the serialised claim.
package signer

import (
	"encoding/hex"
	"math/big"
	"strconv"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"

	"github.com/rony4d/go-reclaim/inter/witnessaddr"
	"github.com/rony4d/go-reclaim/protocol"
)

var (
	// ErrMalformedSignature is the parent of every per-signature failure below.
	ErrMalformedSignature = errors.New("malformed signature")

	ErrSignatureHex    = errors.Wrap(ErrMalformedSignature, "invalid hex")
	ErrSignatureLength = errors.Wrap(ErrMalformedSignature, "invalid length")
	ErrRecoveryMarker  = errors.Wrap(ErrMalformedSignature, "unrecognised recovery marker")
	ErrCurveRecovery   = errors.Wrap(ErrMalformedSignature, "public key recovery failed")
)

// TextHash is the EIP-191 personal-sign digest of message:
//
//	keccak256("\x19Ethereum Signed Message:\n" + len(message) + message)
func TextHash(message []byte) []byte {
	prefix := protocol.PersonalSignPrefix + strconv.Itoa(len(message))
	return crypto.Keccak256([]byte(prefix), message)
}

// Recover returns one 0x-prefixed lowercase address per signature, in input
// order. The first malformed signature aborts recovery; the error names its
// index and wraps one of the ErrSignature*/ErrRecoveryMarker/ErrCurveRecovery
// sentinels.
func Recover(message []byte, signatures []string) ([]string, error) {
	prehash := TextHash(message)
	addrs := make([]string, 0, len(signatures))
	for i, sig := range signatures {
		addr, err := recoverPrehashed(prehash, sig)
		if err != nil {
			return nil, errors.Wrapf(err, "signature %d", i)
		}
		addrs = append(addrs, addr.String())
	}
	return addrs, nil
}

// RecoverOne recovers the signer of a single hex signature over message.
func RecoverOne(message []byte, signature string) (witnessaddr.Address, error) {
	return recoverPrehashed(TextHash(message), signature)
}

// DecodeSignature parses a hex signature (optional 0x or 0X prefix) into the
// 65-byte r || s || recovery-id layout expected by secp256k1 recovery.
func DecodeSignature(signature string) ([]byte, error) {
	raw, err := hex.DecodeString(protocol.TrimHexPrefix(signature))
	if err != nil {
		return nil, errors.Wrap(ErrSignatureHex, err.Error())
	}
	if len(raw) != protocol.SignatureLength {
		return nil, errors.Wrapf(ErrSignatureLength, "got %d bytes, want %d", len(raw), protocol.SignatureLength)
	}
	id, err := RecoveryIDFromMarker(raw[protocol.RecoveryMarkerIndex])
	if err != nil {
		return nil, err
	}
	raw[protocol.RecoveryMarkerIndex] = byte(id)
	return raw, nil
}

func recoverPrehashed(prehash []byte, signature string) (witnessaddr.Address, error) {
	sig, err := DecodeSignature(signature)
	if err != nil {
		return witnessaddr.Address{}, err
	}
	// Only low-s signatures are accepted, so (r, n-s) with the flipped
	// recovery id is not a second valid encoding.
	r := new(big.Int).SetBytes(sig[:32])
	sv := new(big.Int).SetBytes(sig[32:64])
	if !crypto.ValidateSignatureValues(sig[protocol.RecoveryMarkerIndex], r, sv, true) {
		return witnessaddr.Address{}, errors.Wrap(ErrCurveRecovery, "r or s out of range")
	}
	pub, err := crypto.SigToPub(prehash, sig)
	if err != nil {
		return witnessaddr.Address{}, errors.Wrap(ErrCurveRecovery, err.Error())
	}
	return witnessaddr.Address(crypto.PubkeyToAddress(*pub)), nil
}

package signer

import (
	"github.com/pkg/errors"
)

// RecoveryID selects which of the candidate curve points produced a
// signature. Only the two values below are valid for secp256k1 signatures
// produced by Ethereum wallets.
type RecoveryID uint8

const (
	RecoveryEven RecoveryID = 0
	RecoveryOdd  RecoveryID = 1
)

// Marker byte values carried in the last byte of an Ethereum signature.
const (
	markerEven byte = 27
	markerOdd  byte = 28
)

// RecoveryIDFromMarker maps the trailing v byte to a RecoveryID. Anything but
// 27 or 28 is rejected.
func RecoveryIDFromMarker(v byte) (RecoveryID, error) {
	switch v {
	case markerEven:
		return RecoveryEven, nil
	case markerOdd:
		return RecoveryOdd, nil
	default:
		return 0, errors.Wrapf(ErrRecoveryMarker, "got %d, want %d or %d", v, markerEven, markerOdd)
	}
}

// Marker is the inverse of RecoveryIDFromMarker.
func (id RecoveryID) Marker() byte {
	if id == RecoveryOdd {
		return markerOdd
	}
	return markerEven
}

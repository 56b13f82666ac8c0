// Package sampler reproduces the ordered list of witnesses that must attest a
// claim. The selection depends only on public epoch data and the claim
// identifier, so any verifier can recompute it without coordination.
package sampler

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/rony4d/go-reclaim/inter"
	"github.com/rony4d/go-reclaim/protocol"
)

var (
	// ErrEmptyWitnessSet is returned when the epoch has no witnesses to draw from.
	ErrEmptyWitnessSet = errors.New("epoch has no witnesses")
	// ErrQuorumTooLarge is returned when the quorum size cannot be materialised.
	ErrQuorumTooLarge = errors.New("quorum size too large")
)

// wordSize is the width of each window read from the seed digest.
const wordSize = 4

// Seed builds the selection seed material:
//
//	hex(identifier bytes)\n<minimum>\n<timestamp>\n<epoch id>
//
// The identifier is hex-encoded as a string of bytes, i.e. its ASCII
// characters are encoded again.
func Seed(epoch *inter.Epoch, identifier string, timestamp uint64) []byte {
	return []byte(strings.Join([]string{
		hex.EncodeToString([]byte(identifier)),
		epoch.MinimumWitnessesForClaimCreation.String(),
		strconv.FormatUint(timestamp, 10),
		strconv.FormatUint(epoch.ID, 10),
	}, protocol.FieldDelimiter))
}

// Select returns exactly MinimumWitnessesForClaimCreation witnesses of epoch.
//
// The SHA-256 digest of Seed is read as consecutive 4-byte little-endian
// words, wrapping back to offset 0 after the last word; each word modulo the
// witness count picks one witness. Selection is with replacement: the same
// witness may appear more than once.
func Select(epoch *inter.Epoch, identifier string, timestamp uint64) ([]inter.Witness, error) {
	witnesses := epoch.Witnesses
	if len(witnesses) == 0 {
		return nil, errors.Wrapf(ErrEmptyWitnessSet, "epoch %d", epoch.ID)
	}
	count, err := quorumSize(epoch.MinimumWitnessesForClaimCreation)
	if err != nil {
		return nil, errors.Wrapf(err, "epoch %d", epoch.ID)
	}

	digest := sha256.Sum256(Seed(epoch, identifier, timestamp))

	selected := make([]inter.Witness, 0, count)
	offset := 0
	for i := 0; i < count; i++ {
		word := binary.LittleEndian.Uint32(digest[offset : offset+wordSize])
		idx := uint64(word) % uint64(len(witnesses))
		selected = append(selected, witnesses[idx])
		offset = (offset + wordSize) % len(digest)
	}
	return selected, nil
}

func quorumSize(min *big.Int) (int, error) {
	if min == nil || min.Sign() < 0 {
		return 0, errors.Wrap(ErrQuorumTooLarge, "quorum size missing or negative")
	}
	if !min.IsInt64() || min.Int64() > math.MaxInt32 {
		return 0, errors.Wrapf(ErrQuorumTooLarge, "%s witnesses", min.String())
	}
	return int(min.Int64()), nil
}

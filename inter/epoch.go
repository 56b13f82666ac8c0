package inter

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/rony4d/go-reclaim/inter/witnessaddr"
)

var (
	// ErrInvalidEpoch is returned by Epoch.Validate.
	ErrInvalidEpoch = errors.New("invalid epoch")
	// ErrEpochNotFound is returned by epoch lookups for an unregistered id.
	ErrEpochNotFound = errors.New("epoch not found")
)

// Witness is a registered attester.
type Witness struct {
	// Address is the 20-byte account address, lowercase hex without prefix.
	Address string `json:"address"`
	Host    string `json:"host"`
}

// Epoch is a time-bounded witness pool together with the quorum size claims
// of that epoch must meet. Epochs are immutable once registered.
type Epoch struct {
	ID             uint64 `json:"id"`
	TimestampStart uint64 `json:"timestamp_start"`
	TimestampEnd   uint64 `json:"timestamp_end"`
	// MinimumWitnessesForClaimCreation is an unsigned 128-bit quantity on the
	// wire; it is the number of witnesses sampled per claim.
	MinimumWitnessesForClaimCreation *big.Int  `json:"minimum_witness_for_claim_creation"`
	Witnesses                        []Witness `json:"witnesses"`
}

// maxUint128 bounds MinimumWitnessesForClaimCreation.
var maxUint128 = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 128), big.NewInt(1))

// Addresses renders each witness address with the 0x prefix, in order.
func Addresses(witnesses []Witness) []string {
	out := make([]string, 0, len(witnesses))
	for _, w := range witnesses {
		out = append(out, witnessaddr.Prefixed(w.Address))
	}
	return out
}

// Validate checks the registration invariants: start before end, a positive
// quorum that fits in 128 bits and well formed witness addresses. An empty
// witness list is accepted here; sampling rejects it.
func (e *Epoch) Validate() error {
	if e.TimestampStart >= e.TimestampEnd {
		return errors.Wrapf(ErrInvalidEpoch, "start %d must be less than end %d", e.TimestampStart, e.TimestampEnd)
	}
	min := e.MinimumWitnessesForClaimCreation
	if min == nil || min.Sign() <= 0 {
		return errors.Wrap(ErrInvalidEpoch, "minimum witnesses for claim creation must be positive")
	}
	if min.Cmp(maxUint128) > 0 {
		return errors.Wrap(ErrInvalidEpoch, "minimum witnesses for claim creation exceeds 128 bits")
	}
	for i, w := range e.Witnesses {
		if _, err := witnessaddr.FromString(w.Address); err != nil {
			return errors.Wrapf(ErrInvalidEpoch, "witness %d: %v", i, err)
		}
	}
	return nil
}

// Copy returns a deep copy so callers can never mutate a registered epoch.
func (e *Epoch) Copy() *Epoch {
	cp := *e
	if e.MinimumWitnessesForClaimCreation != nil {
		cp.MinimumWitnessesForClaimCreation = new(big.Int).Set(e.MinimumWitnessesForClaimCreation)
	}
	cp.Witnesses = append([]Witness(nil), e.Witnesses...)
	return &cp
}

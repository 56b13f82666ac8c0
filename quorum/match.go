// Package quorum checks recovered signers against the sampled witnesses.
package quorum

import (
	"github.com/pkg/errors"
)

var (
	ErrQuorumSizeMismatch = errors.New("quorum size mismatch")
	ErrUnknownSigner      = errors.New("unknown signer")
)

// Match accepts when recovered has exactly as many entries as expected and
// every recovered address is a member of expected.
//
// Membership is checked per entry, not as a multiset: an address that was
// sampled once satisfies any number of recovered copies of itself. Together
// with sampling with replacement this lets one witness fill several quorum
// slots when the sampler drew it several times.
func Match(expected, recovered []string) error {
	if len(recovered) != len(expected) {
		return errors.Wrapf(ErrQuorumSizeMismatch, "expected %d signatures, got %d", len(expected), len(recovered))
	}

	members := make(map[string]struct{}, len(expected))
	for _, addr := range expected {
		members[addr] = struct{}{}
	}
	for i, addr := range recovered {
		if _, ok := members[addr]; !ok {
			return errors.Wrapf(ErrUnknownSigner, "signature %d recovered %s", i, addr)
		}
	}
	return nil
}

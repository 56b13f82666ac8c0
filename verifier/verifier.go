// Package verifier checks claim proofs against registered epochs.
package verifier

import (
	"io"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/rony4d/go-reclaim/inter"
	"github.com/rony4d/go-reclaim/protocol"
	"github.com/rony4d/go-reclaim/quorum"
	"github.com/rony4d/go-reclaim/sampler"
	"github.com/rony4d/go-reclaim/signer"
)

// EpochReader is the read side of the epoch registry. GetEpoch must return an
// error wrapping inter.ErrEpochNotFound for unknown ids.
type EpochReader interface {
	GetEpoch(id uint64) (*inter.Epoch, error)
}

// Verifier validates proofs. It never mutates the registry, so a proof
// verifies the same way every time.
type Verifier struct {
	epochs EpochReader
	log    logrus.FieldLogger
}

// New returns a Verifier reading epochs from epochs. A nil logger discards
// output.
func New(epochs EpochReader, logger logrus.FieldLogger) *Verifier {
	if logger == nil {
		l := logrus.New()
		l.Out = io.Discard
		logger = l
	}
	return &Verifier{epochs: epochs, log: logger}
}

// Verify returns nil when proof is attested by the sampled quorum of its
// epoch, and otherwise the first failure encountered.
func (v *Verifier) Verify(proof *inter.Proof) error {
	_, err := v.Trace(proof)
	return err
}

// Trace is Verify that also reports the last state reached.
func (v *Verifier) Trace(proof *inter.Proof) (State, error) {
	claim := proof.SignedClaim.Claim
	log := v.log.WithFields(logrus.Fields{
		"identifier": claim.Identifier,
		"epoch":      claim.Epoch,
	})

	state := Start
	if hashed := proof.ClaimInfo.Hash(); hashed != claim.Identifier {
		return state, errors.Wrapf(ErrIdentifierMismatch, "claim info hashes to %s, claim carries %s", hashed, claim.Identifier)
	}
	state = IdentifierChecked

	epoch, err := v.epochs.GetEpoch(claim.Epoch)
	if err != nil {
		return state, errors.Wrapf(err, "resolving epoch %d", claim.Epoch)
	}
	state = EpochResolved

	selected, err := sampler.Select(epoch, claim.Identifier, protocol.SeedTimestamp)
	if err != nil {
		return state, err
	}
	expected := inter.Addresses(selected)
	state = WitnessesSampled

	recovered, err := signer.Recover([]byte(claim.Serialise()), proof.SignedClaim.Signatures)
	if err != nil {
		return state, err
	}
	state = SignaturesRecovered

	log.WithFields(logrus.Fields{
		"signed":   recovered,
		"expected": expected,
	}).Debug("Matching claim signers")

	if err := quorum.Match(expected, recovered); err != nil {
		return state, err
	}
	log.Debug("Claim proof verified")
	return Matched, nil
}

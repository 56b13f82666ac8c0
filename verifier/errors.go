package verifier

import (
	"github.com/pkg/errors"

	"github.com/rony4d/go-reclaim/inter"
	"github.com/rony4d/go-reclaim/quorum"
	"github.com/rony4d/go-reclaim/sampler"
	"github.com/rony4d/go-reclaim/signer"
)

// Verification failures. Every error returned by Verify wraps exactly one of
// these, except storage failures surfaced by the EpochReader.
var (
	ErrIdentifierMismatch = errors.New("identifier mismatch")
	ErrEpochNotFound      = inter.ErrEpochNotFound
	ErrMalformedSignature = signer.ErrMalformedSignature
	ErrQuorumSizeMismatch = quorum.ErrQuorumSizeMismatch
	ErrUnknownSigner      = quorum.ErrUnknownSigner
	ErrEmptyWitnessSet    = sampler.ErrEmptyWitnessSet
	ErrQuorumTooLarge     = sampler.ErrQuorumTooLarge
)

var reasons = []struct {
	err  error
	name string
}{
	{ErrIdentifierMismatch, "IdentifierMismatch"},
	{ErrEpochNotFound, "EpochNotFound"},
	{ErrMalformedSignature, "MalformedSignature"},
	{ErrQuorumSizeMismatch, "QuorumSizeMismatch"},
	{ErrUnknownSigner, "UnknownSigner"},
	{ErrEmptyWitnessSet, "EmptyWitnessSet"},
	{ErrQuorumTooLarge, "QuorumTooLarge"},
}

// Reason names the failure class of err, "" for nil and "Internal" for
// errors outside the taxonomy.
func Reason(err error) string {
	if err == nil {
		return ""
	}
	for _, r := range reasons {
		if errors.Is(err, r.err) {
			return r.name
		}
	}
	return "Internal"
}

package inter

import (
	"github.com/Fantom-foundation/lachesis-base/hash"
	"github.com/pkg/errors"

	"github.com/rony4d/go-reclaim/inter/witnessaddr"
	"github.com/rony4d/go-reclaim/utils/cser"
)

// epochSerializationVersion is the first byte of every stored epoch.
const epochSerializationVersion = 1

// maxHostLen bounds a decoded witness host.
const maxHostLen = 2048

var (
	ErrUnknownEpochVersion = errors.New("unknown epoch serialization version")
	ErrTooManyWitnesses    = errors.New("too many witnesses in encoded epoch")
)

// MarshalCSER writes the epoch in canonical form. Witness addresses are
// stored as raw 20-byte values, so an epoch with a malformed address cannot
// be encoded.
func (e *Epoch) MarshalCSER(w *cser.Writer) error {
	w.U8(epochSerializationVersion)
	w.U64(e.ID)
	w.U64(e.TimestampStart)
	w.U64(e.TimestampEnd)
	w.BigInt(e.MinimumWitnessesForClaimCreation)
	w.U56(uint64(len(e.Witnesses)))
	for i, wt := range e.Witnesses {
		addr, err := witnessaddr.FromString(wt.Address)
		if err != nil {
			return errors.Wrapf(err, "witness %d", i)
		}
		w.FixedBytes(addr[:])
		w.String(wt.Host)
	}
	return nil
}

// UnmarshalCSER reads an epoch written by MarshalCSER.
func (e *Epoch) UnmarshalCSER(r *cser.Reader) error {
	if v := r.U8(); v != epochSerializationVersion {
		return errors.Wrapf(ErrUnknownEpochVersion, "version %d", v)
	}
	e.ID = r.U64()
	e.TimestampStart = r.U64()
	e.TimestampEnd = r.U64()
	e.MinimumWitnessesForClaimCreation = r.BigInt()

	n := r.U56()
	if n > cser.MaxAlloc {
		return ErrTooManyWitnesses
	}
	e.Witnesses = make([]Witness, n)
	for i := range e.Witnesses {
		var addr witnessaddr.Address
		r.FixedBytes(addr[:])
		e.Witnesses[i] = Witness{
			Address: addr.Bare(),
			Host:    r.String(maxHostLen),
		}
	}
	return nil
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (e *Epoch) MarshalBinary() ([]byte, error) {
	return cser.MarshalBinaryAdapter(e.MarshalCSER)
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (e *Epoch) UnmarshalBinary(raw []byte) error {
	return cser.UnmarshalBinaryAdapter(raw, e.UnmarshalCSER)
}

// Fingerprint hashes the canonical binary form. Two registries holding the
// same epoch report the same fingerprint.
func (e *Epoch) Fingerprint() (hash.Hash, error) {
	raw, err := e.MarshalBinary()
	if err != nil {
		return hash.Hash{}, err
	}
	return hash.Of(raw), nil
}

// Package registry stores epochs and the owner allowed to register them.
//
// Layout in the backing Store:
//
//	"o"            -> owner (bare lowercase hex or account id)
//	"c"            -> current epoch id, 8 bytes big-endian
//	"e" + id(8 BE) -> cser-encoded inter.Epoch
//
// Epoch ids start at 1 and increase by one per registration. Epochs are never
// modified or deleted.
package registry

import (
	"io"
	"math/big"
	"sync"

	"github.com/Fantom-foundation/lachesis-base/common/bigendian"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/rony4d/go-reclaim/inter"
	"github.com/rony4d/go-reclaim/inter/witnessaddr"
)

var (
	ErrNotInitialized     = errors.New("registry not initialized")
	ErrAlreadyInitialized = errors.New("registry already initialized")
	ErrUnauthorized       = errors.New("only the owner can add epochs")
	ErrEpochNotFound      = inter.ErrEpochNotFound
)

var (
	ownerKey    = []byte("o")
	counterKey  = []byte("c")
	epochPrefix = []byte("e")
)

// Registry is the epoch registry. Calls are serialised by an internal lock,
// so a registration is never observed half written by a concurrent reader.
type Registry struct {
	store Store
	log   logrus.FieldLogger

	mu      sync.RWMutex
	owner   string
	current uint64
}

// Open loads the owner and epoch counter from store.
func Open(store Store, logger logrus.FieldLogger) (*Registry, error) {
	if logger == nil {
		l := logrus.New()
		l.Out = io.Discard
		logger = l
	}
	r := &Registry{store: store, log: logger}

	if ok, err := store.Has(ownerKey); err != nil {
		return nil, errors.Wrap(err, "reading owner")
	} else if ok {
		owner, err := store.Get(ownerKey)
		if err != nil {
			return nil, errors.Wrap(err, "reading owner")
		}
		r.owner = string(owner)
	}

	if ok, err := store.Has(counterKey); err != nil {
		return nil, errors.Wrap(err, "reading epoch counter")
	} else if ok {
		raw, err := store.Get(counterKey)
		if err != nil {
			return nil, errors.Wrap(err, "reading epoch counter")
		}
		if len(raw) != 8 {
			return nil, errors.Errorf("corrupt epoch counter: %d bytes", len(raw))
		}
		r.current = bigendian.BytesToUint64(raw)
	}
	return r, nil
}

// Init records the owner. It succeeds once per store.
func (r *Registry) Init(owner string) error {
	owner = normalizeCaller(owner)
	if owner == "" {
		return errors.New("owner must not be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.owner != "" {
		return errors.Wrapf(ErrAlreadyInitialized, "owner is %s", r.owner)
	}
	if err := r.store.Put(ownerKey, []byte(owner)); err != nil {
		return errors.Wrap(err, "writing owner")
	}
	r.owner = owner
	r.log.WithField("owner", owner).Info("Registry initialized")
	return nil
}

// Owner returns the registered owner, "" before Init.
func (r *Registry) Owner() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.owner
}

// CurrentEpoch returns the id of the most recently registered epoch, 0 if none.
func (r *Registry) CurrentEpoch() uint64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.current
}

// AddEpoch registers a new epoch on behalf of caller and returns it with its
// assigned id. Witness addresses are stored in bare lowercase form.
func (r *Registry) AddEpoch(caller string, minimum *big.Int, start, end uint64, witnesses []inter.Witness) (*inter.Epoch, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.owner == "" {
		return nil, ErrNotInitialized
	}
	if normalizeCaller(caller) != r.owner {
		return nil, errors.Wrapf(ErrUnauthorized, "caller %s", caller)
	}

	epoch := &inter.Epoch{
		ID:             r.current + 1,
		TimestampStart: start,
		TimestampEnd:   end,
		Witnesses:      make([]inter.Witness, len(witnesses)),
	}
	if minimum != nil {
		epoch.MinimumWitnessesForClaimCreation = new(big.Int).Set(minimum)
	}
	copy(epoch.Witnesses, witnesses)
	if err := epoch.Validate(); err != nil {
		return nil, err
	}
	for i := range epoch.Witnesses {
		// Validate guarantees the address parses.
		epoch.Witnesses[i].Address, _ = witnessaddr.Normalize(epoch.Witnesses[i].Address)
	}

	raw, err := epoch.MarshalBinary()
	if err != nil {
		return nil, errors.Wrapf(err, "encoding epoch %d", epoch.ID)
	}
	// The epoch is written before the counter: a crash in between leaves an
	// unreachable record that the next registration overwrites.
	if err := r.store.Put(epochKey(epoch.ID), raw); err != nil {
		return nil, errors.Wrapf(err, "writing epoch %d", epoch.ID)
	}
	if err := r.store.Put(counterKey, bigendian.Uint64ToBytes(epoch.ID)); err != nil {
		return nil, errors.Wrapf(err, "writing epoch counter %d", epoch.ID)
	}
	r.current = epoch.ID

	fields := logrus.Fields{
		"id":        epoch.ID,
		"start":     epoch.TimestampStart,
		"end":       epoch.TimestampEnd,
		"quorum":    epoch.MinimumWitnessesForClaimCreation.String(),
		"witnesses": len(epoch.Witnesses),
	}
	if fp, err := epoch.Fingerprint(); err == nil {
		fields["fingerprint"] = hexutil.Encode(fp.Bytes())
	}
	r.log.WithFields(fields).Info("Epoch added")

	return epoch.Copy(), nil
}

// GetEpoch returns a copy of epoch id, or an error wrapping ErrEpochNotFound.
func (r *Registry) GetEpoch(id uint64) (*inter.Epoch, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if id == 0 || id > r.current {
		return nil, errors.Wrapf(ErrEpochNotFound, "epoch %d", id)
	}
	raw, err := r.store.Get(epochKey(id))
	if err != nil {
		return nil, errors.Wrapf(err, "reading epoch %d", id)
	}
	epoch := new(inter.Epoch)
	if err := epoch.UnmarshalBinary(raw); err != nil {
		return nil, errors.Wrapf(err, "decoding epoch %d", id)
	}
	return epoch, nil
}

// Close closes the backing store.
func (r *Registry) Close() error {
	return r.store.Close()
}

func epochKey(id uint64) []byte {
	return append(append([]byte{}, epochPrefix...), bigendian.Uint64ToBytes(id)...)
}

// normalizeCaller lowercases hex account addresses so the owner check does
// not depend on letter case or prefix. Other account ids are kept verbatim.
func normalizeCaller(id string) string {
	if bare, err := witnessaddr.Normalize(id); err == nil {
		return bare
	}
	return id
}

// Package pebblestore is the on-disk registry backend.
package pebblestore

import (
	"errors"
	"fmt"

	"github.com/cockroachdb/pebble"
)

// ErrNotFound is returned by Get for missing keys.
var ErrNotFound = errors.New("store resource not found")

// Store keeps registry records in a pebble database.
type Store struct {
	db *pebble.DB
}

// Open opens (creating if needed) the database in dir.
func Open(dir string) (*Store, error) {
	db, err := pebble.Open(dir, &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("opening pebble db: %v", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Has(key []byte) (bool, error) {
	_, closer, err := s.db.Get(key)
	if errors.Is(err, pebble.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("checking key: %v", err)
	}
	closer.Close()
	return true, nil
}

func (s *Store) Get(key []byte) ([]byte, error) {
	value, closer, err := s.db.Get(key)
	if errors.Is(err, pebble.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting key: %v", err)
	}
	defer closer.Close()

	// value is only valid until closer is closed.
	out := make([]byte, len(value))
	copy(out, value)
	return out, nil
}

func (s *Store) Put(key, value []byte) error {
	if err := s.db.Set(key, value, pebble.Sync); err != nil {
		return fmt.Errorf("setting key: %v", err)
	}
	return nil
}

func (s *Store) Delete(key []byte) error {
	if err := s.db.Delete(key, pebble.Sync); err != nil {
		return fmt.Errorf("deleting key: %v", err)
	}
	return nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

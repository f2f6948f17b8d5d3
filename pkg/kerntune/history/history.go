// Package history records generated artifacts in a local Badger store so
// operators can review what was generated, for which hardware, and when.
package history

import (
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"

	"github.com/jamesainslie/kerntune/pkg/kerntune/facts"
)

// ErrNotFound is returned when a history entry doesn't exist.
var ErrNotFound = errors.New("history entry not found")

// runPrefix namespaces run records within the store.
const runPrefix = "run:"

// Entry is one recorded generation run.
type Entry struct {
	// ID is the run identifier (UUID), assigned by Record.
	ID string `json:"id"`

	// CreatedAt is when the artifact was generated (UTC).
	CreatedAt time.Time `json:"created_at"`

	// Profile is the selected workload profile identifier.
	Profile string `json:"profile"`

	// Facts is the hardware snapshot the run resolved against.
	Facts facts.Facts `json:"facts"`

	// DisableIPv6 records the IPv6 toggle.
	DisableIPv6 bool `json:"disable_ipv6"`

	// KeyCount is the number of parameters in the artifact.
	KeyCount int `json:"key_count"`

	// OutputPath is where the artifact was written ("-" for stdout).
	OutputPath string `json:"output_path"`

	// ContentHash is the SHA-256 of the rendered artifact body.
	ContentHash string `json:"content_hash"`
}

// Store wraps Badger for history operations.
type Store struct {
	db *badger.DB
}

// DefaultPath returns the default store location under the XDG data
// directory.
func DefaultPath() string {
	return filepath.Join(xdg.DataHome, "kerntune", "history")
}

// Open opens or creates a history store at the given path.
func Open(path string) (*Store, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil // Disable badger logging

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("opening history store: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the store.
func (s *Store) Close() error {
	return s.db.Close()
}

// makeKey builds the record key. The timestamp prefix keeps records in
// chronological byte order so listing newest-first is a reverse scan.
func makeKey(createdAt time.Time, id string) []byte {
	return []byte(runPrefix + createdAt.UTC().Format(time.RFC3339Nano) + ":" + id)
}

// Record persists a run entry, assigning its ID and timestamp when
// unset, and returns the stored entry.
func (s *Store) Record(e Entry) (Entry, error) {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}

	data, err := json.Marshal(e)
	if err != nil {
		return Entry{}, fmt.Errorf("encoding history entry: %w", err)
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(makeKey(e.CreatedAt, e.ID), data)
	})
	if err != nil {
		return Entry{}, fmt.Errorf("storing history entry: %w", err)
	}
	return e, nil
}

// Get retrieves an entry by run ID. IDs may be abbreviated to a unique
// prefix of at least four characters.
func (s *Store) Get(id string) (Entry, error) {
	if len(id) < 4 {
		return Entry{}, fmt.Errorf("%w: id %q too short", ErrNotFound, id)
	}

	var found *Entry
	err := s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefix := []byte(runPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var e Entry
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &e)
			}); err != nil {
				return err
			}
			if strings.HasPrefix(e.ID, id) {
				if found != nil {
					return fmt.Errorf("ambiguous id %q", id)
				}
				entry := e
				found = &entry
			}
		}
		return nil
	})
	if err != nil {
		return Entry{}, err
	}
	if found == nil {
		return Entry{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return *found, nil
}

// List returns up to limit entries, newest first. A limit of 0 or less
// returns everything.
func (s *Store) List(limit int) ([]Entry, error) {
	var entries []Entry
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Reverse = true
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(runPrefix)
		// Reverse iteration seeks past the end of the prefix range.
		seek := append([]byte{}, prefix...)
		seek = append(seek, 0xFF)
		for it.Seek(seek); it.ValidForPrefix(prefix); it.Next() {
			if limit > 0 && len(entries) >= limit {
				break
			}
			var e Entry
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &e)
			}); err != nil {
				return err
			}
			entries = append(entries, e)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// Clean removes entries older than the retention period and returns the
// number deleted.
func (s *Store) Clean(retention time.Duration) (int, error) {
	cutoff := time.Now().UTC().Add(-retention)
	var stale [][]byte

	err := s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefix := []byte(runPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var e Entry
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &e)
			}); err != nil {
				return err
			}
			if e.CreatedAt.Before(cutoff) {
				stale = append(stale, it.Item().KeyCopy(nil))
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		for _, key := range stale {
			if err := txn.Delete(key); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return len(stale), nil
}

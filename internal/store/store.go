// Package store persists the squares and props blobs under string keys with
// optimistic concurrency: every value carries an ETag and writes can be made
// conditional on the ETag the caller last read.
package store

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"

	"github.com/cespare/xxhash/v2"
)

var (
	ErrNotFound   = errors.New("store: key not found")
	ErrConflict   = errors.New("store: value changed since it was read")
	ErrInvalidKey = errors.New("store: invalid key")
)

// Expected ETags with special meaning for Put.
const (
	// MustNotExist makes a write fail unless the key is absent.
	MustNotExist = ""
	// Any makes a write unconditional.
	Any = "*"
)

// Write is one conditional write in a PutAll batch.
type Write struct {
	Key    string
	Data   []byte
	Expect string
}

// KV is a small key-value store with compare-and-swap writes.
type KV interface {
	// Get returns the stored bytes and their ETag, or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, string, error)
	// Put stores data if the current ETag matches expect and returns the new ETag.
	Put(ctx context.Context, key string, data []byte, expect string) (string, error)
	// PutAll applies every write or none of them.
	PutAll(ctx context.Context, writes []Write) error
	Close() error
}

// Backend names a KV implementation.
type Backend string

const (
	BackendMemory Backend = "memory"
	BackendFile   Backend = "file"
	BackendSQLite Backend = "sqlite"
)

// Backends lists the accepted backend names.
var Backends = []Backend{BackendMemory, BackendFile, BackendSQLite}

// Valid reports whether b names a known backend.
func (b Backend) Valid() bool {
	switch b {
	case BackendMemory, BackendFile, BackendSQLite:
		return true
	}
	return false
}

// Open returns the backend's store. path is a directory for the file backend,
// a database file for SQLite, and ignored for memory.
func Open(backend Backend, path string) (KV, error) {
	switch backend {
	case BackendMemory:
		return NewMemory(), nil
	case BackendFile:
		return OpenFile(path)
	case BackendSQLite:
		return OpenSQLite(path)
	default:
		return nil, fmt.Errorf("store: unknown backend %q", backend)
	}
}

// ETag fingerprints a stored value.
func ETag(data []byte) string {
	return strconv.FormatUint(xxhash.Sum64(data), 16)
}

var keyPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]*$`)

func checkKey(key string) error {
	if !keyPattern.MatchString(key) {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return nil
}

// checkExpect decides a conditional write against the current ETag.
func checkExpect(key, current string, exists bool, expect string) error {
	switch {
	case expect == Any:
		return nil
	case expect == MustNotExist && exists:
		return fmt.Errorf("%w: %s already exists", ErrConflict, key)
	case expect != MustNotExist && (!exists || current != expect):
		return fmt.Errorf("%w: %s", ErrConflict, key)
	}
	return nil
}

func checkWrites(writes []Write) error {
	seen := make(map[string]bool, len(writes))
	for _, w := range writes {
		if err := checkKey(w.Key); err != nil {
			return err
		}
		if seen[w.Key] {
			return fmt.Errorf("%w: %q written twice in one batch", ErrInvalidKey, w.Key)
		}
		seen[w.Key] = true
	}
	return nil
}

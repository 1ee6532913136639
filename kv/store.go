// Package kv defines the key value store abstraction the registries
// persist through. Implementations live in the bolt and inmem packages.
package kv

import (
	"context"
	"errors"
)

var (
	// ErrKeyNotFound is returned by Bucket.Get for missing keys.
	ErrKeyNotFound = errors.New("key not found")
	// ErrTxNotWritable is returned when a write is attempted inside a
	// read-only transaction.
	ErrTxNotWritable = errors.New("transaction is not writable")
)

// IsNotFound reports whether err indicates a missing key.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrKeyNotFound)
}

// Store opens transactions over named buckets of key value pairs.
type Store interface {
	// View runs fn in a read-only transaction. Implementations must
	// guarantee fn cannot mutate data.
	View(context.Context, func(Tx) error) error
	// Update runs fn in a writable transaction.
	Update(context.Context, func(Tx) error) error
}

// Tx is a single transaction against a Store.
type Tx interface {
	// Bucket returns the named bucket, creating it if the transaction
	// is writable and the bucket does not exist yet.
	Bucket(b []byte) (Bucket, error)
	Context() context.Context
	WithContext(ctx context.Context)
}

// Bucket holds an ordered set of key value pairs.
type Bucket interface {
	// Get returns the value for key, or ErrKeyNotFound.
	Get(key []byte) ([]byte, error)
	// Cursor returns a cursor positioned at the start of the bucket.
	Cursor() (Cursor, error)
	// Put fails with ErrTxNotWritable in a read-only transaction.
	Put(key, value []byte) error
	// Delete fails with ErrTxNotWritable in a read-only transaction.
	Delete(key []byte) error
}

// Cursor iterates a bucket in key order. Exhausted cursors return nil
// keys and values.
type Cursor interface {
	Seek(prefix []byte) (k []byte, v []byte)
	First() (k []byte, v []byte)
	Last() (k []byte, v []byte)
	Next() (k []byte, v []byte)
	Prev() (k []byte, v []byte)
}

package bolt

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pulseboard/pulseboard/kv"
	bolt "go.etcd.io/bbolt"
	"go.uber.org/zap"
)

// ensure *KVStore implements kv.Store
var _ kv.Store = (*KVStore)(nil)

// KVStore is a kv.Store backed by boltdb.
type KVStore struct {
	path   string
	db     *bolt.DB
	logger *zap.Logger
}

// NewKVStore returns an instance of KVStore with the file at the provided path.
func NewKVStore(path string) *KVStore {
	return &KVStore{
		path:   path,
		logger: zap.NewNop(),
	}
}

// WithLogger sets the logger on the store.
func (s *KVStore) WithLogger(l *zap.Logger) {
	s.logger = l
}

// Open creates the boltDB file if it doesn't exist and opens it otherwise.
func (s *KVStore) Open(ctx context.Context) error {
	// Ensure the required directory structure exists.
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("unable to create directory %s: %v", filepath.Dir(s.path), err)
	}

	if _, err := os.Stat(s.path); err != nil && !os.IsNotExist(err) {
		return err
	}

	db, err := bolt.Open(s.path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return fmt.Errorf("unable to open boltdb file %v", err)
	}
	s.db = db

	s.logger.Info("Resources opened", zap.String("path", s.path))
	return nil
}

// Close the connection to the bolt database.
func (s *KVStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// View opens up a view transaction against the store.
func (s *KVStore) View(ctx context.Context, fn func(kv.Tx) error) error {
	return s.db.View(func(btx *bolt.Tx) error {
		return fn(&tx{tx: btx, ctx: ctx})
	})
}

// Update opens up an update transaction against the store.
func (s *KVStore) Update(ctx context.Context, fn func(kv.Tx) error) error {
	return s.db.Update(func(btx *bolt.Tx) error {
		return fn(&tx{tx: btx, ctx: ctx})
	})
}

// tx wraps an boltdb transaction and implements kv.Tx.
type tx struct {
	tx  *bolt.Tx
	ctx context.Context
}

// Context returns the context for the transaction.
func (t *tx) Context() context.Context {
	return t.ctx
}

// WithContext sets the context for the transaction.
func (t *tx) WithContext(ctx context.Context) {
	t.ctx = ctx
}

// Bucket retrieves the bucket named b. In a writable transaction the bucket
// is created on first use.
func (t *tx) Bucket(b []byte) (kv.Bucket, error) {
	bkt := t.tx.Bucket(b)
	if bkt == nil {
		if !t.tx.Writable() {
			return emptyBucket{}, nil
		}

		var err error
		bkt, err = t.tx.CreateBucketIfNotExists(b)
		if err != nil {
			return nil, err
		}
	}
	return &bucket{bucket: bkt}, nil
}

// bucket implements kv.Bucket.
type bucket struct {
	bucket *bolt.Bucket
}

// Get retrieves the value at the provided key.
func (b *bucket) Get(key []byte) ([]byte, error) {
	val := b.bucket.Get(key)
	if len(val) == 0 {
		return nil, kv.ErrKeyNotFound
	}
	return val, nil
}

// Put sets the value at the provided key.
func (b *bucket) Put(key []byte, value []byte) error {
	err := b.bucket.Put(key, value)
	if err == bolt.ErrTxNotWritable {
		return kv.ErrTxNotWritable
	}
	return err
}

// Delete removes the provided key.
func (b *bucket) Delete(key []byte) error {
	err := b.bucket.Delete(key)
	if err == bolt.ErrTxNotWritable {
		return kv.ErrTxNotWritable
	}
	return err
}

// Cursor retrieves a cursor for iterating through the entries in the bucket.
func (b *bucket) Cursor() (kv.Cursor, error) {
	return &cursor{cursor: b.bucket.Cursor()}, nil
}

// cursor is a struct for iterating through the entries in the bucket.
type cursor struct {
	cursor *bolt.Cursor
}

// Seek seeks for the first key that matches the prefix provided.
func (c *cursor) Seek(prefix []byte) ([]byte, []byte) {
	k, v := c.cursor.Seek(prefix)
	if len(v) == 0 {
		return nil, nil
	}
	return k, v
}

// First retrieves the first key value pair in the bucket.
func (c *cursor) First() ([]byte, []byte) {
	k, v := c.cursor.First()
	if len(v) == 0 {
		return nil, nil
	}
	return k, v
}

// Last retrieves the last key value pair in the bucket.
func (c *cursor) Last() ([]byte, []byte) {
	k, v := c.cursor.Last()
	if len(v) == 0 {
		return nil, nil
	}
	return k, v
}

// Next retrieves the next key in the bucket.
func (c *cursor) Next() ([]byte, []byte) {
	k, v := c.cursor.Next()
	if len(v) == 0 {
		return nil, nil
	}
	return k, v
}

// Prev retrieves the previous key in the bucket.
func (c *cursor) Prev() ([]byte, []byte) {
	k, v := c.cursor.Prev()
	if len(v) == 0 {
		return nil, nil
	}
	return k, v
}

// emptyBucket is returned for view transactions against buckets that have
// not been created yet.
type emptyBucket struct{}

func (emptyBucket) Get(key []byte) ([]byte, error) { return nil, kv.ErrKeyNotFound }
func (emptyBucket) Put(key, value []byte) error    { return kv.ErrTxNotWritable }
func (emptyBucket) Delete(key []byte) error        { return kv.ErrTxNotWritable }
func (emptyBucket) Cursor() (kv.Cursor, error)     { return emptyCursor{}, nil }

type emptyCursor struct{}

func (emptyCursor) Seek([]byte) ([]byte, []byte) { return nil, nil }
func (emptyCursor) First() ([]byte, []byte)      { return nil, nil }
func (emptyCursor) Last() ([]byte, []byte)       { return nil, nil }
func (emptyCursor) Next() ([]byte, []byte)       { return nil, nil }
func (emptyCursor) Prev() ([]byte, []byte)       { return nil, nil }

package inmem

import (
	"bytes"
	"context"
	"sync"

	"github.com/google/btree"
	"github.com/pulseboard/pulseboard/kv"
)

// ensure *KVStore implements kv.Store
var _ kv.Store = (*KVStore)(nil)

// KVStore is an in memory btree backed kv.Store.
type KVStore struct {
	mu      sync.RWMutex
	buckets map[string]*bucket
}

// NewKVStore creates an instance of a KVStore.
func NewKVStore() *KVStore {
	return &KVStore{
		buckets: map[string]*bucket{},
	}
}

// View opens up a transaction with a read lock.
func (s *KVStore) View(ctx context.Context, fn func(kv.Tx) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(&tx{
		kv:       s,
		writable: false,
		ctx:      ctx,
	})
}

// Update opens up a transaction with a write lock.
func (s *KVStore) Update(ctx context.Context, fn func(kv.Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(&tx{
		kv:       s,
		writable: true,
		ctx:      ctx,
	})
}

// Flush removes all data from the store.
func (s *KVStore) Flush(ctx context.Context) {
	s.mu.Lock()
	s.buckets = map[string]*bucket{}
	s.mu.Unlock()
}

// tx is an in memory transaction.
type tx struct {
	kv       *KVStore
	writable bool
	ctx      context.Context
}

// Context returns the context for the transaction.
func (t *tx) Context() context.Context {
	return t.ctx
}

// WithContext sets the context for the transaction.
func (t *tx) WithContext(ctx context.Context) {
	t.ctx = ctx
}

// Bucket retrieves the bucket at the provided key, creating it on first use
// within a writable transaction.
func (t *tx) Bucket(b []byte) (kv.Bucket, error) {
	bkt, ok := t.kv.buckets[string(b)]
	if !ok {
		if !t.writable {
			// a view of a bucket that was never written to is just empty
			bkt = &bucket{btree: btree.New(2)}
			return &bucketView{bucket: bkt, writable: false}, nil
		}

		bkt = &bucket{btree: btree.New(2)}
		t.kv.buckets[string(b)] = bkt
	}

	return &bucketView{
		bucket:   bkt,
		writable: t.writable,
	}, nil
}

// pair is a struct for key value pairs.
type pair struct {
	key   []byte
	value []byte
}

// Less implements the btree.Item interface.
func (p *pair) Less(b btree.Item) bool {
	return bytes.Compare(p.key, b.(*pair).key) < 0
}

// bucket is a btree that holds the key value pairs of one logical collection.
type bucket struct {
	btree *btree.BTree
}

// bucketView wraps a bucket and enforces transaction writability.
type bucketView struct {
	bucket   *bucket
	writable bool
}

// Get retrieves the value at the provided key.
func (b *bucketView) Get(key []byte) ([]byte, error) {
	i := b.bucket.btree.Get(&pair{key: key})
	if i == nil {
		return nil, kv.ErrKeyNotFound
	}
	return i.(*pair).value, nil
}

// Put sets the key value pair provided.
func (b *bucketView) Put(key, value []byte) error {
	if !b.writable {
		return kv.ErrTxNotWritable
	}
	b.bucket.btree.ReplaceOrInsert(&pair{key: key, value: value})
	return nil
}

// Delete removes the key provided.
func (b *bucketView) Delete(key []byte) error {
	if !b.writable {
		return kv.ErrTxNotWritable
	}
	b.bucket.btree.Delete(&pair{key: key})
	return nil
}

// Cursor returns a cursor over a stable snapshot of the bucket contents.
func (b *bucketView) Cursor() (kv.Cursor, error) {
	pairs := make([]pair, 0, b.bucket.btree.Len())
	b.bucket.btree.Ascend(func(i btree.Item) bool {
		p := i.(*pair)
		pairs = append(pairs, pair{key: p.key, value: p.value})
		return true
	})
	return &cursor{pairs: pairs, index: -1}, nil
}

// cursor iterates over a snapshot of ordered key value pairs.
type cursor struct {
	pairs []pair
	index int
}

func (c *cursor) at(i int) ([]byte, []byte) {
	if i < 0 || i >= len(c.pairs) {
		return nil, nil
	}
	c.index = i
	return c.pairs[i].key, c.pairs[i].value
}

// Seek moves the cursor to the first key greater than or equal to prefix.
func (c *cursor) Seek(prefix []byte) ([]byte, []byte) {
	for i := range c.pairs {
		if bytes.Compare(c.pairs[i].key, prefix) >= 0 {
			return c.at(i)
		}
	}
	c.index = len(c.pairs)
	return nil, nil
}

// First moves the cursor to the first key in the bucket.
func (c *cursor) First() ([]byte, []byte) {
	return c.at(0)
}

// Last moves the cursor to the last key in the bucket.
func (c *cursor) Last() ([]byte, []byte) {
	return c.at(len(c.pairs) - 1)
}

// Next moves the cursor to the next key in the bucket.
func (c *cursor) Next() ([]byte, []byte) {
	return c.at(c.index + 1)
}

// Prev moves the cursor to the previous key in the bucket.
func (c *cursor) Prev() ([]byte, []byte) {
	return c.at(c.index - 1)
}

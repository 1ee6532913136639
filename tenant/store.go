package tenant

import (
	"context"

	"github.com/google/uuid"
	"github.com/pulseboard/pulseboard/kit/platform"
	"github.com/pulseboard/pulseboard/kv"
	"github.com/pulseboard/pulseboard/snowflake"
)

// Store wraps a kv.Store with the buckets and generators the tenant,
// organization and user registries need. All records are JSON encoded, one
// bucket per collection plus one bucket per lookup index.
type Store struct {
	kvStore  kv.Store
	IDGen    platform.IDGenerator
	TokenGen platform.TokenGenerator
}

// NewStore creates a Store over the provided kv.Store.
func NewStore(kvStore kv.Store) (*Store, error) {
	return &Store{
		kvStore:  kvStore,
		IDGen:    snowflake.NewIDGenerator(),
		TokenGen: uuidTokenGenerator{},
	}, nil
}

// View opens up a transaction that will not write to any data.
func (s *Store) View(ctx context.Context, fn func(kv.Tx) error) error {
	return s.kvStore.View(ctx, fn)
}

// Update opens up a transaction that will mutate data.
func (s *Store) Update(ctx context.Context, fn func(kv.Tx) error) error {
	return s.kvStore.Update(ctx, fn)
}

// uuidTokenGenerator issues invitation tokens.
type uuidTokenGenerator struct{}

func (uuidTokenGenerator) Token() (string, error) {
	return uuid.NewString(), nil
}

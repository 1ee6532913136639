package kpi

import (
	"context"
	"encoding/json"

	"github.com/pulseboard/pulseboard"
	"github.com/pulseboard/pulseboard/kit/platform"
	"github.com/pulseboard/pulseboard/kit/platform/errors"
	"github.com/pulseboard/pulseboard/kv"
	"github.com/pulseboard/pulseboard/snowflake"
)

var kpiConfigBucket = []byte("kpiconfigsv1")

// Store wraps a kv.Store with the KPI config bucket. Snowflake IDs keep the
// bucket in insertion order, which is what gives FindKPIConfigs its storage
// order and VisibleConfigs its stable tie-break.
type Store struct {
	kvStore kv.Store
	IDGen   platform.IDGenerator
}

// NewStore creates a Store over the provided kv.Store.
func NewStore(kvStore kv.Store) (*Store, error) {
	return &Store{
		kvStore: kvStore,
		IDGen:   snowflake.NewIDGenerator(),
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

func unmarshalKPIConfig(v []byte) (*pulseboard.KPIConfig, error) {
	cfg := &pulseboard.KPIConfig{}
	if err := json.Unmarshal(v, cfg); err != nil {
		return nil, ErrCorruptKPIConfig(err)
	}
	return cfg, nil
}

func marshalKPIConfig(cfg *pulseboard.KPIConfig) ([]byte, error) {
	v, err := json.Marshal(cfg)
	if err != nil {
		return nil, ErrUnprocessableKPIConfig(err)
	}
	return v, nil
}

// GetKPIConfig returns the config with the provided id.
func (s *Store) GetKPIConfig(ctx context.Context, tx kv.Tx, id platform.ID) (*pulseboard.KPIConfig, error) {
	encodedID, err := id.Encode()
	if err != nil {
		return nil, platform.ErrCorruptID(err)
	}

	b, err := tx.Bucket(kpiConfigBucket)
	if err != nil {
		return nil, errors.ErrInternalServiceError(err)
	}

	v, err := b.Get(encodedID)
	if kv.IsNotFound(err) {
		return nil, ErrKPIConfigNotFound
	}
	if err != nil {
		return nil, errors.ErrInternalServiceError(err)
	}

	return unmarshalKPIConfig(v)
}

// ListKPIConfigs returns all configs in the store in key order.
func (s *Store) ListKPIConfigs(ctx context.Context, tx kv.Tx) ([]*pulseboard.KPIConfig, error) {
	b, err := tx.Bucket(kpiConfigBucket)
	if err != nil {
		return nil, errors.ErrInternalServiceError(err)
	}

	cursor, err := b.Cursor()
	if err != nil {
		return nil, errors.ErrInternalServiceError(err)
	}

	cfgs := []*pulseboard.KPIConfig{}
	for k, v := cursor.First(); k != nil; k, v = cursor.Next() {
		cfg, err := unmarshalKPIConfig(v)
		if err != nil {
			continue
		}
		cfgs = append(cfgs, cfg)
	}
	return cfgs, nil
}

// CreateKPIConfig persists a new config.
func (s *Store) CreateKPIConfig(ctx context.Context, tx kv.Tx, cfg *pulseboard.KPIConfig) error {
	encodedID, err := cfg.ID.Encode()
	if err != nil {
		return platform.ErrCorruptID(err)
	}

	b, err := tx.Bucket(kpiConfigBucket)
	if err != nil {
		return errors.ErrInternalServiceError(err)
	}

	if _, err := b.Get(encodedID); err == nil {
		return NotUniqueIDError
	}

	v, err := marshalKPIConfig(cfg)
	if err != nil {
		return err
	}

	if err := b.Put(encodedID, v); err != nil {
		return errors.ErrInternalServiceError(err)
	}
	return nil
}

// PutKPIConfig overwrites an existing config.
func (s *Store) PutKPIConfig(ctx context.Context, tx kv.Tx, cfg *pulseboard.KPIConfig) error {
	encodedID, err := cfg.ID.Encode()
	if err != nil {
		return platform.ErrCorruptID(err)
	}

	v, err := marshalKPIConfig(cfg)
	if err != nil {
		return err
	}

	b, err := tx.Bucket(kpiConfigBucket)
	if err != nil {
		return errors.ErrInternalServiceError(err)
	}
	if err := b.Put(encodedID, v); err != nil {
		return errors.ErrInternalServiceError(err)
	}
	return nil
}

// DeleteKPIConfig removes the config record.
func (s *Store) DeleteKPIConfig(ctx context.Context, tx kv.Tx, id platform.ID) error {
	if _, err := s.GetKPIConfig(ctx, tx, id); err != nil {
		return err
	}

	encodedID, err := id.Encode()
	if err != nil {
		return platform.ErrCorruptID(err)
	}

	b, err := tx.Bucket(kpiConfigBucket)
	if err != nil {
		return errors.ErrInternalServiceError(err)
	}
	if err := b.Delete(encodedID); err != nil {
		return errors.ErrInternalServiceError(err)
	}
	return nil
}

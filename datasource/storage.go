package datasource

import (
	"context"
	"encoding/json"

	"github.com/pulseboard/pulseboard"
	"github.com/pulseboard/pulseboard/kit/platform"
	"github.com/pulseboard/pulseboard/kit/platform/errors"
	"github.com/pulseboard/pulseboard/kv"
	"github.com/pulseboard/pulseboard/snowflake"
)

var dataSourceBucket = []byte("datasourcesv1")

// Store wraps a kv.Store with the data source bucket.
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

func unmarshalDataSource(v []byte) (*pulseboard.DataSource, error) {
	ds := &pulseboard.DataSource{}
	if err := json.Unmarshal(v, ds); err != nil {
		return nil, ErrCorruptDataSource(err)
	}
	return ds, nil
}

func marshalDataSource(ds *pulseboard.DataSource) ([]byte, error) {
	v, err := json.Marshal(ds)
	if err != nil {
		return nil, ErrUnprocessableDataSource(err)
	}
	return v, nil
}

// GetDataSource returns the data source with the provided id.
func (s *Store) GetDataSource(ctx context.Context, tx kv.Tx, id platform.ID) (*pulseboard.DataSource, error) {
	encodedID, err := id.Encode()
	if err != nil {
		return nil, platform.ErrCorruptID(err)
	}

	b, err := tx.Bucket(dataSourceBucket)
	if err != nil {
		return nil, errors.ErrInternalServiceError(err)
	}

	v, err := b.Get(encodedID)
	if kv.IsNotFound(err) {
		return nil, ErrDataSourceNotFound
	}
	if err != nil {
		return nil, errors.ErrInternalServiceError(err)
	}

	return unmarshalDataSource(v)
}

// ListDataSources returns all data sources in the store.
func (s *Store) ListDataSources(ctx context.Context, tx kv.Tx) ([]*pulseboard.DataSource, error) {
	b, err := tx.Bucket(dataSourceBucket)
	if err != nil {
		return nil, errors.ErrInternalServiceError(err)
	}

	cursor, err := b.Cursor()
	if err != nil {
		return nil, errors.ErrInternalServiceError(err)
	}

	dss := []*pulseboard.DataSource{}
	for k, v := cursor.First(); k != nil; k, v = cursor.Next() {
		ds, err := unmarshalDataSource(v)
		if err != nil {
			continue
		}
		dss = append(dss, ds)
	}
	return dss, nil
}

// CreateDataSource persists a new data source.
func (s *Store) CreateDataSource(ctx context.Context, tx kv.Tx, ds *pulseboard.DataSource) error {
	encodedID, err := ds.ID.Encode()
	if err != nil {
		return platform.ErrCorruptID(err)
	}

	b, err := tx.Bucket(dataSourceBucket)
	if err != nil {
		return errors.ErrInternalServiceError(err)
	}

	if _, err := b.Get(encodedID); err == nil {
		return NotUniqueIDError
	}

	v, err := marshalDataSource(ds)
	if err != nil {
		return err
	}

	if err := b.Put(encodedID, v); err != nil {
		return errors.ErrInternalServiceError(err)
	}
	return nil
}

// PutDataSource overwrites an existing data source.
func (s *Store) PutDataSource(ctx context.Context, tx kv.Tx, ds *pulseboard.DataSource) error {
	encodedID, err := ds.ID.Encode()
	if err != nil {
		return platform.ErrCorruptID(err)
	}

	v, err := marshalDataSource(ds)
	if err != nil {
		return err
	}

	b, err := tx.Bucket(dataSourceBucket)
	if err != nil {
		return errors.ErrInternalServiceError(err)
	}
	if err := b.Put(encodedID, v); err != nil {
		return errors.ErrInternalServiceError(err)
	}
	return nil
}

// DeleteDataSource removes the data source record.
func (s *Store) DeleteDataSource(ctx context.Context, tx kv.Tx, id platform.ID) error {
	if _, err := s.GetDataSource(ctx, tx, id); err != nil {
		return err
	}

	encodedID, err := id.Encode()
	if err != nil {
		return platform.ErrCorruptID(err)
	}

	b, err := tx.Bucket(dataSourceBucket)
	if err != nil {
		return errors.ErrInternalServiceError(err)
	}
	if err := b.Delete(encodedID); err != nil {
		return errors.ErrInternalServiceError(err)
	}
	return nil
}

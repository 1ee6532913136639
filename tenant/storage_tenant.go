package tenant

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/pulseboard/pulseboard"
	"github.com/pulseboard/pulseboard/kit/platform"
	"github.com/pulseboard/pulseboard/kit/platform/errors"
	"github.com/pulseboard/pulseboard/kv"
)

var (
	tenantBucket      = []byte("tenantsv1")
	tenantDomainIndex = []byte("tenantdomainindexv1")
)

func tenantDomainIndexKey(domain string) []byte {
	return []byte(strings.ToLower(strings.TrimSpace(domain)))
}

func unmarshalTenant(v []byte) (*pulseboard.Tenant, error) {
	t := &pulseboard.Tenant{}
	if err := json.Unmarshal(v, t); err != nil {
		return nil, ErrCorruptTenant(err)
	}
	return t, nil
}

func marshalTenant(t *pulseboard.Tenant) ([]byte, error) {
	v, err := json.Marshal(t)
	if err != nil {
		return nil, ErrUnprocessableTenant(err)
	}
	return v, nil
}

func (s *Store) uniqueTenantDomain(ctx context.Context, tx kv.Tx, domain string) error {
	key := tenantDomainIndexKey(domain)
	if len(key) == 0 {
		// a tenant without a domain is fine, it just isn't indexed
		return nil
	}

	idx, err := tx.Bucket(tenantDomainIndex)
	if err != nil {
		return errors.ErrInternalServiceError(err)
	}

	_, err = idx.Get(key)
	if kv.IsNotFound(err) {
		return nil
	}
	if err == nil {
		return TenantDomainAlreadyExistsError(domain)
	}
	return errors.ErrInternalServiceError(err)
}

// GetTenant returns the tenant with the provided id.
func (s *Store) GetTenant(ctx context.Context, tx kv.Tx, id platform.ID) (*pulseboard.Tenant, error) {
	encodedID, err := id.Encode()
	if err != nil {
		return nil, platform.ErrCorruptID(err)
	}

	b, err := tx.Bucket(tenantBucket)
	if err != nil {
		return nil, errors.ErrInternalServiceError(err)
	}

	v, err := b.Get(encodedID)
	if kv.IsNotFound(err) {
		return nil, ErrTenantNotFound
	}
	if err != nil {
		return nil, errors.ErrInternalServiceError(err)
	}

	return unmarshalTenant(v)
}

// GetTenantByDomain returns the tenant registered under the provided domain.
func (s *Store) GetTenantByDomain(ctx context.Context, tx kv.Tx, domain string) (*pulseboard.Tenant, error) {
	idx, err := tx.Bucket(tenantDomainIndex)
	if err != nil {
		return nil, errors.ErrInternalServiceError(err)
	}

	encodedID, err := idx.Get(tenantDomainIndexKey(domain))
	if kv.IsNotFound(err) {
		return nil, ErrTenantNotFound
	}
	if err != nil {
		return nil, errors.ErrInternalServiceError(err)
	}

	var id platform.ID
	if err := id.Decode(encodedID); err != nil {
		return nil, platform.ErrCorruptID(err)
	}
	return s.GetTenant(ctx, tx, id)
}

// ListTenants returns all tenants in the store.
func (s *Store) ListTenants(ctx context.Context, tx kv.Tx) ([]*pulseboard.Tenant, error) {
	b, err := tx.Bucket(tenantBucket)
	if err != nil {
		return nil, errors.ErrInternalServiceError(err)
	}

	cursor, err := b.Cursor()
	if err != nil {
		return nil, errors.ErrInternalServiceError(err)
	}

	ts := []*pulseboard.Tenant{}
	for k, v := cursor.First(); k != nil; k, v = cursor.Next() {
		t, err := unmarshalTenant(v)
		if err != nil {
			continue
		}
		ts = append(ts, t)
	}
	return ts, nil
}

// CreateTenant persists a new tenant. The caller is expected to have set the
// ID and defaults already.
func (s *Store) CreateTenant(ctx context.Context, tx kv.Tx, t *pulseboard.Tenant) error {
	encodedID, err := t.ID.Encode()
	if err != nil {
		return platform.ErrCorruptID(err)
	}

	b, err := tx.Bucket(tenantBucket)
	if err != nil {
		return errors.ErrInternalServiceError(err)
	}

	if _, err := b.Get(encodedID); err == nil {
		return NotUniqueIDError
	}

	if err := s.uniqueTenantDomain(ctx, tx, t.Domain); err != nil {
		return err
	}

	v, err := marshalTenant(t)
	if err != nil {
		return err
	}

	if err := b.Put(encodedID, v); err != nil {
		return errors.ErrInternalServiceError(err)
	}

	return s.putTenantDomainIndex(tx, t.Domain, encodedID)
}

// PutTenant overwrites an existing tenant without touching the domain index.
func (s *Store) PutTenant(ctx context.Context, tx kv.Tx, t *pulseboard.Tenant) error {
	encodedID, err := t.ID.Encode()
	if err != nil {
		return platform.ErrCorruptID(err)
	}

	v, err := marshalTenant(t)
	if err != nil {
		return err
	}

	b, err := tx.Bucket(tenantBucket)
	if err != nil {
		return errors.ErrInternalServiceError(err)
	}

	if err := b.Put(encodedID, v); err != nil {
		return errors.ErrInternalServiceError(err)
	}
	return nil
}

// UpdateTenantDomain moves the tenant's domain index entry.
func (s *Store) UpdateTenantDomain(ctx context.Context, tx kv.Tx, oldDomain, newDomain string, encodedID []byte) error {
	if key := tenantDomainIndexKey(oldDomain); len(key) > 0 {
		idx, err := tx.Bucket(tenantDomainIndex)
		if err != nil {
			return errors.ErrInternalServiceError(err)
		}
		if err := idx.Delete(key); err != nil {
			return errors.ErrInternalServiceError(err)
		}
	}
	return s.putTenantDomainIndex(tx, newDomain, encodedID)
}

func (s *Store) putTenantDomainIndex(tx kv.Tx, domain string, encodedID []byte) error {
	key := tenantDomainIndexKey(domain)
	if len(key) == 0 {
		return nil
	}
	idx, err := tx.Bucket(tenantDomainIndex)
	if err != nil {
		return errors.ErrInternalServiceError(err)
	}
	if err := idx.Put(key, encodedID); err != nil {
		return errors.ErrInternalServiceError(err)
	}
	return nil
}

// DeleteTenant removes the tenant record and its domain index entry.
func (s *Store) DeleteTenant(ctx context.Context, tx kv.Tx, id platform.ID) error {
	t, err := s.GetTenant(ctx, tx, id)
	if err != nil {
		return err
	}

	encodedID, err := id.Encode()
	if err != nil {
		return platform.ErrCorruptID(err)
	}

	if key := tenantDomainIndexKey(t.Domain); len(key) > 0 {
		idx, err := tx.Bucket(tenantDomainIndex)
		if err != nil {
			return errors.ErrInternalServiceError(err)
		}
		if err := idx.Delete(key); err != nil {
			return errors.ErrInternalServiceError(err)
		}
	}

	b, err := tx.Bucket(tenantBucket)
	if err != nil {
		return errors.ErrInternalServiceError(err)
	}
	if err := b.Delete(encodedID); err != nil {
		return errors.ErrInternalServiceError(err)
	}
	return nil
}

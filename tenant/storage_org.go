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
	organizationBucket = []byte("organizationsv1")
	organizationIndex  = []byte("organizationindexv1")
)

// organizationIndexKey scopes organization name uniqueness to the tenant.
func organizationIndexKey(tenantID platform.ID, name string) []byte {
	encodedID, err := tenantID.Encode()
	if err != nil {
		return nil
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}
	key := make([]byte, 0, len(encodedID)+1+len(name))
	key = append(key, encodedID...)
	key = append(key, '/')
	key = append(key, name...)
	return key
}

func unmarshalOrg(v []byte) (*pulseboard.Organization, error) {
	o := &pulseboard.Organization{}
	if err := json.Unmarshal(v, o); err != nil {
		return nil, ErrCorruptOrg(err)
	}
	return o, nil
}

func marshalOrg(o *pulseboard.Organization) ([]byte, error) {
	v, err := json.Marshal(o)
	if err != nil {
		return nil, ErrUnprocessableOrg(err)
	}
	return v, nil
}

func (s *Store) uniqueOrgName(ctx context.Context, tx kv.Tx, tenantID platform.ID, name string) error {
	key := organizationIndexKey(tenantID, name)
	if len(key) == 0 {
		return ErrOrgNameEmpty
	}

	idx, err := tx.Bucket(organizationIndex)
	if err != nil {
		return errors.ErrInternalServiceError(err)
	}

	_, err = idx.Get(key)
	// if not found then this is _unique_.
	if kv.IsNotFound(err) {
		return nil
	}
	if err == nil {
		return OrgAlreadyExistsError(name)
	}
	return errors.ErrInternalServiceError(err)
}

// GetOrg returns the organization with the provided id.
func (s *Store) GetOrg(ctx context.Context, tx kv.Tx, id platform.ID) (*pulseboard.Organization, error) {
	encodedID, err := id.Encode()
	if err != nil {
		return nil, platform.ErrCorruptID(err)
	}

	b, err := tx.Bucket(organizationBucket)
	if err != nil {
		return nil, errors.ErrInternalServiceError(err)
	}

	v, err := b.Get(encodedID)
	if kv.IsNotFound(err) {
		return nil, ErrOrgNotFound
	}
	if err != nil {
		return nil, errors.ErrInternalServiceError(err)
	}

	return unmarshalOrg(v)
}

// ListOrgs returns all organizations in the store.
func (s *Store) ListOrgs(ctx context.Context, tx kv.Tx) ([]*pulseboard.Organization, error) {
	b, err := tx.Bucket(organizationBucket)
	if err != nil {
		return nil, errors.ErrInternalServiceError(err)
	}

	cursor, err := b.Cursor()
	if err != nil {
		return nil, errors.ErrInternalServiceError(err)
	}

	os := []*pulseboard.Organization{}
	for k, v := cursor.First(); k != nil; k, v = cursor.Next() {
		o, err := unmarshalOrg(v)
		if err != nil {
			continue
		}
		os = append(os, o)
	}
	return os, nil
}

// CreateOrg persists a new organization and indexes its name within the tenant.
func (s *Store) CreateOrg(ctx context.Context, tx kv.Tx, o *pulseboard.Organization) error {
	encodedID, err := o.ID.Encode()
	if err != nil {
		return platform.ErrCorruptID(err)
	}

	b, err := tx.Bucket(organizationBucket)
	if err != nil {
		return errors.ErrInternalServiceError(err)
	}

	if _, err := b.Get(encodedID); err == nil {
		return NotUniqueIDError
	}

	if err := s.uniqueOrgName(ctx, tx, o.TenantID, o.Name); err != nil {
		return err
	}

	v, err := marshalOrg(o)
	if err != nil {
		return err
	}

	idx, err := tx.Bucket(organizationIndex)
	if err != nil {
		return errors.ErrInternalServiceError(err)
	}
	if err := idx.Put(organizationIndexKey(o.TenantID, o.Name), encodedID); err != nil {
		return errors.ErrInternalServiceError(err)
	}

	if err := b.Put(encodedID, v); err != nil {
		return errors.ErrInternalServiceError(err)
	}
	return nil
}

// PutOrg overwrites an existing organization without touching the name index.
func (s *Store) PutOrg(ctx context.Context, tx kv.Tx, o *pulseboard.Organization) error {
	encodedID, err := o.ID.Encode()
	if err != nil {
		return platform.ErrCorruptID(err)
	}

	v, err := marshalOrg(o)
	if err != nil {
		return err
	}

	b, err := tx.Bucket(organizationBucket)
	if err != nil {
		return errors.ErrInternalServiceError(err)
	}
	if err := b.Put(encodedID, v); err != nil {
		return errors.ErrInternalServiceError(err)
	}
	return nil
}

// RenameOrg moves the name index entry and overwrites the record.
func (s *Store) RenameOrg(ctx context.Context, tx kv.Tx, o *pulseboard.Organization, oldName string) error {
	if err := s.uniqueOrgName(ctx, tx, o.TenantID, o.Name); err != nil {
		return err
	}

	idx, err := tx.Bucket(organizationIndex)
	if err != nil {
		return errors.ErrInternalServiceError(err)
	}
	if key := organizationIndexKey(o.TenantID, oldName); len(key) > 0 {
		if err := idx.Delete(key); err != nil {
			return errors.ErrInternalServiceError(err)
		}
	}

	encodedID, err := o.ID.Encode()
	if err != nil {
		return platform.ErrCorruptID(err)
	}
	if err := idx.Put(organizationIndexKey(o.TenantID, o.Name), encodedID); err != nil {
		return errors.ErrInternalServiceError(err)
	}

	return s.PutOrg(ctx, tx, o)
}

// DeleteOrg removes the organization record and its name index entry.
func (s *Store) DeleteOrg(ctx context.Context, tx kv.Tx, id platform.ID) error {
	o, err := s.GetOrg(ctx, tx, id)
	if err != nil {
		return err
	}

	encodedID, err := id.Encode()
	if err != nil {
		return platform.ErrCorruptID(err)
	}

	idx, err := tx.Bucket(organizationIndex)
	if err != nil {
		return errors.ErrInternalServiceError(err)
	}
	if key := organizationIndexKey(o.TenantID, o.Name); len(key) > 0 {
		if err := idx.Delete(key); err != nil {
			return errors.ErrInternalServiceError(err)
		}
	}

	b, err := tx.Bucket(organizationBucket)
	if err != nil {
		return errors.ErrInternalServiceError(err)
	}
	if err := b.Delete(encodedID); err != nil {
		return errors.ErrInternalServiceError(err)
	}
	return nil
}

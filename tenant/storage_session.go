package tenant

import (
	"context"

	"github.com/pulseboard/pulseboard/kit/platform"
	"github.com/pulseboard/pulseboard/kit/platform/errors"
	"github.com/pulseboard/pulseboard/kv"
)

// The session state bucket mirrors the client's persisted layout: one key per
// "current" selection, written on every switch and hydrated at session start.
var (
	sessionStateBucket = []byte("sessionstatev1")

	currentTenantKey       = []byte("current_tenant")
	currentOrganizationKey = []byte("current_organization")
	currentUserKey         = []byte("current_user")
)

func (s *Store) getCurrentID(ctx context.Context, tx kv.Tx, key []byte) (platform.ID, error) {
	b, err := tx.Bucket(sessionStateBucket)
	if err != nil {
		return 0, errors.ErrInternalServiceError(err)
	}

	v, err := b.Get(key)
	if kv.IsNotFound(err) {
		return 0, nil
	}
	if err != nil {
		return 0, errors.ErrInternalServiceError(err)
	}

	var id platform.ID
	if err := id.Decode(v); err != nil {
		return 0, platform.ErrCorruptID(err)
	}
	return id, nil
}

func (s *Store) putCurrentID(ctx context.Context, tx kv.Tx, key []byte, id platform.ID) error {
	encodedID, err := id.Encode()
	if err != nil {
		return platform.ErrCorruptID(err)
	}

	b, err := tx.Bucket(sessionStateBucket)
	if err != nil {
		return errors.ErrInternalServiceError(err)
	}
	if err := b.Put(key, encodedID); err != nil {
		return errors.ErrInternalServiceError(err)
	}
	return nil
}

// GetCurrentTenant returns the persisted current tenant selection, or zero.
func (s *Store) GetCurrentTenant(ctx context.Context, tx kv.Tx) (platform.ID, error) {
	return s.getCurrentID(ctx, tx, currentTenantKey)
}

// PutCurrentTenant persists the current tenant selection.
func (s *Store) PutCurrentTenant(ctx context.Context, tx kv.Tx, id platform.ID) error {
	return s.putCurrentID(ctx, tx, currentTenantKey, id)
}

// GetCurrentOrganization returns the persisted active organization, or zero.
func (s *Store) GetCurrentOrganization(ctx context.Context, tx kv.Tx) (platform.ID, error) {
	return s.getCurrentID(ctx, tx, currentOrganizationKey)
}

// PutCurrentOrganization persists the active organization selection.
func (s *Store) PutCurrentOrganization(ctx context.Context, tx kv.Tx, id platform.ID) error {
	return s.putCurrentID(ctx, tx, currentOrganizationKey, id)
}

// GetCurrentUser returns the persisted current user, or zero.
func (s *Store) GetCurrentUser(ctx context.Context, tx kv.Tx) (platform.ID, error) {
	return s.getCurrentID(ctx, tx, currentUserKey)
}

// PutCurrentUser persists the current user selection.
func (s *Store) PutCurrentUser(ctx context.Context, tx kv.Tx, id platform.ID) error {
	return s.putCurrentID(ctx, tx, currentUserKey, id)
}

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
	invitationBucket     = []byte("invitationsv1")
	invitationTokenIndex = []byte("invitationtokenindexv1")
)

func invitationTokenIndexKey(token string) []byte {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil
	}
	return []byte(token)
}

func unmarshalInvitation(v []byte) (*pulseboard.UserInvitation, error) {
	inv := &pulseboard.UserInvitation{}
	if err := json.Unmarshal(v, inv); err != nil {
		return nil, ErrCorruptInvitation(err)
	}
	return inv, nil
}

func marshalInvitation(inv *pulseboard.UserInvitation) ([]byte, error) {
	v, err := json.Marshal(inv)
	if err != nil {
		return nil, ErrUnprocessableInvitation(err)
	}
	return v, nil
}

// GetInvitation returns the invitation with the provided id.
func (s *Store) GetInvitation(ctx context.Context, tx kv.Tx, id platform.ID) (*pulseboard.UserInvitation, error) {
	encodedID, err := id.Encode()
	if err != nil {
		return nil, platform.ErrCorruptID(err)
	}

	b, err := tx.Bucket(invitationBucket)
	if err != nil {
		return nil, errors.ErrInternalServiceError(err)
	}

	v, err := b.Get(encodedID)
	if kv.IsNotFound(err) {
		return nil, ErrInvitationNotFound
	}
	if err != nil {
		return nil, errors.ErrInternalServiceError(err)
	}

	return unmarshalInvitation(v)
}

// GetInvitationByToken returns the invitation carrying the provided token.
func (s *Store) GetInvitationByToken(ctx context.Context, tx kv.Tx, token string) (*pulseboard.UserInvitation, error) {
	idx, err := tx.Bucket(invitationTokenIndex)
	if err != nil {
		return nil, errors.ErrInternalServiceError(err)
	}

	encodedID, err := idx.Get(invitationTokenIndexKey(token))
	if kv.IsNotFound(err) {
		return nil, ErrInvitationNotFound
	}
	if err != nil {
		return nil, errors.ErrInternalServiceError(err)
	}

	var id platform.ID
	if err := id.Decode(encodedID); err != nil {
		return nil, platform.ErrCorruptID(err)
	}
	return s.GetInvitation(ctx, tx, id)
}

// ListInvitations returns all invitations in the store.
func (s *Store) ListInvitations(ctx context.Context, tx kv.Tx) ([]*pulseboard.UserInvitation, error) {
	b, err := tx.Bucket(invitationBucket)
	if err != nil {
		return nil, errors.ErrInternalServiceError(err)
	}

	cursor, err := b.Cursor()
	if err != nil {
		return nil, errors.ErrInternalServiceError(err)
	}

	invs := []*pulseboard.UserInvitation{}
	for k, v := cursor.First(); k != nil; k, v = cursor.Next() {
		inv, err := unmarshalInvitation(v)
		if err != nil {
			continue
		}
		invs = append(invs, inv)
	}
	return invs, nil
}

// CreateInvitation persists a new invitation and indexes its token.
func (s *Store) CreateInvitation(ctx context.Context, tx kv.Tx, inv *pulseboard.UserInvitation) error {
	encodedID, err := inv.ID.Encode()
	if err != nil {
		return platform.ErrCorruptID(err)
	}

	b, err := tx.Bucket(invitationBucket)
	if err != nil {
		return errors.ErrInternalServiceError(err)
	}

	if _, err := b.Get(encodedID); err == nil {
		return NotUniqueIDError
	}

	v, err := marshalInvitation(inv)
	if err != nil {
		return err
	}

	idx, err := tx.Bucket(invitationTokenIndex)
	if err != nil {
		return errors.ErrInternalServiceError(err)
	}
	if err := idx.Put(invitationTokenIndexKey(inv.Token), encodedID); err != nil {
		return errors.ErrInternalServiceError(err)
	}

	if err := b.Put(encodedID, v); err != nil {
		return errors.ErrInternalServiceError(err)
	}
	return nil
}

// PutInvitation overwrites an existing invitation. The token never changes,
// so the index entry stays put.
func (s *Store) PutInvitation(ctx context.Context, tx kv.Tx, inv *pulseboard.UserInvitation) error {
	encodedID, err := inv.ID.Encode()
	if err != nil {
		return platform.ErrCorruptID(err)
	}

	v, err := marshalInvitation(inv)
	if err != nil {
		return err
	}

	b, err := tx.Bucket(invitationBucket)
	if err != nil {
		return errors.ErrInternalServiceError(err)
	}
	if err := b.Put(encodedID, v); err != nil {
		return errors.ErrInternalServiceError(err)
	}
	return nil
}

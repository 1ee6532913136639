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
	userBucket     = []byte("usersv1")
	userEmailIndex = []byte("useremailindexv1")
)

func userEmailIndexKey(email string) []byte {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil
	}
	return []byte(email)
}

func unmarshalUser(v []byte) (*pulseboard.User, error) {
	u := &pulseboard.User{}
	if err := json.Unmarshal(v, u); err != nil {
		return nil, ErrCorruptUser(err)
	}
	return u, nil
}

func marshalUser(u *pulseboard.User) ([]byte, error) {
	v, err := json.Marshal(u)
	if err != nil {
		return nil, ErrUnprocessableUser(err)
	}
	return v, nil
}

func (s *Store) uniqueUserEmail(ctx context.Context, tx kv.Tx, email string) error {
	key := userEmailIndexKey(email)
	if len(key) == 0 {
		return ErrUserEmailEmpty
	}

	idx, err := tx.Bucket(userEmailIndex)
	if err != nil {
		return errors.ErrInternalServiceError(err)
	}

	_, err = idx.Get(key)
	if kv.IsNotFound(err) {
		return nil
	}
	if err == nil {
		return UserAlreadyExistsError(email)
	}
	return errors.ErrInternalServiceError(err)
}

// GetUser returns the user with the provided id.
func (s *Store) GetUser(ctx context.Context, tx kv.Tx, id platform.ID) (*pulseboard.User, error) {
	encodedID, err := id.Encode()
	if err != nil {
		return nil, platform.ErrCorruptID(err)
	}

	b, err := tx.Bucket(userBucket)
	if err != nil {
		return nil, errors.ErrInternalServiceError(err)
	}

	v, err := b.Get(encodedID)
	if kv.IsNotFound(err) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, errors.ErrInternalServiceError(err)
	}

	return unmarshalUser(v)
}

// GetUserByEmail returns the user registered under the provided email.
func (s *Store) GetUserByEmail(ctx context.Context, tx kv.Tx, email string) (*pulseboard.User, error) {
	idx, err := tx.Bucket(userEmailIndex)
	if err != nil {
		return nil, errors.ErrInternalServiceError(err)
	}

	encodedID, err := idx.Get(userEmailIndexKey(email))
	if kv.IsNotFound(err) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, errors.ErrInternalServiceError(err)
	}

	var id platform.ID
	if err := id.Decode(encodedID); err != nil {
		return nil, platform.ErrCorruptID(err)
	}
	return s.GetUser(ctx, tx, id)
}

// ListUsers returns all users in the store.
func (s *Store) ListUsers(ctx context.Context, tx kv.Tx) ([]*pulseboard.User, error) {
	b, err := tx.Bucket(userBucket)
	if err != nil {
		return nil, errors.ErrInternalServiceError(err)
	}

	cursor, err := b.Cursor()
	if err != nil {
		return nil, errors.ErrInternalServiceError(err)
	}

	us := []*pulseboard.User{}
	for k, v := cursor.First(); k != nil; k, v = cursor.Next() {
		u, err := unmarshalUser(v)
		if err != nil {
			continue
		}
		us = append(us, u)
	}
	return us, nil
}

// CreateUser persists a new user and indexes its email.
func (s *Store) CreateUser(ctx context.Context, tx kv.Tx, u *pulseboard.User) error {
	encodedID, err := u.ID.Encode()
	if err != nil {
		return platform.ErrCorruptID(err)
	}

	b, err := tx.Bucket(userBucket)
	if err != nil {
		return errors.ErrInternalServiceError(err)
	}

	if _, err := b.Get(encodedID); err == nil {
		return NotUniqueIDError
	}

	if err := s.uniqueUserEmail(ctx, tx, u.Email); err != nil {
		return err
	}

	v, err := marshalUser(u)
	if err != nil {
		return err
	}

	idx, err := tx.Bucket(userEmailIndex)
	if err != nil {
		return errors.ErrInternalServiceError(err)
	}
	if err := idx.Put(userEmailIndexKey(u.Email), encodedID); err != nil {
		return errors.ErrInternalServiceError(err)
	}

	if err := b.Put(encodedID, v); err != nil {
		return errors.ErrInternalServiceError(err)
	}
	return nil
}

// PutUser overwrites an existing user without touching the email index.
func (s *Store) PutUser(ctx context.Context, tx kv.Tx, u *pulseboard.User) error {
	encodedID, err := u.ID.Encode()
	if err != nil {
		return platform.ErrCorruptID(err)
	}

	v, err := marshalUser(u)
	if err != nil {
		return err
	}

	b, err := tx.Bucket(userBucket)
	if err != nil {
		return errors.ErrInternalServiceError(err)
	}
	if err := b.Put(encodedID, v); err != nil {
		return errors.ErrInternalServiceError(err)
	}
	return nil
}

// ReindexUserEmail moves the email index entry and overwrites the record.
func (s *Store) ReindexUserEmail(ctx context.Context, tx kv.Tx, u *pulseboard.User, oldEmail string) error {
	if err := s.uniqueUserEmail(ctx, tx, u.Email); err != nil {
		return err
	}

	idx, err := tx.Bucket(userEmailIndex)
	if err != nil {
		return errors.ErrInternalServiceError(err)
	}
	if key := userEmailIndexKey(oldEmail); len(key) > 0 {
		if err := idx.Delete(key); err != nil {
			return errors.ErrInternalServiceError(err)
		}
	}

	encodedID, err := u.ID.Encode()
	if err != nil {
		return platform.ErrCorruptID(err)
	}
	if err := idx.Put(userEmailIndexKey(u.Email), encodedID); err != nil {
		return errors.ErrInternalServiceError(err)
	}

	return s.PutUser(ctx, tx, u)
}

// DeleteUser removes the user record and its email index entry.
func (s *Store) DeleteUser(ctx context.Context, tx kv.Tx, id platform.ID) error {
	u, err := s.GetUser(ctx, tx, id)
	if err != nil {
		return err
	}

	encodedID, err := id.Encode()
	if err != nil {
		return platform.ErrCorruptID(err)
	}

	idx, err := tx.Bucket(userEmailIndex)
	if err != nil {
		return errors.ErrInternalServiceError(err)
	}
	if key := userEmailIndexKey(u.Email); len(key) > 0 {
		if err := idx.Delete(key); err != nil {
			return errors.ErrInternalServiceError(err)
		}
	}

	b, err := tx.Bucket(userBucket)
	if err != nil {
		return errors.ErrInternalServiceError(err)
	}
	if err := b.Delete(encodedID); err != nil {
		return errors.ErrInternalServiceError(err)
	}
	return nil
}

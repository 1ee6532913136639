package tenant

import (
	"fmt"

	"github.com/pulseboard/pulseboard/kit/platform/errors"
)

var (
	// ErrUserNotFound is used when the user is not found.
	ErrUserNotFound = &errors.Error{
		Code: errors.ENotFound,
		Msg:  "user not found",
	}

	// ErrUserEmailEmpty is used when a user is created without an email.
	ErrUserEmailEmpty = &errors.Error{
		Code: errors.EEmptyValue,
		Msg:  "user email is empty",
	}

	// ErrUserNameEmpty is used when a user is created without a name.
	ErrUserNameEmpty = &errors.Error{
		Code: errors.EEmptyValue,
		Msg:  "user name is empty",
	}

	// ErrInvalidRole is used when a role outside admin/editor/viewer is supplied.
	ErrInvalidRole = &errors.Error{
		Code: errors.EInvalid,
		Msg:  "role must be one of admin, editor or viewer",
	}

	// ErrInvitationNotFound is used when no pending invitation matches the token.
	ErrInvitationNotFound = &errors.Error{
		Code: errors.ENotFound,
		Msg:  "invitation not found",
	}

	// ErrInvitationNotPending is used when the invitation was already consumed.
	ErrInvitationNotPending = &errors.Error{
		Code: errors.EConflict,
		Msg:  "invitation is no longer pending",
	}

	// ErrInvitationExpired is used when the invitation TTL has lapsed.
	ErrInvitationExpired = &errors.Error{
		Code: errors.EExpired,
		Msg:  "invitation has expired",
	}
)

// UserAlreadyExistsError is used when creating a user with an email that is taken.
func UserAlreadyExistsError(email string) *errors.Error {
	return &errors.Error{
		Code: errors.EConflict,
		Msg:  fmt.Sprintf("user with email %s already exists", email),
	}
}

// ErrCorruptUser the user stored cannot be decoded.
func ErrCorruptUser(err error) *errors.Error {
	return &errors.Error{
		Code: errors.EInternal,
		Msg:  "user could not be unmarshalled",
		Err:  err,
		Op:   "tenant/unmarshalUser",
	}
}

// ErrUnprocessableUser the user cannot be encoded.
func ErrUnprocessableUser(err error) *errors.Error {
	return &errors.Error{
		Code: errors.EUnprocessableEntity,
		Msg:  "user could not be marshalled",
		Err:  err,
		Op:   "tenant/marshalUser",
	}
}

// ErrCorruptInvitation the invitation stored cannot be decoded.
func ErrCorruptInvitation(err error) *errors.Error {
	return &errors.Error{
		Code: errors.EInternal,
		Msg:  "invitation could not be unmarshalled",
		Err:  err,
		Op:   "tenant/unmarshalInvitation",
	}
}

// ErrUnprocessableInvitation the invitation cannot be encoded.
func ErrUnprocessableInvitation(err error) *errors.Error {
	return &errors.Error{
		Code: errors.EUnprocessableEntity,
		Msg:  "invitation could not be marshalled",
		Err:  err,
		Op:   "tenant/marshalInvitation",
	}
}

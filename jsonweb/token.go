// Package jsonweb parses externally issued JSON web tokens into session
// principals. Token issuance lives outside this process; only verification
// and claim extraction happen here.
package jsonweb

import (
	"errors"

	"github.com/golang-jwt/jwt/v4"
	"github.com/pulseboard/pulseboard"
	"github.com/pulseboard/pulseboard/kit/platform"
)

var (
	// ErrKeyNotFound should be returned by a KeyStore when
	// a key cannot be located for the provided key ID
	ErrKeyNotFound = errors.New("key not found")

	// EmptyKeyStore is a key store implementation which contains no keys
	EmptyKeyStore = KeyStoreFunc(func(string) ([]byte, error) {
		return nil, ErrKeyNotFound
	})
)

// KeyStore is a type which holds a set of keys accessed via an id.
type KeyStore interface {
	Key(string) ([]byte, error)
}

// KeyStoreFunc is a function which can be used as a KeyStore.
type KeyStoreFunc func(string) ([]byte, error)

// Key delegates to the receiver function.
func (k KeyStoreFunc) Key(v string) ([]byte, error) { return k(v) }

// TokenParser is a type which can parse and validate tokens.
type TokenParser struct {
	keyStore KeyStore
	parser   *jwt.Parser
}

// NewTokenParser returns a configured token parser used to
// parse Token types from strings.
func NewTokenParser(keyStore KeyStore) *TokenParser {
	return &TokenParser{
		keyStore: keyStore,
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{"HS256"}),
		),
	}
}

// Parse takes a string then parses and validates it as a jwt based on
// the key described within the token.
func (t *TokenParser) Parse(v string) (*Token, error) {
	jwtToken, err := t.parser.ParseWithClaims(v, &Token{}, func(jwtToken *jwt.Token) (interface{}, error) {
		token, ok := jwtToken.Claims.(*Token)
		if !ok {
			return nil, errors.New("missing kid in token claims")
		}
		return t.keyStore.Key(token.KeyID)
	})
	if err != nil {
		return nil, err
	}

	token, ok := jwtToken.Claims.(*Token)
	if !ok {
		return nil, errors.New("token is unexpected type")
	}
	return token, nil
}

// IsMalformedError returns true if the error returned represents
// a jwt malformed token error
func IsMalformedError(err error) bool {
	var vErr *jwt.ValidationError
	return errors.As(err, &vErr) && vErr.Errors&jwt.ValidationErrorMalformed > 0
}

// Token is a structure which is serialized as a json web token. Its claims
// carry the session principal the gate evaluates against.
type Token struct {
	jwt.RegisteredClaims
	KeyID          string      `json:"kid"`
	TenantID       platform.ID `json:"tenantId"`
	OrganizationID platform.ID `json:"organizationId"`
	UserID         platform.ID `json:"userId"`
}

// Session returns the session principal described by the token claims.
func (t *Token) Session() pulseboard.Session {
	return pulseboard.Session{
		TenantID:       t.TenantID,
		OrganizationID: t.OrganizationID,
		UserID:         t.UserID,
	}
}

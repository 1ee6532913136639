package jsonweb

import (
	"testing"

	"github.com/golang-jwt/jwt/v4"
	"github.com/pulseboard/pulseboard/kit/platform"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testKeyStore = KeyStoreFunc(func(kid string) ([]byte, error) {
	if kid != "some-key" {
		return nil, ErrKeyNotFound
	}
	return []byte("shared secret"), nil
})

func signedToken(t *testing.T, token *Token, key []byte) string {
	t.Helper()

	v, err := jwt.NewWithClaims(jwt.SigningMethodHS256, token).SignedString(key)
	require.NoError(t, err)
	return v
}

func TestTokenParser(t *testing.T) {
	parser := NewTokenParser(testKeyStore)

	claims := &Token{
		KeyID:          "some-key",
		TenantID:       platform.ID(1),
		OrganizationID: platform.ID(2),
		UserID:         platform.ID(3),
	}

	t.Run("valid token", func(t *testing.T) {
		token, err := parser.Parse(signedToken(t, claims, []byte("shared secret")))
		require.NoError(t, err)

		sess := token.Session()
		assert.Equal(t, platform.ID(1), sess.TenantID)
		assert.Equal(t, platform.ID(2), sess.OrganizationID)
		assert.Equal(t, platform.ID(3), sess.UserID)
		assert.True(t, sess.Valid())
	})

	t.Run("wrong signing key", func(t *testing.T) {
		_, err := parser.Parse(signedToken(t, claims, []byte("wrong secret")))
		assert.Error(t, err)
	})

	t.Run("unknown key id", func(t *testing.T) {
		unknown := &Token{KeyID: "other-key", TenantID: 1, OrganizationID: 2, UserID: 3}
		_, err := parser.Parse(signedToken(t, unknown, []byte("shared secret")))
		assert.Error(t, err)
	})

	t.Run("malformed token", func(t *testing.T) {
		_, err := parser.Parse("not-a-token")
		assert.Error(t, err)
		assert.True(t, IsMalformedError(err))
	})

	t.Run("empty key store", func(t *testing.T) {
		_, err := NewTokenParser(EmptyKeyStore).Parse(signedToken(t, claims, []byte("shared secret")))
		assert.Error(t, err)
	})
}

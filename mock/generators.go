package mock

import (
	"github.com/pulseboard/pulseboard/kit/platform"
)

// IDGenerator is a mock implementation of platform.IDGenerator.
type IDGenerator struct {
	IDFn func() platform.ID
}

var _ platform.IDGenerator = (*IDGenerator)(nil)

// NewIDGenerator returns a generator that counts up from 1.
func NewIDGenerator() *IDGenerator {
	var id platform.ID
	return &IDGenerator{
		IDFn: func() platform.ID {
			id++
			return id
		},
	}
}

// NewStaticIDGenerator returns a generator that always produces id.
func NewStaticIDGenerator(id platform.ID) *IDGenerator {
	return &IDGenerator{
		IDFn: func() platform.ID { return id },
	}
}

func (g *IDGenerator) ID() platform.ID {
	return g.IDFn()
}

// TokenGenerator is a mock implementation of platform.TokenGenerator.
type TokenGenerator struct {
	TokenFn func() (string, error)
}

var _ platform.TokenGenerator = (*TokenGenerator)(nil)

// NewTokenGenerator returns a generator that always produces token.
func NewTokenGenerator(token string, err error) *TokenGenerator {
	return &TokenGenerator{
		TokenFn: func() (string, error) { return token, err },
	}
}

func (g *TokenGenerator) Token() (string, error) {
	return g.TokenFn()
}

package tenant_test

import (
	"testing"

	"github.com/pulseboard/pulseboard/kit/platform"
)

func platformID(t *testing.T, s string) platform.ID {
	t.Helper()

	id, err := platform.IDFromString(s)
	if err != nil {
		t.Fatalf("failed to decode ID %q: %v", s, err)
	}
	return *id
}

// Package context provides helpers for carrying the session principal and
// the active organization on a request context.
package context

import (
	"context"

	"github.com/pulseboard/pulseboard"
	"github.com/pulseboard/pulseboard/kit/platform"
	"github.com/pulseboard/pulseboard/kit/platform/errors"
)

type contextKey string

const (
	sessionCtxKey   = contextKey("pulseboard/session/v1")
	activeOrgCtxKey = contextKey("pulseboard/active-org/v1")
)

// SetSession sets the session principal on context.
func SetSession(ctx context.Context, s pulseboard.Session) context.Context {
	return context.WithValue(ctx, sessionCtxKey, s)
}

// GetSession retrieves the session principal from context.
func GetSession(ctx context.Context) (pulseboard.Session, error) {
	s, ok := ctx.Value(sessionCtxKey).(pulseboard.Session)
	if !ok {
		return pulseboard.Session{}, &errors.Error{
			Code: errors.EUnauthorized,
			Msg:  "session not found on context",
		}
	}
	return s, nil
}

// GetUserID retrieves the session user ID from context.
func GetUserID(ctx context.Context) (platform.ID, error) {
	s, err := GetSession(ctx)
	if err != nil {
		return 0, err
	}
	return s.UserID, nil
}

// SetActiveOrganization records the organization the session is currently
// operating in.
func SetActiveOrganization(ctx context.Context, id platform.ID) context.Context {
	return context.WithValue(ctx, activeOrgCtxKey, id)
}

// GetActiveOrganization retrieves the active organization from context,
// falling back to the session's organization.
func GetActiveOrganization(ctx context.Context) (platform.ID, error) {
	if id, ok := ctx.Value(activeOrgCtxKey).(platform.ID); ok {
		return id, nil
	}
	s, err := GetSession(ctx)
	if err != nil {
		return 0, err
	}
	return s.OrganizationID, nil
}

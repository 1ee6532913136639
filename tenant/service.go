package tenant

import (
	"github.com/benbjohnson/clock"
	"github.com/pulseboard/pulseboard"
)

// Service implements the tenant, organization, user and invitation services
// over a Store. A single service instance backs one client session; the
// store's transactions make concurrent use safe regardless.
type Service struct {
	store    *Store
	clock    clock.Clock
	branding pulseboard.BrandingApplier
}

var (
	_ pulseboard.TenantService       = (*Service)(nil)
	_ pulseboard.OrganizationService = (*Service)(nil)
	_ pulseboard.UserService         = (*Service)(nil)
	_ pulseboard.InvitationService   = (*Service)(nil)
)

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithClock injects the clock used for trial expiry, invitation TTLs and
// timestamps.
func WithClock(c clock.Clock) ServiceOption {
	return func(s *Service) {
		s.clock = c
	}
}

// WithBrandingApplier injects the UI collaborator notified when the active
// organization changes.
func WithBrandingApplier(b pulseboard.BrandingApplier) ServiceOption {
	return func(s *Service) {
		s.branding = b
	}
}

// NewService constructs a Service over the provided store.
func NewService(st *Store, opts ...ServiceOption) *Service {
	s := &Service{
		store: st,
		clock: clock.New(),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Package http assembles the API handlers into a single server.
package http

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/pulseboard/pulseboard/datasource"
	"github.com/pulseboard/pulseboard/kpi"
	"github.com/pulseboard/pulseboard/tenant"
	"go.uber.org/zap"
)

// Handlers carries the per-service HTTP handlers mounted by the server.
type Handlers struct {
	TenantHandler     *tenant.TenantHandler
	OrgHandler        *tenant.OrgHandler
	UserHandler       *tenant.UserHandler
	InvitationHandler *tenant.InvitationHandler
	DataSourceHandler *datasource.DataSourceHandler
	KPIHandler        *kpi.KPIHandler
}

// APIHandler is the root handler for the HTTP API.
type APIHandler struct {
	chi.Router
}

// APIHandlerOptFn configures the root API handler.
type APIHandlerOptFn func(chi.Router)

// WithSessionMiddleware installs mw ahead of every API route.
func WithSessionMiddleware(mw func(http.Handler) http.Handler) APIHandlerOptFn {
	return func(r chi.Router) {
		r.Use(mw)
	}
}

// NewAPIHandler mounts the service handlers under their route prefixes along
// with the health and metrics endpoints.
func NewAPIHandler(log *zap.Logger, reg *prometheus.Registry, h Handlers, opts ...APIHandlerOptFn) *APIHandler {
	r := chi.NewRouter()
	r.Get("/health", HealthHandler)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	r.Group(func(r chi.Router) {
		for _, opt := range opts {
			opt(r)
		}

		r.Mount(tenant.PrefixTenants, h.TenantHandler)
		r.Mount(tenant.PrefixOrganizations, h.OrgHandler)
		r.Mount(tenant.PrefixUsers, h.UserHandler)
		r.Mount(tenant.PrefixInvitations, h.InvitationHandler)
		r.Mount(datasource.PrefixDataSources, h.DataSourceHandler)
		r.Mount(kpi.PrefixKPIs, h.KPIHandler)
	})

	return &APIHandler{Router: r}
}

// Server is an abstraction around the http.Server that handles a server process.
// It manages the full lifecycle of a server by serving a handler on a socket.
// If signals have been registered, it will attempt to terminate the server using
// Shutdown if a signal is received and will force a shutdown if a second signal
// is received.
type Server struct {
	ShutdownTimeout time.Duration

	srv *http.Server
	log *zap.Logger
}

// NewServer returns a new server struct that can be used.
func NewServer(log *zap.Logger, handler http.Handler) *Server {
	return &Server{
		ShutdownTimeout: 20 * time.Second,
		srv: &http.Server{
			Handler:      handler,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		log: log,
	}
}

// Serve will run the server until the context is canceled, then gracefully
// shut it down.
func (s *Server) Serve(ctx context.Context, addr string) error {
	s.srv.Addr = addr

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("listening", zap.String("transport", "http"), zap.String("addr", addr))
		errCh <- s.srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutCtx, cancel := context.WithTimeout(context.Background(), s.ShutdownTimeout)
	defer cancel()

	if err := s.srv.Shutdown(shutCtx); err != nil {
		s.log.Warn("graceful shutdown failed, closing", zap.Error(err))
		return s.srv.Close()
	}
	return nil
}

// HealthHandler returns the status of the process.
func HealthHandler(w http.ResponseWriter, r *http.Request) {
	msg := `{"name":"pulseboard","message":"ready to serve dashboards","status":"pass","checks":[]}`
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(msg))
}

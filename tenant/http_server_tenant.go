package tenant

import (
	"net/http"

	"github.com/go-chi/chi"
	"github.com/pulseboard/pulseboard"
	"github.com/pulseboard/pulseboard/kit/platform"
	kithttp "github.com/pulseboard/pulseboard/kit/transport/http"
	"go.uber.org/zap"
)

// PrefixTenants is the route prefix the tenant handler mounts at.
const PrefixTenants = "/api/v1/tenants"

// TenantHandler represents an HTTP API handler for tenants.
type TenantHandler struct {
	chi.Router
	api       *kithttp.API
	log       *zap.Logger
	tenantSvc pulseboard.TenantService
}

// NewHTTPTenantHandler constructs a new http server.
func NewHTTPTenantHandler(log *zap.Logger, tenantSvc pulseboard.TenantService) *TenantHandler {
	svr := &TenantHandler{
		api:       kithttp.NewAPI(kithttp.WithLog(log)),
		log:       log,
		tenantSvc: tenantSvc,
	}

	r := chi.NewRouter()
	r.Route("/", func(r chi.Router) {
		r.Post("/", svr.handlePostTenant)
		r.Get("/", svr.handleGetTenants)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", svr.handleGetTenant)
			r.Patch("/", svr.handlePatchTenant)
			r.Delete("/", svr.handleDeleteTenant)
			r.Post("/suspend", svr.handleSuspendTenant)
			r.Post("/activate", svr.handleActivateTenant)
			r.Get("/limits/{resource}", svr.handleGetResourceLimit)
			r.Get("/modules/{module}", svr.handleGetModuleAccess)
		})
	})

	svr.Router = r
	return svr
}

func (h *TenantHandler) idFromRequest(r *http.Request) (platform.ID, error) {
	var id platform.ID
	if err := id.DecodeFromString(chi.URLParam(r, "id")); err != nil {
		return 0, platform.ErrCorruptID(err)
	}
	return id, nil
}

func (h *TenantHandler) handlePostTenant(w http.ResponseWriter, r *http.Request) {
	var t pulseboard.Tenant
	if err := h.api.DecodeJSON(r, &t); err != nil {
		h.api.Err(w, err)
		return
	}

	if err := h.tenantSvc.CreateTenant(r.Context(), &t); err != nil {
		h.api.Err(w, err)
		return
	}
	h.api.Respond(w, http.StatusCreated, t)
}

func (h *TenantHandler) handleGetTenants(w http.ResponseWriter, r *http.Request) {
	var filter pulseboard.TenantFilter
	q := r.URL.Query()
	if domain := q.Get("domain"); domain != "" {
		filter.Domain = &domain
	}
	if status := q.Get("status"); status != "" {
		s := pulseboard.TenantStatus(status)
		filter.Status = &s
	}

	ts, _, err := h.tenantSvc.FindTenants(r.Context(), filter)
	if err != nil {
		h.api.Err(w, err)
		return
	}
	h.api.Respond(w, http.StatusOK, ts)
}

func (h *TenantHandler) handleGetTenant(w http.ResponseWriter, r *http.Request) {
	id, err := h.idFromRequest(r)
	if err != nil {
		h.api.Err(w, err)
		return
	}

	t, err := h.tenantSvc.FindTenantByID(r.Context(), id)
	if err != nil {
		h.api.Err(w, err)
		return
	}
	h.api.Respond(w, http.StatusOK, t)
}

func (h *TenantHandler) handlePatchTenant(w http.ResponseWriter, r *http.Request) {
	id, err := h.idFromRequest(r)
	if err != nil {
		h.api.Err(w, err)
		return
	}

	var upd pulseboard.TenantUpdate
	if err := h.api.DecodeJSON(r, &upd); err != nil {
		h.api.Err(w, err)
		return
	}

	t, err := h.tenantSvc.UpdateTenant(r.Context(), id, upd)
	if err != nil {
		h.api.Err(w, err)
		return
	}
	h.api.Respond(w, http.StatusOK, t)
}

func (h *TenantHandler) handleDeleteTenant(w http.ResponseWriter, r *http.Request) {
	id, err := h.idFromRequest(r)
	if err != nil {
		h.api.Err(w, err)
		return
	}

	if err := h.tenantSvc.DeleteTenant(r.Context(), id); err != nil {
		h.api.Err(w, err)
		return
	}
	h.api.Respond(w, http.StatusNoContent, nil)
}

func (h *TenantHandler) handleSuspendTenant(w http.ResponseWriter, r *http.Request) {
	id, err := h.idFromRequest(r)
	if err != nil {
		h.api.Err(w, err)
		return
	}

	if err := h.tenantSvc.SuspendTenant(r.Context(), id); err != nil {
		h.api.Err(w, err)
		return
	}
	h.api.Respond(w, http.StatusNoContent, nil)
}

func (h *TenantHandler) handleActivateTenant(w http.ResponseWriter, r *http.Request) {
	id, err := h.idFromRequest(r)
	if err != nil {
		h.api.Err(w, err)
		return
	}

	if err := h.tenantSvc.ActivateTenant(r.Context(), id); err != nil {
		h.api.Err(w, err)
		return
	}
	h.api.Respond(w, http.StatusNoContent, nil)
}

func (h *TenantHandler) handleGetResourceLimit(w http.ResponseWriter, r *http.Request) {
	id, err := h.idFromRequest(r)
	if err != nil {
		h.api.Err(w, err)
		return
	}

	limit, err := h.tenantSvc.CheckResourceLimit(r.Context(), id, chi.URLParam(r, "resource"))
	if err != nil {
		h.api.Err(w, err)
		return
	}
	h.api.Respond(w, http.StatusOK, limit)
}

func (h *TenantHandler) handleGetModuleAccess(w http.ResponseWriter, r *http.Request) {
	id, err := h.idFromRequest(r)
	if err != nil {
		h.api.Err(w, err)
		return
	}

	allowed, err := h.tenantSvc.CheckModuleAccess(r.Context(), id, chi.URLParam(r, "module"))
	if err != nil {
		h.api.Err(w, err)
		return
	}
	h.api.Respond(w, http.StatusOK, map[string]bool{"allowed": allowed})
}

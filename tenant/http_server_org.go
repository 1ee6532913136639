package tenant

import (
	"net/http"

	"github.com/go-chi/chi"
	"github.com/pulseboard/pulseboard"
	"github.com/pulseboard/pulseboard/kit/platform"
	kithttp "github.com/pulseboard/pulseboard/kit/transport/http"
	"go.uber.org/zap"
)

// PrefixOrganizations is the route prefix the org handler mounts at.
const PrefixOrganizations = "/api/v1/orgs"

// OrgHandler represents an HTTP API handler for organizations.
type OrgHandler struct {
	chi.Router
	api    *kithttp.API
	log    *zap.Logger
	orgSvc pulseboard.OrganizationService
}

// NewHTTPOrgHandler constructs a new http server.
func NewHTTPOrgHandler(log *zap.Logger, orgSvc pulseboard.OrganizationService) *OrgHandler {
	svr := &OrgHandler{
		api:    kithttp.NewAPI(kithttp.WithLog(log)),
		log:    log,
		orgSvc: orgSvc,
	}

	r := chi.NewRouter()
	r.Route("/", func(r chi.Router) {
		r.Post("/", svr.handlePostOrg)
		r.Get("/", svr.handleGetOrgs)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", svr.handleGetOrg)
			r.Patch("/", svr.handlePatchOrg)
			r.Delete("/", svr.handleDeleteOrg)
			r.Post("/activate", svr.handleSetActiveOrg)
			r.Get("/features/{flag}", svr.handleGetFeature)
			r.Post("/members", svr.handlePostMember)
			r.Delete("/members/{userID}", svr.handleDeleteMember)
		})
	})

	svr.Router = r
	return svr
}

func (h *OrgHandler) idFromRequest(r *http.Request, param string) (platform.ID, error) {
	var id platform.ID
	if err := id.DecodeFromString(chi.URLParam(r, param)); err != nil {
		return 0, platform.ErrCorruptID(err)
	}
	return id, nil
}

func (h *OrgHandler) handlePostOrg(w http.ResponseWriter, r *http.Request) {
	var o pulseboard.Organization
	if err := h.api.DecodeJSON(r, &o); err != nil {
		h.api.Err(w, err)
		return
	}

	if err := h.orgSvc.CreateOrganization(r.Context(), &o); err != nil {
		h.api.Err(w, err)
		return
	}
	h.api.Respond(w, http.StatusCreated, o)
}

func (h *OrgHandler) handleGetOrgs(w http.ResponseWriter, r *http.Request) {
	var filter pulseboard.OrganizationFilter
	q := r.URL.Query()
	if v := q.Get("tenantID"); v != "" {
		id, err := platform.IDFromString(v)
		if err != nil {
			h.api.Err(w, err)
			return
		}
		filter.TenantID = id
	}
	if v := q.Get("parentID"); v != "" {
		id, err := platform.IDFromString(v)
		if err != nil {
			h.api.Err(w, err)
			return
		}
		filter.ParentID = id
	}
	if name := q.Get("name"); name != "" {
		filter.Name = &name
	}

	orgs, _, err := h.orgSvc.FindOrganizations(r.Context(), filter)
	if err != nil {
		h.api.Err(w, err)
		return
	}
	h.api.Respond(w, http.StatusOK, orgs)
}

func (h *OrgHandler) handleGetOrg(w http.ResponseWriter, r *http.Request) {
	id, err := h.idFromRequest(r, "id")
	if err != nil {
		h.api.Err(w, err)
		return
	}

	o, err := h.orgSvc.FindOrganizationByID(r.Context(), id)
	if err != nil {
		h.api.Err(w, err)
		return
	}
	h.api.Respond(w, http.StatusOK, o)
}

func (h *OrgHandler) handlePatchOrg(w http.ResponseWriter, r *http.Request) {
	id, err := h.idFromRequest(r, "id")
	if err != nil {
		h.api.Err(w, err)
		return
	}

	var upd pulseboard.OrganizationUpdate
	if err := h.api.DecodeJSON(r, &upd); err != nil {
		h.api.Err(w, err)
		return
	}

	o, err := h.orgSvc.UpdateOrganization(r.Context(), id, upd)
	if err != nil {
		h.api.Err(w, err)
		return
	}
	h.api.Respond(w, http.StatusOK, o)
}

func (h *OrgHandler) handleDeleteOrg(w http.ResponseWriter, r *http.Request) {
	id, err := h.idFromRequest(r, "id")
	if err != nil {
		h.api.Err(w, err)
		return
	}

	if err := h.orgSvc.DeleteOrganization(r.Context(), id); err != nil {
		h.api.Err(w, err)
		return
	}
	h.api.Respond(w, http.StatusNoContent, nil)
}

func (h *OrgHandler) handleSetActiveOrg(w http.ResponseWriter, r *http.Request) {
	id, err := h.idFromRequest(r, "id")
	if err != nil {
		h.api.Err(w, err)
		return
	}

	if err := h.orgSvc.SetActiveOrganization(r.Context(), id); err != nil {
		h.api.Err(w, err)
		return
	}
	h.api.Respond(w, http.StatusNoContent, nil)
}

func (h *OrgHandler) handleGetFeature(w http.ResponseWriter, r *http.Request) {
	id, err := h.idFromRequest(r, "id")
	if err != nil {
		h.api.Err(w, err)
		return
	}

	enabled, err := h.orgSvc.HasFeature(r.Context(), id, chi.URLParam(r, "flag"))
	if err != nil {
		h.api.Err(w, err)
		return
	}
	h.api.Respond(w, http.StatusOK, map[string]bool{"enabled": enabled})
}

func (h *OrgHandler) handlePostMember(w http.ResponseWriter, r *http.Request) {
	id, err := h.idFromRequest(r, "id")
	if err != nil {
		h.api.Err(w, err)
		return
	}

	var body struct {
		UserID platform.ID `json:"userId"`
	}
	if err := h.api.DecodeJSON(r, &body); err != nil {
		h.api.Err(w, err)
		return
	}

	if err := h.orgSvc.AddMember(r.Context(), id, body.UserID); err != nil {
		h.api.Err(w, err)
		return
	}
	h.api.Respond(w, http.StatusNoContent, nil)
}

func (h *OrgHandler) handleDeleteMember(w http.ResponseWriter, r *http.Request) {
	id, err := h.idFromRequest(r, "id")
	if err != nil {
		h.api.Err(w, err)
		return
	}
	userID, err := h.idFromRequest(r, "userID")
	if err != nil {
		h.api.Err(w, err)
		return
	}

	if err := h.orgSvc.RemoveMember(r.Context(), id, userID); err != nil {
		h.api.Err(w, err)
		return
	}
	h.api.Respond(w, http.StatusNoContent, nil)
}

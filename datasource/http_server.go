package datasource

import (
	"net/http"

	"github.com/go-chi/chi"
	"github.com/pulseboard/pulseboard"
	"github.com/pulseboard/pulseboard/kit/platform"
	kithttp "github.com/pulseboard/pulseboard/kit/transport/http"
	"go.uber.org/zap"
)

// PrefixDataSources is the route prefix the data source handler mounts at.
const PrefixDataSources = "/api/v1/datasources"

// DataSourceHandler represents an HTTP API handler for data sources.
type DataSourceHandler struct {
	chi.Router
	api   *kithttp.API
	log   *zap.Logger
	dsSvc pulseboard.DataSourceService
}

// NewHTTPDataSourceHandler constructs a new http server.
func NewHTTPDataSourceHandler(log *zap.Logger, dsSvc pulseboard.DataSourceService) *DataSourceHandler {
	svr := &DataSourceHandler{
		api:   kithttp.NewAPI(kithttp.WithLog(log)),
		log:   log,
		dsSvc: dsSvc,
	}

	r := chi.NewRouter()
	r.Route("/", func(r chi.Router) {
		r.Post("/", svr.handlePostDataSource)
		r.Get("/", svr.handleGetDataSources)
		r.Get("/stats", svr.handleGetStatistics)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", svr.handleGetDataSource)
			r.Patch("/", svr.handlePatchDataSource)
			r.Delete("/", svr.handleDeleteDataSource)
			r.Post("/test", svr.handleTestConnection)
		})
	})

	svr.Router = r
	return svr
}

// newDataSourceResponse strips credentials. Secrets are write-only over the API.
func newDataSourceResponse(ds *pulseboard.DataSource) pulseboard.DataSource {
	out := *ds
	out.Credentials = pulseboard.DataSourceCredentials{}
	return out
}

func newDataSourcesResponse(dss []*pulseboard.DataSource) []pulseboard.DataSource {
	resp := make([]pulseboard.DataSource, 0, len(dss))
	for _, ds := range dss {
		resp = append(resp, newDataSourceResponse(ds))
	}
	return resp
}

func (h *DataSourceHandler) idFromRequest(r *http.Request) (platform.ID, error) {
	var id platform.ID
	if err := id.DecodeFromString(chi.URLParam(r, "id")); err != nil {
		return 0, platform.ErrCorruptID(err)
	}
	return id, nil
}

func (h *DataSourceHandler) handlePostDataSource(w http.ResponseWriter, r *http.Request) {
	var ds pulseboard.DataSource
	if err := h.api.DecodeJSON(r, &ds); err != nil {
		h.api.Err(w, err)
		return
	}

	if err := h.dsSvc.CreateDataSource(r.Context(), &ds); err != nil {
		h.api.Err(w, err)
		return
	}
	h.api.Respond(w, http.StatusCreated, newDataSourceResponse(&ds))
}

func (h *DataSourceHandler) handleGetDataSources(w http.ResponseWriter, r *http.Request) {
	var filter pulseboard.DataSourceFilter
	q := r.URL.Query()
	if v := q.Get("type"); v != "" {
		t := pulseboard.DataSourceType(v)
		filter.Type = &t
	}
	if v := q.Get("status"); v != "" {
		s := pulseboard.ConnectionStatus(v)
		filter.Status = &s
	}
	if v := q.Get("tenantID"); v != "" {
		id, err := platform.IDFromString(v)
		if err != nil {
			h.api.Err(w, err)
			return
		}
		filter.TenantID = id
	}
	if v := q.Get("orgID"); v != "" {
		id, err := platform.IDFromString(v)
		if err != nil {
			h.api.Err(w, err)
			return
		}
		filter.OrganizationID = id
	}

	dss, _, err := h.dsSvc.FindDataSources(r.Context(), filter)
	if err != nil {
		h.api.Err(w, err)
		return
	}
	h.api.Respond(w, http.StatusOK, newDataSourcesResponse(dss))
}

func (h *DataSourceHandler) handleGetStatistics(w http.ResponseWriter, r *http.Request) {
	stats, err := h.dsSvc.Statistics(r.Context())
	if err != nil {
		h.api.Err(w, err)
		return
	}
	h.api.Respond(w, http.StatusOK, stats)
}

func (h *DataSourceHandler) handleGetDataSource(w http.ResponseWriter, r *http.Request) {
	id, err := h.idFromRequest(r)
	if err != nil {
		h.api.Err(w, err)
		return
	}

	ds, err := h.dsSvc.FindDataSourceByID(r.Context(), id)
	if err != nil {
		h.api.Err(w, err)
		return
	}
	h.api.Respond(w, http.StatusOK, newDataSourceResponse(ds))
}

func (h *DataSourceHandler) handlePatchDataSource(w http.ResponseWriter, r *http.Request) {
	id, err := h.idFromRequest(r)
	if err != nil {
		h.api.Err(w, err)
		return
	}

	var upd pulseboard.DataSourceUpdate
	if err := h.api.DecodeJSON(r, &upd); err != nil {
		h.api.Err(w, err)
		return
	}

	ds, err := h.dsSvc.UpdateDataSource(r.Context(), id, upd)
	if err != nil {
		h.api.Err(w, err)
		return
	}
	h.api.Respond(w, http.StatusOK, newDataSourceResponse(ds))
}

func (h *DataSourceHandler) handleDeleteDataSource(w http.ResponseWriter, r *http.Request) {
	id, err := h.idFromRequest(r)
	if err != nil {
		h.api.Err(w, err)
		return
	}

	if err := h.dsSvc.DeleteDataSource(r.Context(), id); err != nil {
		h.api.Err(w, err)
		return
	}
	h.api.Respond(w, http.StatusNoContent, nil)
}

func (h *DataSourceHandler) handleTestConnection(w http.ResponseWriter, r *http.Request) {
	id, err := h.idFromRequest(r)
	if err != nil {
		h.api.Err(w, err)
		return
	}

	result, err := h.dsSvc.TestConnection(r.Context(), id)
	if err != nil {
		h.api.Err(w, err)
		return
	}
	h.api.Respond(w, http.StatusOK, result)
}

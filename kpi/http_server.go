package kpi

import (
	"net/http"

	"github.com/go-chi/chi"
	"github.com/pulseboard/pulseboard"
	"github.com/pulseboard/pulseboard/kit/platform"
	kithttp "github.com/pulseboard/pulseboard/kit/transport/http"
	"go.uber.org/zap"
)

// PrefixKPIs is the route prefix the KPI handler mounts at.
const PrefixKPIs = "/api/v1/kpis"

// KPIHandler represents an HTTP API handler for KPI configs.
type KPIHandler struct {
	chi.Router
	api    *kithttp.API
	log    *zap.Logger
	kpiSvc pulseboard.KPIService
}

// NewHTTPKPIHandler constructs a new http server.
func NewHTTPKPIHandler(log *zap.Logger, kpiSvc pulseboard.KPIService) *KPIHandler {
	svr := &KPIHandler{
		api:    kithttp.NewAPI(kithttp.WithLog(log)),
		log:    log,
		kpiSvc: kpiSvc,
	}

	r := chi.NewRouter()
	r.Route("/", func(r chi.Router) {
		r.Post("/", svr.handlePostKPIConfig)
		r.Get("/", svr.handleGetKPIConfigs)
		r.Get("/visible", svr.handleGetVisibleConfigs)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", svr.handleGetKPIConfig)
			r.Patch("/", svr.handlePatchKPIConfig)
			r.Delete("/", svr.handleDeleteKPIConfig)
			r.Get("/value", svr.handleGetKPIValue)
		})
	})

	svr.Router = r
	return svr
}

func (h *KPIHandler) idFromRequest(r *http.Request) (platform.ID, error) {
	var id platform.ID
	if err := id.DecodeFromString(chi.URLParam(r, "id")); err != nil {
		return 0, platform.ErrCorruptID(err)
	}
	return id, nil
}

func (h *KPIHandler) handlePostKPIConfig(w http.ResponseWriter, r *http.Request) {
	var cfg pulseboard.KPIConfig
	if err := h.api.DecodeJSON(r, &cfg); err != nil {
		h.api.Err(w, err)
		return
	}

	if err := h.kpiSvc.CreateKPIConfig(r.Context(), &cfg); err != nil {
		h.api.Err(w, err)
		return
	}
	h.api.Respond(w, http.StatusCreated, cfg)
}

func (h *KPIHandler) handleGetKPIConfigs(w http.ResponseWriter, r *http.Request) {
	var filter pulseboard.KPIConfigFilter
	if v := r.URL.Query().Get("visible"); v != "" {
		visible := v == "true"
		filter.Visible = &visible
	}

	cfgs, _, err := h.kpiSvc.FindKPIConfigs(r.Context(), filter)
	if err != nil {
		h.api.Err(w, err)
		return
	}
	h.api.Respond(w, http.StatusOK, cfgs)
}

func (h *KPIHandler) handleGetVisibleConfigs(w http.ResponseWriter, r *http.Request) {
	cfgs, err := h.kpiSvc.VisibleConfigs(r.Context())
	if err != nil {
		h.api.Err(w, err)
		return
	}
	h.api.Respond(w, http.StatusOK, cfgs)
}

func (h *KPIHandler) handleGetKPIConfig(w http.ResponseWriter, r *http.Request) {
	id, err := h.idFromRequest(r)
	if err != nil {
		h.api.Err(w, err)
		return
	}

	cfg, err := h.kpiSvc.FindKPIConfigByID(r.Context(), id)
	if err != nil {
		h.api.Err(w, err)
		return
	}
	h.api.Respond(w, http.StatusOK, cfg)
}

func (h *KPIHandler) handlePatchKPIConfig(w http.ResponseWriter, r *http.Request) {
	id, err := h.idFromRequest(r)
	if err != nil {
		h.api.Err(w, err)
		return
	}

	var upd pulseboard.KPIConfigUpdate
	if err := h.api.DecodeJSON(r, &upd); err != nil {
		h.api.Err(w, err)
		return
	}

	cfg, err := h.kpiSvc.UpdateKPIConfig(r.Context(), id, upd)
	if err != nil {
		h.api.Err(w, err)
		return
	}
	h.api.Respond(w, http.StatusOK, cfg)
}

func (h *KPIHandler) handleDeleteKPIConfig(w http.ResponseWriter, r *http.Request) {
	id, err := h.idFromRequest(r)
	if err != nil {
		h.api.Err(w, err)
		return
	}

	if err := h.kpiSvc.DeleteKPIConfig(r.Context(), id); err != nil {
		h.api.Err(w, err)
		return
	}
	h.api.Respond(w, http.StatusNoContent, nil)
}

type kpiValueResponse struct {
	*pulseboard.KPIValue
	Formatted string `json:"formatted"`
}

func (h *KPIHandler) handleGetKPIValue(w http.ResponseWriter, r *http.Request) {
	id, err := h.idFromRequest(r)
	if err != nil {
		h.api.Err(w, err)
		return
	}

	cfg, err := h.kpiSvc.FindKPIConfigByID(r.Context(), id)
	if err != nil {
		h.api.Err(w, err)
		return
	}

	v, err := h.kpiSvc.FetchValue(r.Context(), cfg)
	if err != nil {
		h.api.Err(w, err)
		return
	}
	h.api.Respond(w, http.StatusOK, kpiValueResponse{
		KPIValue:  v,
		Formatted: FormatValue(v.Value, cfg.Formatting),
	})
}

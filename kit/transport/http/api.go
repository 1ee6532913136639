package http

import (
	"context"
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

// Middleware constructor.
type Middleware func(http.Handler) http.Handler

// API provides a consolidated means for handling API interface concerns:
// decoding requests, and encoding responses and errors.
type API struct {
	logger     *zap.Logger
	errHandler ErrorHandler
}

// APIOptFn is an option for the API type.
type APIOptFn func(*API)

// WithLog sets the logger errors are reported through.
func WithLog(logger *zap.Logger) APIOptFn {
	return func(a *API) {
		a.logger = logger
	}
}

// NewAPI creates a new API type.
func NewAPI(opts ...APIOptFn) *API {
	api := &API{
		logger: zap.NewNop(),
	}
	for _, o := range opts {
		o(api)
	}
	return api
}

// DecodeJSON decodes the request body into v.
func (a *API) DecodeJSON(r *http.Request, v interface{}) error {
	return json.NewDecoder(r.Body).Decode(v)
}

// Respond writes v as JSON with the given status code.
func (a *API) Respond(w http.ResponseWriter, status int, v interface{}) {
	if status == http.StatusNoContent || v == nil {
		w.WriteHeader(status)
		return
	}

	b, err := json.Marshal(v)
	if err != nil {
		a.Err(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if _, err := w.Write(b); err != nil {
		a.logger.Error("failed to write response body", zap.Error(err))
	}
}

// Err writes err to w using the platform error encoding.
func (a *API) Err(w http.ResponseWriter, err error) {
	if err == nil {
		return
	}
	a.logger.Debug("api error encountered", zap.Error(err))
	a.errHandler.HandleHTTPError(context.Background(), err, w)
}

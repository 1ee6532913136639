package tenant

import (
	"net/http"

	"github.com/go-chi/chi"
	"github.com/pulseboard/pulseboard"
	"github.com/pulseboard/pulseboard/kit/platform"
	kithttp "github.com/pulseboard/pulseboard/kit/transport/http"
	"go.uber.org/zap"
)

// PrefixUsers is the route prefix the user handler mounts at.
const PrefixUsers = "/api/v1/users"

// PrefixInvitations is the route prefix the invitation handler mounts at.
const PrefixInvitations = "/api/v1/invitations"

// UserHandler represents an HTTP API handler for users and invitations.
type UserHandler struct {
	chi.Router
	api     *kithttp.API
	log     *zap.Logger
	userSvc pulseboard.UserService
}

// NewHTTPUserHandler constructs a new http server.
func NewHTTPUserHandler(log *zap.Logger, userSvc pulseboard.UserService) *UserHandler {
	svr := &UserHandler{
		api:     kithttp.NewAPI(kithttp.WithLog(log)),
		log:     log,
		userSvc: userSvc,
	}

	r := chi.NewRouter()
	r.Route("/", func(r chi.Router) {
		r.Post("/", svr.handlePostUser)
		r.Get("/", svr.handleGetUsers)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", svr.handleGetUser)
			r.Patch("/", svr.handlePatchUser)
			r.Delete("/", svr.handleDeleteUser)
			r.Post("/role", svr.handlePostUserRole)
		})
	})

	svr.Router = r
	return svr
}

func (h *UserHandler) idFromRequest(r *http.Request) (platform.ID, error) {
	var id platform.ID
	if err := id.DecodeFromString(chi.URLParam(r, "id")); err != nil {
		return 0, platform.ErrCorruptID(err)
	}
	return id, nil
}

func (h *UserHandler) handlePostUser(w http.ResponseWriter, r *http.Request) {
	var u pulseboard.User
	if err := h.api.DecodeJSON(r, &u); err != nil {
		h.api.Err(w, err)
		return
	}

	if err := h.userSvc.CreateUser(r.Context(), &u); err != nil {
		h.api.Err(w, err)
		return
	}
	h.api.Respond(w, http.StatusCreated, u)
}

func (h *UserHandler) handleGetUsers(w http.ResponseWriter, r *http.Request) {
	var filter pulseboard.UserFilter
	q := r.URL.Query()
	if email := q.Get("email"); email != "" {
		filter.Email = &email
	}
	if v := q.Get("orgID"); v != "" {
		id, err := platform.IDFromString(v)
		if err != nil {
			h.api.Err(w, err)
			return
		}
		filter.OrganizationID = id
	}
	if status := q.Get("status"); status != "" {
		s := pulseboard.UserStatus(status)
		filter.Status = &s
	}

	users, _, err := h.userSvc.FindUsers(r.Context(), filter)
	if err != nil {
		h.api.Err(w, err)
		return
	}
	h.api.Respond(w, http.StatusOK, users)
}

func (h *UserHandler) handleGetUser(w http.ResponseWriter, r *http.Request) {
	id, err := h.idFromRequest(r)
	if err != nil {
		h.api.Err(w, err)
		return
	}

	u, err := h.userSvc.FindUserByID(r.Context(), id)
	if err != nil {
		h.api.Err(w, err)
		return
	}
	h.api.Respond(w, http.StatusOK, u)
}

func (h *UserHandler) handlePatchUser(w http.ResponseWriter, r *http.Request) {
	id, err := h.idFromRequest(r)
	if err != nil {
		h.api.Err(w, err)
		return
	}

	var upd pulseboard.UserUpdate
	if err := h.api.DecodeJSON(r, &upd); err != nil {
		h.api.Err(w, err)
		return
	}

	u, err := h.userSvc.UpdateUser(r.Context(), id, upd)
	if err != nil {
		h.api.Err(w, err)
		return
	}
	h.api.Respond(w, http.StatusOK, u)
}

func (h *UserHandler) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := h.idFromRequest(r)
	if err != nil {
		h.api.Err(w, err)
		return
	}

	if err := h.userSvc.DeleteUser(r.Context(), id); err != nil {
		h.api.Err(w, err)
		return
	}
	h.api.Respond(w, http.StatusNoContent, nil)
}

func (h *UserHandler) handlePostUserRole(w http.ResponseWriter, r *http.Request) {
	id, err := h.idFromRequest(r)
	if err != nil {
		h.api.Err(w, err)
		return
	}

	var body struct {
		Role pulseboard.Role `json:"role"`
	}
	if err := h.api.DecodeJSON(r, &body); err != nil {
		h.api.Err(w, err)
		return
	}

	u, err := h.userSvc.UpdateUserRole(r.Context(), id, body.Role)
	if err != nil {
		h.api.Err(w, err)
		return
	}
	h.api.Respond(w, http.StatusOK, u)
}

// InvitationHandler represents an HTTP API handler for invitations.
type InvitationHandler struct {
	chi.Router
	api    *kithttp.API
	log    *zap.Logger
	invSvc pulseboard.InvitationService
}

// NewHTTPInvitationHandler constructs a new http server.
func NewHTTPInvitationHandler(log *zap.Logger, invSvc pulseboard.InvitationService) *InvitationHandler {
	svr := &InvitationHandler{
		api:    kithttp.NewAPI(kithttp.WithLog(log)),
		log:    log,
		invSvc: invSvc,
	}

	r := chi.NewRouter()
	r.Route("/", func(r chi.Router) {
		r.Post("/", svr.handlePostInvitation)
		r.Get("/", svr.handleGetInvitations)
		r.Post("/accept", svr.handleAcceptInvitation)
	})

	svr.Router = r
	return svr
}

func (h *InvitationHandler) handlePostInvitation(w http.ResponseWriter, r *http.Request) {
	var inv pulseboard.UserInvitation
	if err := h.api.DecodeJSON(r, &inv); err != nil {
		h.api.Err(w, err)
		return
	}

	if err := h.invSvc.CreateInvitation(r.Context(), &inv); err != nil {
		h.api.Err(w, err)
		return
	}
	h.api.Respond(w, http.StatusCreated, inv)
}

func (h *InvitationHandler) handleGetInvitations(w http.ResponseWriter, r *http.Request) {
	var filter pulseboard.InvitationFilter
	q := r.URL.Query()
	if v := q.Get("orgID"); v != "" {
		id, err := platform.IDFromString(v)
		if err != nil {
			h.api.Err(w, err)
			return
		}
		filter.OrganizationID = id
	}
	if status := q.Get("status"); status != "" {
		s := pulseboard.InvitationStatus(status)
		filter.Status = &s
	}

	invs, _, err := h.invSvc.FindInvitations(r.Context(), filter)
	if err != nil {
		h.api.Err(w, err)
		return
	}
	h.api.Respond(w, http.StatusOK, invs)
}

func (h *InvitationHandler) handleAcceptInvitation(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Token string `json:"token"`
		Name  string `json:"name"`
	}
	if err := h.api.DecodeJSON(r, &body); err != nil {
		h.api.Err(w, err)
		return
	}

	u, err := h.invSvc.AcceptInvitation(r.Context(), body.Token, body.Name)
	if err != nil {
		h.api.Err(w, err)
		return
	}
	h.api.Respond(w, http.StatusCreated, u)
}

// Taseroncum | 2026
// handler.go

package bid

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/taseroncum/api/internal/auth"
	"github.com/taseroncum/api/internal/core"
)

type Handler struct {
	service   *Service
	validator *validator.Validate
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service:   service,
		validator: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
) {
	r.Group(func(r chi.Router) {
		r.Use(authenticator)

		r.Post("/jobs/{jobID}/bids", h.Place)
		r.Get("/jobs/{jobID}/bids", h.ListForJob)
		r.Get("/bids/mine", h.ListMine)
		r.Put("/bids/{bidID}", h.Decide)
		r.Delete("/bids/{bidID}", h.Withdraw)
	})
}

func (h *Handler) RegisterAdminRoutes(
	r chi.Router,
	authenticator, adminOnly func(http.Handler) http.Handler,
) {
	r.Route("/admin/bids", func(r chi.Router) {
		r.Use(authenticator)
		r.Use(adminOnly)

		r.Get("/", h.AdminList)
	})
}

func (h *Handler) Place(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		core.Unauthorized(w, "")
		return
	}

	jobID := chi.URLParam(r, "jobID")

	var req PlaceBidRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	b, err := h.service.Place(r.Context(), identity, jobID, req)
	if err != nil {
		if errors.Is(err, core.ErrDuplicateKey) {
			core.JSONError(w, core.DuplicateError("bid"))
			return
		}
		h.writeServiceError(w, err)
		return
	}

	core.Created(w, ToBidResponse(b))
}

func (h *Handler) Decide(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		core.Unauthorized(w, "")
		return
	}

	bidID := chi.URLParam(r, "bidID")

	var req DecideBidRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	b, err := h.service.Decide(r.Context(), identity, bidID, req.Status)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	core.OK(w, ToBidResponse(b))
}

func (h *Handler) Withdraw(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		core.Unauthorized(w, "")
		return
	}

	bidID := chi.URLParam(r, "bidID")

	if err := h.service.Withdraw(r.Context(), identity, bidID); err != nil {
		h.writeServiceError(w, err)
		return
	}

	core.NoContent(w)
}

func (h *Handler) ListForJob(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		core.Unauthorized(w, "")
		return
	}

	jobID := chi.URLParam(r, "jobID")

	bids, err := h.service.ListForJob(r.Context(), identity, jobID)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	core.OK(w, ToBidResponseList(bids))
}

func (h *Handler) ListMine(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		core.Unauthorized(w, "")
		return
	}

	bids, err := h.service.ListMine(r.Context(), identity)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToBidResponseList(bids))
}

func (h *Handler) AdminList(w http.ResponseWriter, r *http.Request) {
	bids, err := h.service.AdminList(r.Context())
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToBidResponseList(bids))
}

func (h *Handler) writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, core.ErrNotFound):
		core.NotFound(w, "bid")
	case errors.Is(err, core.ErrForbidden):
		core.Forbidden(w, "")
	case errors.Is(err, core.ErrInvalidState):
		core.JSONError(w, core.InvalidStateError(err.Error()))
	case errors.Is(err, core.ErrInvalidInput):
		core.BadRequest(w, err.Error())
	default:
		core.InternalServerError(w, err)
	}
}

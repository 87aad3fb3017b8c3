// Taseroncum | 2026
// handler.go

package profile

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/taseroncum/api/internal/core"
	"github.com/taseroncum/api/internal/middleware"
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
	r.Route("/profiles", func(r chi.Router) {
		r.Get("/companies/{profileID}", h.GetCompany)
		r.Get("/contractors/{profileID}", h.GetContractor)

		r.Group(func(r chi.Router) {
			r.Use(authenticator)
			r.Get("/companies/me", h.GetMyCompany)
			r.Put("/companies/me", h.UpdateMyCompany)
			r.Get("/contractors/me", h.GetMyContractor)
			r.Put("/contractors/me", h.UpdateMyContractor)
		})
	})
}

func (h *Handler) GetCompany(w http.ResponseWriter, r *http.Request) {
	profileID := chi.URLParam(r, "profileID")

	profile, err := h.service.GetCompany(r.Context(), profileID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "company profile")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToCompanyProfileResponse(profile))
}

func (h *Handler) GetContractor(w http.ResponseWriter, r *http.Request) {
	profileID := chi.URLParam(r, "profileID")

	profile, err := h.service.GetContractor(r.Context(), profileID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "contractor profile")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToContractorProfileResponse(profile))
}

func (h *Handler) GetMyCompany(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	profile, err := h.service.GetMyCompany(r.Context(), userID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "company profile")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToCompanyProfileResponse(profile))
}

func (h *Handler) UpdateMyCompany(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req UpdateCompanyProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	profile, err := h.service.UpdateMyCompany(r.Context(), userID, req)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "company profile")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToCompanyProfileResponse(profile))
}

func (h *Handler) GetMyContractor(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	profile, err := h.service.GetMyContractor(r.Context(), userID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "contractor profile")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToContractorProfileResponse(profile))
}

func (h *Handler) UpdateMyContractor(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req UpdateContractorProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	profile, err := h.service.UpdateMyContractor(r.Context(), userID, req)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "contractor profile")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToContractorProfileResponse(profile))
}

// Taseroncum | 2026
// handler.go

package job

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/taseroncum/api/internal/auth"
	"github.com/taseroncum/api/internal/core"
	"github.com/taseroncum/api/internal/user"
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
	authenticator, optionalAuth func(http.Handler) http.Handler,
) {
	r.Route("/jobs", func(r chi.Router) {
		r.Get("/", h.ListApproved)

		r.Group(func(r chi.Router) {
			r.Use(optionalAuth)
			r.Get("/{jobID}", h.GetByID)
		})

		r.Group(func(r chi.Router) {
			r.Use(authenticator)
			r.Post("/", h.Create)
			r.Get("/mine", h.ListMine)
			r.Put("/{jobID}", h.Update)
			r.Post("/{jobID}/submit", h.Submit)
			r.Post("/{jobID}/toggle-status", h.ToggleStatus)
		})
	})
}

func (h *Handler) RegisterAdminRoutes(
	r chi.Router,
	authenticator, adminOnly func(http.Handler) http.Handler,
) {
	r.Route("/admin/jobs", func(r chi.Router) {
		r.Use(authenticator)
		r.Use(adminOnly)

		r.Get("/", h.AdminListAll)
		r.Get("/pending", h.AdminListPending)
		r.Post("/{jobID}/approve", h.AdminApprove)
		r.Post("/{jobID}/reject", h.AdminReject)
		r.Post("/{jobID}/unpublish", h.AdminUnpublish)
		r.Delete("/{jobID}", h.AdminDelete)
	})
}

// Create routes by role: companies publish directly, contractors start
// in DRAFT and go through moderation.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		core.Unauthorized(w, "")
		return
	}

	var req CreateJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	var post *JobPost
	var err error
	if identity.Role == user.RoleFirma {
		post, err = h.service.CreateDirect(r.Context(), identity, req)
	} else {
		post, err = h.service.CreateDraft(r.Context(), identity, req)
	}
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	core.Created(w, ToJobResponse(post))
}

func (h *Handler) ListApproved(w http.ResponseWriter, r *http.Request) {
	params := ListJobsParams{
		Page:     parseIntQuery(r, "page", 1),
		PageSize: parseIntQuery(r, "page_size", 20),
		Search:   r.URL.Query().Get("search"),
		Category: r.URL.Query().Get("category"),
		City:     r.URL.Query().Get("city"),
		Sort:     r.URL.Query().Get("sort"),
	}

	if v, ok := parseFloatQuery(r, "budget_min"); ok {
		params.BudgetMin = &v
	}
	if v, ok := parseFloatQuery(r, "budget_max"); ok {
		params.BudgetMax = &v
	}

	if params.Category != "" && !ValidCategory(params.Category) {
		core.BadRequest(w, "unknown category")
		return
	}

	params.Normalize()

	jobs, total, err := h.service.ListApproved(r.Context(), params)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.Paginated(
		w,
		ToJobResponseList(jobs),
		params.Page,
		params.PageSize,
		total,
	)
}

func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "jobID")

	var identity *auth.Identity
	if ident, ok := auth.IdentityFromContext(r.Context()); ok {
		identity = &ident
	}

	post, err := h.service.GetByID(r.Context(), identity, jobID)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	core.OK(w, ToJobResponse(post))
}

func (h *Handler) ListMine(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		core.Unauthorized(w, "")
		return
	}

	params := ListMineParams{
		Page:           parseIntQuery(r, "page", 1),
		PageSize:       parseIntQuery(r, "page_size", 20),
		ApprovalStatus: r.URL.Query().Get("approval_status"),
	}
	params.Normalize()

	jobs, total, err := h.service.ListMine(r.Context(), identity, params)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.Paginated(
		w,
		ToJobResponseList(jobs),
		params.Page,
		params.PageSize,
		total,
	)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		core.Unauthorized(w, "")
		return
	}

	jobID := chi.URLParam(r, "jobID")

	var req UpdateJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	post, err := h.service.UpdateDraft(r.Context(), identity, jobID, req)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	core.OK(w, ToJobResponse(post))
}

func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		core.Unauthorized(w, "")
		return
	}

	jobID := chi.URLParam(r, "jobID")

	post, err := h.service.Submit(r.Context(), identity, jobID)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	core.OK(w, ToJobResponse(post))
}

func (h *Handler) ToggleStatus(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		core.Unauthorized(w, "")
		return
	}

	jobID := chi.URLParam(r, "jobID")

	post, err := h.service.ToggleStatus(r.Context(), identity, jobID)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	core.OK(w, ToJobResponse(post))
}

func (h *Handler) AdminListAll(w http.ResponseWriter, r *http.Request) {
	page := parseIntQuery(r, "page", 1)
	pageSize := parseIntQuery(r, "page_size", 20)

	jobs, total, err := h.service.AdminListAll(r.Context(), page, pageSize)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.Paginated(w, ToJobResponseList(jobs), page, pageSize, total)
}

func (h *Handler) AdminListPending(w http.ResponseWriter, r *http.Request) {
	page := parseIntQuery(r, "page", 1)
	pageSize := parseIntQuery(r, "page_size", 20)

	jobs, total, err := h.service.AdminListPending(r.Context(), page, pageSize)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.Paginated(w, ToJobResponseList(jobs), page, pageSize, total)
}

func (h *Handler) AdminApprove(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		core.Unauthorized(w, "")
		return
	}

	jobID := chi.URLParam(r, "jobID")

	post, err := h.service.AdminApprove(r.Context(), identity, jobID)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	core.OK(w, ToJobResponse(post))
}

func (h *Handler) AdminReject(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		core.Unauthorized(w, "")
		return
	}

	jobID := chi.URLParam(r, "jobID")

	var req RejectJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	post, err := h.service.AdminReject(r.Context(), identity, jobID, req.Reason)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	core.OK(w, ToJobResponse(post))
}

func (h *Handler) AdminUnpublish(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		core.Unauthorized(w, "")
		return
	}

	jobID := chi.URLParam(r, "jobID")

	var req UnpublishJobRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			core.BadRequest(w, "invalid request body")
			return
		}

		if err := h.validator.Struct(req); err != nil {
			core.BadRequest(w, core.FormatValidationError(err))
			return
		}
	}

	post, err := h.service.AdminUnpublish(
		r.Context(), identity, jobID, req.Reason)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	core.OK(w, ToJobResponse(post))
}

func (h *Handler) AdminDelete(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "jobID")

	if err := h.service.AdminSoftDelete(r.Context(), jobID); err != nil {
		h.writeServiceError(w, err)
		return
	}

	core.NoContent(w)
}

func (h *Handler) writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, core.ErrNotFound):
		core.NotFound(w, "job post")
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

func parseIntQuery(r *http.Request, key string, defaultVal int) int {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultVal
	}

	parsed, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}

	return parsed
}

func parseFloatQuery(r *http.Request, key string) (float64, bool) {
	val := r.URL.Query().Get(key)
	if val == "" {
		return 0, false
	}

	parsed, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return 0, false
	}

	return parsed, true
}

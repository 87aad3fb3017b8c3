// Taseroncum | 2026
// service.go

package job

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/taseroncum/api/internal/auth"
	"github.com/taseroncum/api/internal/core"
)

// DefaultUnpublishReason is recorded when an admin pulls a post without
// giving one.
const DefaultUnpublishReason = "removed from publication by admin"

// ProfileEnsurer resolves the caller's company profile, creating one on
// first use. Implemented by the profile service.
type ProfileEnsurer interface {
	EnsureCompanyProfile(
		ctx context.Context,
		userID, fallbackName string,
	) (string, error)
}

type Service struct {
	repo     Repository
	profiles ProfileEnsurer
	cache    *ListingCache
}

func NewService(
	repo Repository,
	profiles ProfileEnsurer,
	cache *ListingCache,
) *Service {
	return &Service{repo: repo, profiles: profiles, cache: cache}
}

// CreateDraft starts a post in DRAFT for later submission. Contractors
// get a company profile created on the fly the first time they post.
func (s *Service) CreateDraft(
	ctx context.Context,
	identity auth.Identity,
	req CreateJobRequest,
) (*JobPost, error) {
	if identity.IsAdmin() {
		return nil, fmt.Errorf("create draft: %w", core.ErrForbidden)
	}

	if err := validateBudget(req.BudgetMin, req.BudgetMax); err != nil {
		return nil, err
	}

	companyProfileID := identity.CompanyProfileID
	if companyProfileID == "" {
		var err error
		companyProfileID, err = s.profiles.EnsureCompanyProfile(
			ctx, identity.UserID, "")
		if err != nil {
			return nil, fmt.Errorf("ensure company profile: %w", err)
		}
	}

	post := &JobPost{
		ID:               uuid.New().String(),
		CreatedByID:      identity.UserID,
		CompanyProfileID: companyProfileID,
		Title:            req.Title,
		Description:      req.Description,
		Category:         req.Category,
		City:             req.City,
		BudgetMin:        req.BudgetMin,
		BudgetMax:        req.BudgetMax,
		ApprovalStatus:   ApprovalDraft,
		Status:           StatusOpen,
	}

	if err := s.repo.Create(ctx, post); err != nil {
		return nil, err
	}

	return post, nil
}

// CreateDirect publishes immediately, skipping moderation. Reserved for
// company accounts, which are vetted at registration.
func (s *Service) CreateDirect(
	ctx context.Context,
	identity auth.Identity,
	req CreateJobRequest,
) (*JobPost, error) {
	if !identity.IsFirma() {
		return nil, fmt.Errorf("create job: %w", core.ErrForbidden)
	}

	if identity.CompanyProfileID == "" {
		return nil, fmt.Errorf(
			"create job: missing company profile: %w",
			core.ErrInvalidState,
		)
	}

	if err := validateBudget(req.BudgetMin, req.BudgetMax); err != nil {
		return nil, err
	}

	now := time.Now()
	post := &JobPost{
		ID:               uuid.New().String(),
		CreatedByID:      identity.UserID,
		CompanyProfileID: identity.CompanyProfileID,
		Title:            req.Title,
		Description:      req.Description,
		Category:         req.Category,
		City:             req.City,
		BudgetMin:        req.BudgetMin,
		BudgetMax:        req.BudgetMax,
		ApprovalStatus:   ApprovalApproved,
		Status:           StatusOpen,
		ApprovedAt:       &now,
		ApprovedByID:     &identity.UserID,
		PublishedAt:      &now,
	}

	if err := s.repo.Create(ctx, post); err != nil {
		return nil, err
	}

	s.cache.Invalidate(ctx)
	return post, nil
}

// Submit queues a DRAFT or REJECTED post for moderation.
func (s *Service) Submit(
	ctx context.Context,
	identity auth.Identity,
	jobID string,
) (*JobPost, error) {
	post, err := s.requireOwned(ctx, identity, jobID)
	if err != nil {
		return nil, err
	}

	ok, err := s.repo.Submit(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf(
			"submit job post from %s: %w",
			post.ApprovalStatus,
			core.ErrInvalidState,
		)
	}

	return s.repo.GetByID(ctx, jobID)
}

func (s *Service) UpdateDraft(
	ctx context.Context,
	identity auth.Identity,
	jobID string,
	req UpdateJobRequest,
) (*JobPost, error) {
	post, err := s.requireOwned(ctx, identity, jobID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		post.Title = *req.Title
	}
	if req.Description != nil {
		post.Description = *req.Description
	}
	if req.Category != nil {
		post.Category = *req.Category
	}
	if req.City != nil {
		post.City = *req.City
	}
	if req.BudgetMin != nil {
		post.BudgetMin = req.BudgetMin
	}
	if req.BudgetMax != nil {
		post.BudgetMax = req.BudgetMax
	}

	if err := validateBudget(post.BudgetMin, post.BudgetMax); err != nil {
		return nil, err
	}

	if err := s.repo.UpdateContent(ctx, post); err != nil {
		return nil, err
	}

	return post, nil
}

func (s *Service) AdminApprove(
	ctx context.Context,
	identity auth.Identity,
	jobID string,
) (*JobPost, error) {
	if _, err := s.repo.GetByID(ctx, jobID); err != nil {
		return nil, err
	}

	ok, err := s.repo.Approve(ctx, jobID, identity.UserID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf(
			"approve job post: not pending approval: %w",
			core.ErrInvalidState,
		)
	}

	s.cache.Invalidate(ctx)
	return s.repo.GetByID(ctx, jobID)
}

func (s *Service) AdminReject(
	ctx context.Context,
	identity auth.Identity,
	jobID, reason string,
) (*JobPost, error) {
	if _, err := s.repo.GetByID(ctx, jobID); err != nil {
		return nil, err
	}

	ok, err := s.repo.Reject(ctx, jobID, identity.UserID, reason)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf(
			"reject job post: not pending approval: %w",
			core.ErrInvalidState,
		)
	}

	return s.repo.GetByID(ctx, jobID)
}

func (s *Service) AdminUnpublish(
	ctx context.Context,
	identity auth.Identity,
	jobID, reason string,
) (*JobPost, error) {
	if reason == "" {
		reason = DefaultUnpublishReason
	}

	if _, err := s.repo.GetByID(ctx, jobID); err != nil {
		return nil, err
	}

	ok, err := s.repo.Unpublish(ctx, jobID, identity.UserID, reason)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf(
			"unpublish job post: not approved: %w",
			core.ErrInvalidState,
		)
	}

	s.cache.Invalidate(ctx)
	return s.repo.GetByID(ctx, jobID)
}

// ToggleStatus flips OPEN and CLOSED without touching moderation state.
func (s *Service) ToggleStatus(
	ctx context.Context,
	identity auth.Identity,
	jobID string,
) (*JobPost, error) {
	post, err := s.repo.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}

	if post.CreatedByID != identity.UserID && !identity.IsAdmin() {
		return nil, fmt.Errorf("toggle job status: %w", core.ErrForbidden)
	}

	if post.IsDeleted {
		return nil, fmt.Errorf("toggle job status: %w", core.ErrNotFound)
	}

	target := StatusClosed
	if post.Status == StatusClosed {
		target = StatusOpen
	}

	if _, err := s.repo.SetStatus(ctx, jobID, target); err != nil {
		return nil, err
	}

	s.cache.Invalidate(ctx)
	return s.repo.GetByID(ctx, jobID)
}

func (s *Service) AdminSoftDelete(
	ctx context.Context,
	jobID string,
) error {
	ok, err := s.repo.SoftDelete(ctx, jobID)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("delete job post: %w", core.ErrNotFound)
	}

	s.cache.Invalidate(ctx)
	return nil
}

// ListApproved is the public listing. Results are served from redis
// when a fresh entry exists for the same filter set.
func (s *Service) ListApproved(
	ctx context.Context,
	params ListJobsParams,
) ([]JobPost, int, error) {
	params.Normalize()

	if items, total, ok := s.cache.Get(ctx, params); ok {
		return items, total, nil
	}

	items, total, err := s.repo.ListApproved(ctx, params)
	if err != nil {
		return nil, 0, err
	}

	s.cache.Set(ctx, params, items, total)
	return items, total, nil
}

// GetByID returns an APPROVED post to anyone; drafts, pending and
// rejected posts are visible to their owner and admins only. Public
// reads bump the view counter off the request path.
func (s *Service) GetByID(
	ctx context.Context,
	identity *auth.Identity,
	jobID string,
) (*JobPost, error) {
	post, err := s.repo.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}

	isOwner := identity != nil && identity.UserID == post.CreatedByID
	isAdmin := identity != nil && identity.IsAdmin()

	if post.IsDeleted && !isAdmin {
		return nil, fmt.Errorf("get job post: %w", core.ErrNotFound)
	}

	if !post.PubliclyVisible() && !isOwner && !isAdmin {
		return nil, fmt.Errorf("get job post: %w", core.ErrNotFound)
	}

	if post.PubliclyVisible() && !isOwner && !isAdmin {
		go func() {
			viewCtx, cancel := context.WithTimeout(
				context.WithoutCancel(ctx), 3*time.Second)
			defer cancel()

			if err := s.repo.IncrementViews(viewCtx, jobID); err != nil {
				slog.Debug("view count increment failed",
					"job_id", jobID,
					"error", err,
				)
			}
		}()
	}

	return post, nil
}

func (s *Service) ListMine(
	ctx context.Context,
	identity auth.Identity,
	params ListMineParams,
) ([]JobPost, int, error) {
	params.Normalize()
	return s.repo.ListByOwner(ctx, identity.UserID, params)
}

func (s *Service) AdminListPending(
	ctx context.Context,
	page, pageSize int,
) ([]JobPost, int, error) {
	page, pageSize = normalizePage(page, pageSize)
	return s.repo.ListPending(ctx, page, pageSize)
}

func (s *Service) AdminListAll(
	ctx context.Context,
	page, pageSize int,
) ([]JobPost, int, error) {
	page, pageSize = normalizePage(page, pageSize)
	return s.repo.ListAll(ctx, page, pageSize)
}

func (s *Service) requireOwned(
	ctx context.Context,
	identity auth.Identity,
	jobID string,
) (*JobPost, error) {
	post, err := s.repo.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}

	if post.IsDeleted {
		return nil, fmt.Errorf("get job post: %w", core.ErrNotFound)
	}

	if post.CreatedByID != identity.UserID {
		return nil, fmt.Errorf("job post ownership: %w", core.ErrForbidden)
	}

	return post, nil
}

func validateBudget(budgetMin, budgetMax *float64) error {
	if budgetMin != nil && budgetMax != nil && *budgetMin > *budgetMax {
		return fmt.Errorf(
			"budget_min must not exceed budget_max: %w",
			core.ErrInvalidInput,
		)
	}
	return nil
}

func normalizePage(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}
	return page, pageSize
}

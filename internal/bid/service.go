// Taseroncum | 2026
// service.go

package bid

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/taseroncum/api/internal/auth"
	"github.com/taseroncum/api/internal/core"
	"github.com/taseroncum/api/internal/job"
)

const adminListLimit = 100

type Service struct {
	db    *sqlx.DB
	repo  Repository
	jobs  job.Repository
	cache *job.ListingCache
}

func NewService(
	db *sqlx.DB,
	repo Repository,
	jobs job.Repository,
	cache *job.ListingCache,
) *Service {
	return &Service{db: db, repo: repo, jobs: jobs, cache: cache}
}

// Place submits one bid per caller per job. The unique constraint on
// (job_id, offerer_id) is the authority; a duplicate surfaces as a
// conflict no matter how the requests interleave.
func (s *Service) Place(
	ctx context.Context,
	identity auth.Identity,
	jobID string,
	req PlaceBidRequest,
) (*Bid, error) {
	if identity.IsAdmin() {
		return nil, fmt.Errorf("place bid: %w", core.ErrForbidden)
	}

	post, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}

	if post.IsDeleted || !post.PubliclyVisible() {
		return nil, fmt.Errorf("place bid: %w", core.ErrNotFound)
	}

	if post.CreatedByID == identity.UserID {
		return nil, fmt.Errorf(
			"cannot bid on own job post: %w",
			core.ErrForbidden,
		)
	}

	if !post.AcceptsBids() {
		return nil, fmt.Errorf(
			"job post is closed for bidding: %w",
			core.ErrInvalidState,
		)
	}

	b := &Bid{
		ID:                uuid.New().String(),
		JobID:             jobID,
		OffererID:         identity.UserID,
		Message:           req.Message,
		ProposedPrice:     req.ProposedPrice,
		EstimatedDuration: req.EstimatedDuration,
		Status:            StatusPending,
	}

	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}

	return b, nil
}

// Decide accepts or rejects a PENDING bid. Only the job owner decides.
// Accepting also closes the job; both writes commit together. A bid
// that is no longer PENDING cannot be decided again.
func (s *Service) Decide(
	ctx context.Context,
	identity auth.Identity,
	bidID, status string,
) (*Bid, error) {
	if status != StatusAccepted && status != StatusRejected {
		return nil, fmt.Errorf(
			"decide bid: invalid status %q: %w",
			status,
			core.ErrInvalidInput,
		)
	}

	b, err := s.repo.GetByID(ctx, bidID)
	if err != nil {
		return nil, err
	}

	post, err := s.jobs.GetByID(ctx, b.JobID)
	if err != nil {
		return nil, err
	}

	if post.CreatedByID != identity.UserID {
		return nil, fmt.Errorf("decide bid: %w", core.ErrForbidden)
	}

	err = core.InTx(ctx, s.db, func(tx *sqlx.Tx) error {
		ok, err := NewRepository(tx).Decide(ctx, bidID, status)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf(
				"bid already decided: %w",
				core.ErrInvalidState,
			)
		}

		if status == StatusAccepted {
			if _, err := job.NewRepository(tx).SetStatus(
				ctx, b.JobID, job.StatusClosed); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	if status == StatusAccepted {
		s.cache.Invalidate(ctx)
	}

	return s.repo.GetByID(ctx, bidID)
}

// Withdraw removes the caller's own bid while it is still PENDING.
func (s *Service) Withdraw(
	ctx context.Context,
	identity auth.Identity,
	bidID string,
) error {
	b, err := s.repo.GetByID(ctx, bidID)
	if err != nil {
		return err
	}

	if b.OffererID != identity.UserID {
		return fmt.Errorf("withdraw bid: %w", core.ErrForbidden)
	}

	ok, err := s.repo.DeletePending(ctx, bidID)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf(
			"withdraw bid: already decided: %w",
			core.ErrInvalidState,
		)
	}

	return nil
}

// ListForJob shows every bid on a job to its owner or an admin.
func (s *Service) ListForJob(
	ctx context.Context,
	identity auth.Identity,
	jobID string,
) ([]Bid, error) {
	post, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}

	if post.CreatedByID != identity.UserID && !identity.IsAdmin() {
		return nil, fmt.Errorf("list bids: %w", core.ErrForbidden)
	}

	return s.repo.ListForJob(ctx, jobID)
}

func (s *Service) ListMine(
	ctx context.Context,
	identity auth.Identity,
) ([]Bid, error) {
	return s.repo.ListByOfferer(ctx, identity.UserID)
}

func (s *Service) AdminList(ctx context.Context) ([]Bid, error) {
	return s.repo.ListLatest(ctx, adminListLimit)
}

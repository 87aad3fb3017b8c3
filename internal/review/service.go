// Taseroncum | 2026
// service.go

package review

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/taseroncum/api/internal/auth"
	"github.com/taseroncum/api/internal/core"
)

const adminListLimit = 100

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create records a review. A review is only allowed between two users
// an ACCEPTED bid connects on the given job, in either direction: the
// job owner reviewing the accepted bidder, or the accepted bidder
// reviewing the job owner. One review per (reviewer, reviewed, job).
func (s *Service) Create(
	ctx context.Context,
	identity auth.Identity,
	req CreateReviewRequest,
) (*Review, error) {
	if identity.UserID == req.ReviewedID {
		return nil, fmt.Errorf(
			"cannot review yourself: %w",
			core.ErrInvalidInput,
		)
	}

	linked, err := s.repo.HasAcceptedLink(
		ctx, req.JobID, identity.UserID, req.ReviewedID)
	if err != nil {
		return nil, err
	}

	if !linked {
		return nil, fmt.Errorf(
			"no accepted bid connects these users on this job: %w",
			core.ErrInvalidState,
		)
	}

	rev := &Review{
		ID:         uuid.New().String(),
		JobID:      req.JobID,
		ReviewerID: identity.UserID,
		ReviewedID: req.ReviewedID,
		Rating:     req.Rating,
		Comment:    req.Comment,
	}

	if err := s.repo.Create(ctx, rev); err != nil {
		return nil, err
	}

	return rev, nil
}

func (s *Service) ListForUser(
	ctx context.Context,
	reviewedID string,
) ([]Review, float64, int, error) {
	reviews, err := s.repo.ListForUser(ctx, reviewedID)
	if err != nil {
		return nil, 0, 0, err
	}

	avg, total, err := s.repo.Aggregate(ctx, reviewedID)
	if err != nil {
		return nil, 0, 0, err
	}

	return reviews, avg, total, nil
}

func (s *Service) AdminDelete(ctx context.Context, reviewID string) error {
	return s.repo.Delete(ctx, reviewID)
}

func (s *Service) AdminList(ctx context.Context) ([]Review, error) {
	return s.repo.ListLatest(ctx, adminListLimit)
}

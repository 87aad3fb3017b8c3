// Taseroncum | 2026
// service_test.go

package review_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/taseroncum/api/internal/auth"
	"github.com/taseroncum/api/internal/core"
	"github.com/taseroncum/api/internal/review"
)

type acceptedLink struct {
	jobID string
	userA string
	userB string
}

type mockRepository struct {
	reviews map[string]*review.Review
	links   []acceptedLink
}

func newMockRepository(links ...acceptedLink) *mockRepository {
	return &mockRepository{
		reviews: make(map[string]*review.Review),
		links:   links,
	}
}

func (m *mockRepository) Create(ctx context.Context, rev *review.Review) error {
	for _, existing := range m.reviews {
		if existing.ReviewerID == rev.ReviewerID &&
			existing.ReviewedID == rev.ReviewedID &&
			existing.JobID == rev.JobID {
			return fmt.Errorf("create review: %w", core.ErrDuplicateKey)
		}
	}
	m.reviews[rev.ID] = rev
	return nil
}

func (m *mockRepository) GetByID(
	ctx context.Context,
	id string,
) (*review.Review, error) {
	rev, ok := m.reviews[id]
	if !ok {
		return nil, fmt.Errorf("get review: %w", core.ErrNotFound)
	}
	return rev, nil
}

func (m *mockRepository) Delete(ctx context.Context, id string) error {
	if _, ok := m.reviews[id]; !ok {
		return fmt.Errorf("delete review: %w", core.ErrNotFound)
	}
	delete(m.reviews, id)
	return nil
}

func (m *mockRepository) ListForUser(
	ctx context.Context,
	reviewedID string,
) ([]review.Review, error) {
	var items []review.Review
	for _, rev := range m.reviews {
		if rev.ReviewedID == reviewedID {
			items = append(items, *rev)
		}
	}
	return items, nil
}

func (m *mockRepository) Aggregate(
	ctx context.Context,
	reviewedID string,
) (float64, int, error) {
	sum, count := 0, 0
	for _, rev := range m.reviews {
		if rev.ReviewedID == reviewedID {
			sum += rev.Rating
			count++
		}
	}
	if count == 0 {
		return 0, 0, nil
	}
	return float64(sum) / float64(count), count, nil
}

func (m *mockRepository) HasAcceptedLink(
	ctx context.Context,
	jobID, userA, userB string,
) (bool, error) {
	for _, link := range m.links {
		if link.jobID != jobID {
			continue
		}
		if (link.userA == userA && link.userB == userB) ||
			(link.userA == userB && link.userB == userA) {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockRepository) ListLatest(
	ctx context.Context,
	limit int,
) ([]review.Review, error) {
	var items []review.Review
	for _, rev := range m.reviews {
		items = append(items, *rev)
	}
	return items, nil
}

var firmaIdentity = auth.Identity{
	UserID: "firma-1",
	Role:   "FIRMA",
}

func validRequest() review.CreateReviewRequest {
	return review.CreateReviewRequest{
		ReviewedID: "taseron-1",
		JobID:      "job-1",
		Rating:     4,
		Comment:    "Isini zamaninda teslim etti",
	}
}

func TestCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("accepted bid unlocks the review", func(t *testing.T) {
		repo := newMockRepository(
			acceptedLink{jobID: "job-1", userA: "firma-1", userB: "taseron-1"})
		svc := review.NewService(repo)

		rev, err := svc.Create(ctx, firmaIdentity, validRequest())
		require.NoError(t, err)
		require.Equal(t, "firma-1", rev.ReviewerID)
		require.Equal(t, "taseron-1", rev.ReviewedID)
		require.Equal(t, 4, rev.Rating)
	})

	t.Run("reverse direction is also allowed", func(t *testing.T) {
		repo := newMockRepository(
			acceptedLink{jobID: "job-1", userA: "firma-1", userB: "taseron-1"})
		svc := review.NewService(repo)

		taseron := auth.Identity{UserID: "taseron-1", Role: "TASERON"}
		req := validRequest()
		req.ReviewedID = "firma-1"

		_, err := svc.Create(ctx, taseron, req)
		require.NoError(t, err)
	})

	t.Run("no accepted bid blocks the review", func(t *testing.T) {
		svc := review.NewService(newMockRepository())

		_, err := svc.Create(ctx, firmaIdentity, validRequest())
		require.ErrorIs(t, err, core.ErrInvalidState)
	})

	t.Run("self review rejected", func(t *testing.T) {
		svc := review.NewService(newMockRepository())

		req := validRequest()
		req.ReviewedID = firmaIdentity.UserID

		_, err := svc.Create(ctx, firmaIdentity, req)
		require.ErrorIs(t, err, core.ErrInvalidInput)
	})

	t.Run("second review of the same pair conflicts", func(t *testing.T) {
		repo := newMockRepository(
			acceptedLink{jobID: "job-1", userA: "firma-1", userB: "taseron-1"})
		svc := review.NewService(repo)

		_, err := svc.Create(ctx, firmaIdentity, validRequest())
		require.NoError(t, err)

		_, err = svc.Create(ctx, firmaIdentity, validRequest())
		require.ErrorIs(t, err, core.ErrDuplicateKey)
	})
}

func TestListForUser(t *testing.T) {
	ctx := context.Background()

	repo := newMockRepository(
		acceptedLink{jobID: "job-1", userA: "firma-1", userB: "taseron-1"},
		acceptedLink{jobID: "job-2", userA: "firma-2", userB: "taseron-1"},
	)
	svc := review.NewService(repo)

	req := validRequest()
	_, err := svc.Create(ctx, firmaIdentity, req)
	require.NoError(t, err)

	other := auth.Identity{UserID: "firma-2", Role: "FIRMA"}
	req2 := validRequest()
	req2.JobID = "job-2"
	req2.Rating = 5
	_, err = svc.Create(ctx, other, req2)
	require.NoError(t, err)

	reviews, avg, total, err := svc.ListForUser(ctx, "taseron-1")
	require.NoError(t, err)
	require.Len(t, reviews, 2)
	require.Equal(t, 2, total)
	require.InDelta(t, 4.5, avg, 0.01)
}

func TestAdminDelete(t *testing.T) {
	ctx := context.Background()

	repo := newMockRepository(
		acceptedLink{jobID: "job-1", userA: "firma-1", userB: "taseron-1"})
	svc := review.NewService(repo)

	rev, err := svc.Create(ctx, firmaIdentity, validRequest())
	require.NoError(t, err)

	require.NoError(t, svc.AdminDelete(ctx, rev.ID))

	err = svc.AdminDelete(ctx, rev.ID)
	require.ErrorIs(t, err, core.ErrNotFound)

	_, _, total, err := svc.ListForUser(ctx, "taseron-1")
	require.NoError(t, err)
	require.Zero(t, total)
}

// Taseroncum | 2026
// service_test.go

package bid_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/taseroncum/api/internal/auth"
	"github.com/taseroncum/api/internal/bid"
	"github.com/taseroncum/api/internal/core"
	"github.com/taseroncum/api/internal/job"
)

type mockBidRepository struct {
	bids map[string]*bid.Bid

	CreateFunc func(ctx context.Context, b *bid.Bid) error
}

func newMockBidRepository(bids ...*bid.Bid) *mockBidRepository {
	m := &mockBidRepository{bids: make(map[string]*bid.Bid)}
	for _, b := range bids {
		m.bids[b.ID] = b
	}
	return m
}

func (m *mockBidRepository) Create(ctx context.Context, b *bid.Bid) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, b)
	}
	for _, existing := range m.bids {
		if existing.JobID == b.JobID && existing.OffererID == b.OffererID {
			return fmt.Errorf("create bid: %w", core.ErrDuplicateKey)
		}
	}
	m.bids[b.ID] = b
	return nil
}

func (m *mockBidRepository) GetByID(
	ctx context.Context,
	id string,
) (*bid.Bid, error) {
	b, ok := m.bids[id]
	if !ok {
		return nil, fmt.Errorf("get bid: %w", core.ErrNotFound)
	}
	copied := *b
	return &copied, nil
}

func (m *mockBidRepository) Decide(
	ctx context.Context,
	id, status string,
) (bool, error) {
	b, ok := m.bids[id]
	if !ok || b.Status != bid.StatusPending {
		return false, nil
	}
	b.Status = status
	return true, nil
}

func (m *mockBidRepository) DeletePending(
	ctx context.Context,
	id string,
) (bool, error) {
	b, ok := m.bids[id]
	if !ok || b.Status != bid.StatusPending {
		return false, nil
	}
	delete(m.bids, id)
	return true, nil
}

func (m *mockBidRepository) ListForJob(
	ctx context.Context,
	jobID string,
) ([]bid.Bid, error) {
	var items []bid.Bid
	for _, b := range m.bids {
		if b.JobID == jobID {
			items = append(items, *b)
		}
	}
	return items, nil
}

func (m *mockBidRepository) ListByOfferer(
	ctx context.Context,
	offererID string,
) ([]bid.Bid, error) {
	var items []bid.Bid
	for _, b := range m.bids {
		if b.OffererID == offererID {
			items = append(items, *b)
		}
	}
	return items, nil
}

func (m *mockBidRepository) ListLatest(
	ctx context.Context,
	limit int,
) ([]bid.Bid, error) {
	var items []bid.Bid
	for _, b := range m.bids {
		items = append(items, *b)
	}
	return items, nil
}

type mockJobRepository struct {
	posts map[string]*job.JobPost
}

func newMockJobRepository(posts ...*job.JobPost) *mockJobRepository {
	m := &mockJobRepository{posts: make(map[string]*job.JobPost)}
	for _, p := range posts {
		m.posts[p.ID] = p
	}
	return m
}

func (m *mockJobRepository) Create(ctx context.Context, p *job.JobPost) error {
	m.posts[p.ID] = p
	return nil
}

func (m *mockJobRepository) GetByID(
	ctx context.Context,
	id string,
) (*job.JobPost, error) {
	p, ok := m.posts[id]
	if !ok {
		return nil, fmt.Errorf("get job post: %w", core.ErrNotFound)
	}
	copied := *p
	return &copied, nil
}

func (m *mockJobRepository) UpdateContent(
	ctx context.Context,
	p *job.JobPost,
) error {
	return nil
}

func (m *mockJobRepository) Submit(ctx context.Context, id string) (bool, error) {
	return false, nil
}

func (m *mockJobRepository) Approve(
	ctx context.Context,
	id, adminID string,
) (bool, error) {
	return false, nil
}

func (m *mockJobRepository) Reject(
	ctx context.Context,
	id, adminID, reason string,
) (bool, error) {
	return false, nil
}

func (m *mockJobRepository) Unpublish(
	ctx context.Context,
	id, adminID, reason string,
) (bool, error) {
	return false, nil
}

func (m *mockJobRepository) SetStatus(
	ctx context.Context,
	id, status string,
) (bool, error) {
	p, ok := m.posts[id]
	if !ok {
		return false, nil
	}
	p.Status = status
	return true, nil
}

func (m *mockJobRepository) SoftDelete(
	ctx context.Context,
	id string,
) (bool, error) {
	return false, nil
}

func (m *mockJobRepository) IncrementViews(ctx context.Context, id string) error {
	return nil
}

func (m *mockJobRepository) ListApproved(
	ctx context.Context,
	params job.ListJobsParams,
) ([]job.JobPost, int, error) {
	return nil, 0, nil
}

func (m *mockJobRepository) ListByOwner(
	ctx context.Context,
	ownerID string,
	params job.ListMineParams,
) ([]job.JobPost, int, error) {
	return nil, 0, nil
}

func (m *mockJobRepository) ListPending(
	ctx context.Context,
	page, pageSize int,
) ([]job.JobPost, int, error) {
	return nil, 0, nil
}

func (m *mockJobRepository) ListAll(
	ctx context.Context,
	page, pageSize int,
) ([]job.JobPost, int, error) {
	return nil, 0, nil
}

var (
	ownerIdentity = auth.Identity{
		UserID:           "firma-1",
		Role:             "FIRMA",
		CompanyProfileID: "company-1",
	}
	bidderIdentity = auth.Identity{
		UserID:              "taseron-1",
		Role:                "TASERON",
		ContractorProfileID: "contractor-1",
	}
	adminIdentity = auth.Identity{
		UserID: "admin-1",
		Role:   "ADMIN",
	}
)

func openPost(id string) *job.JobPost {
	return &job.JobPost{
		ID:             id,
		CreatedByID:    ownerIdentity.UserID,
		Title:          "Villa kaba insaat",
		ApprovalStatus: job.ApprovalApproved,
		Status:         job.StatusOpen,
	}
}

func pendingBid(id, jobID, offererID string) *bid.Bid {
	return &bid.Bid{
		ID:        id,
		JobID:     jobID,
		OffererID: offererID,
		Message:   "Bu isi dort haftada bitiririz",
		Status:    bid.StatusPending,
	}
}

func validPlaceRequest() bid.PlaceBidRequest {
	return bid.PlaceBidRequest{
		Message: "Bu isi dort haftada bitiririz",
	}
}

func TestPlace(t *testing.T) {
	ctx := context.Background()

	t.Run("bid lands on an open post", func(t *testing.T) {
		repo := newMockBidRepository()
		jobs := newMockJobRepository(openPost("job-1"))
		svc := bid.NewService(nil, repo, jobs, nil)

		b, err := svc.Place(ctx, bidderIdentity, "job-1", validPlaceRequest())
		require.NoError(t, err)
		require.Equal(t, bid.StatusPending, b.Status)
		require.Equal(t, bidderIdentity.UserID, b.OffererID)
	})

	t.Run("admins do not bid", func(t *testing.T) {
		svc := bid.NewService(nil, newMockBidRepository(),
			newMockJobRepository(openPost("job-1")), nil)

		_, err := svc.Place(ctx, adminIdentity, "job-1", validPlaceRequest())
		require.ErrorIs(t, err, core.ErrForbidden)
	})

	t.Run("owner cannot bid on own post", func(t *testing.T) {
		svc := bid.NewService(nil, newMockBidRepository(),
			newMockJobRepository(openPost("job-1")), nil)

		_, err := svc.Place(ctx, ownerIdentity, "job-1", validPlaceRequest())
		require.ErrorIs(t, err, core.ErrForbidden)
	})

	t.Run("unapproved post reads as missing", func(t *testing.T) {
		p := openPost("job-1")
		p.ApprovalStatus = job.ApprovalPending
		svc := bid.NewService(nil, newMockBidRepository(),
			newMockJobRepository(p), nil)

		_, err := svc.Place(ctx, bidderIdentity, "job-1", validPlaceRequest())
		require.ErrorIs(t, err, core.ErrNotFound)
	})

	t.Run("closed post rejects bids", func(t *testing.T) {
		p := openPost("job-1")
		p.Status = job.StatusClosed
		svc := bid.NewService(nil, newMockBidRepository(),
			newMockJobRepository(p), nil)

		_, err := svc.Place(ctx, bidderIdentity, "job-1", validPlaceRequest())
		require.ErrorIs(t, err, core.ErrInvalidState)
	})

	t.Run("second bid on same job conflicts", func(t *testing.T) {
		repo := newMockBidRepository(
			pendingBid("bid-1", "job-1", bidderIdentity.UserID))
		svc := bid.NewService(nil, repo,
			newMockJobRepository(openPost("job-1")), nil)

		_, err := svc.Place(ctx, bidderIdentity, "job-1", validPlaceRequest())
		require.ErrorIs(t, err, core.ErrDuplicateKey)
	})
}

func TestDecideValidation(t *testing.T) {
	ctx := context.Background()

	t.Run("status must be a decision", func(t *testing.T) {
		svc := bid.NewService(nil, newMockBidRepository(),
			newMockJobRepository(), nil)

		_, err := svc.Decide(ctx, ownerIdentity, "bid-1", "PENDING")
		require.ErrorIs(t, err, core.ErrInvalidInput)
	})

	t.Run("only the job owner decides", func(t *testing.T) {
		repo := newMockBidRepository(
			pendingBid("bid-1", "job-1", bidderIdentity.UserID))
		svc := bid.NewService(nil, repo,
			newMockJobRepository(openPost("job-1")), nil)

		_, err := svc.Decide(ctx, bidderIdentity, "bid-1", bid.StatusAccepted)
		require.ErrorIs(t, err, core.ErrForbidden)
	})

	t.Run("missing bid is not found", func(t *testing.T) {
		svc := bid.NewService(nil, newMockBidRepository(),
			newMockJobRepository(), nil)

		_, err := svc.Decide(ctx, ownerIdentity, "missing", bid.StatusRejected)
		require.ErrorIs(t, err, core.ErrNotFound)
	})
}

func TestWithdraw(t *testing.T) {
	ctx := context.Background()

	t.Run("offerer withdraws a pending bid", func(t *testing.T) {
		repo := newMockBidRepository(
			pendingBid("bid-1", "job-1", bidderIdentity.UserID))
		svc := bid.NewService(nil, repo, newMockJobRepository(), nil)

		require.NoError(t, svc.Withdraw(ctx, bidderIdentity, "bid-1"))

		_, err := repo.GetByID(ctx, "bid-1")
		require.ErrorIs(t, err, core.ErrNotFound)
	})

	t.Run("decided bid cannot be withdrawn", func(t *testing.T) {
		b := pendingBid("bid-1", "job-1", bidderIdentity.UserID)
		b.Status = bid.StatusAccepted
		repo := newMockBidRepository(b)
		svc := bid.NewService(nil, repo, newMockJobRepository(), nil)

		err := svc.Withdraw(ctx, bidderIdentity, "bid-1")
		require.ErrorIs(t, err, core.ErrInvalidState)
	})

	t.Run("others cannot withdraw", func(t *testing.T) {
		repo := newMockBidRepository(
			pendingBid("bid-1", "job-1", bidderIdentity.UserID))
		svc := bid.NewService(nil, repo, newMockJobRepository(), nil)

		err := svc.Withdraw(ctx, ownerIdentity, "bid-1")
		require.ErrorIs(t, err, core.ErrForbidden)
	})
}

func TestListForJob(t *testing.T) {
	ctx := context.Background()

	repo := newMockBidRepository(
		pendingBid("bid-1", "job-1", bidderIdentity.UserID))
	jobs := newMockJobRepository(openPost("job-1"))
	svc := bid.NewService(nil, repo, jobs, nil)

	t.Run("owner sees all bids", func(t *testing.T) {
		bids, err := svc.ListForJob(ctx, ownerIdentity, "job-1")
		require.NoError(t, err)
		require.Len(t, bids, 1)
	})

	t.Run("admin sees all bids", func(t *testing.T) {
		bids, err := svc.ListForJob(ctx, adminIdentity, "job-1")
		require.NoError(t, err)
		require.Len(t, bids, 1)
	})

	t.Run("bidders see only their own", func(t *testing.T) {
		_, err := svc.ListForJob(ctx, bidderIdentity, "job-1")
		require.ErrorIs(t, err, core.ErrForbidden)
	})
}

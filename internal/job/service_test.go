// Taseroncum | 2026
// service_test.go

package job_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/taseroncum/api/internal/auth"
	"github.com/taseroncum/api/internal/core"
	"github.com/taseroncum/api/internal/job"
)

type mockRepository struct {
	posts map[string]*job.JobPost

	CreateFunc    func(ctx context.Context, post *job.JobPost) error
	SubmitFunc    func(ctx context.Context, id string) (bool, error)
	ApproveFunc   func(ctx context.Context, id, adminID string) (bool, error)
	RejectFunc    func(ctx context.Context, id, adminID, reason string) (bool, error)
	UnpublishFunc func(ctx context.Context, id, adminID, reason string) (bool, error)
	SetStatusFunc func(ctx context.Context, id, status string) (bool, error)
}

func newMockRepository(posts ...*job.JobPost) *mockRepository {
	m := &mockRepository{posts: make(map[string]*job.JobPost)}
	for _, p := range posts {
		m.posts[p.ID] = p
	}
	return m
}

func (m *mockRepository) Create(ctx context.Context, post *job.JobPost) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, post)
	}
	m.posts[post.ID] = post
	return nil
}

func (m *mockRepository) GetByID(
	ctx context.Context,
	id string,
) (*job.JobPost, error) {
	post, ok := m.posts[id]
	if !ok {
		return nil, fmt.Errorf("get job post: %w", core.ErrNotFound)
	}
	copied := *post
	return &copied, nil
}

func (m *mockRepository) UpdateContent(
	ctx context.Context,
	post *job.JobPost,
) error {
	m.posts[post.ID] = post
	return nil
}

func (m *mockRepository) Submit(ctx context.Context, id string) (bool, error) {
	if m.SubmitFunc != nil {
		return m.SubmitFunc(ctx, id)
	}
	post := m.posts[id]
	if post.ApprovalStatus != job.ApprovalDraft &&
		post.ApprovalStatus != job.ApprovalRejected {
		return false, nil
	}
	post.ApprovalStatus = job.ApprovalPending
	return true, nil
}

func (m *mockRepository) Approve(
	ctx context.Context,
	id, adminID string,
) (bool, error) {
	if m.ApproveFunc != nil {
		return m.ApproveFunc(ctx, id, adminID)
	}
	post := m.posts[id]
	if post.ApprovalStatus != job.ApprovalPending {
		return false, nil
	}
	post.ApprovalStatus = job.ApprovalApproved
	return true, nil
}

func (m *mockRepository) Reject(
	ctx context.Context,
	id, adminID, reason string,
) (bool, error) {
	if m.RejectFunc != nil {
		return m.RejectFunc(ctx, id, adminID, reason)
	}
	post := m.posts[id]
	if post.ApprovalStatus != job.ApprovalPending {
		return false, nil
	}
	post.ApprovalStatus = job.ApprovalRejected
	post.RejectionReason = &reason
	return true, nil
}

func (m *mockRepository) Unpublish(
	ctx context.Context,
	id, adminID, reason string,
) (bool, error) {
	if m.UnpublishFunc != nil {
		return m.UnpublishFunc(ctx, id, adminID, reason)
	}
	post := m.posts[id]
	if post.ApprovalStatus != job.ApprovalApproved {
		return false, nil
	}
	post.ApprovalStatus = job.ApprovalRejected
	post.Status = job.StatusClosed
	post.RejectionReason = &reason
	return true, nil
}

func (m *mockRepository) SetStatus(
	ctx context.Context,
	id, status string,
) (bool, error) {
	if m.SetStatusFunc != nil {
		return m.SetStatusFunc(ctx, id, status)
	}
	post, ok := m.posts[id]
	if !ok {
		return false, nil
	}
	post.Status = status
	return true, nil
}

func (m *mockRepository) SoftDelete(
	ctx context.Context,
	id string,
) (bool, error) {
	post, ok := m.posts[id]
	if !ok || post.IsDeleted {
		return false, nil
	}
	post.IsDeleted = true
	return true, nil
}

func (m *mockRepository) IncrementViews(ctx context.Context, id string) error {
	return nil
}

func (m *mockRepository) ListApproved(
	ctx context.Context,
	params job.ListJobsParams,
) ([]job.JobPost, int, error) {
	var items []job.JobPost
	for _, p := range m.posts {
		if p.PubliclyVisible() {
			items = append(items, *p)
		}
	}
	return items, len(items), nil
}

func (m *mockRepository) ListByOwner(
	ctx context.Context,
	ownerID string,
	params job.ListMineParams,
) ([]job.JobPost, int, error) {
	var items []job.JobPost
	for _, p := range m.posts {
		if p.CreatedByID == ownerID {
			items = append(items, *p)
		}
	}
	return items, len(items), nil
}

func (m *mockRepository) ListPending(
	ctx context.Context,
	page, pageSize int,
) ([]job.JobPost, int, error) {
	var items []job.JobPost
	for _, p := range m.posts {
		if p.ApprovalStatus == job.ApprovalPending {
			items = append(items, *p)
		}
	}
	return items, len(items), nil
}

func (m *mockRepository) ListAll(
	ctx context.Context,
	page, pageSize int,
) ([]job.JobPost, int, error) {
	var items []job.JobPost
	for _, p := range m.posts {
		items = append(items, *p)
	}
	return items, len(items), nil
}

type mockProfiles struct {
	profileID string
	err       error
	calls     int
}

func (m *mockProfiles) EnsureCompanyProfile(
	ctx context.Context,
	userID, fallbackName string,
) (string, error) {
	m.calls++
	if m.err != nil {
		return "", m.err
	}
	return m.profileID, nil
}

var (
	firmaIdentity = auth.Identity{
		UserID:           "firma-1",
		Role:             "FIRMA",
		CompanyProfileID: "company-1",
	}
	taseronIdentity = auth.Identity{
		UserID:              "taseron-1",
		Role:                "TASERON",
		ContractorProfileID: "contractor-1",
	}
	adminIdentity = auth.Identity{
		UserID: "admin-1",
		Role:   "ADMIN",
	}
)

func draftPost(id, ownerID string) *job.JobPost {
	return &job.JobPost{
		ID:               id,
		CreatedByID:      ownerID,
		CompanyProfileID: "company-1",
		Title:            "Villa kaba insaat",
		Description:      "Temelden catiya kadar kaba insaat isleri",
		Category:         "KABA_INSAAT",
		City:             "Istanbul",
		ApprovalStatus:   job.ApprovalDraft,
		Status:           job.StatusOpen,
	}
}

func approvedPost(id, ownerID string) *job.JobPost {
	p := draftPost(id, ownerID)
	p.ApprovalStatus = job.ApprovalApproved
	return p
}

func validCreateRequest() job.CreateJobRequest {
	return job.CreateJobRequest{
		Title:       "Villa kaba insaat",
		Description: "Temelden catiya kadar kaba insaat isleri yapilacaktir",
		Category:    "KABA_INSAAT",
		City:        "Istanbul",
	}
}

func TestCreateDraft(t *testing.T) {
	ctx := context.Background()

	t.Run("admin cannot create posts", func(t *testing.T) {
		svc := job.NewService(newMockRepository(), &mockProfiles{}, nil)

		_, err := svc.CreateDraft(ctx, adminIdentity, validCreateRequest())
		require.ErrorIs(t, err, core.ErrForbidden)
	})

	t.Run("firma starts in draft", func(t *testing.T) {
		repo := newMockRepository()
		svc := job.NewService(repo, &mockProfiles{}, nil)

		post, err := svc.CreateDraft(ctx, firmaIdentity, validCreateRequest())
		require.NoError(t, err)
		require.Equal(t, job.ApprovalDraft, post.ApprovalStatus)
		require.Equal(t, job.StatusOpen, post.Status)
		require.Equal(t, "company-1", post.CompanyProfileID)
		require.Nil(t, post.PublishedAt)
	})

	t.Run("contractor gets shadow company profile", func(t *testing.T) {
		profiles := &mockProfiles{profileID: "shadow-company"}
		svc := job.NewService(newMockRepository(), profiles, nil)

		post, err := svc.CreateDraft(ctx, taseronIdentity, validCreateRequest())
		require.NoError(t, err)
		require.Equal(t, 1, profiles.calls)
		require.Equal(t, "shadow-company", post.CompanyProfileID)
	})

	t.Run("inverted budget range rejected", func(t *testing.T) {
		svc := job.NewService(newMockRepository(), &mockProfiles{}, nil)

		req := validCreateRequest()
		budgetMin, budgetMax := 5000.0, 1000.0
		req.BudgetMin = &budgetMin
		req.BudgetMax = &budgetMax

		_, err := svc.CreateDraft(ctx, firmaIdentity, req)
		require.ErrorIs(t, err, core.ErrInvalidInput)
	})
}

func TestCreateDirect(t *testing.T) {
	ctx := context.Background()

	t.Run("only firma publishes directly", func(t *testing.T) {
		svc := job.NewService(newMockRepository(), &mockProfiles{}, nil)

		_, err := svc.CreateDirect(ctx, taseronIdentity, validCreateRequest())
		require.ErrorIs(t, err, core.ErrForbidden)
	})

	t.Run("published immediately with audit fields", func(t *testing.T) {
		svc := job.NewService(newMockRepository(), &mockProfiles{}, nil)

		post, err := svc.CreateDirect(ctx, firmaIdentity, validCreateRequest())
		require.NoError(t, err)
		require.Equal(t, job.ApprovalApproved, post.ApprovalStatus)
		require.NotNil(t, post.ApprovedAt)
		require.NotNil(t, post.PublishedAt)
		require.NotNil(t, post.ApprovedByID)
		require.Equal(t, firmaIdentity.UserID, *post.ApprovedByID)
	})
}

func TestSubmit(t *testing.T) {
	ctx := context.Background()

	t.Run("draft moves to pending", func(t *testing.T) {
		repo := newMockRepository(draftPost("job-1", firmaIdentity.UserID))
		svc := job.NewService(repo, &mockProfiles{}, nil)

		post, err := svc.Submit(ctx, firmaIdentity, "job-1")
		require.NoError(t, err)
		require.Equal(t, job.ApprovalPending, post.ApprovalStatus)
	})

	t.Run("rejected post can be resubmitted", func(t *testing.T) {
		p := draftPost("job-1", firmaIdentity.UserID)
		p.ApprovalStatus = job.ApprovalRejected
		repo := newMockRepository(p)
		svc := job.NewService(repo, &mockProfiles{}, nil)

		post, err := svc.Submit(ctx, firmaIdentity, "job-1")
		require.NoError(t, err)
		require.Equal(t, job.ApprovalPending, post.ApprovalStatus)
	})

	t.Run("approved post cannot be submitted", func(t *testing.T) {
		repo := newMockRepository(approvedPost("job-1", firmaIdentity.UserID))
		svc := job.NewService(repo, &mockProfiles{}, nil)

		_, err := svc.Submit(ctx, firmaIdentity, "job-1")
		require.ErrorIs(t, err, core.ErrInvalidState)
	})

	t.Run("only the owner submits", func(t *testing.T) {
		repo := newMockRepository(draftPost("job-1", "someone-else"))
		svc := job.NewService(repo, &mockProfiles{}, nil)

		_, err := svc.Submit(ctx, firmaIdentity, "job-1")
		require.ErrorIs(t, err, core.ErrForbidden)
	})

	t.Run("unknown post is not found", func(t *testing.T) {
		svc := job.NewService(newMockRepository(), &mockProfiles{}, nil)

		_, err := svc.Submit(ctx, firmaIdentity, "missing")
		require.ErrorIs(t, err, core.ErrNotFound)
	})
}

func TestUpdateDraft(t *testing.T) {
	ctx := context.Background()

	t.Run("partial update keeps other fields", func(t *testing.T) {
		repo := newMockRepository(draftPost("job-1", firmaIdentity.UserID))
		svc := job.NewService(repo, &mockProfiles{}, nil)

		title := "Yeni baslik icin guncelleme"
		post, err := svc.UpdateDraft(ctx, firmaIdentity, "job-1",
			job.UpdateJobRequest{Title: &title})
		require.NoError(t, err)
		require.Equal(t, title, post.Title)
		require.Equal(t, "Istanbul", post.City)
	})

	t.Run("merged budget is validated", func(t *testing.T) {
		p := draftPost("job-1", firmaIdentity.UserID)
		existingMax := 1000.0
		p.BudgetMax = &existingMax
		repo := newMockRepository(p)
		svc := job.NewService(repo, &mockProfiles{}, nil)

		newMin := 5000.0
		_, err := svc.UpdateDraft(ctx, firmaIdentity, "job-1",
			job.UpdateJobRequest{BudgetMin: &newMin})
		require.ErrorIs(t, err, core.ErrInvalidInput)
	})
}

func TestModeration(t *testing.T) {
	ctx := context.Background()

	t.Run("approve pending post", func(t *testing.T) {
		p := draftPost("job-1", firmaIdentity.UserID)
		p.ApprovalStatus = job.ApprovalPending
		repo := newMockRepository(p)
		svc := job.NewService(repo, &mockProfiles{}, nil)

		post, err := svc.AdminApprove(ctx, adminIdentity, "job-1")
		require.NoError(t, err)
		require.Equal(t, job.ApprovalApproved, post.ApprovalStatus)
	})

	t.Run("approve requires pending state", func(t *testing.T) {
		repo := newMockRepository(draftPost("job-1", firmaIdentity.UserID))
		svc := job.NewService(repo, &mockProfiles{}, nil)

		_, err := svc.AdminApprove(ctx, adminIdentity, "job-1")
		require.ErrorIs(t, err, core.ErrInvalidState)
	})

	t.Run("approve missing post is not found", func(t *testing.T) {
		svc := job.NewService(newMockRepository(), &mockProfiles{}, nil)

		_, err := svc.AdminApprove(ctx, adminIdentity, "missing")
		require.ErrorIs(t, err, core.ErrNotFound)
	})

	t.Run("reject records the reason", func(t *testing.T) {
		p := draftPost("job-1", firmaIdentity.UserID)
		p.ApprovalStatus = job.ApprovalPending
		repo := newMockRepository(p)
		svc := job.NewService(repo, &mockProfiles{}, nil)

		post, err := svc.AdminReject(ctx, adminIdentity, "job-1",
			"description is too vague")
		require.NoError(t, err)
		require.Equal(t, job.ApprovalRejected, post.ApprovalStatus)
		require.NotNil(t, post.RejectionReason)
		require.Equal(t, "description is too vague", *post.RejectionReason)
	})

	t.Run("unpublish pulls an approved post", func(t *testing.T) {
		repo := newMockRepository(approvedPost("job-1", firmaIdentity.UserID))
		svc := job.NewService(repo, &mockProfiles{}, nil)

		post, err := svc.AdminUnpublish(ctx, adminIdentity, "job-1", "")
		require.NoError(t, err)
		require.Equal(t, job.ApprovalRejected, post.ApprovalStatus)
		require.Equal(t, job.StatusClosed, post.Status)
		require.NotNil(t, post.RejectionReason)
		require.Equal(t, job.DefaultUnpublishReason, *post.RejectionReason)
	})

	t.Run("unpublish requires approved state", func(t *testing.T) {
		repo := newMockRepository(draftPost("job-1", firmaIdentity.UserID))
		svc := job.NewService(repo, &mockProfiles{}, nil)

		_, err := svc.AdminUnpublish(ctx, adminIdentity, "job-1", "reason")
		require.ErrorIs(t, err, core.ErrInvalidState)
	})
}

func TestToggleStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("owner flips open to closed and back", func(t *testing.T) {
		repo := newMockRepository(approvedPost("job-1", firmaIdentity.UserID))
		svc := job.NewService(repo, &mockProfiles{}, nil)

		post, err := svc.ToggleStatus(ctx, firmaIdentity, "job-1")
		require.NoError(t, err)
		require.Equal(t, job.StatusClosed, post.Status)

		post, err = svc.ToggleStatus(ctx, firmaIdentity, "job-1")
		require.NoError(t, err)
		require.Equal(t, job.StatusOpen, post.Status)
	})

	t.Run("strangers cannot toggle", func(t *testing.T) {
		repo := newMockRepository(approvedPost("job-1", "someone-else"))
		svc := job.NewService(repo, &mockProfiles{}, nil)

		_, err := svc.ToggleStatus(ctx, firmaIdentity, "job-1")
		require.ErrorIs(t, err, core.ErrForbidden)
	})
}

func TestGetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("approved post visible to anyone", func(t *testing.T) {
		repo := newMockRepository(approvedPost("job-1", firmaIdentity.UserID))
		svc := job.NewService(repo, &mockProfiles{}, nil)

		post, err := svc.GetByID(ctx, nil, "job-1")
		require.NoError(t, err)
		require.Equal(t, "job-1", post.ID)
	})

	t.Run("closed post stays readable", func(t *testing.T) {
		p := approvedPost("job-1", firmaIdentity.UserID)
		p.Status = job.StatusClosed
		repo := newMockRepository(p)
		svc := job.NewService(repo, &mockProfiles{}, nil)

		post, err := svc.GetByID(ctx, nil, "job-1")
		require.NoError(t, err)
		require.Equal(t, job.StatusClosed, post.Status)
	})

	t.Run("draft hidden from strangers", func(t *testing.T) {
		repo := newMockRepository(draftPost("job-1", firmaIdentity.UserID))
		svc := job.NewService(repo, &mockProfiles{}, nil)

		_, err := svc.GetByID(ctx, &taseronIdentity, "job-1")
		require.ErrorIs(t, err, core.ErrNotFound)
	})

	t.Run("draft visible to owner and admin", func(t *testing.T) {
		repo := newMockRepository(draftPost("job-1", firmaIdentity.UserID))
		svc := job.NewService(repo, &mockProfiles{}, nil)

		_, err := svc.GetByID(ctx, &firmaIdentity, "job-1")
		require.NoError(t, err)

		_, err = svc.GetByID(ctx, &adminIdentity, "job-1")
		require.NoError(t, err)
	})

	t.Run("deleted post visible to admin only", func(t *testing.T) {
		p := approvedPost("job-1", firmaIdentity.UserID)
		p.IsDeleted = true
		repo := newMockRepository(p)
		svc := job.NewService(repo, &mockProfiles{}, nil)

		_, err := svc.GetByID(ctx, &firmaIdentity, "job-1")
		require.ErrorIs(t, err, core.ErrNotFound)

		_, err = svc.GetByID(ctx, &adminIdentity, "job-1")
		require.NoError(t, err)
	})
}

func TestAdminSoftDelete(t *testing.T) {
	ctx := context.Background()

	repo := newMockRepository(approvedPost("job-1", firmaIdentity.UserID))
	svc := job.NewService(repo, &mockProfiles{}, nil)

	require.NoError(t, svc.AdminSoftDelete(ctx, "job-1"))

	err := svc.AdminSoftDelete(ctx, "job-1")
	require.ErrorIs(t, err, core.ErrNotFound)
}

func TestCreateDraftProfileFailure(t *testing.T) {
	ctx := context.Background()

	profiles := &mockProfiles{err: errors.New("profile store down")}
	svc := job.NewService(newMockRepository(), profiles, nil)

	_, err := svc.CreateDraft(ctx, taseronIdentity, validCreateRequest())
	require.Error(t, err)
}

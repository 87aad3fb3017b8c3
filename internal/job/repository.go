// Taseroncum | 2026
// repository.go

package job

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/taseroncum/api/internal/core"
)

type Repository interface {
	Create(ctx context.Context, job *JobPost) error
	GetByID(ctx context.Context, id string) (*JobPost, error)
	UpdateContent(ctx context.Context, job *JobPost) error
	Submit(ctx context.Context, id string) (bool, error)
	Approve(ctx context.Context, id, adminID string) (bool, error)
	Reject(ctx context.Context, id, adminID, reason string) (bool, error)
	Unpublish(ctx context.Context, id, adminID, reason string) (bool, error)
	SetStatus(ctx context.Context, id, status string) (bool, error)
	SoftDelete(ctx context.Context, id string) (bool, error)
	IncrementViews(ctx context.Context, id string) error
	ListApproved(
		ctx context.Context,
		params ListJobsParams,
	) ([]JobPost, int, error)
	ListByOwner(
		ctx context.Context,
		ownerID string,
		params ListMineParams,
	) ([]JobPost, int, error)
	ListPending(ctx context.Context, page, pageSize int) ([]JobPost, int, error)
	ListAll(ctx context.Context, page, pageSize int) ([]JobPost, int, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

const jobColumns = `
	id, created_by_id, company_profile_id, title, description, category,
	city, budget_min, budget_max, approval_status, status,
	approved_at, approved_by_id, rejected_at, rejected_by_id,
	rejection_reason, published_at, views_count, is_deleted,
	created_at, updated_at`

func (r *repository) Create(ctx context.Context, job *JobPost) error {
	query := `
		INSERT INTO job_posts (
			id, created_by_id, company_profile_id, title, description,
			category, city, budget_min, budget_max, approval_status, status,
			approved_at, approved_by_id, published_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14
		)
		RETURNING created_at, updated_at`

	err := r.db.GetContext(ctx, job, query,
		job.ID,
		job.CreatedByID,
		job.CompanyProfileID,
		job.Title,
		job.Description,
		job.Category,
		job.City,
		job.BudgetMin,
		job.BudgetMax,
		job.ApprovalStatus,
		job.Status,
		job.ApprovedAt,
		job.ApprovedByID,
		job.PublishedAt,
	)
	if err != nil {
		return fmt.Errorf("create job post: %w", err)
	}

	return nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*JobPost, error) {
	query := `
		SELECT` + jobColumns + `
		FROM job_posts
		WHERE id = $1`

	var job JobPost
	err := r.db.GetContext(ctx, &job, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get job post: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get job post: %w", err)
	}

	return &job, nil
}

// UpdateContent rewrites the editable fields. The approval_status guard
// keeps a post that was submitted concurrently from being modified.
func (r *repository) UpdateContent(ctx context.Context, job *JobPost) error {
	query := `
		UPDATE job_posts
		SET title = $2, description = $3, category = $4, city = $5,
		    budget_min = $6, budget_max = $7, updated_at = NOW()
		WHERE id = $1
			AND approval_status IN ('DRAFT', 'REJECTED')
			AND is_deleted = false
		RETURNING updated_at`

	err := r.db.GetContext(ctx, &job.UpdatedAt, query,
		job.ID,
		job.Title,
		job.Description,
		job.Category,
		job.City,
		job.BudgetMin,
		job.BudgetMax,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("update job post: %w", core.ErrInvalidState)
	}
	if err != nil {
		return fmt.Errorf("update job post: %w", err)
	}

	return nil
}

// Submit moves DRAFT or REJECTED into PENDING_APPROVAL, clearing any
// previous rejection so moderators see a clean resubmission.
func (r *repository) Submit(ctx context.Context, id string) (bool, error) {
	query := `
		UPDATE job_posts
		SET approval_status = 'PENDING_APPROVAL',
		    rejected_at = NULL, rejected_by_id = NULL, rejection_reason = NULL,
		    updated_at = NOW()
		WHERE id = $1
			AND approval_status IN ('DRAFT', 'REJECTED')
			AND is_deleted = false`

	return r.conditionalUpdate(ctx, "submit job post", query, id)
}

func (r *repository) Approve(
	ctx context.Context,
	id, adminID string,
) (bool, error) {
	query := `
		UPDATE job_posts
		SET approval_status = 'APPROVED',
		    approved_at = NOW(), approved_by_id = $2,
		    rejected_at = NULL, rejected_by_id = NULL, rejection_reason = NULL,
		    published_at = NOW(),
		    updated_at = NOW()
		WHERE id = $1
			AND approval_status = 'PENDING_APPROVAL'
			AND is_deleted = false`

	return r.conditionalUpdate(ctx, "approve job post", query, id, adminID)
}

func (r *repository) Reject(
	ctx context.Context,
	id, adminID, reason string,
) (bool, error) {
	query := `
		UPDATE job_posts
		SET approval_status = 'REJECTED',
		    rejected_at = NOW(), rejected_by_id = $2, rejection_reason = $3,
		    approved_at = NULL, approved_by_id = NULL, published_at = NULL,
		    updated_at = NOW()
		WHERE id = $1
			AND approval_status = 'PENDING_APPROVAL'
			AND is_deleted = false`

	return r.conditionalUpdate(
		ctx, "reject job post", query, id, adminID, reason)
}

// Unpublish pulls an APPROVED post back out of circulation: rejected
// for moderation purposes and closed for bidding.
func (r *repository) Unpublish(
	ctx context.Context,
	id, adminID, reason string,
) (bool, error) {
	query := `
		UPDATE job_posts
		SET approval_status = 'REJECTED', status = 'CLOSED',
		    rejected_at = NOW(), rejected_by_id = $2, rejection_reason = $3,
		    approved_at = NULL, approved_by_id = NULL, published_at = NULL,
		    updated_at = NOW()
		WHERE id = $1
			AND approval_status = 'APPROVED'
			AND is_deleted = false`

	return r.conditionalUpdate(
		ctx, "unpublish job post", query, id, adminID, reason)
}

func (r *repository) SetStatus(
	ctx context.Context,
	id, status string,
) (bool, error) {
	query := `
		UPDATE job_posts
		SET status = $2, updated_at = NOW()
		WHERE id = $1 AND status <> $2 AND is_deleted = false`

	return r.conditionalUpdate(ctx, "set job status", query, id, status)
}

func (r *repository) SoftDelete(ctx context.Context, id string) (bool, error) {
	query := `
		UPDATE job_posts
		SET is_deleted = true, updated_at = NOW()
		WHERE id = $1 AND is_deleted = false`

	return r.conditionalUpdate(ctx, "delete job post", query, id)
}

func (r *repository) IncrementViews(ctx context.Context, id string) error {
	query := `
		UPDATE job_posts
		SET views_count = views_count + 1
		WHERE id = $1`

	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("increment views: %w", err)
	}

	return nil
}

func (r *repository) ListApproved(
	ctx context.Context,
	params ListJobsParams,
) ([]JobPost, int, error) {
	params.Normalize()

	conditions := []string{
		"approval_status = 'APPROVED'",
		"status = 'OPEN'",
		"is_deleted = false",
	}
	var args []any
	argIdx := 1

	if params.Search != "" {
		conditions = append(conditions, fmt.Sprintf(
			"(title ILIKE $%d OR description ILIKE $%d)", argIdx, argIdx))
		args = append(args, "%"+escapeLike(params.Search)+"%")
		argIdx++
	}

	if params.Category != "" {
		conditions = append(conditions, fmt.Sprintf("category = $%d", argIdx))
		args = append(args, params.Category)
		argIdx++
	}

	if params.City != "" {
		conditions = append(conditions, fmt.Sprintf("city ILIKE $%d", argIdx))
		args = append(args, escapeLike(params.City))
		argIdx++
	}

	if params.BudgetMin != nil {
		conditions = append(conditions, fmt.Sprintf(
			"budget_min >= $%d", argIdx))
		args = append(args, *params.BudgetMin)
		argIdx++
	}

	if params.BudgetMax != nil {
		conditions = append(conditions, fmt.Sprintf(
			"budget_max <= $%d", argIdx))
		args = append(args, *params.BudgetMax)
		argIdx++
	}

	whereClause := strings.Join(conditions, " AND ")

	countQuery := fmt.Sprintf(
		"SELECT COUNT(*) FROM job_posts WHERE %s",
		whereClause,
	)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count job posts: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT`+jobColumns+`
		FROM job_posts
		WHERE %s
		ORDER BY %s
		LIMIT $%d OFFSET $%d`,
		whereClause, orderClause(params.Sort), argIdx, argIdx+1)

	args = append(args, params.PageSize, params.Offset())

	var jobs []JobPost
	if err := r.db.SelectContext(ctx, &jobs, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list job posts: %w", err)
	}

	return jobs, total, nil
}

func (r *repository) ListByOwner(
	ctx context.Context,
	ownerID string,
	params ListMineParams,
) ([]JobPost, int, error) {
	params.Normalize()

	conditions := []string{"created_by_id = $1", "is_deleted = false"}
	args := []any{ownerID}
	argIdx := 2

	if params.ApprovalStatus != "" {
		conditions = append(conditions, fmt.Sprintf(
			"approval_status = $%d", argIdx))
		args = append(args, params.ApprovalStatus)
		argIdx++
	}

	whereClause := strings.Join(conditions, " AND ")

	countQuery := fmt.Sprintf(
		"SELECT COUNT(*) FROM job_posts WHERE %s",
		whereClause,
	)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count own job posts: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT`+jobColumns+`
		FROM job_posts
		WHERE %s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d`,
		whereClause, argIdx, argIdx+1)

	args = append(args, params.PageSize, params.Offset())

	var jobs []JobPost
	if err := r.db.SelectContext(ctx, &jobs, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list own job posts: %w", err)
	}

	return jobs, total, nil
}

// ListPending returns the moderation queue oldest-first so the longest
// waiting posts get reviewed first.
func (r *repository) ListPending(
	ctx context.Context,
	page, pageSize int,
) ([]JobPost, int, error) {
	countQuery := `
		SELECT COUNT(*) FROM job_posts
		WHERE approval_status = 'PENDING_APPROVAL' AND is_deleted = false`

	var total int
	if err := r.db.GetContext(ctx, &total, countQuery); err != nil {
		return nil, 0, fmt.Errorf("count pending job posts: %w", err)
	}

	query := `
		SELECT` + jobColumns + `
		FROM job_posts
		WHERE approval_status = 'PENDING_APPROVAL' AND is_deleted = false
		ORDER BY created_at ASC
		LIMIT $1 OFFSET $2`

	var jobs []JobPost
	err := r.db.SelectContext(ctx, &jobs, query, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("list pending job posts: %w", err)
	}

	return jobs, total, nil
}

func (r *repository) ListAll(
	ctx context.Context,
	page, pageSize int,
) ([]JobPost, int, error) {
	countQuery := `SELECT COUNT(*) FROM job_posts`

	var total int
	if err := r.db.GetContext(ctx, &total, countQuery); err != nil {
		return nil, 0, fmt.Errorf("count job posts: %w", err)
	}

	query := `
		SELECT` + jobColumns + `
		FROM job_posts
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`

	var jobs []JobPost
	err := r.db.SelectContext(ctx, &jobs, query, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("list all job posts: %w", err)
	}

	return jobs, total, nil
}

func (r *repository) conditionalUpdate(
	ctx context.Context,
	op, query string,
	args ...any,
) (bool, error) {
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	return rows > 0, nil
}

func orderClause(sort string) string {
	switch sort {
	case SortOldest:
		return "created_at ASC"
	case SortBudgetLow:
		return "budget_min ASC NULLS LAST, created_at DESC"
	case SortBudgetHigh:
		return "budget_max DESC NULLS LAST, created_at DESC"
	default:
		return "created_at DESC"
	}
}

func escapeLike(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "%", "\\%")
	s = strings.ReplaceAll(s, "_", "\\_")
	return s
}

// Taseroncum | 2026
// repository.go

package review

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/taseroncum/api/internal/core"
)

type Repository interface {
	Create(ctx context.Context, rev *Review) error
	GetByID(ctx context.Context, id string) (*Review, error)
	Delete(ctx context.Context, id string) error
	ListForUser(ctx context.Context, reviewedID string) ([]Review, error)
	// Aggregate returns the average rating rounded to one decimal and
	// the review count for a user. Zero values when unreviewed.
	Aggregate(ctx context.Context, reviewedID string) (float64, int, error)
	// HasAcceptedLink reports whether an ACCEPTED bid on the job
	// connects the two users in either direction.
	HasAcceptedLink(
		ctx context.Context,
		jobID, userA, userB string,
	) (bool, error)
	ListLatest(ctx context.Context, limit int) ([]Review, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

const reviewColumns = `
	id, job_id, reviewer_id, reviewed_id, rating, comment, created_at`

func (r *repository) Create(ctx context.Context, rev *Review) error {
	query := `
		INSERT INTO reviews (
			id, job_id, reviewer_id, reviewed_id, rating, comment
		) VALUES (
			$1, $2, $3, $4, $5, $6
		)
		RETURNING created_at`

	err := r.db.GetContext(ctx, &rev.CreatedAt, query,
		rev.ID,
		rev.JobID,
		rev.ReviewerID,
		rev.ReviewedID,
		rev.Rating,
		rev.Comment,
	)
	if err != nil {
		if isDuplicateKeyError(err) {
			return fmt.Errorf("create review: %w", core.ErrDuplicateKey)
		}
		return fmt.Errorf("create review: %w", err)
	}

	return nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Review, error) {
	query := `
		SELECT` + reviewColumns + `
		FROM reviews
		WHERE id = $1`

	var rev Review
	err := r.db.GetContext(ctx, &rev, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get review: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get review: %w", err)
	}

	return &rev, nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM reviews WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete review: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete review: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("delete review: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) ListForUser(
	ctx context.Context,
	reviewedID string,
) ([]Review, error) {
	query := `
		SELECT` + reviewColumns + `
		FROM reviews
		WHERE reviewed_id = $1
		ORDER BY created_at DESC`

	var reviews []Review
	if err := r.db.SelectContext(ctx, &reviews, query, reviewedID); err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}

	return reviews, nil
}

func (r *repository) Aggregate(
	ctx context.Context,
	reviewedID string,
) (float64, int, error) {
	query := `
		SELECT
			COALESCE(ROUND(AVG(rating)::numeric, 1), 0)::float8,
			COUNT(*)
		FROM reviews
		WHERE reviewed_id = $1`

	var avg float64
	var count int
	row := r.db.QueryRowxContext(ctx, query, reviewedID)
	if err := row.Scan(&avg, &count); err != nil {
		return 0, 0, fmt.Errorf("aggregate reviews: %w", err)
	}

	return avg, count, nil
}

func (r *repository) HasAcceptedLink(
	ctx context.Context,
	jobID, userA, userB string,
) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1
			FROM bids b
			JOIN job_posts j ON j.id = b.job_id
			WHERE b.job_id = $1
				AND b.status = 'ACCEPTED'
				AND (
					(j.created_by_id = $2 AND b.offerer_id = $3)
					OR (j.created_by_id = $3 AND b.offerer_id = $2)
				)
		)`

	var exists bool
	err := r.db.GetContext(ctx, &exists, query, jobID, userA, userB)
	if err != nil {
		return false, fmt.Errorf("check accepted link: %w", err)
	}

	return exists, nil
}

func (r *repository) ListLatest(
	ctx context.Context,
	limit int,
) ([]Review, error) {
	query := `
		SELECT` + reviewColumns + `
		FROM reviews
		ORDER BY created_at DESC
		LIMIT $1`

	var reviews []Review
	if err := r.db.SelectContext(ctx, &reviews, query, limit); err != nil {
		return nil, fmt.Errorf("list latest reviews: %w", err)
	}

	return reviews, nil
}

func isDuplicateKeyError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}

// Taseroncum | 2026
// repository.go

package bid

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/taseroncum/api/internal/core"
)

type Repository interface {
	Create(ctx context.Context, b *Bid) error
	GetByID(ctx context.Context, id string) (*Bid, error)
	// Decide flips a PENDING bid to the given status. Returns false
	// when the bid was already decided.
	Decide(ctx context.Context, id, status string) (bool, error)
	DeletePending(ctx context.Context, id string) (bool, error)
	ListForJob(ctx context.Context, jobID string) ([]Bid, error)
	ListByOfferer(ctx context.Context, offererID string) ([]Bid, error)
	ListLatest(ctx context.Context, limit int) ([]Bid, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

const bidColumns = `
	id, job_id, offerer_id, message, proposed_price, estimated_duration,
	status, created_at, updated_at`

func (r *repository) Create(ctx context.Context, b *Bid) error {
	query := `
		INSERT INTO bids (
			id, job_id, offerer_id, message, proposed_price,
			estimated_duration, status
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7
		)
		RETURNING created_at, updated_at`

	err := r.db.GetContext(ctx, b, query,
		b.ID,
		b.JobID,
		b.OffererID,
		b.Message,
		b.ProposedPrice,
		b.EstimatedDuration,
		b.Status,
	)
	if err != nil {
		if isDuplicateKeyError(err) {
			return fmt.Errorf("create bid: %w", core.ErrDuplicateKey)
		}
		return fmt.Errorf("create bid: %w", err)
	}

	return nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Bid, error) {
	query := `
		SELECT` + bidColumns + `
		FROM bids
		WHERE id = $1`

	var b Bid
	err := r.db.GetContext(ctx, &b, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get bid: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get bid: %w", err)
	}

	return &b, nil
}

func (r *repository) Decide(
	ctx context.Context,
	id, status string,
) (bool, error) {
	query := `
		UPDATE bids
		SET status = $2, updated_at = NOW()
		WHERE id = $1 AND status = 'PENDING'`

	result, err := r.db.ExecContext(ctx, query, id, status)
	if err != nil {
		return false, fmt.Errorf("decide bid: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("decide bid: %w", err)
	}

	return rows > 0, nil
}

func (r *repository) DeletePending(
	ctx context.Context,
	id string,
) (bool, error) {
	query := `
		DELETE FROM bids
		WHERE id = $1 AND status = 'PENDING'`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return false, fmt.Errorf("withdraw bid: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("withdraw bid: %w", err)
	}

	return rows > 0, nil
}

func (r *repository) ListForJob(
	ctx context.Context,
	jobID string,
) ([]Bid, error) {
	query := `
		SELECT` + bidColumns + `
		FROM bids
		WHERE job_id = $1
		ORDER BY created_at DESC`

	var bids []Bid
	if err := r.db.SelectContext(ctx, &bids, query, jobID); err != nil {
		return nil, fmt.Errorf("list bids for job: %w", err)
	}

	return bids, nil
}

func (r *repository) ListByOfferer(
	ctx context.Context,
	offererID string,
) ([]Bid, error) {
	query := `
		SELECT` + bidColumns + `
		FROM bids
		WHERE offerer_id = $1
		ORDER BY created_at DESC`

	var bids []Bid
	if err := r.db.SelectContext(ctx, &bids, query, offererID); err != nil {
		return nil, fmt.Errorf("list bids by offerer: %w", err)
	}

	return bids, nil
}

func (r *repository) ListLatest(
	ctx context.Context,
	limit int,
) ([]Bid, error) {
	query := `
		SELECT` + bidColumns + `
		FROM bids
		ORDER BY created_at DESC
		LIMIT $1`

	var bids []Bid
	if err := r.db.SelectContext(ctx, &bids, query, limit); err != nil {
		return nil, fmt.Errorf("list latest bids: %w", err)
	}

	return bids, nil
}

func isDuplicateKeyError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}

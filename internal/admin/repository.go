// Taseroncum | 2026
// repository.go

package admin

import (
	"context"
	"fmt"

	"github.com/taseroncum/api/internal/core"
)

// MarketplaceStats is a moderation dashboard snapshot: registered
// users per role, job posts per approval state, bids per decision
// state, and total reviews.
type MarketplaceStats struct {
	TotalUsers      int `db:"total_users"       json:"total_users"`
	FirmaUsers      int `db:"firma_users"       json:"firma_users"`
	TaseronUsers    int `db:"taseron_users"     json:"taseron_users"`
	TotalJobs       int `db:"total_jobs"        json:"total_jobs"`
	PendingJobs     int `db:"pending_jobs"      json:"pending_jobs"`
	ApprovedJobs    int `db:"approved_jobs"     json:"approved_jobs"`
	RejectedJobs    int `db:"rejected_jobs"     json:"rejected_jobs"`
	OpenJobs        int `db:"open_jobs"         json:"open_jobs"`
	TotalBids       int `db:"total_bids"        json:"total_bids"`
	PendingBids     int `db:"pending_bids"      json:"pending_bids"`
	AcceptedBids    int `db:"accepted_bids"     json:"accepted_bids"`
	TotalReviews    int `db:"total_reviews"     json:"total_reviews"`
}

type StatsRepository interface {
	MarketplaceStats(ctx context.Context) (*MarketplaceStats, error)
}

type statsRepository struct {
	db core.DBTX
}

func NewStatsRepository(db core.DBTX) StatsRepository {
	return &statsRepository{db: db}
}

func (r *statsRepository) MarketplaceStats(
	ctx context.Context,
) (*MarketplaceStats, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM users WHERE deleted_at IS NULL)
				AS total_users,
			(SELECT COUNT(*) FROM users
				WHERE role = 'FIRMA' AND deleted_at IS NULL)
				AS firma_users,
			(SELECT COUNT(*) FROM users
				WHERE role = 'TASERON' AND deleted_at IS NULL)
				AS taseron_users,
			(SELECT COUNT(*) FROM job_posts WHERE is_deleted = FALSE)
				AS total_jobs,
			(SELECT COUNT(*) FROM job_posts
				WHERE approval_status = 'PENDING_APPROVAL'
				AND is_deleted = FALSE)
				AS pending_jobs,
			(SELECT COUNT(*) FROM job_posts
				WHERE approval_status = 'APPROVED' AND is_deleted = FALSE)
				AS approved_jobs,
			(SELECT COUNT(*) FROM job_posts
				WHERE approval_status = 'REJECTED' AND is_deleted = FALSE)
				AS rejected_jobs,
			(SELECT COUNT(*) FROM job_posts
				WHERE approval_status = 'APPROVED'
				AND status = 'OPEN' AND is_deleted = FALSE)
				AS open_jobs,
			(SELECT COUNT(*) FROM bids) AS total_bids,
			(SELECT COUNT(*) FROM bids WHERE status = 'PENDING')
				AS pending_bids,
			(SELECT COUNT(*) FROM bids WHERE status = 'ACCEPTED')
				AS accepted_bids,
			(SELECT COUNT(*) FROM reviews) AS total_reviews`

	var stats MarketplaceStats
	if err := r.db.GetContext(ctx, &stats, query); err != nil {
		return nil, fmt.Errorf("load marketplace stats: %w", err)
	}

	return &stats, nil
}

// Taseroncum | 2026
// entity.go

package review

import (
	"time"
)

type Review struct {
	ID         string    `db:"id"`
	JobID      string    `db:"job_id"`
	ReviewerID string    `db:"reviewer_id"`
	ReviewedID string    `db:"reviewed_id"`
	Rating     int       `db:"rating"`
	Comment    string    `db:"comment"`
	CreatedAt  time.Time `db:"created_at"`
}

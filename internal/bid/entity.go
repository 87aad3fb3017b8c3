// Taseroncum | 2026
// entity.go

package bid

import (
	"time"
)

type Bid struct {
	ID                string    `db:"id"`
	JobID             string    `db:"job_id"`
	OffererID         string    `db:"offerer_id"`
	Message           string    `db:"message"`
	ProposedPrice     *float64  `db:"proposed_price"`
	EstimatedDuration *string   `db:"estimated_duration"`
	Status            string    `db:"status"`
	CreatedAt         time.Time `db:"created_at"`
	UpdatedAt         time.Time `db:"updated_at"`
}

const (
	StatusPending  = "PENDING"
	StatusAccepted = "ACCEPTED"
	StatusRejected = "REJECTED"
)

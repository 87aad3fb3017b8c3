// Taseroncum | 2026
// dto.go

package bid

import (
	"time"
)

type PlaceBidRequest struct {
	Message           string   `json:"message"            validate:"required,min=10,max=2000"`
	ProposedPrice     *float64 `json:"proposed_price,omitempty"     validate:"omitempty,gte=0"`
	EstimatedDuration *string  `json:"estimated_duration,omitempty" validate:"omitempty,max=120"`
}

type DecideBidRequest struct {
	Status string `json:"status" validate:"required,oneof=ACCEPTED REJECTED"`
}

type BidResponse struct {
	ID                string    `json:"id"`
	JobID             string    `json:"job_id"`
	OffererID         string    `json:"offerer_id"`
	Message           string    `json:"message"`
	ProposedPrice     *float64  `json:"proposed_price,omitempty"`
	EstimatedDuration *string   `json:"estimated_duration,omitempty"`
	Status            string    `json:"status"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

func ToBidResponse(b *Bid) BidResponse {
	return BidResponse{
		ID:                b.ID,
		JobID:             b.JobID,
		OffererID:         b.OffererID,
		Message:           b.Message,
		ProposedPrice:     b.ProposedPrice,
		EstimatedDuration: b.EstimatedDuration,
		Status:            b.Status,
		CreatedAt:         b.CreatedAt,
		UpdatedAt:         b.UpdatedAt,
	}
}

func ToBidResponseList(bids []Bid) []BidResponse {
	responses := make([]BidResponse, 0, len(bids))
	for i := range bids {
		responses = append(responses, ToBidResponse(&bids[i]))
	}
	return responses
}

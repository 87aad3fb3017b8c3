// Taseroncum | 2026
// dto.go

package review

import (
	"time"
)

type CreateReviewRequest struct {
	ReviewedID string `json:"reviewed_id" validate:"required,uuid4"`
	JobID      string `json:"job_id"      validate:"required,uuid4"`
	Rating     int    `json:"rating"      validate:"required,min=1,max=5"`
	Comment    string `json:"comment"     validate:"omitempty,max=500"`
}

type ReviewResponse struct {
	ID         string    `json:"id"`
	JobID      string    `json:"job_id"`
	ReviewerID string    `json:"reviewer_id"`
	ReviewedID string    `json:"reviewed_id"`
	Rating     int       `json:"rating"`
	Comment    string    `json:"comment,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// UserReviewsResponse is the public review feed for one user, with the
// aggregate computed on read.
type UserReviewsResponse struct {
	Reviews       []ReviewResponse `json:"reviews"`
	AverageRating float64          `json:"average_rating"`
	TotalReviews  int              `json:"total_reviews"`
}

func ToReviewResponse(rev *Review) ReviewResponse {
	return ReviewResponse{
		ID:         rev.ID,
		JobID:      rev.JobID,
		ReviewerID: rev.ReviewerID,
		ReviewedID: rev.ReviewedID,
		Rating:     rev.Rating,
		Comment:    rev.Comment,
		CreatedAt:  rev.CreatedAt,
	}
}

func ToReviewResponseList(reviews []Review) []ReviewResponse {
	responses := make([]ReviewResponse, 0, len(reviews))
	for i := range reviews {
		responses = append(responses, ToReviewResponse(&reviews[i]))
	}
	return responses
}

// Taseroncum | 2026
// entity.go

package profile

import (
	"time"
)

type CompanyProfile struct {
	ID          string    `db:"id"`
	UserID      string    `db:"user_id"`
	Name        string    `db:"name"`
	Description string    `db:"description"`
	Phone       string    `db:"phone"`
	Address     string    `db:"address"`
	City        string    `db:"city"`
	Website     string    `db:"website"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`

	// Review aggregates joined in on reads, never stored.
	AverageRating float64 `db:"average_rating"`
	ReviewCount   int     `db:"review_count"`
}

type ContractorProfile struct {
	ID              string    `db:"id"`
	UserID          string    `db:"user_id"`
	Name            string    `db:"name"`
	Description     string    `db:"description"`
	Phone           string    `db:"phone"`
	City            string    `db:"city"`
	ExperienceYears int       `db:"experience_years"`
	CreatedAt       time.Time `db:"created_at"`
	UpdatedAt       time.Time `db:"updated_at"`

	AverageRating float64 `db:"average_rating"`
	ReviewCount   int     `db:"review_count"`
}

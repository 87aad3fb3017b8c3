// Taseroncum | 2026
// dto.go

package profile

import (
	"time"
)

type UpdateCompanyProfileRequest struct {
	Name        *string `json:"name,omitempty"        validate:"omitempty,min=2,max=160"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=2000"`
	Phone       *string `json:"phone,omitempty"       validate:"omitempty,min=7,max=20"`
	Address     *string `json:"address,omitempty"     validate:"omitempty,max=300"`
	City        *string `json:"city,omitempty"        validate:"omitempty,max=80"`
	Website     *string `json:"website,omitempty"     validate:"omitempty,url,max=255"`
}

type UpdateContractorProfileRequest struct {
	Name            *string `json:"name,omitempty"             validate:"omitempty,min=2,max=160"`
	Description     *string `json:"description,omitempty"      validate:"omitempty,max=2000"`
	Phone           *string `json:"phone,omitempty"            validate:"omitempty,min=7,max=20"`
	City            *string `json:"city,omitempty"             validate:"omitempty,max=80"`
	ExperienceYears *int    `json:"experience_years,omitempty" validate:"omitempty,min=0,max=80"`
}

type CompanyProfileResponse struct {
	ID            string    `json:"id"`
	UserID        string    `json:"user_id"`
	Name          string    `json:"name"`
	Description   string    `json:"description,omitempty"`
	Phone         string    `json:"phone,omitempty"`
	Address       string    `json:"address,omitempty"`
	City          string    `json:"city,omitempty"`
	Website       string    `json:"website,omitempty"`
	AverageRating float64   `json:"average_rating"`
	ReviewCount   int       `json:"review_count"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type ContractorProfileResponse struct {
	ID              string    `json:"id"`
	UserID          string    `json:"user_id"`
	Name            string    `json:"name"`
	Description     string    `json:"description,omitempty"`
	Phone           string    `json:"phone,omitempty"`
	City            string    `json:"city,omitempty"`
	ExperienceYears int       `json:"experience_years"`
	AverageRating   float64   `json:"average_rating"`
	ReviewCount     int       `json:"review_count"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func ToCompanyProfileResponse(p *CompanyProfile) CompanyProfileResponse {
	return CompanyProfileResponse{
		ID:            p.ID,
		UserID:        p.UserID,
		Name:          p.Name,
		Description:   p.Description,
		Phone:         p.Phone,
		Address:       p.Address,
		City:          p.City,
		Website:       p.Website,
		AverageRating: p.AverageRating,
		ReviewCount:   p.ReviewCount,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

func ToContractorProfileResponse(
	p *ContractorProfile,
) ContractorProfileResponse {
	return ContractorProfileResponse{
		ID:              p.ID,
		UserID:          p.UserID,
		Name:            p.Name,
		Description:     p.Description,
		Phone:           p.Phone,
		City:            p.City,
		ExperienceYears: p.ExperienceYears,
		AverageRating:   p.AverageRating,
		ReviewCount:     p.ReviewCount,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

// Taseroncum | 2026
// service.go

package profile

import (
	"context"
	"fmt"

	"github.com/taseroncum/api/internal/core"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// CreateCompanyProfile and CreateContractorProfile run against the
// caller's transaction so registration stays atomic.
func (s *Service) CreateCompanyProfile(
	ctx context.Context,
	tx core.DBTX,
	userID, name, phone string,
) (string, error) {
	return NewRepository(tx).CreateCompany(ctx, userID, name, phone)
}

func (s *Service) CreateContractorProfile(
	ctx context.Context,
	tx core.DBTX,
	userID, name, phone string,
) (string, error) {
	return NewRepository(tx).CreateContractor(ctx, userID, name, phone)
}

// EnsureCompanyProfile returns the caller's company profile ID,
// creating the profile on first use. Contractors posting their first
// job get a shadow company profile named after their contractor
// profile. Safe to call repeatedly.
func (s *Service) EnsureCompanyProfile(
	ctx context.Context,
	userID, fallbackName string,
) (string, error) {
	if fallbackName == "" {
		if ctr, err := s.repo.GetContractorByUserID(ctx, userID); err == nil {
			fallbackName = ctr.Name
		}
	}

	return s.repo.EnsureCompany(ctx, userID, fallbackName)
}

func (s *Service) GetCompany(
	ctx context.Context,
	id string,
) (*CompanyProfile, error) {
	return s.repo.GetCompanyByID(ctx, id)
}

func (s *Service) GetContractor(
	ctx context.Context,
	id string,
) (*ContractorProfile, error) {
	return s.repo.GetContractorByID(ctx, id)
}

func (s *Service) UpdateMyCompany(
	ctx context.Context,
	userID string,
	req UpdateCompanyProfileRequest,
) (*CompanyProfile, error) {
	profile, err := s.repo.GetCompanyByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		profile.Name = *req.Name
	}
	if req.Description != nil {
		profile.Description = *req.Description
	}
	if req.Phone != nil {
		profile.Phone = *req.Phone
	}
	if req.Address != nil {
		profile.Address = *req.Address
	}
	if req.City != nil {
		profile.City = *req.City
	}
	if req.Website != nil {
		profile.Website = *req.Website
	}

	if err := s.repo.UpdateCompany(ctx, profile); err != nil {
		return nil, err
	}

	return profile, nil
}

func (s *Service) UpdateMyContractor(
	ctx context.Context,
	userID string,
	req UpdateContractorProfileRequest,
) (*ContractorProfile, error) {
	profile, err := s.repo.GetContractorByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		profile.Name = *req.Name
	}
	if req.Description != nil {
		profile.Description = *req.Description
	}
	if req.Phone != nil {
		profile.Phone = *req.Phone
	}
	if req.City != nil {
		profile.City = *req.City
	}
	if req.ExperienceYears != nil {
		profile.ExperienceYears = *req.ExperienceYears
	}

	if err := s.repo.UpdateContractor(ctx, profile); err != nil {
		return nil, err
	}

	return profile, nil
}

func (s *Service) GetMyCompany(
	ctx context.Context,
	userID string,
) (*CompanyProfile, error) {
	if userID == "" {
		return nil, fmt.Errorf("get company profile: %w", core.ErrUnauthorized)
	}
	return s.repo.GetCompanyByUserID(ctx, userID)
}

func (s *Service) GetMyContractor(
	ctx context.Context,
	userID string,
) (*ContractorProfile, error) {
	if userID == "" {
		return nil, fmt.Errorf(
			"get contractor profile: %w",
			core.ErrUnauthorized,
		)
	}
	return s.repo.GetContractorByUserID(ctx, userID)
}

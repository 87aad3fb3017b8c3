// Taseroncum | 2026
// repository.go

package profile

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/taseroncum/api/internal/core"
)

type Repository interface {
	CreateCompany(
		ctx context.Context,
		userID, name, phone string,
	) (string, error)
	CreateContractor(
		ctx context.Context,
		userID, name, phone string,
	) (string, error)
	EnsureCompany(ctx context.Context, userID, name string) (string, error)
	GetCompanyByID(ctx context.Context, id string) (*CompanyProfile, error)
	GetCompanyByUserID(
		ctx context.Context,
		userID string,
	) (*CompanyProfile, error)
	GetContractorByID(
		ctx context.Context,
		id string,
	) (*ContractorProfile, error)
	GetContractorByUserID(
		ctx context.Context,
		userID string,
	) (*ContractorProfile, error)
	UpdateCompany(ctx context.Context, p *CompanyProfile) error
	UpdateContractor(ctx context.Context, p *ContractorProfile) error
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

// ratingJoin aggregates non-deleted reviews against the profile owner.
const ratingJoin = `
	COALESCE(ROUND(AVG(r.rating)::numeric, 1), 0)::float8 AS average_rating,
	COUNT(r.id) AS review_count`

func (r *repository) CreateCompany(
	ctx context.Context,
	userID, name, phone string,
) (string, error) {
	query := `
		INSERT INTO company_profiles (id, user_id, name, phone)
		VALUES ($1, $2, $3, $4)
		RETURNING id`

	var id string
	err := r.db.GetContext(ctx, &id, query, uuid.New().String(), userID, name, phone)
	if err != nil {
		return "", fmt.Errorf("create company profile: %w", err)
	}

	return id, nil
}

func (r *repository) CreateContractor(
	ctx context.Context,
	userID, name, phone string,
) (string, error) {
	query := `
		INSERT INTO contractor_profiles (id, user_id, name, phone)
		VALUES ($1, $2, $3, $4)
		RETURNING id`

	var id string
	err := r.db.GetContext(ctx, &id, query, uuid.New().String(), userID, name, phone)
	if err != nil {
		return "", fmt.Errorf("create contractor profile: %w", err)
	}

	return id, nil
}

// EnsureCompany returns the existing profile ID or creates one. The
// upsert keeps the call idempotent under concurrent ensures for the
// same user.
func (r *repository) EnsureCompany(
	ctx context.Context,
	userID, name string,
) (string, error) {
	query := `
		INSERT INTO company_profiles (id, user_id, name)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id) DO UPDATE SET user_id = EXCLUDED.user_id
		RETURNING id`

	var id string
	err := r.db.GetContext(ctx, &id, query, uuid.New().String(), userID, name)
	if err != nil {
		return "", fmt.Errorf("ensure company profile: %w", err)
	}

	return id, nil
}

func (r *repository) GetCompanyByID(
	ctx context.Context,
	id string,
) (*CompanyProfile, error) {
	query := `
		SELECT p.id, p.user_id, p.name, p.description, p.phone, p.address,
		       p.city, p.website, p.created_at, p.updated_at,` + ratingJoin + `
		FROM company_profiles p
		LEFT JOIN reviews r ON r.reviewed_id = p.user_id
		WHERE p.id = $1
		GROUP BY p.id`

	var profile CompanyProfile
	err := r.db.GetContext(ctx, &profile, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get company profile: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get company profile: %w", err)
	}

	return &profile, nil
}

func (r *repository) GetCompanyByUserID(
	ctx context.Context,
	userID string,
) (*CompanyProfile, error) {
	query := `
		SELECT p.id, p.user_id, p.name, p.description, p.phone, p.address,
		       p.city, p.website, p.created_at, p.updated_at,` + ratingJoin + `
		FROM company_profiles p
		LEFT JOIN reviews r ON r.reviewed_id = p.user_id
		WHERE p.user_id = $1
		GROUP BY p.id`

	var profile CompanyProfile
	err := r.db.GetContext(ctx, &profile, query, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get company profile: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get company profile: %w", err)
	}

	return &profile, nil
}

func (r *repository) GetContractorByID(
	ctx context.Context,
	id string,
) (*ContractorProfile, error) {
	query := `
		SELECT p.id, p.user_id, p.name, p.description, p.phone, p.city,
		       p.experience_years, p.created_at, p.updated_at,` + ratingJoin + `
		FROM contractor_profiles p
		LEFT JOIN reviews r ON r.reviewed_id = p.user_id
		WHERE p.id = $1
		GROUP BY p.id`

	var profile ContractorProfile
	err := r.db.GetContext(ctx, &profile, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get contractor profile: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get contractor profile: %w", err)
	}

	return &profile, nil
}

func (r *repository) GetContractorByUserID(
	ctx context.Context,
	userID string,
) (*ContractorProfile, error) {
	query := `
		SELECT p.id, p.user_id, p.name, p.description, p.phone, p.city,
		       p.experience_years, p.created_at, p.updated_at,` + ratingJoin + `
		FROM contractor_profiles p
		LEFT JOIN reviews r ON r.reviewed_id = p.user_id
		WHERE p.user_id = $1
		GROUP BY p.id`

	var profile ContractorProfile
	err := r.db.GetContext(ctx, &profile, query, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get contractor profile: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get contractor profile: %w", err)
	}

	return &profile, nil
}

func (r *repository) UpdateCompany(
	ctx context.Context,
	p *CompanyProfile,
) error {
	query := `
		UPDATE company_profiles
		SET name = $2, description = $3, phone = $4, address = $5,
		    city = $6, website = $7, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.GetContext(ctx, &p.UpdatedAt, query,
		p.ID,
		p.Name,
		p.Description,
		p.Phone,
		p.Address,
		p.City,
		p.Website,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("update company profile: %w", core.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("update company profile: %w", err)
	}

	return nil
}

func (r *repository) UpdateContractor(
	ctx context.Context,
	p *ContractorProfile,
) error {
	query := `
		UPDATE contractor_profiles
		SET name = $2, description = $3, phone = $4, city = $5,
		    experience_years = $6, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.GetContext(ctx, &p.UpdatedAt, query,
		p.ID,
		p.Name,
		p.Description,
		p.Phone,
		p.City,
		p.ExperienceYears,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("update contractor profile: %w", core.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("update contractor profile: %w", err)
	}

	return nil
}

// Taseroncum | 2026
// service.go

package user

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/taseroncum/api/internal/auth"
	"github.com/taseroncum/api/internal/core"
)

// ProfileCreator creates the role-matching profile row inside the same
// transaction as the user row. Implemented by the profile service.
type ProfileCreator interface {
	CreateCompanyProfile(
		ctx context.Context,
		tx core.DBTX,
		userID, name, phone string,
	) (string, error)
	CreateContractorProfile(
		ctx context.Context,
		tx core.DBTX,
		userID, name, phone string,
	) (string, error)
}

type Service struct {
	db       *sqlx.DB
	repo     Repository
	profiles ProfileCreator
}

func NewService(db *sqlx.DB, repo Repository, profiles ProfileCreator) *Service {
	return &Service{db: db, repo: repo, profiles: profiles}
}

func (s *Service) GetByID(
	ctx context.Context,
	id string,
) (*auth.UserInfo, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return toUserInfo(user), nil
}

func (s *Service) GetByEmail(
	ctx context.Context,
	email string,
) (*auth.UserInfo, error) {
	user, err := s.repo.GetByEmail(ctx, strings.ToLower(email))
	if err != nil {
		return nil, err
	}

	return toUserInfo(user), nil
}

// Create inserts the account and its role-matching profile in one
// transaction so a half-registered account can never be observed.
func (s *Service) Create(
	ctx context.Context,
	params auth.CreateUserParams,
) (*auth.UserInfo, error) {
	if params.Role != RoleFirma && params.Role != RoleTaseron {
		return nil, fmt.Errorf(
			"create user: invalid role %q: %w",
			params.Role,
			core.ErrInvalidInput,
		)
	}

	newUser := &User{
		ID:           uuid.New().String(),
		Email:        strings.ToLower(params.Email),
		PasswordHash: params.PasswordHash,
		Name:         params.Name,
		Phone:        params.Phone,
		Role:         params.Role,
		IsActive:     true,
	}

	err := core.InTx(ctx, s.db, func(tx *sqlx.Tx) error {
		txRepo := NewRepository(tx)

		if err := txRepo.Create(ctx, newUser); err != nil {
			return err
		}

		switch params.Role {
		case RoleFirma:
			profileID, err := s.profiles.CreateCompanyProfile(
				ctx, tx, newUser.ID, params.ProfileName, params.Phone)
			if err != nil {
				return fmt.Errorf("create company profile: %w", err)
			}
			newUser.CompanyProfileID = &profileID
		case RoleTaseron:
			profileID, err := s.profiles.CreateContractorProfile(
				ctx, tx, newUser.ID, params.ProfileName, params.Phone)
			if err != nil {
				return fmt.Errorf("create contractor profile: %w", err)
			}
			newUser.ContractorProfileID = &profileID
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return toUserInfo(newUser), nil
}

func (s *Service) IncrementTokenVersion(
	ctx context.Context,
	userID string,
) error {
	return s.repo.IncrementTokenVersion(ctx, userID)
}

func (s *Service) UpdatePassword(
	ctx context.Context,
	userID, passwordHash string,
) error {
	return s.repo.UpdatePassword(ctx, userID, passwordHash)
}

func (s *Service) GetUser(ctx context.Context, id string) (*User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) UpdateUser(
	ctx context.Context,
	id string,
	req UpdateUserRequest,
) (*User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Phone != nil {
		user.Phone = *req.Phone
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// SetUserActive toggles an account on or off. Admin accounts cannot be
// deactivated. Deactivation also bumps the token version so live access
// tokens stop validating on the next refresh.
func (s *Service) SetUserActive(
	ctx context.Context,
	id string,
	active bool,
) (*User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if user.IsAdmin() && !active {
		return nil, fmt.Errorf(
			"cannot deactivate admin users: %w",
			core.ErrForbidden,
		)
	}

	if user.IsActive == active {
		return user, nil
	}

	if err := s.repo.SetActive(ctx, id, active); err != nil {
		return nil, err
	}

	if !active {
		//nolint:errcheck // best-effort token invalidation
		_ = s.repo.IncrementTokenVersion(ctx, id)
	}

	user.IsActive = active
	return user, nil
}

func (s *Service) DeleteUser(ctx context.Context, id string) error {
	return s.repo.SoftDelete(ctx, id)
}

func (s *Service) ListUsers(
	ctx context.Context,
	params ListUsersParams,
) ([]User, int, error) {
	return s.repo.List(ctx, params)
}

func (s *Service) GetMe(ctx context.Context, userID string) (*User, error) {
	if userID == "" {
		return nil, fmt.Errorf("get me: %w", core.ErrUnauthorized)
	}

	return s.repo.GetByID(ctx, userID)
}

func (s *Service) UpdateMe(
	ctx context.Context,
	userID string,
	req UpdateUserRequest,
) (*User, error) {
	if userID == "" {
		return nil, fmt.Errorf("update me: %w", core.ErrUnauthorized)
	}

	return s.UpdateUser(ctx, userID, req)
}

func (s *Service) DeleteMe(ctx context.Context, userID string) error {
	if userID == "" {
		return fmt.Errorf("delete me: %w", core.ErrUnauthorized)
	}

	return s.repo.SoftDelete(ctx, userID)
}

func (s *Service) CanDeleteUser(
	ctx context.Context,
	requesterID, targetID string,
) error {
	if requesterID == targetID {
		return nil
	}

	requester, err := s.repo.GetByID(ctx, requesterID)
	if err != nil {
		return err
	}

	if !requester.IsAdmin() {
		return fmt.Errorf("delete user: %w", core.ErrForbidden)
	}

	target, err := s.repo.GetByID(ctx, targetID)
	if err != nil {
		return err
	}

	if target.IsAdmin() {
		return fmt.Errorf("cannot delete admin users: %w", core.ErrForbidden)
	}

	return nil
}

func toUserInfo(u *User) *auth.UserInfo {
	return &auth.UserInfo{
		ID:                  u.ID,
		Email:               u.Email,
		Name:                u.Name,
		PasswordHash:        u.PasswordHash,
		Role:                u.Role,
		IsActive:            u.IsActive,
		TokenVersion:        u.TokenVersion,
		CompanyProfileID:    u.CompanyProfileID,
		ContractorProfileID: u.ContractorProfileID,
		CreatedAt:           u.CreatedAt,
	}
}

var _ auth.UserProvider = (*Service)(nil)

// Taseroncum | 2026
// entity.go

package user

import (
	"time"
)

// User carries the account row plus the IDs of any profile rows joined
// in by the repository. A FIRMA account owns a company profile, a
// TASERON account owns a contractor profile; either side may be nil
// until the profile exists.
type User struct {
	ID                  string     `db:"id"`
	Email               string     `db:"email"`
	PasswordHash        string     `db:"password_hash"`
	Name                string     `db:"name"`
	Phone               string     `db:"phone"`
	Role                string     `db:"role"`
	IsActive            bool       `db:"is_active"`
	TokenVersion        int        `db:"token_version"`
	CreatedAt           time.Time  `db:"created_at"`
	UpdatedAt           time.Time  `db:"updated_at"`
	DeletedAt           *time.Time `db:"deleted_at"`
	CompanyProfileID    *string    `db:"company_profile_id"`
	ContractorProfileID *string    `db:"contractor_profile_id"`
}

func (u *User) IsDeleted() bool {
	return u.DeletedAt != nil
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

const (
	RoleFirma   = "FIRMA"
	RoleTaseron = "TASERON"
	RoleAdmin   = "ADMIN"
)

func ValidRole(role string) bool {
	switch role {
	case RoleFirma, RoleTaseron, RoleAdmin:
		return true
	}
	return false
}

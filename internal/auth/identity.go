// Taseroncum | 2026
// identity.go

package auth

import (
	"context"

	"github.com/taseroncum/api/internal/middleware"
)

// Identity is the authenticated caller as seen by the service layer.
// Profile IDs are empty for users without the corresponding profile.
type Identity struct {
	UserID              string
	Role                string
	CompanyProfileID    string
	ContractorProfileID string
}

func IdentityFromContext(ctx context.Context) (Identity, bool) {
	claims := middleware.GetClaims(ctx)
	if claims == nil {
		return Identity{}, false
	}

	return Identity{
		UserID:              claims.UserID,
		Role:                claims.Role,
		CompanyProfileID:    claims.CompanyProfileID,
		ContractorProfileID: claims.ContractorProfileID,
	}, true
}

func (i Identity) IsAdmin() bool {
	return i.Role == "ADMIN"
}

func (i Identity) IsFirma() bool {
	return i.Role == "FIRMA"
}

func (i Identity) IsTaseron() bool {
	return i.Role == "TASERON"
}

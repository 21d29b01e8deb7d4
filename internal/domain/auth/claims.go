package auth

import (
	"context"

	"github.com/developnetgeometry/unity-hrms-go/internal/domain/user"
	"github.com/go-chi/jwtauth/v5"
)

// Identity is the resolved caller extracted from verified JWT claims.
// Every attendance handler requires EmployeeID and CompanyID to be present.
type Identity struct {
	UserID     string
	EmployeeID string
	CompanyID  string
	Role       user.Role
}

// IdentityFromContext extracts the caller identity from jwtauth claims.
func IdentityFromContext(ctx context.Context) (Identity, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return Identity{}, ErrInvalidToken
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return Identity{}, ErrMissingClaims
	}

	companyID, ok := claims["company_id"].(string)
	if !ok || companyID == "" {
		return Identity{}, ErrMissingClaims
	}

	employeeID, ok := claims["employee_id"].(string)
	if !ok || employeeID == "" {
		return Identity{}, ErrEmployeeRequired
	}

	role, _ := claims["role"].(string)

	return Identity{
		UserID:     userID,
		EmployeeID: employeeID,
		CompanyID:  companyID,
		Role:       user.Role(role),
	}, nil
}

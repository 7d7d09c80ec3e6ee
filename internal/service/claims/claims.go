package claims

import (
	"context"
	"fmt"

	"github.com/go-chi/jwtauth/v5"
	"github.com/hrsuite/hr-backend-go/internal/domain/user"
)

// Identity is the authenticated caller extracted from the JWT claims.
type Identity struct {
	UserID     string
	Email      string
	Role       user.Role
	EmployeeID *string
}

// IsAdminRH reports whether the caller is an HR administrator.
func (i Identity) IsAdminRH() bool {
	return i.Role == user.RoleAdminRH
}

// IsManager reports whether the caller holds the MANAGER role.
func (i Identity) IsManager() bool {
	return i.Role == user.RoleManager
}

// CanProcessRequests reports whether the caller may decide leave and
// justification requests.
func (i Identity) CanProcessRequests() bool {
	return i.Role == user.RoleManager || i.Role == user.RoleAdminRH
}

// FromContext extracts the caller identity from the verified JWT.
func FromContext(ctx context.Context) (Identity, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return Identity{}, fmt.Errorf("failed to extract claims from context: %w", err)
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return Identity{}, fmt.Errorf("user_id claim is missing or invalid")
	}

	email, _ := claims["email"].(string)

	roleStr, ok := claims["role"].(string)
	if !ok || !user.Role(roleStr).IsValid() {
		return Identity{}, fmt.Errorf("role claim is missing or invalid")
	}

	identity := Identity{
		UserID: userID,
		Email:  email,
		Role:   user.Role(roleStr),
	}

	if employeeID, ok := claims["employee_id"].(string); ok && employeeID != "" {
		identity.EmployeeID = &employeeID
	}

	return identity, nil
}

package authz

import (
	"github.com/ketanMehtaa/gymone/internal/apperr"
	"github.com/ketanMehtaa/gymone/pkg/jwtutil"
)

// Role is the kind of principal behind a request.
type Role string

const (
	RoleSuperAdmin Role = "SUPER_ADMIN"
	RoleAdmin      Role = "ADMIN"
	RoleStaff      Role = "STAFF"
)

// ParseRole maps a raw role string to a Role.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleSuperAdmin, RoleAdmin, RoleStaff:
		return Role(s), true
	}
	return "", false
}

// Tenancy says how an operation relates to gym partitions.
type Tenancy int

const (
	// TenantScoped operations run inside one gym's partition. Admins and
	// staff are bound to their own gym; a super admin may name a target
	// gym or run unscoped.
	TenantScoped Tenancy = iota
	// AnyTenant operations are cross-gym by nature and never bind a
	// partition filter.
	AnyTenant
)

// Rule is the declarative access descriptor attached to each operation.
// Having one rule per route, checked in one place, is what keeps the role
// policy uniform instead of re-written per handler.
type Rule struct {
	AllowedRoles []Role
	Tenancy      Tenancy
}

// Allows reports whether the rule admits the given role.
func (r Rule) Allows(role Role) bool {
	for _, allowed := range r.AllowedRoles {
		if allowed == role {
			return true
		}
	}
	return false
}

// Route rules. Tenant operations admit the super admin too, scoped through
// an explicit gym id or unscoped when none is given.
var (
	RuleAuthenticated = Rule{
		AllowedRoles: []Role{RoleSuperAdmin, RoleAdmin, RoleStaff},
		Tenancy:      AnyTenant,
	}
	RuleTenantOps = Rule{
		AllowedRoles: []Role{RoleSuperAdmin, RoleAdmin, RoleStaff},
		Tenancy:      TenantScoped,
	}
	RuleProvisionGym = Rule{
		AllowedRoles: []Role{RoleSuperAdmin},
		Tenancy:      AnyTenant,
	}
	RuleListGyms = Rule{
		AllowedRoles: []Role{RoleSuperAdmin, RoleAdmin, RoleStaff},
		Tenancy:      TenantScoped,
	}
)

// RequestContext is the authorized principal context every store method
// requires. A nil GymID means the request runs unscoped, which only a
// super admin can obtain.
type RequestContext struct {
	PrincipalID string
	Email       string
	Role        Role
	GymID       *string
}

// Scoped reports whether the context is bound to a gym partition.
func (rc *RequestContext) Scoped() bool { return rc.GymID != nil }

// Authorize turns verified claims into a RequestContext for one operation,
// or rejects. Unauthenticated and forbidden stay distinct kinds: the first
// means the credential was bad, the second that the role is insufficient.
func Authorize(claims *jwtutil.UserClaims, rule Rule, explicitGymID string) (*RequestContext, error) {
	if claims == nil {
		return nil, apperr.New(apperr.Unauthenticated, "authentication required")
	}

	role, ok := ParseRole(claims.Role)
	if !ok {
		return nil, apperr.New(apperr.Unauthenticated, "authentication required")
	}

	if !rule.Allows(role) {
		return nil, apperr.New(apperr.Forbidden, "insufficient role")
	}

	rctx := &RequestContext{
		PrincipalID: claims.UserID,
		Email:       claims.Email,
		Role:        role,
	}

	if rule.Tenancy == AnyTenant {
		return rctx, nil
	}

	if role == RoleSuperAdmin {
		// Opt-in scoping for cross-gym administration; no id means an
		// unfiltered view.
		if explicitGymID != "" {
			rctx.GymID = &explicitGymID
		}
		return rctx, nil
	}

	if claims.GymID == nil || *claims.GymID == "" {
		// An admin without a provisioned gym has no partition to act in.
		return nil, apperr.New(apperr.Unauthenticated, "no gym bound to credentials")
	}
	gymID := *claims.GymID
	rctx.GymID = &gymID
	return rctx, nil
}

package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ketanMehtaa/gymone/internal/apperr"
	"github.com/ketanMehtaa/gymone/pkg/jwtutil"
)

func claimsFor(role string, gymID *string) *jwtutil.UserClaims {
	return &jwtutil.UserClaims{
		UserID: "principal-1",
		Email:  "someone@example.com",
		Role:   role,
		GymID:  gymID,
	}
}

func TestAuthorize_MissingClaims(t *testing.T) {
	rctx, err := Authorize(nil, RuleTenantOps, "")
	assert.Nil(t, rctx)
	assert.True(t, apperr.IsKind(err, apperr.Unauthenticated))
}

func TestAuthorize_UnknownRole(t *testing.T) {
	rctx, err := Authorize(claimsFor("INTRUDER", nil), RuleTenantOps, "")
	assert.Nil(t, rctx)
	assert.True(t, apperr.IsKind(err, apperr.Unauthenticated))
}

func TestAuthorize_RoleNotAllowed(t *testing.T) {
	gym := "gym-a"
	rctx, err := Authorize(claimsFor("STAFF", &gym), RuleProvisionGym, "")
	assert.Nil(t, rctx)
	// A valid credential with the wrong role is forbidden, not
	// unauthenticated; the two outcomes stay distinguishable.
	assert.True(t, apperr.IsKind(err, apperr.Forbidden))
}

func TestAuthorize_AdminBoundToOwnGym(t *testing.T) {
	gym := "gym-a"
	rctx, err := Authorize(claimsFor("ADMIN", &gym), RuleTenantOps, "")
	require.NoError(t, err)
	require.NotNil(t, rctx.GymID)
	assert.Equal(t, "gym-a", *rctx.GymID)
	assert.Equal(t, RoleAdmin, rctx.Role)
}

func TestAuthorize_AdminCannotRetarget(t *testing.T) {
	// The explicit gym parameter is a super admin affordance; admins and
	// staff stay bound to their own gym no matter what they pass.
	gym := "gym-a"
	rctx, err := Authorize(claimsFor("ADMIN", &gym), RuleTenantOps, "gym-b")
	require.NoError(t, err)
	require.NotNil(t, rctx.GymID)
	assert.Equal(t, "gym-a", *rctx.GymID)
}

func TestAuthorize_AdminWithoutGym(t *testing.T) {
	rctx, err := Authorize(claimsFor("ADMIN", nil), RuleTenantOps, "")
	assert.Nil(t, rctx)
	assert.True(t, apperr.IsKind(err, apperr.Unauthenticated))
}

func TestAuthorize_SuperAdminUnscoped(t *testing.T) {
	rctx, err := Authorize(claimsFor("SUPER_ADMIN", nil), RuleTenantOps, "")
	require.NoError(t, err)
	assert.Nil(t, rctx.GymID)
	assert.False(t, rctx.Scoped())
}

func TestAuthorize_SuperAdminExplicitGym(t *testing.T) {
	rctx, err := Authorize(claimsFor("SUPER_ADMIN", nil), RuleTenantOps, "gym-b")
	require.NoError(t, err)
	require.NotNil(t, rctx.GymID)
	assert.Equal(t, "gym-b", *rctx.GymID)
}

func TestAuthorize_AnyTenantNeverBinds(t *testing.T) {
	gym := "gym-a"
	rctx, err := Authorize(claimsFor("ADMIN", &gym), RuleAuthenticated, "")
	require.NoError(t, err)
	assert.Nil(t, rctx.GymID)
}

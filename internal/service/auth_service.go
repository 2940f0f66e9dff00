package service

import (
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/ketanMehtaa/gymone/internal/apperr"
	"github.com/ketanMehtaa/gymone/internal/authz"
	"github.com/ketanMehtaa/gymone/internal/model"
	"github.com/ketanMehtaa/gymone/internal/store"
	"github.com/ketanMehtaa/gymone/pkg/jwtutil"
)

// AuthService handles credential checks, token issuance and gym
// provisioning.
type AuthService struct {
	store  *store.Store
	tokens *jwtutil.TokenService
}

// NewAuthService creates an AuthService.
func NewAuthService(st *store.Store, tokens *jwtutil.TokenService) *AuthService {
	return &AuthService{store: st, tokens: tokens}
}

// AuthenticatedUser is the profile returned on login and by /me.
type AuthenticatedUser struct {
	ID    string     `json:"id"`
	Email string     `json:"email"`
	Name  string     `json:"name"`
	Role  authz.Role `json:"role"`
	GymID *string    `json:"gym_id,omitempty"`
}

// errInvalidCredentials is the single failure every login path returns.
// Wrong email, wrong password and inactive staff are indistinguishable to
// the client.
func errInvalidCredentials() error {
	return apperr.New(apperr.Unauthenticated, "invalid credentials")
}

// Login authenticates a principal of the claimed kind and issues a token.
func (s *AuthService) Login(email, password string, role authz.Role) (*AuthenticatedUser, string, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || password == "" {
		return nil, "", errInvalidCredentials()
	}

	var user *AuthenticatedUser

	switch role {
	case authz.RoleSuperAdmin:
		sa, err := s.store.FindSuperAdminByEmail(email)
		if err != nil {
			return nil, "", loginLookupError(err)
		}
		if !passwordMatches(password, sa.Password) {
			return nil, "", errInvalidCredentials()
		}
		user = &AuthenticatedUser{
			ID:    sa.ID,
			Email: sa.Email,
			Name:  sa.FirstName + " " + sa.LastName,
			Role:  authz.RoleSuperAdmin,
		}

	case authz.RoleAdmin:
		admin, err := s.store.FindAdminByEmail(email)
		if err != nil {
			return nil, "", loginLookupError(err)
		}
		if !passwordMatches(password, admin.Password) {
			return nil, "", errInvalidCredentials()
		}
		user = &AuthenticatedUser{
			ID:    admin.ID,
			Email: admin.Email,
			Name:  admin.FirstName + " " + admin.LastName,
			Role:  authz.RoleAdmin,
			GymID: admin.GymID,
		}

	case authz.RoleStaff:
		staff, err := s.store.FindStaffByEmail(email)
		if err != nil {
			return nil, "", loginLookupError(err)
		}
		if !passwordMatches(password, staff.Password) || !staff.IsActive {
			return nil, "", errInvalidCredentials()
		}
		gymID := staff.GymID
		user = &AuthenticatedUser{
			ID:    staff.ID,
			Email: staff.Email,
			Name:  staff.FirstName + " " + staff.LastName,
			Role:  authz.RoleStaff,
			GymID: &gymID,
		}

	default:
		return nil, "", errInvalidCredentials()
	}

	token, err := s.tokens.Generate(user.ID, user.Email, string(user.Role), user.GymID)
	if err != nil {
		return nil, "", apperr.Wrap(apperr.Internal, "token issuance failed", err)
	}
	return user, token, nil
}

// Me returns the current principal's profile.
func (s *AuthService) Me(rctx *authz.RequestContext) (*AuthenticatedUser, error) {
	switch rctx.Role {
	case authz.RoleSuperAdmin:
		sa, err := s.store.GetSuperAdmin(rctx.PrincipalID)
		if err != nil {
			return nil, err
		}
		return &AuthenticatedUser{
			ID:    sa.ID,
			Email: sa.Email,
			Name:  sa.FirstName + " " + sa.LastName,
			Role:  authz.RoleSuperAdmin,
		}, nil
	case authz.RoleAdmin:
		admin, err := s.store.GetAdmin(rctx.PrincipalID)
		if err != nil {
			return nil, err
		}
		return &AuthenticatedUser{
			ID:    admin.ID,
			Email: admin.Email,
			Name:  admin.FirstName + " " + admin.LastName,
			Role:  authz.RoleAdmin,
			GymID: admin.GymID,
		}, nil
	default:
		staff, err := s.store.GetStaff(rctx.PrincipalID)
		if err != nil {
			return nil, err
		}
		gymID := staff.GymID
		return &AuthenticatedUser{
			ID:    staff.ID,
			Email: staff.Email,
			Name:  staff.FirstName + " " + staff.LastName,
			Role:  authz.RoleStaff,
			GymID: &gymID,
		}, nil
	}
}

// GymInput holds the gym fields for provisioning.
type GymInput struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
}

// AdminInput holds the owning admin's fields for provisioning.
type AdminInput struct {
	FirstName string `json:"admin_first_name"`
	LastName  string `json:"admin_last_name"`
	Email     string `json:"admin_email"`
	Password  string `json:"admin_password"`
}

// ProvisionGym creates a gym together with its owning admin. Super admins
// only. The two creations happen in one transaction; on any rejection no
// partial state remains.
func (s *AuthService) ProvisionGym(rctx *authz.RequestContext, gymInput GymInput, adminInput AdminInput) (*model.Gym, error) {
	if rctx.Role != authz.RoleSuperAdmin {
		return nil, apperr.New(apperr.Forbidden, "insufficient role")
	}

	if gymInput.Name == "" || gymInput.Email == "" {
		return nil, apperr.New(apperr.Validation, "gym name and email are required")
	}
	if adminInput.FirstName == "" || adminInput.Email == "" {
		return nil, apperr.New(apperr.Validation, "admin name and email are required")
	}
	if len(adminInput.Password) < 6 {
		return nil, apperr.New(apperr.Validation, "admin password must be at least 6 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(adminInput.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "password hashing failed", err)
	}

	gym := &model.Gym{
		ID:      uuid.New().String(),
		Name:    gymInput.Name,
		Email:   strings.TrimSpace(strings.ToLower(gymInput.Email)),
		Address: gymInput.Address,
		Phone:   gymInput.Phone,
	}
	admin := &model.Admin{
		ID:        uuid.New().String(),
		Email:     strings.TrimSpace(strings.ToLower(adminInput.Email)),
		Password:  string(hash),
		FirstName: adminInput.FirstName,
		LastName:  adminInput.LastName,
	}

	if err := s.store.CreateGymWithAdmin(gym, admin); err != nil {
		return nil, err
	}

	gym.Admin = admin
	return gym, nil
}

// SeedSuperAdmin creates the initial platform operator if none exists with
// the given email.
func (s *AuthService) SeedSuperAdmin(email, password, firstName, lastName string) (*model.SuperAdmin, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || len(password) < 6 {
		return nil, apperr.New(apperr.Validation, "email and a password of at least 6 characters are required")
	}

	if _, err := s.store.FindSuperAdminByEmail(email); err == nil {
		return nil, apperr.New(apperr.Conflict, "super admin already exists")
	} else if !apperr.IsKind(err, apperr.NotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "password hashing failed", err)
	}

	sa := &model.SuperAdmin{
		ID:        uuid.New().String(),
		Email:     email,
		Password:  string(hash),
		FirstName: firstName,
		LastName:  lastName,
	}
	if err := s.store.CreateSuperAdmin(sa); err != nil {
		return nil, err
	}
	return sa, nil
}

func passwordMatches(password, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(password)) == nil
}

// loginLookupError collapses not-found lookups into the uniform credential
// failure while letting store outages keep their own kind.
func loginLookupError(err error) error {
	if apperr.IsKind(err, apperr.NotFound) {
		return errInvalidCredentials()
	}
	return err
}

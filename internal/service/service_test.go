package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/ketanMehtaa/gymone/internal/authz"
	"github.com/ketanMehtaa/gymone/internal/model"
	"github.com/ketanMehtaa/gymone/internal/store"
	"github.com/ketanMehtaa/gymone/pkg/config"
	"github.com/ketanMehtaa/gymone/pkg/database"
	"github.com/ketanMehtaa/gymone/pkg/jwtutil"
)

func setupEnv(t *testing.T) (*store.Store, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return store.New(db), db
}

func setupStore(t *testing.T) *store.Store {
	st, _ := setupEnv(t)
	return st
}

func seedStaff(t *testing.T, db *gorm.DB, gymID, email string, active bool) *model.Staff {
	staff := &model.Staff{
		ID:        uuid.New().String(),
		Email:     email,
		Password:  hashPassword(t, "staff-secret"),
		FirstName: "Sam",
		LastName:  "Desk",
		GymID:     gymID,
		IsActive:  active,
	}
	require.NoError(t, db.Create(staff).Error)
	return staff
}

func testTokenService() *jwtutil.TokenService {
	return jwtutil.New(&config.JWTConfig{SigningKey: "test-signing-key", ExpirationHours: 1})
}

func hashPassword(t *testing.T, password string) string {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func adminCtx(gymID string) *authz.RequestContext {
	return &authz.RequestContext{
		PrincipalID: "principal-1",
		Role:        authz.RoleAdmin,
		GymID:       &gymID,
	}
}

func superRequestCtx(id string) *authz.RequestContext {
	return &authz.RequestContext{PrincipalID: id, Role: authz.RoleSuperAdmin}
}

func seedGym(t *testing.T, st *store.Store, name string) *model.Gym {
	gym := &model.Gym{ID: uuid.New().String(), Name: name, Email: name + "@example.com"}
	admin := &model.Admin{
		ID:        uuid.New().String(),
		Email:     "owner-" + name + "@example.com",
		Password:  hashPassword(t, "owner-secret"),
		FirstName: "Owner",
		LastName:  name,
	}
	require.NoError(t, st.CreateGymWithAdmin(gym, admin))
	return gym
}

func seedMember(t *testing.T, st *store.Store, gymID, firstName string) *model.Member {
	member := &model.Member{FirstName: firstName, Email: firstName + "@example.com"}
	require.NoError(t, st.CreateMember(adminCtx(gymID), member))
	return member
}

func seedMembership(t *testing.T, st *store.Store, gymID, memberID string, start, end time.Time) *model.Membership {
	membership := &model.Membership{
		MemberID:  memberID,
		StartDate: start,
		EndDate:   end,
		Amount:    50,
	}
	require.NoError(t, st.CreateMembership(adminCtx(gymID), membership))
	return membership
}

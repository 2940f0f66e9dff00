package store

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/ketanMehtaa/gymone/internal/authz"
	"github.com/ketanMehtaa/gymone/internal/model"
	"github.com/ketanMehtaa/gymone/pkg/database"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func setupStore(t *testing.T) *Store {
	return New(setupTestDB(t))
}

func ctxFor(gymID string) *authz.RequestContext {
	return &authz.RequestContext{
		PrincipalID: "principal-1",
		Role:        authz.RoleAdmin,
		GymID:       &gymID,
	}
}

func superCtx() *authz.RequestContext {
	return &authz.RequestContext{
		PrincipalID: "root-1",
		Role:        authz.RoleSuperAdmin,
	}
}

func seedGym(t *testing.T, s *Store, name string) *model.Gym {
	gym := &model.Gym{
		ID:    uuid.New().String(),
		Name:  name,
		Email: name + "@example.com",
	}
	admin := &model.Admin{
		ID:        uuid.New().String(),
		Email:     "admin-" + name + "@example.com",
		Password:  "digest",
		FirstName: "Owner",
	}
	require.NoError(t, s.CreateGymWithAdmin(gym, admin))
	return gym
}

func seedMember(t *testing.T, s *Store, gymID, firstName string) *model.Member {
	member := &model.Member{FirstName: firstName, Email: firstName + "@example.com"}
	require.NoError(t, s.CreateMember(ctxFor(gymID), member))
	return member
}

func seedMembership(t *testing.T, s *Store, gymID, memberID string, start, end time.Time) *model.Membership {
	membership := &model.Membership{
		MemberID:  memberID,
		StartDate: start,
		EndDate:   end,
		Amount:    50,
	}
	require.NoError(t, s.CreateMembership(ctxFor(gymID), membership))
	return membership
}

func day(offset int) time.Time {
	base := time.Date(2025, time.June, 15, 9, 0, 0, 0, time.UTC)
	return base.AddDate(0, 0, offset)
}

func countRows(t *testing.T, db *gorm.DB, value interface{}) int64 {
	var count int64
	require.NoError(t, db.Model(value).Count(&count).Error)
	return count
}

package store

import (
	"time"

	"github.com/ketanMehtaa/gymone/internal/authz"
	"github.com/ketanMehtaa/gymone/internal/model"
)

// StatusCount is one row of the member status distribution.
type StatusCount struct {
	Status model.MemberStatus `json:"status"`
	Total  int64              `json:"total"`
}

// MembershipMonthlyCounts buckets memberships created since the given
// instant by calendar month. Bucketing happens here rather than in SQL so
// the same query runs on postgres and the sqlite test driver.
func (s *Store) MembershipMonthlyCounts(rctx *authz.RequestContext, since time.Time) (map[time.Month]int64, error) {
	var stamps []time.Time
	err := s.scoped(rctx).Model(&model.Membership{}).
		Where("created_at >= ?", since).
		Pluck("created_at", &stamps).Error
	if err != nil {
		return nil, translate(err, "memberships not found")
	}
	return bucketByMonth(stamps), nil
}

// AttendanceMonthlyCounts buckets check-ins since the given instant by
// calendar month.
func (s *Store) AttendanceMonthlyCounts(rctx *authz.RequestContext, since time.Time) (map[time.Month]int64, error) {
	var stamps []time.Time
	err := s.scoped(rctx).Model(&model.Attendance{}).
		Where("check_in >= ?", since).
		Pluck("check_in", &stamps).Error
	if err != nil {
		return nil, translate(err, "attendance not found")
	}
	return bucketByMonth(stamps), nil
}

// MemberStatusCounts returns how many members the context's gym has in
// each administrative status.
func (s *Store) MemberStatusCounts(rctx *authz.RequestContext) ([]StatusCount, error) {
	var counts []StatusCount
	err := s.scoped(rctx).Model(&model.Member{}).
		Select("status, COUNT(*) as total").
		Group("status").
		Order("status").
		Scan(&counts).Error
	if err != nil {
		return nil, translate(err, "members not found")
	}
	return counts, nil
}

func bucketByMonth(stamps []time.Time) map[time.Month]int64 {
	counts := make(map[time.Month]int64)
	for _, stamp := range stamps {
		counts[stamp.Month()]++
	}
	return counts
}

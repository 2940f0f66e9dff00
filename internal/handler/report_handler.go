package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/ketanMehtaa/gymone/internal/middleware"
	"github.com/ketanMehtaa/gymone/internal/store"
	"github.com/ketanMehtaa/gymone/prometheus"
)

// ReportHandler serves the yearly trend report behind the dashboard's
// reports page.
type ReportHandler struct {
	store *store.Store
	now   func() time.Time
}

// NewReportHandler creates a ReportHandler using the wall clock.
func NewReportHandler(st *store.Store) *ReportHandler {
	return &ReportHandler{store: st, now: time.Now}
}

// monthlyTotal is one month of a trend series.
type monthlyTotal struct {
	Month string `json:"month"`
	Total int64  `json:"total"`
}

// Stats returns this year's monthly membership and attendance trends plus
// the member status distribution for the caller's gym. Every month since
// January is present in the series, zero months included, so charts get a
// stable x axis.
func (h *ReportHandler) Stats(c echo.Context) error {
	defer prometheus.TrackDBOperation("query")(time.Now())
	rctx := middleware.ContextFrom(c)

	now := h.now()
	startOfYear := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())

	membershipCounts, err := h.store.MembershipMonthlyCounts(rctx, startOfYear)
	if err != nil {
		return httpError(c, err)
	}
	attendanceCounts, err := h.store.AttendanceMonthlyCounts(rctx, startOfYear)
	if err != nil {
		return httpError(c, err)
	}
	statusCounts, err := h.store.MemberStatusCounts(rctx)
	if err != nil {
		return httpError(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"membership_trend":           trendSeries(membershipCounts, now.Month()),
		"attendance_trend":           trendSeries(attendanceCounts, now.Month()),
		"member_status_distribution": statusCounts,
	})
}

func trendSeries(counts map[time.Month]int64, through time.Month) []monthlyTotal {
	series := make([]monthlyTotal, 0, int(through))
	for month := time.January; month <= through; month++ {
		series = append(series, monthlyTotal{
			Month: month.String(),
			Total: counts[month],
		})
	}
	return series
}

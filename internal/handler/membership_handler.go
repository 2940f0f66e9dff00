package handler

import (
	"net/http"
	"sort"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/ketanMehtaa/gymone/internal/apperr"
	"github.com/ketanMehtaa/gymone/internal/middleware"
	"github.com/ketanMehtaa/gymone/internal/model"
	"github.com/ketanMehtaa/gymone/internal/store"
	"github.com/ketanMehtaa/gymone/pkg/logger"
	"github.com/ketanMehtaa/gymone/prometheus"
)

// MembershipHandler serves membership creation and the derived-status
// member listing.
type MembershipHandler struct {
	store *store.Store
	now   func() time.Time
}

// NewMembershipHandler creates a MembershipHandler using the wall clock.
func NewMembershipHandler(st *store.Store) *MembershipHandler {
	return &MembershipHandler{store: st, now: time.Now}
}

// Create records a new membership period for a member. The end date may
// be given directly or as a duration in months from the start date.
func (h *MembershipHandler) Create(c echo.Context) error {
	log := logger.FromContext(c)

	var req struct {
		MemberID       string  `json:"member_id"`
		StartDate      string  `json:"start_date"`
		EndDate        string  `json:"end_date"`
		DurationMonths int     `json:"duration_months"`
		Amount         float64 `json:"amount"`
	}
	if err := c.Bind(&req); err != nil {
		log.Warn("Failed to parse membership creation request", zap.Error(err))
		return httpError(c, apperr.New(apperr.Validation, "invalid request"))
	}

	if req.MemberID == "" {
		return httpError(c, apperr.New(apperr.Validation, "member id is required"))
	}
	startDate, ok := parseDate(req.StartDate)
	if !ok {
		return httpError(c, apperr.New(apperr.Validation, "invalid start date"))
	}
	if req.Amount < 0 {
		return httpError(c, apperr.New(apperr.Validation, "amount must not be negative"))
	}

	var endDate time.Time
	switch {
	case req.DurationMonths != 0:
		if req.DurationMonths < 1 || req.DurationMonths > 12 {
			return httpError(c, apperr.New(apperr.Validation, "duration must be between 1 and 12 months"))
		}
		endDate = startDate.AddDate(0, req.DurationMonths, 0)
	default:
		endDate, ok = parseDate(req.EndDate)
		if !ok {
			return httpError(c, apperr.New(apperr.Validation, "invalid end date"))
		}
	}

	rctx := middleware.ContextFrom(c)
	membership := &model.Membership{
		MemberID:      req.MemberID,
		StartDate:     startDate,
		EndDate:       endDate,
		Amount:        req.Amount,
		CreatedByID:   rctx.PrincipalID,
		CreatedByRole: string(rctx.Role),
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())
	if err := h.store.CreateMembership(rctx, membership); err != nil {
		return httpError(c, err)
	}
	prometheus.RecordStoreOperation("membership_create")

	log.Info("Membership created",
		zap.String("membership_id", membership.ID),
		zap.String("member_id", membership.MemberID))
	return c.JSON(http.StatusCreated, echo.Map{"data": membership})
}

// memberWithStatus is one row of the derived-status listing.
type memberWithStatus struct {
	ID               string                 `json:"id"`
	FirstName        string                 `json:"first_name"`
	LastName         string                 `json:"last_name"`
	Email            string                 `json:"email"`
	Phone            string                 `json:"phone"`
	Status           model.MemberStatus     `json:"status"`
	LatestMembership *model.Membership      `json:"latest_membership"`
	MembershipStatus model.MembershipStatus `json:"membership_status"`
}

// ListWithStatus returns the gym's administratively active members with
// their current membership and its derived status, expired memberships
// first so renewals surface at the top.
func (h *MembershipHandler) ListWithStatus(c echo.Context) error {
	members, err := h.store.ListActiveMembersWithMemberships(middleware.ContextFrom(c))
	if err != nil {
		return httpError(c, err)
	}

	now := h.now()
	rows := make([]memberWithStatus, 0, len(members))
	for _, m := range members {
		current := model.CurrentMembership(m.Memberships)
		rows = append(rows, memberWithStatus{
			ID:               m.ID,
			FirstName:        m.FirstName,
			LastName:         m.LastName,
			Email:            m.Email,
			Phone:            m.Phone,
			Status:           m.Status,
			LatestMembership: current,
			MembershipStatus: model.StatusOf(current, now),
		})
	}

	order := map[model.MembershipStatus]int{
		model.MembershipExpired: 0,
		model.MembershipNone:    1,
		model.MembershipActive:  2,
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return order[rows[i].MembershipStatus] < order[rows[j].MembershipStatus]
	})

	return c.JSON(http.StatusOK, rows)
}

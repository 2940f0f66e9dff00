package handler

import (
	"net/http"
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

// MemberHandler serves member CRUD and search.
type MemberHandler struct {
	store *store.Store
	now   func() time.Time
}

// NewMemberHandler creates a MemberHandler using the wall clock.
func NewMemberHandler(st *store.Store) *MemberHandler {
	return &MemberHandler{store: st, now: time.Now}
}

// List returns the members of the caller's gym, newest first.
func (h *MemberHandler) List(c echo.Context) error {
	defer prometheus.TrackDBOperation("query")(time.Now())

	members, err := h.store.ListMembers(middleware.ContextFrom(c))
	if err != nil {
		return httpError(c, err)
	}
	return c.JSON(http.StatusOK, members)
}

// Search finds members by name or email inside the caller's gym.
func (h *MemberHandler) Search(c echo.Context) error {
	query := c.QueryParam("q")
	if query == "" {
		return httpError(c, apperr.New(apperr.Validation, "missing search query"))
	}

	members, err := h.store.SearchMembers(middleware.ContextFrom(c), query)
	if err != nil {
		return httpError(c, err)
	}
	return c.JSON(http.StatusOK, members)
}

// Get returns one member with full history and the derived membership
// status. Status is computed on every read, never read from a column.
func (h *MemberHandler) Get(c echo.Context) error {
	member, err := h.store.GetMember(middleware.ContextFrom(c), c.Param("id"))
	if err != nil {
		return httpError(c, err)
	}

	current := model.CurrentMembership(member.Memberships)
	return c.JSON(http.StatusOK, echo.Map{
		"member":            member,
		"latest_membership": current,
		"membership_status": model.StatusOf(current, h.now()),
	})
}

// Create adds a member to the caller's gym.
func (h *MemberHandler) Create(c echo.Context) error {
	log := logger.FromContext(c)

	var req struct {
		FirstName string             `json:"first_name"`
		LastName  string             `json:"last_name"`
		Email     string             `json:"email"`
		Phone     string             `json:"phone"`
		Address   string             `json:"address"`
		Status    model.MemberStatus `json:"status"`
	}
	if err := c.Bind(&req); err != nil {
		log.Warn("Failed to parse member creation request", zap.Error(err))
		return httpError(c, apperr.New(apperr.Validation, "invalid request"))
	}
	if req.FirstName == "" {
		return httpError(c, apperr.New(apperr.Validation, "first name is required"))
	}

	member := &model.Member{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		Address:   req.Address,
		Status:    req.Status,
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())
	if err := h.store.CreateMember(middleware.ContextFrom(c), member); err != nil {
		return httpError(c, err)
	}
	prometheus.RecordStoreOperation("member_create")

	log.Info("Member created",
		zap.String("member_id", member.ID),
		zap.String("gym_id", member.GymID))
	return c.JSON(http.StatusCreated, member)
}

// Update patches a member's fields.
func (h *MemberHandler) Update(c echo.Context) error {
	log := logger.FromContext(c)

	var req struct {
		FirstName *string             `json:"first_name"`
		LastName  *string             `json:"last_name"`
		Email     *string             `json:"email"`
		Phone     *string             `json:"phone"`
		Address   *string             `json:"address"`
		Status    *model.MemberStatus `json:"status"`
	}
	if err := c.Bind(&req); err != nil {
		log.Warn("Failed to parse member update request", zap.Error(err))
		return httpError(c, apperr.New(apperr.Validation, "invalid request"))
	}

	member, err := h.store.UpdateMember(middleware.ContextFrom(c), c.Param("id"), store.MemberUpdate{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		Address:   req.Address,
		Status:    req.Status,
	})
	if err != nil {
		return httpError(c, err)
	}
	prometheus.RecordStoreOperation("member_update")
	return c.JSON(http.StatusOK, member)
}

// Delete removes a member and the member's history.
func (h *MemberHandler) Delete(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")

	if err := h.store.DeleteMember(middleware.ContextFrom(c), id); err != nil {
		return httpError(c, err)
	}
	prometheus.RecordStoreOperation("member_delete")

	log.Info("Member deleted", zap.String("member_id", id))
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

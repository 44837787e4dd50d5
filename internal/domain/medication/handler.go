package medication

import (
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/caresense/caresense/internal/platform/apperr"
	"github.com/caresense/caresense/internal/platform/auth"
	"github.com/caresense/caresense/pkg/respond"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.POST("/seniors/:id/medications", h.Create)
	g.GET("/seniors/:id/medications", h.List)
	g.GET("/seniors/:id/schedule", h.TodaySchedule)
	g.PUT("/medications/:id", h.Update)
	g.DELETE("/medications/:id", h.Deactivate)
	g.POST("/medications/:id/usage", h.RecordUsage)
}

type definitionRequest struct {
	Name       string     `json:"name"`
	Dosage     string     `json:"dosage"`
	Type       string     `json:"type"`
	Frequency  string     `json:"frequency"`
	Times      []string   `json:"times"`
	IsDaily    bool       `json:"is_daily"`
	IsActive   *bool      `json:"is_active"`
	RefillDate *time.Time `json:"refill_date"`
}

func (h *Handler) Create(c echo.Context) error {
	callerID, err := auth.CallerID(c.Request().Context())
	if err != nil {
		return respond.Error(c, err)
	}
	ownerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return respond.Error(c, apperr.Validationf("invalid senior id"))
	}

	var req definitionRequest
	if err := c.Bind(&req); err != nil {
		return respond.Error(c, apperr.Validationf("invalid request body"))
	}

	def := &Definition{
		OwnerID:    ownerID,
		Name:       req.Name,
		Dosage:     req.Dosage,
		Type:       req.Type,
		Frequency:  req.Frequency,
		Times:      req.Times,
		IsDaily:    req.IsDaily,
		RefillDate: req.RefillDate,
	}
	created, err := h.svc.Create(c.Request().Context(), callerID, def)
	if err != nil {
		return respond.Error(c, err)
	}
	return respond.Created(c, created)
}

func (h *Handler) Update(c echo.Context) error {
	callerID, err := auth.CallerID(c.Request().Context())
	if err != nil {
		return respond.Error(c, err)
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return respond.Error(c, apperr.Validationf("invalid medication id"))
	}

	var req definitionRequest
	if err := c.Bind(&req); err != nil {
		return respond.Error(c, apperr.Validationf("invalid request body"))
	}

	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}
	def := &Definition{
		Name:       req.Name,
		Dosage:     req.Dosage,
		Type:       req.Type,
		Frequency:  req.Frequency,
		Times:      req.Times,
		IsDaily:    req.IsDaily,
		IsActive:   active,
		RefillDate: req.RefillDate,
	}
	updated, err := h.svc.Update(c.Request().Context(), callerID, id, def)
	if err != nil {
		return respond.Error(c, err)
	}
	return respond.OK(c, updated)
}

func (h *Handler) List(c echo.Context) error {
	callerID, err := auth.CallerID(c.Request().Context())
	if err != nil {
		return respond.Error(c, err)
	}
	ownerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return respond.Error(c, apperr.Validationf("invalid senior id"))
	}

	activeOnly := c.QueryParam("active") == "true"
	items, err := h.svc.List(c.Request().Context(), callerID, ownerID, activeOnly)
	if err != nil {
		return respond.Error(c, err)
	}
	return respond.OK(c, items)
}

func (h *Handler) Deactivate(c echo.Context) error {
	callerID, err := auth.CallerID(c.Request().Context())
	if err != nil {
		return respond.Error(c, err)
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return respond.Error(c, apperr.Validationf("invalid medication id"))
	}

	def, err := h.svc.Deactivate(c.Request().Context(), callerID, id)
	if err != nil {
		return respond.Error(c, err)
	}
	return respond.OK(c, def)
}

type usageRequest struct {
	TakenAt time.Time `json:"taken_at"`
}

func (h *Handler) RecordUsage(c echo.Context) error {
	callerID, err := auth.CallerID(c.Request().Context())
	if err != nil {
		return respond.Error(c, err)
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return respond.Error(c, apperr.Validationf("invalid medication id"))
	}

	var req usageRequest
	if err := c.Bind(&req); err != nil {
		return respond.Error(c, apperr.Validationf("invalid request body"))
	}

	evt, err := h.svc.RecordUsage(c.Request().Context(), callerID, id, req.TakenAt)
	if err != nil {
		return respond.Error(c, err)
	}
	return respond.Created(c, evt)
}

func (h *Handler) TodaySchedule(c echo.Context) error {
	callerID, err := auth.CallerID(c.Request().Context())
	if err != nil {
		return respond.Error(c, err)
	}
	ownerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return respond.Error(c, apperr.Validationf("invalid senior id"))
	}

	items, err := h.svc.TodaySchedule(c.Request().Context(), callerID, ownerID)
	if err != nil {
		return respond.Error(c, err)
	}
	return respond.OK(c, items)
}

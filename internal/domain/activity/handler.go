package activity

import (
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/caresense/caresense/internal/platform/apperr"
	"github.com/caresense/caresense/internal/platform/auth"
	"github.com/caresense/caresense/pkg/pagination"
	"github.com/caresense/caresense/pkg/respond"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.POST("/seniors/:id/activity", h.Log)
	g.GET("/seniors/:id/activity", h.List)
}

type recordRequest struct {
	Type            string    `json:"type"`
	DurationSeconds int       `json:"duration_seconds"`
	CaloriesBurned  float64   `json:"calories_burned"`
	Distance        float64   `json:"distance"`
	CreatedAt       time.Time `json:"created_at"`
}

func (h *Handler) Log(c echo.Context) error {
	callerID, err := auth.CallerID(c.Request().Context())
	if err != nil {
		return respond.Error(c, err)
	}
	ownerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return respond.Error(c, apperr.Validationf("invalid senior id"))
	}

	var req recordRequest
	if err := c.Bind(&req); err != nil {
		return respond.Error(c, apperr.Validationf("invalid request body"))
	}

	rec := &Record{
		OwnerID:         ownerID,
		Type:            req.Type,
		DurationSeconds: req.DurationSeconds,
		CaloriesBurned:  req.CaloriesBurned,
		Distance:        req.Distance,
		CreatedAt:       req.CreatedAt,
	}
	created, err := h.svc.Log(c.Request().Context(), callerID, rec)
	if err != nil {
		return respond.Error(c, err)
	}
	return respond.Created(c, created)
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

	params := pagination.FromContext(c)
	items, total, err := h.svc.List(c.Request().Context(), callerID, ownerID, params.Limit, params.Offset)
	if err != nil {
		return respond.Error(c, err)
	}
	return respond.OK(c, pagination.NewPage(items, total, params.Limit, params.Offset))
}

package alerts

import (
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
	g.GET("/seniors/:id/alerts", h.All)
	g.GET("/seniors/:id/alerts/health", h.Health)
	g.GET("/seniors/:id/alerts/medications", h.Medications)
	g.GET("/seniors/:id/alerts/inactivity", h.Inactivity)
}

func (h *Handler) params(c echo.Context) (uuid.UUID, uuid.UUID, error) {
	callerID, err := auth.CallerID(c.Request().Context())
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	ownerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, uuid.Nil, apperr.Validationf("invalid senior id")
	}
	return callerID, ownerID, nil
}

func (h *Handler) All(c echo.Context) error {
	callerID, ownerID, err := h.params(c)
	if err != nil {
		return respond.Error(c, err)
	}
	items, err := h.svc.All(c.Request().Context(), callerID, ownerID)
	if err != nil {
		return respond.Error(c, err)
	}
	return respond.OK(c, items)
}

func (h *Handler) Health(c echo.Context) error {
	callerID, ownerID, err := h.params(c)
	if err != nil {
		return respond.Error(c, err)
	}
	items, err := h.svc.HealthAlerts(c.Request().Context(), callerID, ownerID)
	if err != nil {
		return respond.Error(c, err)
	}
	return respond.OK(c, items)
}

func (h *Handler) Medications(c echo.Context) error {
	callerID, ownerID, err := h.params(c)
	if err != nil {
		return respond.Error(c, err)
	}
	items, err := h.svc.MedicationAlerts(c.Request().Context(), callerID, ownerID)
	if err != nil {
		return respond.Error(c, err)
	}
	return respond.OK(c, items)
}

func (h *Handler) Inactivity(c echo.Context) error {
	callerID, ownerID, err := h.params(c)
	if err != nil {
		return respond.Error(c, err)
	}
	items, err := h.svc.InactivityAlerts(c.Request().Context(), callerID, ownerID)
	if err != nil {
		return respond.Error(c, err)
	}
	return respond.OK(c, items)
}

package relationship

import (
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
	g.POST("/relationships", h.RequestAccess)
	g.GET("/relationships", h.List)
	g.GET("/relationships/active", h.ListActive)
	g.GET("/relationships/pending", h.ListPending)
	g.POST("/relationships/:id/approve", h.Approve)
	g.POST("/relationships/:id/reject", h.Reject)
}

type requestAccessRequest struct {
	CaregiverEmail string `json:"caregiver_email"`
	SeniorEmail    string `json:"senior_email"`
}

func (h *Handler) RequestAccess(c echo.Context) error {
	callerID, err := auth.CallerID(c.Request().Context())
	if err != nil {
		return respond.Error(c, err)
	}

	var req requestAccessRequest
	if err := c.Bind(&req); err != nil {
		return respond.Error(c, apperr.Validationf("invalid request body"))
	}

	rel, err := h.svc.RequestAccess(c.Request().Context(), callerID, req.CaregiverEmail, req.SeniorEmail)
	if err != nil {
		return respond.Error(c, err)
	}
	return respond.Created(c, rel)
}

type resolveResponse struct {
	Relationship *Relationship `json:"relationship"`
	Changed      bool          `json:"changed"`
}

type approveRequest struct {
	VerificationCode string `json:"verification_code"`
}

func (h *Handler) Approve(c echo.Context) error {
	callerID, err := auth.CallerID(c.Request().Context())
	if err != nil {
		return respond.Error(c, err)
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return respond.Error(c, apperr.Validationf("invalid relationship id"))
	}

	var req approveRequest
	if err := c.Bind(&req); err != nil {
		return respond.Error(c, apperr.Validationf("invalid request body"))
	}

	rel, changed, err := h.svc.Approve(c.Request().Context(), id, callerID, req.VerificationCode)
	if err != nil {
		return respond.Error(c, err)
	}
	return respond.OK(c, resolveResponse{Relationship: rel, Changed: changed})
}

func (h *Handler) Reject(c echo.Context) error {
	callerID, err := auth.CallerID(c.Request().Context())
	if err != nil {
		return respond.Error(c, err)
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return respond.Error(c, apperr.Validationf("invalid relationship id"))
	}

	rel, changed, err := h.svc.Reject(c.Request().Context(), id, callerID)
	if err != nil {
		return respond.Error(c, err)
	}
	return respond.OK(c, resolveResponse{Relationship: rel, Changed: changed})
}

type listResponse struct {
	Page         *pagination.Page `json:"page"`
	PendingCount int              `json:"pending_count"`
}

func (h *Handler) List(c echo.Context) error {
	callerID, err := auth.CallerID(c.Request().Context())
	if err != nil {
		return respond.Error(c, err)
	}

	params := pagination.FromContext(c)
	items, total, err := h.svc.List(c.Request().Context(), callerID, params.Limit, params.Offset)
	if err != nil {
		return respond.Error(c, err)
	}
	pending, err := h.svc.PendingCount(c.Request().Context(), callerID)
	if err != nil {
		return respond.Error(c, err)
	}
	return respond.OK(c, listResponse{
		Page:         pagination.NewPage(items, total, params.Limit, params.Offset),
		PendingCount: pending,
	})
}

func (h *Handler) ListActive(c echo.Context) error {
	callerID, err := auth.CallerID(c.Request().Context())
	if err != nil {
		return respond.Error(c, err)
	}

	items, err := h.svc.ListActive(c.Request().Context(), callerID)
	if err != nil {
		return respond.Error(c, err)
	}
	return respond.OK(c, items)
}

func (h *Handler) ListPending(c echo.Context) error {
	if _, err := auth.CallerID(c.Request().Context()); err != nil {
		return respond.Error(c, err)
	}

	items, err := h.svc.ListPendingForSenior(c.Request().Context(), c.QueryParam("email"))
	if err != nil {
		return respond.Error(c, err)
	}
	return respond.OK(c, items)
}

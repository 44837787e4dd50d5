package vitals

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
	g.POST("/seniors/:id/vitals", h.Record)
	g.GET("/seniors/:id/vitals", h.List)
}

type sampleRequest struct {
	MetricType string    `json:"metric_type"`
	Value      *float64  `json:"value"`
	Systolic   *float64  `json:"systolic"`
	Diastolic  *float64  `json:"diastolic"`
	Unit       string    `json:"unit"`
	RecordedAt time.Time `json:"recorded_at"`
}

func (h *Handler) Record(c echo.Context) error {
	callerID, err := auth.CallerID(c.Request().Context())
	if err != nil {
		return respond.Error(c, err)
	}
	ownerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return respond.Error(c, apperr.Validationf("invalid senior id"))
	}

	var req sampleRequest
	if err := c.Bind(&req); err != nil {
		return respond.Error(c, apperr.Validationf("invalid request body"))
	}

	sample := &Sample{
		OwnerID:    ownerID,
		MetricType: MetricType(req.MetricType),
		Value:      req.Value,
		Systolic:   req.Systolic,
		Diastolic:  req.Diastolic,
		Unit:       req.Unit,
		RecordedAt: req.RecordedAt,
	}
	created, err := h.svc.Record(c.Request().Context(), callerID, sample)
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

package notification

import (
	"github.com/labstack/echo/v4"

	"github.com/caresense/caresense/internal/platform/auth"
	"github.com/caresense/caresense/pkg/respond"
)

type Handler struct {
	center *Center
}

func NewHandler(center *Center) *Handler {
	return &Handler{center: center}
}

func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.GET("/notifications", h.List)
	g.POST("/notifications/read", h.MarkAllRead)
	g.GET("/notifications/toast", h.CurrentToast)
	g.POST("/notifications/toast/dismiss", h.DismissToast)
}

type listResponse struct {
	Notifications []*Notification `json:"notifications"`
	UnreadCount   int             `json:"unread_count"`
}

func (h *Handler) List(c echo.Context) error {
	callerID, err := auth.CallerID(c.Request().Context())
	if err != nil {
		return respond.Error(c, err)
	}
	inbox := h.center.Inbox()
	return respond.OK(c, listResponse{
		Notifications: inbox.List(callerID),
		UnreadCount:   inbox.UnreadCount(callerID),
	})
}

func (h *Handler) MarkAllRead(c echo.Context) error {
	callerID, err := auth.CallerID(c.Request().Context())
	if err != nil {
		return respond.Error(c, err)
	}
	inbox := h.center.Inbox()
	inbox.MarkAllRead(callerID)
	return respond.OK(c, listResponse{
		Notifications: inbox.List(callerID),
		UnreadCount:   0,
	})
}

type toastResponse struct {
	Toast *Notification `json:"toast"`
}

func (h *Handler) CurrentToast(c echo.Context) error {
	callerID, err := auth.CallerID(c.Request().Context())
	if err != nil {
		return respond.Error(c, err)
	}
	return respond.OK(c, toastResponse{Toast: h.center.CurrentToast(callerID)})
}

func (h *Handler) DismissToast(c echo.Context) error {
	callerID, err := auth.CallerID(c.Request().Context())
	if err != nil {
		return respond.Error(c, err)
	}
	h.center.DismissToast(callerID)
	return respond.OK(c, toastResponse{Toast: nil})
}

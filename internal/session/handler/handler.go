package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sideorder/sideorder/internal/menu"
	"github.com/sideorder/sideorder/internal/order"
	"github.com/sideorder/sideorder/internal/pricing"
	"github.com/sideorder/sideorder/internal/session"
	"github.com/sideorder/sideorder/internal/session/dto"
	"github.com/sideorder/sideorder/pkg/resp"
)

type SessionHandler struct {
	uc     session.UseCase
	menus  menu.UseCase
	orders order.UseCase
	logger *zap.Logger
}

func NewSessionHandler(uc session.UseCase, menus menu.UseCase, orders order.UseCase, log *zap.Logger) *SessionHandler {
	return &SessionHandler{
		uc:     uc,
		menus:  menus,
		orders: orders,
		logger: log,
	}
}

func (h *SessionHandler) RegisterRoutes(rg *gin.RouterGroup) {
	s := rg.Group("/sessions")
	s.GET("", h.ListSessions)
	s.GET("/active", h.GetActiveSession)
	s.POST("", h.StartSession)
	s.GET("/:id", h.GetSession)
	s.PATCH("/:id", h.UpdateSession)
	s.POST("/:id/end", h.EndSession)
	s.DELETE("/:id", h.DeleteSession)
	s.GET("/:id/summary", h.GetSummary)
}

func (h *SessionHandler) ListSessions(c *gin.Context) {
	sessions, err := h.uc.LoadSessions(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to load sessions", zap.Error(err))
		resp.Error(c, err)
		return
	}
	resp.OK(c, http.StatusOK, sessions)
}

func (h *SessionHandler) GetSession(c *gin.Context) {
	s, err := h.uc.GetSession(c.Request.Context(), c.Param("id"))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, http.StatusOK, s)
}

// GetActiveSession returns 200 with null data when no session is active so
// clients can poll it without treating the idle state as an error.
func (h *SessionHandler) GetActiveSession(c *gin.Context) {
	s, err := h.uc.ActiveSession(c.Request.Context())
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, http.StatusOK, s)
}

// StartSession freezes the current available menu into the new session. The
// snapshot is captured here, at the edge, so the session usecase stays
// independent of the menu package.
func (h *SessionHandler) StartSession(c *gin.Context) {
	var input dto.StartSessionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		resp.BadRequest(c, err)
		return
	}

	ctx := c.Request.Context()
	snapshot, err := h.menus.GetSnapshot(ctx)
	if err != nil {
		h.logger.Error("failed to capture menu snapshot", zap.Error(err))
		resp.Error(c, err)
		return
	}

	s, err := h.uc.StartSession(ctx, snapshot, input.Name)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, http.StatusCreated, s)
}

func (h *SessionHandler) UpdateSession(c *gin.Context) {
	var input dto.UpdateSessionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		resp.BadRequest(c, err)
		return
	}

	s, err := h.uc.UpdateSession(c.Request.Context(), c.Param("id"), &input)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, http.StatusOK, s)
}

func (h *SessionHandler) EndSession(c *gin.Context) {
	s, err := h.uc.EndSession(c.Request.Context(), c.Param("id"))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, http.StatusOK, s)
}

func (h *SessionHandler) DeleteSession(c *gin.Context) {
	if err := h.uc.DeleteSession(c.Request.Context(), c.Param("id")); err != nil {
		resp.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type sessionSummary struct {
	SessionID     string  `json:"sessionId"`
	OrderCount    int     `json:"orderCount"`
	TotalRevenue  float64 `json:"totalRevenue"`
	RevenueExact  bool    `json:"revenueExact"`
	UnknownOrders int     `json:"unknownOrders"`
}

// GetSummary prices the session's orders against its own snapshot, never the
// live menu, so totals stay stable after later menu edits.
func (h *SessionHandler) GetSummary(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")

	s, err := h.uc.GetSession(ctx, id)
	if err != nil {
		resp.Error(c, err)
		return
	}

	orders, err := h.orders.LoadOrdersForSession(ctx, id)
	if err != nil {
		resp.Error(c, err)
		return
	}

	total, _ := pricing.TotalRevenue(orders, &s.MenuSnapshot)
	unknown := 0
	for i := range orders {
		if _, ok := pricing.PriceOf(&orders[i], &s.MenuSnapshot); !ok {
			unknown++
		}
	}

	resp.OK(c, http.StatusOK, sessionSummary{
		SessionID:     s.ID,
		OrderCount:    len(orders),
		TotalRevenue:  total,
		RevenueExact:  unknown == 0,
		UnknownOrders: unknown,
	})
}

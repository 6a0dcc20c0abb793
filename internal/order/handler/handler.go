package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sideorder/sideorder/internal/order"
	"github.com/sideorder/sideorder/internal/order/dto"
	"github.com/sideorder/sideorder/pkg/resp"
)

type OrderHandler struct {
	uc     order.UseCase
	logger *zap.Logger
}

func NewOrderHandler(uc order.UseCase, log *zap.Logger) *OrderHandler {
	return &OrderHandler{uc: uc, logger: log}
}

func (h *OrderHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/sessions/:id/orders", h.ListOrders)

	o := rg.Group("/orders")
	o.POST("", h.CreateOrder)
	o.PATCH("/:id", h.UpdateOrder)
	o.DELETE("/:id", h.DeleteOrder)
}

func (h *OrderHandler) ListOrders(c *gin.Context) {
	orders, err := h.uc.LoadOrdersForSession(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.logger.Error("failed to load orders", zap.Error(err))
		resp.Error(c, err)
		return
	}
	resp.OK(c, http.StatusOK, orders)
}

func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var input dto.CreateOrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		resp.BadRequest(c, err)
		return
	}

	o, err := h.uc.AddOrder(c.Request.Context(), &input)
	if err != nil {
		h.logger.Error("failed to create order", zap.Error(err))
		resp.Error(c, err)
		return
	}
	resp.OK(c, http.StatusCreated, o)
}

func (h *OrderHandler) UpdateOrder(c *gin.Context) {
	var input dto.UpdateOrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		resp.BadRequest(c, err)
		return
	}

	o, err := h.uc.UpdateOrder(c.Request.Context(), c.Param("id"), &input)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, http.StatusOK, o)
}

func (h *OrderHandler) DeleteOrder(c *gin.Context) {
	if err := h.uc.DeleteOrder(c.Request.Context(), c.Param("id")); err != nil {
		resp.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

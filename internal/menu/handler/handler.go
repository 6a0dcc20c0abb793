package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sideorder/sideorder/internal/menu"
	"github.com/sideorder/sideorder/internal/menu/dto"
	"github.com/sideorder/sideorder/internal/session"
	"github.com/sideorder/sideorder/pkg/resp"
)

// MenuHandler exposes the menu CRUD and reorder operations. Every mutation
// re-snapshots into the active session when one exists, so an in-progress
// session tracks deliberate menu edits without ever implicitly refreshing.
type MenuHandler struct {
	uc       menu.UseCase
	sessions session.UseCase
	logger   *zap.Logger
}

func NewMenuHandler(uc menu.UseCase, sessions session.UseCase, log *zap.Logger) *MenuHandler {
	return &MenuHandler{
		uc:       uc,
		sessions: sessions,
		logger:   log,
	}
}

func (h *MenuHandler) RegisterRoutes(rg *gin.RouterGroup) {
	m := rg.Group("/menu")
	m.GET("", h.GetMenu)
	m.GET("/snapshot", h.GetSnapshot)

	m.POST("/categories", h.CreateCategory)
	m.PATCH("/categories/:id", h.UpdateCategory)
	m.DELETE("/categories/:id", h.DeleteCategory)
	m.POST("/categories/reorder", h.ReorderCategories)

	m.POST("/items", h.CreateItem)
	m.PATCH("/items/:id", h.UpdateItem)
	m.DELETE("/items/:id", h.DeleteItem)
	m.POST("/items/reorder", h.ReorderItems)

	m.POST("/modifier-groups", h.CreateModifierGroup)
	m.PATCH("/modifier-groups/:id", h.UpdateModifierGroup)
	m.DELETE("/modifier-groups/:id", h.DeleteModifierGroup)
	m.POST("/modifier-groups/reorder", h.ReorderModifierGroups)
}

func (h *MenuHandler) GetMenu(c *gin.Context) {
	m, err := h.uc.LoadMenu(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to load menu", zap.Error(err))
		resp.Error(c, err)
		return
	}
	resp.OK(c, http.StatusOK, m)
}

func (h *MenuHandler) GetSnapshot(c *gin.Context) {
	snapshot, err := h.uc.GetSnapshot(c.Request.Context())
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, http.StatusOK, snapshot)
}

// Categories

func (h *MenuHandler) CreateCategory(c *gin.Context) {
	var input dto.CreateCategoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		resp.BadRequest(c, err)
		return
	}

	cat, err := h.uc.AddCategory(c.Request.Context(), &input)
	if err != nil {
		h.logger.Error("failed to create category", zap.Error(err))
		resp.Error(c, err)
		return
	}
	if err := h.refreshActiveSnapshot(c); err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, http.StatusCreated, cat)
}

func (h *MenuHandler) UpdateCategory(c *gin.Context) {
	var input dto.UpdateCategoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		resp.BadRequest(c, err)
		return
	}

	cat, err := h.uc.UpdateCategory(c.Request.Context(), c.Param("id"), &input)
	if err != nil {
		resp.Error(c, err)
		return
	}
	if err := h.refreshActiveSnapshot(c); err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, http.StatusOK, cat)
}

func (h *MenuHandler) DeleteCategory(c *gin.Context) {
	if err := h.uc.DeleteCategory(c.Request.Context(), c.Param("id")); err != nil {
		resp.Error(c, err)
		return
	}
	if err := h.refreshActiveSnapshot(c); err != nil {
		resp.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *MenuHandler) ReorderCategories(c *gin.Context) {
	var input dto.ReorderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		resp.BadRequest(c, err)
		return
	}

	if err := h.uc.ReorderCategories(c.Request.Context(), input.OrderedIDs); err != nil {
		resp.Error(c, err)
		return
	}
	if err := h.refreshActiveSnapshot(c); err != nil {
		resp.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Menu items

func (h *MenuHandler) CreateItem(c *gin.Context) {
	var input dto.CreateMenuItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		resp.BadRequest(c, err)
		return
	}

	item, err := h.uc.AddItem(c.Request.Context(), &input)
	if err != nil {
		h.logger.Error("failed to create menu item", zap.Error(err))
		resp.Error(c, err)
		return
	}
	if err := h.refreshActiveSnapshot(c); err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, http.StatusCreated, item)
}

func (h *MenuHandler) UpdateItem(c *gin.Context) {
	var input dto.UpdateMenuItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		resp.BadRequest(c, err)
		return
	}

	item, err := h.uc.UpdateItem(c.Request.Context(), c.Param("id"), &input)
	if err != nil {
		resp.Error(c, err)
		return
	}
	if err := h.refreshActiveSnapshot(c); err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, http.StatusOK, item)
}

func (h *MenuHandler) DeleteItem(c *gin.Context) {
	if err := h.uc.DeleteItem(c.Request.Context(), c.Param("id")); err != nil {
		resp.Error(c, err)
		return
	}
	if err := h.refreshActiveSnapshot(c); err != nil {
		resp.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *MenuHandler) ReorderItems(c *gin.Context) {
	var input dto.ReorderItemsInput
	if err := c.ShouldBindJSON(&input); err != nil {
		resp.BadRequest(c, err)
		return
	}

	if err := h.uc.ReorderItems(c.Request.Context(), input.CategoryID, input.OrderedIDs); err != nil {
		resp.Error(c, err)
		return
	}
	if err := h.refreshActiveSnapshot(c); err != nil {
		resp.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Modifier groups

func (h *MenuHandler) CreateModifierGroup(c *gin.Context) {
	var input dto.CreateModifierGroupInput
	if err := c.ShouldBindJSON(&input); err != nil {
		resp.BadRequest(c, err)
		return
	}

	g, err := h.uc.AddModifierGroup(c.Request.Context(), &input)
	if err != nil {
		h.logger.Error("failed to create modifier group", zap.Error(err))
		resp.Error(c, err)
		return
	}
	if err := h.refreshActiveSnapshot(c); err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, http.StatusCreated, g)
}

func (h *MenuHandler) UpdateModifierGroup(c *gin.Context) {
	var input dto.UpdateModifierGroupInput
	if err := c.ShouldBindJSON(&input); err != nil {
		resp.BadRequest(c, err)
		return
	}

	g, err := h.uc.UpdateModifierGroup(c.Request.Context(), c.Param("id"), &input)
	if err != nil {
		resp.Error(c, err)
		return
	}
	if err := h.refreshActiveSnapshot(c); err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, http.StatusOK, g)
}

func (h *MenuHandler) DeleteModifierGroup(c *gin.Context) {
	if err := h.uc.DeleteModifierGroup(c.Request.Context(), c.Param("id")); err != nil {
		resp.Error(c, err)
		return
	}
	if err := h.refreshActiveSnapshot(c); err != nil {
		resp.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *MenuHandler) ReorderModifierGroups(c *gin.Context) {
	var input dto.ReorderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		resp.BadRequest(c, err)
		return
	}

	if err := h.uc.ReorderModifierGroups(c.Request.Context(), input.OrderedIDs); err != nil {
		resp.Error(c, err)
		return
	}
	if err := h.refreshActiveSnapshot(c); err != nil {
		resp.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *MenuHandler) refreshActiveSnapshot(c *gin.Context) error {
	ctx := c.Request.Context()
	snapshot, err := h.uc.GetSnapshot(ctx)
	if err != nil {
		return err
	}
	if err := h.sessions.RefreshActiveSnapshot(ctx, snapshot); err != nil {
		h.logger.Error("failed to refresh active session snapshot", zap.Error(err))
		return err
	}
	return nil
}

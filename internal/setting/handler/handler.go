package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sideorder/sideorder/internal/model"
	"github.com/sideorder/sideorder/internal/setting"
	"github.com/sideorder/sideorder/pkg/resp"
)

type SettingHandler struct {
	repo   setting.Repository
	logger *zap.Logger
}

func NewSettingHandler(repo setting.Repository, log *zap.Logger) *SettingHandler {
	return &SettingHandler{repo: repo, logger: log}
}

func (h *SettingHandler) RegisterRoutes(rg *gin.RouterGroup) {
	s := rg.Group("/settings")
	s.GET("", h.GetSettings)
	s.PUT("/:key", h.PutSetting)
}

type settingsOutput struct {
	ShopName string `json:"shopName"`
	Theme    string `json:"theme"`
}

func (h *SettingHandler) GetSettings(c *gin.Context) {
	ctx := c.Request.Context()

	name, err := setting.ShopName(ctx, h.repo)
	if err != nil {
		h.logger.Error("failed to read shop name", zap.Error(err))
		resp.Error(c, err)
		return
	}

	theme := ""
	if t, err := h.repo.Get(ctx, model.SettingTheme); err != nil {
		resp.Error(c, err)
		return
	} else if t != nil {
		theme = t.Value
	}

	resp.OK(c, http.StatusOK, settingsOutput{ShopName: name, Theme: theme})
}

type putSettingInput struct {
	Value string `json:"value"`
}

func (h *SettingHandler) PutSetting(c *gin.Context) {
	var input putSettingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		resp.BadRequest(c, err)
		return
	}

	key := c.Param("key")
	value := input.Value
	if key == model.SettingShopName {
		saved, err := setting.SaveShopName(c.Request.Context(), h.repo, value)
		if err != nil {
			resp.Error(c, err)
			return
		}
		resp.OK(c, http.StatusOK, &model.Setting{Key: key, Value: saved})
		return
	}

	s := &model.Setting{Key: key, Value: value}
	if err := h.repo.Put(c.Request.Context(), s); err != nil {
		h.logger.Error("failed to save setting", zap.Error(err), zap.String("key", key))
		resp.Error(c, err)
		return
	}
	resp.OK(c, http.StatusOK, s)
}

package handler

import (
	"github.com/gin-gonic/gin"

	"ghostwriter-api/internal/application/settings"
	"ghostwriter-api/internal/interfaces/http/dto"
)

// SettingsHandler 全局设置处理器
type SettingsHandler struct {
	settings *settings.Service
}

// NewSettingsHandler 创建设置处理器
func NewSettingsHandler(settingsSvc *settings.Service) *SettingsHandler {
	return &SettingsHandler{settings: settingsSvc}
}

// GetSettings 获取生效设置，未保存时返回默认值
// @Summary 获取设置
// @Tags Settings
// @Produce json
// @Success 200 {object} dto.Response[dto.SettingsResponse]
// @Router /v1/settings [get]
func (h *SettingsHandler) GetSettings(c *gin.Context) {
	ctx := c.Request.Context()

	s, err := h.settings.Get(ctx)
	if err != nil {
		respondError(ctx, c, "failed to get settings", err)
		return
	}

	dto.Success(c, dto.ToSettingsResponse(s))
}

// UpdateSettings 更新设置
// @Summary 更新设置
// @Tags Settings
// @Accept json
// @Produce json
// @Param body body dto.UpdateSettingsRequest true "设置"
// @Success 200 {object} dto.Response[dto.SettingsResponse]
// @Router /v1/settings [put]
func (h *SettingsHandler) UpdateSettings(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	s, err := h.settings.Update(ctx, req.ToUpdate())
	if err != nil {
		respondError(ctx, c, "failed to update settings", err)
		return
	}

	dto.Success(c, dto.ToSettingsResponse(s))
}

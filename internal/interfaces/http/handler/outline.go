package handler

import (
	"github.com/gin-gonic/gin"

	"ghostwriter-api/internal/application/story/outline"
	"ghostwriter-api/internal/interfaces/http/dto"
)

// OutlineHandler 部与章节处理器
type OutlineHandler struct {
	outline *outline.Service
}

// NewOutlineHandler 创建大纲处理器
func NewOutlineHandler(outlineSvc *outline.Service) *OutlineHandler {
	return &OutlineHandler{outline: outlineSvc}
}

// ListParts 获取项目的部及其章节
// @Summary 获取部列表
// @Tags Outline
// @Produce json
// @Param pid path string true "项目 ID"
// @Success 200 {object} dto.Response[[]dto.PartResponse]
// @Router /v1/projects/{pid}/parts [get]
func (h *OutlineHandler) ListParts(c *gin.Context) {
	ctx := c.Request.Context()

	parts, err := h.outline.ListParts(ctx, dto.BindProjectID(c))
	if err != nil {
		respondError(ctx, c, "failed to list parts", err)
		return
	}

	dto.Success(c, dto.ToPartList(parts))
}

// CreatePart 创建部，序号追加到末尾
// @Summary 创建部
// @Tags Outline
// @Accept json
// @Produce json
// @Param pid path string true "项目 ID"
// @Param body body dto.CreateOutlineItemRequest true "名称"
// @Success 201 {object} dto.Response[dto.PartResponse]
// @Router /v1/projects/{pid}/parts [post]
func (h *OutlineHandler) CreatePart(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.CreateOutlineItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	part, err := h.outline.CreatePart(ctx, dto.BindProjectID(c), req.Name)
	if err != nil {
		respondError(ctx, c, "failed to create part", err)
		return
	}

	dto.Created(c, dto.ToPartResponse(part))
}

// UpdatePart 部分更新部
// @Summary 更新部
// @Tags Outline
// @Accept json
// @Produce json
// @Param partid path string true "部 ID"
// @Param body body dto.UpdateOutlineItemRequest true "更新内容"
// @Success 200 {object} dto.Response[dto.PartResponse]
// @Router /v1/parts/{partid} [put]
func (h *OutlineHandler) UpdatePart(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.UpdateOutlineItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	part, err := h.outline.UpdatePart(ctx, dto.BindPartID(c), req.ToPatch())
	if err != nil {
		respondError(ctx, c, "failed to update part", err)
		return
	}

	dto.Success(c, dto.ToPartResponse(part))
}

// DeletePart 删除部及其章节
// @Summary 删除部
// @Tags Outline
// @Produce json
// @Param partid path string true "部 ID"
// @Success 200 {object} dto.Response[dto.DeletedResponse]
// @Router /v1/parts/{partid} [delete]
func (h *OutlineHandler) DeletePart(c *gin.Context) {
	ctx := c.Request.Context()

	if err := h.outline.DeletePart(ctx, dto.BindPartID(c)); err != nil {
		respondError(ctx, c, "failed to delete part", err)
		return
	}

	deleted(c)
}

// ListChapters 获取部下章节
// @Summary 获取章节列表
// @Tags Outline
// @Produce json
// @Param partid path string true "部 ID"
// @Success 200 {object} dto.Response[[]dto.ChapterResponse]
// @Router /v1/parts/{partid}/chapters [get]
func (h *OutlineHandler) ListChapters(c *gin.Context) {
	ctx := c.Request.Context()

	chapters, err := h.outline.ListChapters(ctx, dto.BindPartID(c))
	if err != nil {
		respondError(ctx, c, "failed to list chapters", err)
		return
	}

	dto.Success(c, dto.ToChapterList(chapters))
}

// CreateChapter 创建章节
// @Summary 创建章节
// @Tags Outline
// @Accept json
// @Produce json
// @Param partid path string true "部 ID"
// @Param body body dto.CreateOutlineItemRequest true "名称"
// @Success 201 {object} dto.Response[dto.ChapterResponse]
// @Router /v1/parts/{partid}/chapters [post]
func (h *OutlineHandler) CreateChapter(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.CreateOutlineItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	chapter, err := h.outline.CreateChapter(ctx, dto.BindPartID(c), req.Name)
	if err != nil {
		respondError(ctx, c, "failed to create chapter", err)
		return
	}

	dto.Created(c, dto.ToChapterResponse(chapter))
}

// GetChapter 获取章节详情
// @Summary 获取章节详情
// @Description 返回章节、章节文档、段落、项目文档与当前生成上下文的 token 估算
// @Tags Outline
// @Produce json
// @Param cid path string true "章节 ID"
// @Success 200 {object} dto.Response[dto.ChapterDetailResponse]
// @Router /v1/chapters/{cid} [get]
func (h *OutlineHandler) GetChapter(c *gin.Context) {
	ctx := c.Request.Context()

	detail, err := h.outline.GetChapterDetail(ctx, dto.BindChapterID(c))
	if err != nil {
		respondError(ctx, c, "failed to get chapter", err)
		return
	}

	dto.Success(c, dto.ToChapterDetailResponse(detail))
}

// GetChapterText 获取章节已审核正文
// @Summary 获取章节正文
// @Tags Outline
// @Produce json
// @Param cid path string true "章节 ID"
// @Success 200 {object} dto.Response[dto.ChapterTextResponse]
// @Router /v1/chapters/{cid}/text [get]
func (h *OutlineHandler) GetChapterText(c *gin.Context) {
	ctx := c.Request.Context()

	text, err := h.outline.GetChapterText(ctx, dto.BindChapterID(c))
	if err != nil {
		respondError(ctx, c, "failed to get chapter text", err)
		return
	}

	dto.Success(c, &dto.ChapterTextResponse{
		ChapterID:     text.ChapterID,
		Content:       text.Content,
		TokenEstimate: text.TokenEstimate,
	})
}

// UpdateChapter 部分更新章节
// @Summary 更新章节
// @Tags Outline
// @Accept json
// @Produce json
// @Param cid path string true "章节 ID"
// @Param body body dto.UpdateOutlineItemRequest true "更新内容"
// @Success 200 {object} dto.Response[dto.ChapterResponse]
// @Router /v1/chapters/{cid} [put]
func (h *OutlineHandler) UpdateChapter(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.UpdateOutlineItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	chapter, err := h.outline.UpdateChapter(ctx, dto.BindChapterID(c), req.ToPatch())
	if err != nil {
		respondError(ctx, c, "failed to update chapter", err)
		return
	}

	dto.Success(c, dto.ToChapterResponse(chapter))
}

// DeleteChapter 删除章节
// @Summary 删除章节
// @Tags Outline
// @Produce json
// @Param cid path string true "章节 ID"
// @Success 200 {object} dto.Response[dto.DeletedResponse]
// @Router /v1/chapters/{cid} [delete]
func (h *OutlineHandler) DeleteChapter(c *gin.Context) {
	ctx := c.Request.Context()

	if err := h.outline.DeleteChapter(ctx, dto.BindChapterID(c)); err != nil {
		respondError(ctx, c, "failed to delete chapter", err)
		return
	}

	deleted(c)
}

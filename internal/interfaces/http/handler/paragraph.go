package handler

import (
	"github.com/gin-gonic/gin"

	"ghostwriter-api/internal/application/story/paragraph"
	"ghostwriter-api/internal/interfaces/http/dto"
	"ghostwriter-api/pkg/logger"
)

// ParagraphHandler 段落与生成处理器
type ParagraphHandler struct {
	paragraphs *paragraph.Service
}

// NewParagraphHandler 创建段落处理器
func NewParagraphHandler(paragraphSvc *paragraph.Service) *ParagraphHandler {
	return &ParagraphHandler{paragraphs: paragraphSvc}
}

// GenerateParagraphs 为章节生成候选段落，结果不落库
// @Summary 生成段落
// @Tags Paragraphs
// @Accept json
// @Produce json
// @Param cid path string true "章节 ID"
// @Param body body dto.GenerateParagraphsRequest false "写作指令"
// @Success 200 {object} dto.Response[dto.GenerateParagraphsResponse]
// @Failure 500 {object} dto.ErrorResponse
// @Router /v1/chapters/{cid}/generate [post]
func (h *ParagraphHandler) GenerateParagraphs(c *gin.Context) {
	ctx := c.Request.Context()
	cid := dto.BindChapterID(c)

	var req dto.GenerateParagraphsRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			dto.BadRequest(c, "invalid request body: "+err.Error())
			return
		}
	}

	result, err := h.paragraphs.Generate(ctx, cid, req.Instruction)
	if err != nil {
		respondError(ctx, c, "failed to generate paragraphs", err)
		return
	}

	logger.Info(ctx, "paragraphs generated",
		"chapter_id", cid,
		"count", len(result.Paragraphs),
		"token_estimate", result.TokenEstimate,
	)
	dto.Success(c, dto.ToGenerateParagraphsResponse(result))
}

// AppendParagraphs 追加段落到章节末尾
// @Summary 追加段落
// @Tags Paragraphs
// @Accept json
// @Produce json
// @Param cid path string true "章节 ID"
// @Param body body dto.AppendParagraphsRequest true "段落"
// @Success 201 {object} dto.Response[[]dto.ParagraphResponse]
// @Router /v1/chapters/{cid}/paragraphs [post]
func (h *ParagraphHandler) AppendParagraphs(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.AppendParagraphsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	created, err := h.paragraphs.Append(ctx, dto.BindChapterID(c), req.Paragraphs, req.Pending)
	if err != nil {
		respondError(ctx, c, "failed to append paragraphs", err)
		return
	}

	dto.Created(c, dto.ToParagraphList(created))
}

// UpdateParagraph 修改段落内容
// @Summary 修改段落
// @Tags Paragraphs
// @Accept json
// @Produce json
// @Param paraid path string true "段落 ID"
// @Param body body dto.UpdateParagraphRequest true "内容"
// @Success 200 {object} dto.Response[dto.ParagraphResponse]
// @Router /v1/paragraphs/{paraid} [put]
func (h *ParagraphHandler) UpdateParagraph(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.UpdateParagraphRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	p, err := h.paragraphs.Update(ctx, dto.BindParagraphID(c), req.Content)
	if err != nil {
		respondError(ctx, c, "failed to update paragraph", err)
		return
	}

	dto.Success(c, dto.ToParagraphResponse(p))
}

// ApproveParagraph 审核通过段落
// @Summary 审核段落
// @Tags Paragraphs
// @Produce json
// @Param paraid path string true "段落 ID"
// @Success 200 {object} dto.Response[dto.ParagraphResponse]
// @Router /v1/paragraphs/{paraid}/approve [post]
func (h *ParagraphHandler) ApproveParagraph(c *gin.Context) {
	ctx := c.Request.Context()

	p, err := h.paragraphs.Approve(ctx, dto.BindParagraphID(c))
	if err != nil {
		respondError(ctx, c, "failed to approve paragraph", err)
		return
	}

	dto.Success(c, dto.ToParagraphResponse(p))
}

// DeleteParagraph 删除段落
// @Summary 删除段落
// @Tags Paragraphs
// @Produce json
// @Param paraid path string true "段落 ID"
// @Success 200 {object} dto.Response[dto.DeletedResponse]
// @Router /v1/paragraphs/{paraid} [delete]
func (h *ParagraphHandler) DeleteParagraph(c *gin.Context) {
	ctx := c.Request.Context()

	if err := h.paragraphs.Delete(ctx, dto.BindParagraphID(c)); err != nil {
		respondError(ctx, c, "failed to delete paragraph", err)
		return
	}

	deleted(c)
}

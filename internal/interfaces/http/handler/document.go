package handler

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"ghostwriter-api/internal/application/story/outline"
	"ghostwriter-api/internal/domain/entity"
	"ghostwriter-api/internal/domain/repository"
	"ghostwriter-api/internal/interfaces/http/dto"
	apperrors "ghostwriter-api/pkg/errors"
	"ghostwriter-api/pkg/logger"
)

// DocumentHandler 参考文档处理器，项目文档直接访问仓储，章节文档经由大纲服务
type DocumentHandler struct {
	projectRepo    repository.ProjectRepository
	projectDocRepo repository.ProjectDocumentRepository
	outline        *outline.Service
}

// NewDocumentHandler 创建文档处理器
func NewDocumentHandler(
	projectRepo repository.ProjectRepository,
	projectDocRepo repository.ProjectDocumentRepository,
	outlineSvc *outline.Service,
) *DocumentHandler {
	return &DocumentHandler{
		projectRepo:    projectRepo,
		projectDocRepo: projectDocRepo,
		outline:        outlineSvc,
	}
}

// ListProjectDocuments 获取项目文档
// @Summary 获取项目文档
// @Tags Documents
// @Produce json
// @Param pid path string true "项目 ID"
// @Success 200 {object} dto.Response[[]dto.DocumentResponse]
// @Router /v1/projects/{pid}/documents [get]
func (h *DocumentHandler) ListProjectDocuments(c *gin.Context) {
	ctx := c.Request.Context()
	pid := dto.BindProjectID(c)

	if !h.projectExists(c, pid) {
		return
	}

	docs, err := h.projectDocRepo.ListByProject(ctx, pid)
	if err != nil {
		logger.Error(ctx, "failed to list project documents", err)
		dto.InternalError(c, "failed to list documents")
		return
	}

	dto.Success(c, dto.ToProjectDocumentList(docs))
}

// CreateProjectDocument 上传项目文档
// @Summary 上传项目文档
// @Tags Documents
// @Accept json
// @Produce json
// @Param pid path string true "项目 ID"
// @Param body body dto.CreateDocumentRequest true "文档"
// @Success 201 {object} dto.Response[dto.DocumentResponse]
// @Router /v1/projects/{pid}/documents [post]
func (h *DocumentHandler) CreateProjectDocument(c *gin.Context) {
	ctx := c.Request.Context()
	pid := dto.BindProjectID(c)

	var req dto.CreateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}
	filename := strings.TrimSpace(req.Filename)
	if filename == "" {
		dto.BadRequest(c, "filename is required")
		return
	}

	if !h.projectExists(c, pid) {
		return
	}

	doc := entity.NewProjectDocument(pid, filename, req.Content)
	if err := h.projectDocRepo.Create(ctx, doc); err != nil {
		logger.Error(ctx, "failed to create project document", err)
		dto.InternalError(c, "failed to create document")
		return
	}

	dto.Created(c, dto.ToProjectDocumentResponse(doc))
}

// DeleteProjectDocument 删除项目文档，文档必须属于该项目
// @Summary 删除项目文档
// @Tags Documents
// @Produce json
// @Param pid path string true "项目 ID"
// @Param did path string true "文档 ID"
// @Success 200 {object} dto.Response[dto.DeletedResponse]
// @Router /v1/projects/{pid}/documents/{did} [delete]
func (h *DocumentHandler) DeleteProjectDocument(c *gin.Context) {
	ctx := c.Request.Context()
	pid := dto.BindProjectID(c)
	did := dto.BindDocumentID(c)

	doc, err := h.projectDocRepo.GetByID(ctx, did)
	if err != nil {
		logger.Error(ctx, "failed to get project document", err)
		dto.InternalError(c, "failed to delete document")
		return
	}
	if doc == nil || doc.ProjectID != pid {
		dto.AppError(c, apperrors.ErrDocumentNotFound)
		return
	}

	if err := h.projectDocRepo.Delete(ctx, did); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			dto.AppError(c, apperrors.ErrDocumentNotFound)
			return
		}
		logger.Error(ctx, "failed to delete project document", err)
		dto.InternalError(c, "failed to delete document")
		return
	}

	deleted(c)
}

// ListChapterDocuments 获取章节文档
// @Summary 获取章节文档
// @Tags Documents
// @Produce json
// @Param cid path string true "章节 ID"
// @Success 200 {object} dto.Response[[]dto.DocumentResponse]
// @Router /v1/chapters/{cid}/documents [get]
func (h *DocumentHandler) ListChapterDocuments(c *gin.Context) {
	ctx := c.Request.Context()

	docs, err := h.outline.ListChapterDocuments(ctx, dto.BindChapterID(c))
	if err != nil {
		respondError(ctx, c, "failed to list chapter documents", err)
		return
	}

	dto.Success(c, dto.ToChapterDocumentList(docs))
}

// CreateChapterDocument 上传章节文档
// @Summary 上传章节文档
// @Tags Documents
// @Accept json
// @Produce json
// @Param cid path string true "章节 ID"
// @Param body body dto.CreateDocumentRequest true "文档"
// @Success 201 {object} dto.Response[dto.DocumentResponse]
// @Router /v1/chapters/{cid}/documents [post]
func (h *DocumentHandler) CreateChapterDocument(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.CreateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	doc, err := h.outline.CreateChapterDocument(ctx, dto.BindChapterID(c), req.Filename, req.Content)
	if err != nil {
		respondError(ctx, c, "failed to create chapter document", err)
		return
	}

	dto.Created(c, dto.ToChapterDocumentResponse(doc))
}

// DeleteChapterDocument 删除章节文档
// @Summary 删除章节文档
// @Tags Documents
// @Produce json
// @Param cid path string true "章节 ID"
// @Param did path string true "文档 ID"
// @Success 200 {object} dto.Response[dto.DeletedResponse]
// @Router /v1/chapters/{cid}/documents/{did} [delete]
func (h *DocumentHandler) DeleteChapterDocument(c *gin.Context) {
	ctx := c.Request.Context()

	if err := h.outline.DeleteChapterDocument(ctx, dto.BindChapterID(c), dto.BindDocumentID(c)); err != nil {
		respondError(ctx, c, "failed to delete chapter document", err)
		return
	}

	deleted(c)
}

func (h *DocumentHandler) projectExists(c *gin.Context, pid string) bool {
	ctx := c.Request.Context()
	project, err := h.projectRepo.GetByID(ctx, pid)
	if err != nil {
		logger.Error(ctx, "failed to get project", err)
		dto.InternalError(c, "failed to get project")
		return false
	}
	if project == nil {
		dto.AppError(c, apperrors.ErrProjectNotFound)
		return false
	}
	return true
}

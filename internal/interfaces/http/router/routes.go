package router

import (
	"github.com/gin-gonic/gin"
)

// RegisterV1Routes 注册 v1 版本路由，limit 只挂在模型与语音调用上
func RegisterV1Routes(v1 *gin.RouterGroup, h *Handlers, limit gin.HandlerFunc) {
	// 项目管理
	projects := v1.Group("/projects")
	{
		projects.GET("", h.Project.ListProjects)
		projects.POST("", h.Project.CreateProject)
		projects.GET("/:pid", h.Project.GetProject)
		projects.PUT("/:pid", h.Project.UpdateProject)
		projects.DELETE("/:pid", h.Project.DeleteProject)

		// 项目文档
		projects.GET("/:pid/documents", h.Document.ListProjectDocuments)
		projects.POST("/:pid/documents", h.Document.CreateProjectDocument)
		projects.DELETE("/:pid/documents/:did", h.Document.DeleteProjectDocument)

		// 项目下的部
		projects.GET("/:pid/parts", h.Outline.ListParts)
		projects.POST("/:pid/parts", h.Outline.CreatePart)
	}

	// 部管理
	parts := v1.Group("/parts")
	{
		parts.PUT("/:partid", h.Outline.UpdatePart)
		parts.DELETE("/:partid", h.Outline.DeletePart)
		parts.GET("/:partid/chapters", h.Outline.ListChapters)
		parts.POST("/:partid/chapters", h.Outline.CreateChapter)
	}

	// 章节管理
	chapters := v1.Group("/chapters")
	{
		chapters.GET("/:cid", h.Outline.GetChapter)
		chapters.PUT("/:cid", h.Outline.UpdateChapter)
		chapters.DELETE("/:cid", h.Outline.DeleteChapter)
		chapters.GET("/:cid/text", h.Outline.GetChapterText)

		chapters.GET("/:cid/documents", h.Document.ListChapterDocuments)
		chapters.POST("/:cid/documents", h.Document.CreateChapterDocument)
		chapters.DELETE("/:cid/documents/:did", h.Document.DeleteChapterDocument)

		chapters.POST("/:cid/paragraphs", h.Paragraph.AppendParagraphs)
		chapters.POST("/:cid/generate", limit, h.Paragraph.GenerateParagraphs)
	}

	// 段落管理
	paragraphs := v1.Group("/paragraphs")
	{
		paragraphs.PUT("/:paraid", h.Paragraph.UpdateParagraph)
		paragraphs.POST("/:paraid/approve", h.Paragraph.ApproveParagraph)
		paragraphs.DELETE("/:paraid", h.Paragraph.DeleteParagraph)
	}

	// 全局设置
	v1.GET("/settings", h.Settings.GetSettings)
	v1.PUT("/settings", h.Settings.UpdateSettings)

	// 语音
	v1.GET("/tts/voices", h.Speech.ListVoices)
	v1.POST("/tts", limit, h.Speech.Synthesize)
	v1.POST("/transcribe", limit, h.Speech.Transcribe)
}

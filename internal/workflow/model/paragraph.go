package model

// ParagraphGenerateInput 段落生成输入
type ParagraphGenerateInput struct {
	// ProjectContext 项目与章节文档拼接后的上下文
	ProjectContext string
	// ChapterContent 已审核段落
	ChapterContent string
	// Instruction 用户指令，空白时使用默认指令
	Instruction string
	// Template 自定义系统提示词，空白时使用内置模板
	Template string

	Provider string
	Model    string
}

// ParagraphGenerateOutput 段落生成输出
type ParagraphGenerateOutput struct {
	Paragraphs  []string
	Explanation string
	Format      string
	Meta        LLMUsageMeta
}

// Package prompt 提供段落生成提示词模板与渲染
package prompt

import (
	_ "embed"
	"sort"
	"strings"
)

const (
	PlaceholderProjectContext = "{{PROJECT_CONTEXT}}"
	PlaceholderChapterContent = "{{CHAPTER_CONTENT}}"

	// EmptyChapterContent 章节尚无已审核内容时的占位文本
	EmptyChapterContent = "(Início do capítulo - ainda não há conteúdo escrito)"
)

//go:embed templates/paragraph_gen_v1.system.txt
var paragraphGenV1 string

// DefaultParagraphTemplate 内置段落生成系统提示词
var DefaultParagraphTemplate = strings.TrimSpace(paragraphGenV1)

// TemplateVars 模板变量
type TemplateVars struct {
	ProjectContext string
	ChapterContent string
}

type slot struct {
	at    int
	token string
	value string
}

// Render 替换模板中每个占位符的第一次出现
// 后续同名占位符保持原样，替换值按字面插入且不再被扫描
func Render(template string, vars TemplateVars) string {
	chapter := vars.ChapterContent
	if chapter == "" {
		chapter = EmptyChapterContent
	}

	slots := make([]slot, 0, 2)
	for _, s := range []slot{
		{token: PlaceholderProjectContext, value: vars.ProjectContext},
		{token: PlaceholderChapterContent, value: chapter},
	} {
		if i := strings.Index(template, s.token); i >= 0 {
			s.at = i
			slots = append(slots, s)
		}
	}
	if len(slots) == 0 {
		return template
	}
	sort.Slice(slots, func(i, j int) bool { return slots[i].at < slots[j].at })

	var b strings.Builder
	b.Grow(len(template) + len(vars.ProjectContext) + len(chapter))
	last := 0
	for _, s := range slots {
		b.WriteString(template[last:s.at])
		b.WriteString(s.value)
		last = s.at + len(s.token)
	}
	b.WriteString(template[last:])
	return b.String()
}

// Resolve 返回自定义模板，空白时回退内置模板
func Resolve(custom string) string {
	if strings.TrimSpace(custom) == "" {
		return DefaultParagraphTemplate
	}
	return custom
}

package prompt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRender_ReplacesBothPlaceholders(t *testing.T) {
	out := Render("A {{PROJECT_CONTEXT}} B {{CHAPTER_CONTENT}} C", TemplateVars{
		ProjectContext: "ctx",
		ChapterContent: "body",
	})
	assert.Equal(t, "A ctx B body C", out)
}

func TestRender_EmptyChapterUsesMarker(t *testing.T) {
	out := Render("{{CHAPTER_CONTENT}}", TemplateVars{})
	assert.Equal(t, EmptyChapterContent, out)
}

func TestRender_OnlyFirstOccurrence(t *testing.T) {
	tpl := "{{PROJECT_CONTEXT}}|{{PROJECT_CONTEXT}}|{{CHAPTER_CONTENT}}|{{CHAPTER_CONTENT}}"
	out := Render(tpl, TemplateVars{ProjectContext: "P", ChapterContent: "C"})
	assert.Equal(t, "P|{{PROJECT_CONTEXT}}|C|{{CHAPTER_CONTENT}}", out)
}

func TestRender_ValuesAreNotRescanned(t *testing.T) {
	out := Render("X {{PROJECT_CONTEXT}} Y {{CHAPTER_CONTENT}} Z", TemplateVars{
		ProjectContext: "has {{CHAPTER_CONTENT}} inside",
		ChapterContent: "and {{PROJECT_CONTEXT}} and $& too",
	})
	assert.Equal(t, "X has {{CHAPTER_CONTENT}} inside Y and {{PROJECT_CONTEXT}} and $& too Z", out)
}

func TestRender_ChapterBeforeProject(t *testing.T) {
	out := Render("{{CHAPTER_CONTENT}} then {{PROJECT_CONTEXT}}", TemplateVars{ProjectContext: "p", ChapterContent: "c"})
	assert.Equal(t, "c then p", out)
}

func TestRender_NoPlaceholders(t *testing.T) {
	assert.Equal(t, "plain", Render("plain", TemplateVars{ProjectContext: "x"}))
}

func TestDefaultParagraphTemplate(t *testing.T) {
	assert.Equal(t, 1, strings.Count(DefaultParagraphTemplate, PlaceholderProjectContext))
	assert.Equal(t, 1, strings.Count(DefaultParagraphTemplate, PlaceholderChapterContent))
	assert.Contains(t, DefaultParagraphTemplate, "---EXPLICACAO---")
	assert.Contains(t, DefaultParagraphTemplate, "---PARAGRAFOS---")
}

func TestResolve(t *testing.T) {
	assert.Equal(t, DefaultParagraphTemplate, Resolve(""))
	assert.Equal(t, DefaultParagraphTemplate, Resolve("  \n"))
	assert.Equal(t, "mine {{PROJECT_CONTEXT}}", Resolve("mine {{PROJECT_CONTEXT}}"))
}

// Package node 提供工作流中的纯函数节点
package node

import (
	"regexp"
	"strings"
)

// MaxParagraphs 单次生成最多返回的段落数
const MaxParagraphs = 4

// ResponseFormat 模型输出形态
type ResponseFormat int

const (
	// FormatUnstructured 缺少标记，整段文本作为段落块
	FormatUnstructured ResponseFormat = iota
	// FormatStructured 含说明与段落标记
	FormatStructured
)

func (f ResponseFormat) String() string {
	if f == FormatStructured {
		return "structured"
	}
	return "unstructured"
}

var (
	explanationMarker = regexp.MustCompile(`(?i)---EXPLICACAO---`)
	paragraphsMarker  = regexp.MustCompile(`(?i)---PARAGRAFOS---`)
	blankLine         = regexp.MustCompile(`\n\s*\n`)
)

// ParagraphResult 解析结果
type ParagraphResult struct {
	Paragraphs  []string
	Explanation string
	Format      ResponseFormat
}

// ParseParagraphs 解析模型输出，从不返回错误
// 说明标记之后必须出现段落标记才按结构化处理，否则整段文本作为段落块
func ParseParagraphs(raw string) ParagraphResult {
	explanation, block, format := splitSections(raw)
	return ParagraphResult{
		Paragraphs:  splitParagraphs(block),
		Explanation: explanation,
		Format:      format,
	}
}

func splitSections(raw string) (explanation, block string, format ResponseFormat) {
	exp := explanationMarker.FindStringIndex(raw)
	if exp == nil {
		return "", raw, FormatUnstructured
	}
	rest := raw[exp[1]:]
	par := paragraphsMarker.FindStringIndex(rest)
	if par == nil {
		return "", raw, FormatUnstructured
	}
	return strings.TrimSpace(rest[:par[0]]), rest[par[1]:], FormatStructured
}

func splitParagraphs(block string) []string {
	pieces := blankLine.Split(strings.TrimSpace(block), -1)
	out := make([]string, 0, MaxParagraphs)
	for _, p := range pieces {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p)
		if len(out) == MaxParagraphs {
			break
		}
	}
	return out
}

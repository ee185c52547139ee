package node

import "unicode/utf8"

// EstimateTokens 粗略估算 token 数，约 4 个字符一个 token，仅用于展示
func EstimateTokens(text string) int {
	n := utf8.RuneCountInString(text)
	return (n + 3) / 4
}

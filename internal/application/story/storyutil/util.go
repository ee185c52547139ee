// Package storyutil 提供 story 应用层内部共享的工具函数。
package storyutil

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"ghostwriter-api/internal/domain/repository"
)

// OrderConflictAttempts 排序号冲突时的最大尝试次数
const OrderConflictAttempts = 3

// WithOrderIndexRetry 在事务中执行 fn，遇到排序号冲突时重新读取最大值再试
// 超过次数后返回最后一次的冲突错误
func WithOrderIndexRetry(ctx context.Context, tx repository.Transactor, fn func(ctx context.Context) error) error {
	var err error
	for i := 0; i < OrderConflictAttempts; i++ {
		err = tx.WithTransaction(ctx, fn)
		if !errors.Is(err, repository.ErrOrderIndexConflict) {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
	return err
}

// TrimNonEmpty 去除首尾空白并丢弃空串
func TrimNonEmpty(items []string) []string {
	out := make([]string, 0, len(items))
	for _, s := range items {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// TruncateByRunes 按 rune 数量截断字符串。
func TruncateByRunes(s string, maxRunes int) string {
	if maxRunes <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= maxRunes {
		return s
	}
	n := 0
	for i := range s {
		if n == maxRunes {
			return s[:i]
		}
		n++
	}
	return s
}

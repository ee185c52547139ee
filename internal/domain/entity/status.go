// Package entity 定义领域实体
package entity

// WorkStatus 部/章节写作状态
type WorkStatus string

const (
	WorkStatusDraft      WorkStatus = "draft"
	WorkStatusInProgress WorkStatus = "in_progress"
	WorkStatusReview     WorkStatus = "review"
	WorkStatusDone       WorkStatus = "done"
)

// IsValid 检查状态是否在允许集合内
func (s WorkStatus) IsValid() bool {
	switch s {
	case WorkStatusDraft, WorkStatusInProgress, WorkStatusReview, WorkStatusDone:
		return true
	}
	return false
}

// NextOrderIndex 返回父级下一个排序号，空父级从 0 开始
// 删除后不回收空位
func NextOrderIndex(max *int) int {
	if max == nil {
		return 0
	}
	return *max + 1
}

package postgres

import (
	"errors"

	"github.com/lib/pq"
	"gorm.io/gorm"

	"ghostwriter-api/internal/domain/repository"
)

// uniqueViolation PostgreSQL unique_violation 错误码
const uniqueViolation pq.ErrorCode = "23505"

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == uniqueViolation
	}
	return false
}

// translateInsertErr 将排序号唯一索引冲突映射为 ErrOrderIndexConflict
func translateInsertErr(err error) error {
	if isUniqueViolation(err) {
		return repository.ErrOrderIndexConflict
	}
	return err
}

// affected 检查写操作是否命中记录
func affected(result *gorm.DB) error {
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

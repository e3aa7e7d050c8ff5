package gormrepo

import (
	"errors"
	"fmt"

	"github.com/lanyu-o/lanyu-blog/pkg/apperr"

	"gorm.io/gorm"
)

// translate 把 GORM 错误翻译为业务错误。
// 唯一性冲突和记录缺失映射为哨兵错误，其余包装为 PersistenceError。
func translate(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%s: %w", op, apperr.ErrConflict)
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%s: %w", op, apperr.ErrNotFound)
	default:
		return &apperr.PersistenceError{Op: op, Err: err}
	}
}

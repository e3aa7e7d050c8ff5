/*
 * @Description:
 * @Author: 蓝屿
 * @Date: 2026-03-04 14:21:50
 * @LastEditTime: 2026-04-09 17:40:12
 * @LastEditors: 蓝屿
 */
package repository

import (
	"context"

	"github.com/lanyu-o/lanyu-blog/pkg/domain/model"
)

// CategoryRepository 定义了分类及其翻译行的数据仓库接口。
type CategoryRepository interface {
	// Create 在一个事务里创建分类和全部翻译行，slug 冲突时整体回滚
	// 并返回包装了 apperr.ErrConflict 的错误。
	Create(ctx context.Context, locales map[string]model.CategoryLocaleInput) (*model.Category, error)
	GetByID(ctx context.Context, publicID string) (*model.Category, error)
	List(ctx context.Context) ([]*model.Category, error)
	Delete(ctx context.Context, publicID string) error
	Exists(ctx context.Context, publicID string) (bool, error)

	CreateLocale(ctx context.Context, publicID, locale string, in model.CategoryLocaleInput) (*model.CategoryLocale, error)
	UpdateLocale(ctx context.Context, publicID, locale string, req *model.UpdateCategoryLocaleRequest) (*model.CategoryLocale, error)
	DeleteLocale(ctx context.Context, publicID, locale string) error
	CountLocales(ctx context.Context, publicID string) (int, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
}

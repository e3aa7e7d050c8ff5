/*
 * @Description:
 * @Author: 蓝屿
 * @Date: 2026-03-04 14:36:03
 * @LastEditTime: 2026-04-22 19:18:40
 * @LastEditors: 蓝屿
 */
package repository

import (
	"context"

	"github.com/lanyu-o/lanyu-blog/pkg/domain/model"
)

// PostRepository 定义了文章及其翻译、标签、分类关联的数据仓库接口。
type PostRepository interface {
	// Create 在一个事务里创建文章、首个翻译、标签和分类关联。
	Create(ctx context.Context, creatorID string, req *model.CreatePostRequest) (*model.Post, error)
	GetByID(ctx context.Context, publicID string) (*model.Post, error)
	List(ctx context.Context) ([]*model.Post, error)
	// Delete 级联删除标签、翻译、分类关联和文章本身。
	Delete(ctx context.Context, publicID string) error
	// CountByCategory 统计引用某分类的文章数，分类删除前做关联检查。
	CountByCategory(ctx context.Context, categoryPublicID string) (int, error)
	SlugExists(ctx context.Context, slug string) (bool, error)

	AddLocale(ctx context.Context, publicID, locale string, in model.PostLocaleInput) (*model.PostLocale, error)
	UpdateLocale(ctx context.Context, publicID, locale string, req *model.UpdatePostLocaleRequest) (*model.PostLocale, error)
	DeleteLocale(ctx context.Context, publicID, locale string) error
	CountLocales(ctx context.Context, publicID string) (int, error)
}

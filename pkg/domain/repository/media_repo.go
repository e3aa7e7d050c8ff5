/*
 * @Description:
 * @Author: 蓝屿
 * @Date: 2026-03-04 14:08:19
 * @LastEditTime: 2026-06-10 16:02:47
 * @LastEditors: 蓝屿
 */
package repository

import (
	"context"

	"github.com/lanyu-o/lanyu-blog/pkg/domain/model"
)

// MediaRepository 定义了媒体记录的数据仓库接口。
// Create 在唯一性冲突时返回包装了 apperr.ErrConflict 的错误，
// 其它查询在记录缺失时返回包装了 apperr.ErrNotFound 的错误。
type MediaRepository interface {
	// Create 持久化一条新记录并回填公共 ID。
	Create(ctx context.Context, m *model.Media) (*model.Media, error)
	GetByID(ctx context.Context, publicID string) (*model.Media, error)
	// UpdateImage 整体替换记录的 image 区块（缩略图列表更新走这里）。
	UpdateImage(ctx context.Context, publicID string, image *model.MediaImage) error
	// Delete 物理删除记录。operatorID 仅用于审计日志，内部回滚删除
	// 必须传 constant.SystemUserID 而不是调用者身份。
	Delete(ctx context.Context, publicID string, operatorID string) error
	Filter(ctx context.Context, f *model.MediaFilter) ([]*model.Media, error)
	// Exists 按公共 ID 检查记录是否存在，供孤儿对象清扫任务使用。
	Exists(ctx context.Context, publicID string) (bool, error)
}
